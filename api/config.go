package handler

import (
	"os"
	"strconv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port string
	Host string

	// HubSpot API configuration (for real integration)
	HubSpotAPIKey   string
	HubSpotBaseURL  string
	HubSpotPortalID string

	// VAPI configuration
	VAPIAPIKey        string
	VAPIAssistantID   string
	VAPIBaseURL       string
	VAPIPhoneNumberID string

	// Webhook security (optional)
	VAPIWebhookSecret string

	// Logging configuration
	LogLevel string
}

// LoadConfig loads configuration from environment variables with defaults
func LoadConfig() *Config {
	config := &Config{
		// Server defaults
		Port: getEnv("PORT", "8080"),
		Host: getEnv("HOST", "0.0.0.0"),

		// HubSpot configuration
		HubSpotAPIKey:   getEnv("HUBSPOT_API_KEY", ""),
		HubSpotBaseURL:  getEnv("HUBSPOT_BASE_URL", "https://api.hubapi.com"),
		HubSpotPortalID: getEnv("HUBSPOT_PORTAL_ID", ""),

		// VAPI configuration
		VAPIAPIKey:        getEnv("VAPI_API_KEY", ""),
		VAPIAssistantID:   getEnv("VAPI_ASSISTANT_ID", ""),
		VAPIBaseURL:       getEnv("VAPI_BASE_URL", "https://api.vapi.ai"),
		VAPIPhoneNumberID: getEnv("VAPI_PHONE_NUMBER_ID", ""),

		// Webhook secret (optional for basic auth)
		VAPIWebhookSecret: getEnv("VAPI_WEBHOOK_SECRET", ""),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	return config
}

// getEnv gets an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as integer with a fallback default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool gets an environment variable as boolean with a fallback default value
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.LogLevel == "production" || os.Getenv("GIN_MODE") == "release"
}

// HasHubSpotConfig returns true if HubSpot API key is configured
func (c *Config) HasHubSpotConfig() bool {
	return c.HubSpotAPIKey != ""
}

// HasVAPIConfig returns true if VAPI API key and assistant ID are configured
func (c *Config) HasVAPIConfig() bool {
	return c.VAPIAPIKey != "" && c.VAPIAssistantID != ""
}
