package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// VAPIService triggers outbound calls on the VAPI platform
type VAPIService struct {
	config     *Config
	httpClient *http.Client
}

// NewVAPIService creates a new VAPI service instance
func NewVAPIService(config *Config) *VAPIService {
	return &VAPIService{
		config:     config,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// CreateCall starts an outbound call to the given number via VAPI
func (v *VAPIService) CreateCall(phoneNumber, customerName string, variables map[string]interface{}) (string, error) {
	if !v.config.HasVAPIConfig() {
		return "", fmt.Errorf("VAPI not configured: missing API key or assistant ID")
	}

	log.Printf("🚀 Creating VAPI call for %s (%s)", customerName, phoneNumber)

	callRequest := VAPICallRequest{
		AssistantID:   v.config.VAPIAssistantID,
		PhoneNumberID: v.config.VAPIPhoneNumberID,
		Customer: VAPICallCustomer{
			Number: phoneNumber,
			Name:   customerName,
		},
	}
	if len(variables) > 0 {
		callRequest.AssistantOverrides = map[string]interface{}{
			"variableValues": variables,
		}
	}

	url := v.config.VAPIBaseURL + "/call"
	jsonData, err := json.Marshal(callRequest)
	if err != nil {
		return "", fmt.Errorf("failed to marshal call request: %v", err)
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+v.config.VAPIAPIKey)

	log.Printf("🌐 Making VAPI call to: %s", url)
	log.Printf("📤 Request Body: %s", string(jsonData))

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make VAPI request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %v", err)
	}

	log.Printf("📥 VAPI Response Status: %d", resp.StatusCode)
	log.Printf("📥 VAPI Response Body: %s", string(body))

	if resp.StatusCode != 200 && resp.StatusCode != 201 {
		return "", fmt.Errorf("VAPI call failed: HTTP %d, Response: %s", resp.StatusCode, string(body))
	}

	var callResponse VAPICallResponse
	if err := json.Unmarshal(body, &callResponse); err != nil {
		return "", fmt.Errorf("failed to parse VAPI response: %v", err)
	}
	if callResponse.ID == "" {
		return "", fmt.Errorf("VAPI response did not include a call id")
	}

	log.Printf("✅ Successfully created VAPI call: %s", callResponse.ID)
	return callResponse.ID, nil
}
