package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	handler "vapihub/api"
)

func main() {
	// Load environment variables FIRST (optional - will use system env vars if .env not found)
	_ = godotenv.Load()

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.DebugMode)
	}

	// Create Gin router
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, x-vapi-secret")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Load configuration
	config := handler.LoadConfig()

	// Webhook auth - enable once the secret is set on the assistant in the
	// VAPI dashboard, otherwise the dashboard test console gets rejected
	// router.Use(handler.VAPISecretMiddleware(config))

	// Initialize services
	hubspotService := handler.NewHubSpotService(config)
	vapiService := handler.NewVAPIService(config)

	// Serve the static tool-definition files (VAPI function schemas)
	router.Static("/tools", "./tools")

	// Health check endpoint
	router.GET("/health", handler.HealthCheckHandler)

	// Webhook endpoints
	router.POST("/webhook/vapi/search-properties", handler.SearchPropertiesHandler())
	router.POST("/webhook/vapi/schedule-viewing", handler.ScheduleViewingHandler(hubspotService))
	router.POST("/webhook/vapi/report", handler.EndOfCallReportHandler(hubspotService))
	router.POST("/webhook/vapi/call", handler.OutboundCallHandler(vapiService))

	// Test endpoints
	router.POST("/test/search", func(c *gin.Context) {
		args := handler.PropertySearchArgs{
			City:        "Austin",
			MaxPrice:    700000,
			MinBedrooms: 2,
		}

		results := handler.SearchProperties(args)

		c.JSON(200, gin.H{
			"success":    true,
			"message":    "Test property search executed successfully!",
			"filters":    args,
			"count":      len(results),
			"properties": results,
		})
	})

	router.POST("/test/schedule", func(c *gin.Context) {
		testArgs := handler.ScheduleViewingArgs{
			Name:       "Test Caller",
			Email:      "test-" + strconv.FormatInt(time.Now().Unix(), 10) + "@example.com",
			Phone:      "+15125550147",
			PropertyID: "prop-001",
			Date:       nextBusinessDay().Format("2006-01-02"),
			Time:       "14:30",
			Notes:      "Canned payload from /test/schedule",
		}

		confirmation, err := hubspotService.ScheduleViewing(testArgs)
		if err != nil {
			c.JSON(500, gin.H{
				"success": false,
				"message": "Test failed: " + err.Error(),
			})
			return
		}

		c.JSON(200, gin.H{
			"success":      true,
			"message":      "Test viewing scheduled successfully!",
			"confirmation": confirmation,
		})
	})

	router.POST("/test/call", func(c *gin.Context) {
		callID, err := vapiService.CreateCall("+15125550147", "Test Caller", map[string]interface{}{
			"context": "test call from /test/call",
		})
		if err != nil {
			c.JSON(500, gin.H{
				"success": false,
				"message": "Test failed: " + err.Error(),
			})
			return
		}

		c.JSON(200, gin.H{
			"success": true,
			"message": "Test outbound call created successfully!",
			"call_id": callID,
		})
	})

	// Root endpoint
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "VapiHub Webhook Server is running!",
			"version": "1.0.0",
			"endpoints": gin.H{
				"health": "/health",
				"tools":  "/tools",
				"webhooks": gin.H{
					"search_properties": "/webhook/vapi/search-properties",
					"schedule_viewing":  "/webhook/vapi/schedule-viewing",
					"report":            "/webhook/vapi/report",
					"outbound_call":     "/webhook/vapi/call",
				},
				"test": gin.H{
					"search":   "/test/search",
					"schedule": "/test/schedule",
					"call":     "/test/call",
				},
			},
		})
	})

	// Start server
	port := config.Port

	log.Printf("🚀 Starting VapiHub Webhook Server on port %s", port)
	log.Printf("📋 Available endpoints:")
	log.Printf("   GET  /health")
	log.Printf("   POST /webhook/vapi/search-properties")
	log.Printf("   POST /webhook/vapi/schedule-viewing")
	log.Printf("   POST /webhook/vapi/report")
	log.Printf("   POST /webhook/vapi/call")
	log.Printf("   POST /test/search")
	log.Printf("   POST /test/schedule")
	log.Printf("   POST /test/call")

	// Check if HubSpot is configured
	if config.HasHubSpotConfig() {
		log.Printf("✅ HubSpot API configured")
	} else {
		log.Printf("⚠️  HubSpot API not configured (simulation mode)")
		log.Printf("   Set HUBSPOT_API_KEY to enable real HubSpot integration")
	}

	// Check if VAPI is configured
	if config.HasVAPIConfig() {
		log.Printf("✅ VAPI configured")
	} else {
		log.Printf("⚠️  VAPI not configured")
		log.Printf("   Set VAPI_API_KEY and VAPI_ASSISTANT_ID to enable outbound calls")
	}

	if config.VAPIWebhookSecret == "" {
		log.Printf("⚠️  VAPI_WEBHOOK_SECRET not set - inbound webhooks are unauthenticated")
	}

	router.Run(":" + port)
}

// nextBusinessDay returns tomorrow, skipping Sunday, so the canned schedule
// payload always lands on a valid slot
func nextBusinessDay() time.Time {
	day := time.Now().AddDate(0, 0, 1)
	if day.Weekday() == time.Sunday {
		day = day.AddDate(0, 0, 1)
	}
	return day
}
