package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// VAPISecretMiddleware checks the x-vapi-secret header against the configured
// shared secret. Registration is currently disabled in main.go until the
// secret is set on the assistant in the VAPI dashboard.
func VAPISecretMiddleware(config *Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if config.VAPIWebhookSecret == "" {
			c.Next()
			return
		}
		if c.GetHeader("x-vapi-secret") != config.VAPIWebhookSecret {
			log.Printf("❌ [AUTH] Rejected webhook with bad or missing x-vapi-secret")
			c.AbortWithStatusJSON(http.StatusUnauthorized, WebhookResponse{
				Success: false,
				Message: "Invalid webhook secret",
			})
			return
		}
		c.Next()
	}
}

// SearchPropertiesHandler handles the search_properties tool call from VAPI
func SearchPropertiesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, WebhookResponse{
				Success: false,
				Message: "Failed to read request body",
			})
			return
		}

		toolCall, err := ExtractToolCall(body)
		if err != nil {
			log.Printf("❌ [SEARCH] Failed to extract tool call: %v", err)
			c.JSON(http.StatusBadRequest, WebhookResponse{
				Success: false,
				Message: "Invalid tool call payload: " + err.Error(),
			})
			return
		}

		var args PropertySearchArgs
		if err := BindArguments(toolCall.Arguments, &args); err != nil {
			c.JSON(http.StatusBadRequest, WebhookResponse{
				Success: false,
				Message: "Invalid search arguments: " + err.Error(),
			})
			return
		}

		results := SearchProperties(args)
		log.Printf("🔍 [SEARCH] Tool call %s matched %d properties (city=%q, type=%q, maxPrice=%d)",
			toolCall.ID, len(results), args.City, args.PropertyType, args.MaxPrice)

		c.JSON(http.StatusOK, NewToolCallResponse(toolCall.ID, gin.H{
			"count":      len(results),
			"properties": results,
		}))
	}
}

// ScheduleViewingHandler handles the schedule_viewing tool call from VAPI
func ScheduleViewingHandler(hubspotService *HubSpotService) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, WebhookResponse{
				Success: false,
				Message: "Failed to read request body",
			})
			return
		}

		toolCall, err := ExtractToolCall(body)
		if err != nil {
			log.Printf("❌ [SCHEDULE] Failed to extract tool call: %v", err)
			c.JSON(http.StatusBadRequest, WebhookResponse{
				Success: false,
				Message: "Invalid tool call payload: " + err.Error(),
			})
			return
		}

		var args ScheduleViewingArgs
		if err := BindArguments(toolCall.Arguments, &args); err != nil {
			c.JSON(http.StatusBadRequest, WebhookResponse{
				Success: false,
				Message: "Invalid scheduling arguments: " + err.Error(),
			})
			return
		}

		confirmation, err := hubspotService.ScheduleViewing(args)
		if err != nil {
			log.Printf("⚠️ [SCHEDULE] Rejected viewing request: %v", err)
			c.JSON(http.StatusBadRequest, WebhookResponse{
				Success: false,
				Message: "Failed to schedule viewing: " + err.Error(),
			})
			return
		}

		log.Printf("✅ [SCHEDULE] Tool call %s booked %s", toolCall.ID, confirmation.BookingRef)

		c.JSON(http.StatusOK, NewToolCallResponse(toolCall.ID, gin.H{
			"scheduled":    true,
			"confirmation": confirmation,
		}))
	}
}

// EndOfCallReportHandler handles the VAPI end-of-call-report webhook
func EndOfCallReportHandler(hubspotService *HubSpotService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload EndOfCallReportPayload

		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, WebhookResponse{
				Success: false,
				Message: "Invalid JSON payload",
			})
			return
		}

		if payload.Message.Type != "end-of-call-report" {
			log.Printf("ℹ️ [REPORT] Ignoring message type: %s", payload.Message.Type)
			c.JSON(http.StatusOK, WebhookResponse{
				Success: true,
				Message: "Ignored message type: " + payload.Message.Type,
			})
			return
		}

		if payload.Message.Call.ID == "" {
			c.JSON(http.StatusBadRequest, WebhookResponse{
				Success: false,
				Message: "Missing required field: message.call.id",
			})
			return
		}

		if err := hubspotService.ProcessEndOfCallReport(payload); err != nil {
			c.JSON(http.StatusInternalServerError, WebhookResponse{
				Success: false,
				Message: "Failed to process report: " + err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, WebhookResponse{
			Success: true,
			Message: "End-of-call report processed successfully",
			Data: gin.H{
				"call_id":      payload.Message.Call.ID,
				"ended_reason": payload.Message.EndedReason,
				"duration":     payload.Message.DurationSeconds,
			},
		})
	}
}

// OutboundCallRequest is the body accepted by the outbound call trigger route
type OutboundCallRequest struct {
	Phone string `json:"phone" binding:"required"`
	Name  string `json:"name"`
}

// OutboundCallHandler triggers an outbound VAPI call to the given number
func OutboundCallHandler(vapiService *VAPIService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req OutboundCallRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, WebhookResponse{
				Success: false,
				Message: "Missing required field: phone",
			})
			return
		}

		callID, err := vapiService.CreateCall(req.Phone, req.Name, nil)
		if err != nil {
			c.JSON(http.StatusInternalServerError, WebhookResponse{
				Success: false,
				Message: "Failed to create call: " + err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, WebhookResponse{
			Success: true,
			Message: "Outbound call created successfully",
			Data: gin.H{
				"call_id": callID,
				"phone":   req.Phone,
			},
		})
	}
}

// HealthCheckHandler provides a simple health check endpoint
func HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "VapiHub Webhook Server",
		"version": "1.0.0",
	})
}
