package handler

import (
	"time"
)

// Contact represents a contact in the system
type Contact struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// Property represents a listing in the mock inventory
type Property struct {
	ID           string  `json:"id"`
	Address      string  `json:"address"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	Price        int     `json:"price"`
	Bedrooms     int     `json:"bedrooms"`
	Bathrooms    float64 `json:"bathrooms"`
	PropertyType string  `json:"property_type"` // "house", "condo", "townhouse", "apartment"
	SquareFeet   int     `json:"square_feet"`
	Description  string  `json:"description"`
}

// PropertySearchArgs holds the filters extracted from a search_properties tool call
type PropertySearchArgs struct {
	City         string `json:"city"`
	PropertyType string `json:"propertyType"`
	MinBedrooms  int    `json:"minBedrooms"`
	MinPrice     int    `json:"minPrice"`
	MaxPrice     int    `json:"maxPrice"`
	Limit        int    `json:"limit"`
}

// ScheduleViewingArgs holds the arguments of a schedule_viewing tool call
type ScheduleViewingArgs struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone"`
	PropertyID string `json:"propertyId"`
	Date       string `json:"date" validate:"required"` // Format: "2006-01-02"
	Time       string `json:"time" validate:"required"` // Format: "15:04"
	Notes      string `json:"notes"`
}

// ViewingConfirmation is returned to the assistant after a viewing is booked
type ViewingConfirmation struct {
	BookingRef string    `json:"booking_ref"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	PropertyID string    `json:"property_id,omitempty"`
	StartsAt   time.Time `json:"starts_at"`
	Message    string    `json:"message"`
}

// ToolCall is the normalized form of a VAPI tool-call webhook, whichever
// payload shape it arrived in
type ToolCall struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

// ToolCallResult is one entry of the response envelope VAPI expects
type ToolCallResult struct {
	ToolCallID string `json:"toolCallId"`
	Result     string `json:"result"`
}

// ToolCallResponse is the fixed envelope sent back to VAPI for tool routes
type ToolCallResponse struct {
	Results []ToolCallResult `json:"results"`
}

// EndOfCallReportPayload represents the VAPI end-of-call-report webhook
type EndOfCallReportPayload struct {
	Message struct {
		Type string `json:"type"` // "end-of-call-report"
		Call struct {
			ID       string `json:"id"`
			Customer struct {
				Number string `json:"number"`
				Name   string `json:"name"`
				Email  string `json:"email"`
			} `json:"customer"`
		} `json:"call"`
		Transcript      string  `json:"transcript"`
		Summary         string  `json:"summary"`
		EndedReason     string  `json:"endedReason"`
		DurationSeconds float64 `json:"durationSeconds"`
		StartedAt       string  `json:"startedAt"` // ISO8601 format
		EndedAt         string  `json:"endedAt"`   // ISO8601 format
	} `json:"message"`
}

// VAPICallRequest represents the request to create an outbound call via VAPI
type VAPICallRequest struct {
	AssistantID        string                 `json:"assistantId"`
	PhoneNumberID      string                 `json:"phoneNumberId,omitempty"`
	Customer           VAPICallCustomer       `json:"customer"`
	AssistantOverrides map[string]interface{} `json:"assistantOverrides,omitempty"`
}

// VAPICallCustomer identifies the callee of an outbound VAPI call
type VAPICallCustomer struct {
	Number string `json:"number"`
	Name   string `json:"name,omitempty"`
}

// VAPICallResponse represents the response from VAPI call creation
type VAPICallResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// HubSpotContactProperties is the property bag HubSpot stores per contact
type HubSpotContactProperties struct {
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstname,omitempty"`
	LastName  string `json:"lastname,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// HubSpotContact represents a contact object from the HubSpot CRM API
type HubSpotContact struct {
	ID         string                   `json:"id"`
	Properties HubSpotContactProperties `json:"properties"`
}

// HubSpotSearchRequest represents a CRM v3 search request
type HubSpotSearchRequest struct {
	FilterGroups []HubSpotFilterGroup `json:"filterGroups"`
	Properties   []string             `json:"properties,omitempty"`
	Limit        int                  `json:"limit,omitempty"`
}

// HubSpotFilterGroup groups AND-ed search filters
type HubSpotFilterGroup struct {
	Filters []HubSpotFilter `json:"filters"`
}

// HubSpotFilter is a single search predicate
type HubSpotFilter struct {
	PropertyName string `json:"propertyName"`
	Operator     string `json:"operator"`
	Value        string `json:"value"`
}

// HubSpotSearchResponse represents a CRM v3 search response
type HubSpotSearchResponse struct {
	Total   int              `json:"total"`
	Results []HubSpotContact `json:"results"`
}

// HubSpotEngagement represents a created call or meeting engagement
type HubSpotEngagement struct {
	ID         string                 `json:"id"`
	Properties map[string]interface{} `json:"properties"`
}

// HubSpotAssociation ties an engagement to a contact
type HubSpotAssociation struct {
	To    HubSpotAssociationTarget `json:"to"`
	Types []HubSpotAssociationType `json:"types"`
}

// HubSpotAssociationTarget is the object an association points at
type HubSpotAssociationTarget struct {
	ID string `json:"id"`
}

// HubSpotAssociationType identifies a HubSpot-defined association
type HubSpotAssociationType struct {
	AssociationCategory string `json:"associationCategory"`
	AssociationTypeID   int    `json:"associationTypeId"`
}

// WebhookResponse represents the response sent back to non-tool webhook callers
type WebhookResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}
