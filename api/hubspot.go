package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// HubSpot-defined association type ids (engagement -> contact)
const (
	assocCallToContact    = 194
	assocMeetingToContact = 200
)

// HubSpotService handles real HubSpot API interactions
type HubSpotService struct {
	config     *Config
	httpClient *http.Client
}

// NewHubSpotService creates a new HubSpot service instance
func NewHubSpotService(config *Config) *HubSpotService {
	return &HubSpotService{
		config:     config,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// makeHubSpotRequest makes an HTTP request to the HubSpot CRM API
func (h *HubSpotService) makeHubSpotRequest(method, endpoint string, body interface{}) (*http.Response, error) {
	url := h.config.HubSpotBaseURL + endpoint

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
		log.Printf("📤 Request Body: %s", string(jsonData))
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+h.config.HubSpotAPIKey)

	log.Printf("🌐 Making %s request to HubSpot: %s", method, endpoint)

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %v", err)
	}

	log.Printf("📥 HubSpot Response Status: %d", resp.StatusCode)

	// Read and log response body, then restore it for further processing
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("❌ Failed to read response body: %v", err)
	} else {
		log.Printf("📥 HubSpot Response Body: %s", string(bodyBytes))
	}
	resp.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

	return resp, nil
}

// SearchContactByEmail looks up a contact in HubSpot by exact email match
func (h *HubSpotService) SearchContactByEmail(email string) (*HubSpotContact, error) {
	searchReq := HubSpotSearchRequest{
		FilterGroups: []HubSpotFilterGroup{
			{Filters: []HubSpotFilter{
				{PropertyName: "email", Operator: "EQ", Value: email},
			}},
		},
		Properties: []string{"email", "firstname", "lastname", "phone"},
		Limit:      1,
	}

	resp, err := h.makeHubSpotRequest("POST", "/crm/v3/objects/contacts/search", searchReq)
	if err != nil {
		return nil, fmt.Errorf("failed to search contact: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("contact search failed: HTTP %d", resp.StatusCode)
	}

	var searchResult HubSpotSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResult); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %v", err)
	}

	if searchResult.Total == 0 || len(searchResult.Results) == 0 {
		return nil, nil
	}

	return &searchResult.Results[0], nil
}

// FindOrCreateContactByEmail finds a contact by email or creates one. Email is
// the dedupe key: an existing contact is never duplicated.
func (h *HubSpotService) FindOrCreateContactByEmail(email, name, phone string) (*Contact, error) {
	if h.config.HasHubSpotConfig() {
		// REAL HUBSPOT INTEGRATION
		log.Printf("🔍 [REAL HUBSPOT API] Searching for contact by email: %s", email)

		existing, err := h.SearchContactByEmail(email)
		if err != nil {
			return nil, err
		}

		if existing != nil {
			log.Printf("✅ Found existing contact in HubSpot: ID=%s, Email=%s", existing.ID, existing.Properties.Email)
			return contactFromHubSpot(existing), nil
		}

		// Contact not found, create new one
		log.Printf("📝 Creating new contact in HubSpot for email: %s", email)
		firstName, lastName := splitName(name)
		createData := map[string]interface{}{
			"properties": HubSpotContactProperties{
				Email:     email,
				FirstName: firstName,
				LastName:  lastName,
				Phone:     phone,
			},
		}

		resp, err := h.makeHubSpotRequest("POST", "/crm/v3/objects/contacts", createData)
		if err != nil {
			return nil, fmt.Errorf("failed to create contact: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != 200 && resp.StatusCode != 201 {
			return nil, fmt.Errorf("contact creation failed: HTTP %d", resp.StatusCode)
		}

		var created HubSpotContact
		if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
			return nil, fmt.Errorf("failed to decode create response: %v", err)
		}

		log.Printf("✅ Created new contact in HubSpot: ID=%s, Email=%s", created.ID, email)
		return contactFromHubSpot(&created), nil
	}

	// SIMULATION MODE
	log.Printf("🔍 [SIMULATION MODE] Simulating contact lookup for: %s (%s)", name, email)
	log.Printf("   ⚠️  HubSpot not configured - set HUBSPOT_API_KEY to enable real CRM sync")

	firstName, lastName := splitName(name)
	contact := &Contact{
		ID:        uuid.New().String(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Phone:     phone,
	}
	log.Printf("✅ Contact found/created: ID=%s, Email=%s", contact.ID, contact.Email)
	return contact, nil
}

// UpdateContact patches contact properties in HubSpot
func (h *HubSpotService) UpdateContact(contactID string, properties map[string]interface{}) error {
	if !h.config.HasHubSpotConfig() {
		log.Printf("📝 [SIMULATION MODE] Simulating contact update for %s: %+v", contactID, properties)
		return nil
	}

	updateData := map[string]interface{}{
		"properties": properties,
	}

	endpoint := fmt.Sprintf("/crm/v3/objects/contacts/%s", contactID)
	resp, err := h.makeHubSpotRequest("PATCH", endpoint, updateData)
	if err != nil {
		return fmt.Errorf("failed to update contact: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return fmt.Errorf("contact update failed: HTTP %d", resp.StatusCode)
	}

	log.Printf("✅ Updated contact %s in HubSpot", contactID)
	return nil
}

// CreateCallEngagement logs a completed call against a contact
func (h *HubSpotService) CreateCallEngagement(contactID, title, body string, callTime time.Time, durationSeconds int) (string, error) {
	properties := map[string]interface{}{
		"hs_timestamp":      strconv.FormatInt(callTime.UnixMilli(), 10),
		"hs_call_title":     title,
		"hs_call_body":      body,
		"hs_call_direction": "INBOUND",
		"hs_call_status":    "COMPLETED",
	}
	if durationSeconds > 0 {
		properties["hs_call_duration"] = strconv.Itoa(durationSeconds * 1000) // HubSpot wants milliseconds
	}

	return h.createEngagement("/crm/v3/objects/calls", "call", contactID, properties, assocCallToContact)
}

// CreateMeetingEngagement logs a scheduled meeting against a contact
func (h *HubSpotService) CreateMeetingEngagement(contactID, title, body string, startTime, endTime time.Time) (string, error) {
	properties := map[string]interface{}{
		"hs_timestamp":          strconv.FormatInt(startTime.UnixMilli(), 10),
		"hs_meeting_title":      title,
		"hs_meeting_body":       body,
		"hs_meeting_start_time": strconv.FormatInt(startTime.UnixMilli(), 10),
		"hs_meeting_end_time":   strconv.FormatInt(endTime.UnixMilli(), 10),
		"hs_meeting_outcome":    "SCHEDULED",
	}

	return h.createEngagement("/crm/v3/objects/meetings", "meeting", contactID, properties, assocMeetingToContact)
}

// createEngagement posts an engagement object with a HUBSPOT_DEFINED
// association back to the contact
func (h *HubSpotService) createEngagement(endpoint, kind, contactID string, properties map[string]interface{}, assocTypeID int) (string, error) {
	if !h.config.HasHubSpotConfig() {
		engagementID := uuid.New().String()
		log.Printf("📝 [SIMULATION MODE] Simulating %s engagement for contact %s: ID=%s", kind, contactID, engagementID)
		return engagementID, nil
	}

	engagementData := map[string]interface{}{
		"properties": properties,
		"associations": []HubSpotAssociation{
			{
				To: HubSpotAssociationTarget{ID: contactID},
				Types: []HubSpotAssociationType{
					{AssociationCategory: "HUBSPOT_DEFINED", AssociationTypeID: assocTypeID},
				},
			},
		},
	}

	resp, err := h.makeHubSpotRequest("POST", endpoint, engagementData)
	if err != nil {
		return "", fmt.Errorf("failed to create %s engagement: %v", kind, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 && resp.StatusCode != 201 {
		return "", fmt.Errorf("%s engagement creation failed: HTTP %d", kind, resp.StatusCode)
	}

	var created HubSpotEngagement
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("failed to decode engagement response: %v", err)
	}

	log.Printf("✅ Created %s engagement in HubSpot: ID=%s", kind, created.ID)
	return created.ID, nil
}

// ProcessEndOfCallReport syncs a finished VAPI call into HubSpot as a call
// engagement on the contact identified by the report
func (h *HubSpotService) ProcessEndOfCallReport(payload EndOfCallReportPayload) error {
	msg := payload.Message
	log.Printf("📦 [REPORT] Processing end-of-call-report for Call ID: %s", msg.Call.ID)
	log.Printf("   Customer: %s (%s)", msg.Call.Customer.Name, msg.Call.Customer.Number)
	log.Printf("   Ended reason: %s, duration: %.0fs", msg.EndedReason, msg.DurationSeconds)

	email := msg.Call.Customer.Email
	if email == "" {
		// No email on the call: fall back to a synthetic address derived from
		// the phone number so dedupe still has a stable key
		number := strings.TrimPrefix(msg.Call.Customer.Number, "+")
		if number == "" {
			return fmt.Errorf("report has neither customer email nor number")
		}
		email = number + "@voice.placeholder.local"
	}

	contact, err := h.FindOrCreateContactByEmail(email, msg.Call.Customer.Name, msg.Call.Customer.Number)
	if err != nil {
		return fmt.Errorf("failed to find/create contact: %v", err)
	}

	// Backfill the phone number on contacts that predate voice calls.
	// Best-effort: the call engagement matters more than the property patch.
	if msg.Call.Customer.Number != "" && contact.Phone == "" {
		if err := h.UpdateContact(contact.ID, map[string]interface{}{"phone": msg.Call.Customer.Number}); err != nil {
			log.Printf("⚠️ Warning: Failed to backfill contact phone: %v", err)
		}
	}

	callTime := time.Now()
	if msg.StartedAt != "" {
		if parsed, err := time.Parse(time.RFC3339, msg.StartedAt); err == nil {
			callTime = parsed
		}
	}

	title := "AI voice call"
	if msg.EndedReason != "" {
		title = fmt.Sprintf("AI voice call (%s)", msg.EndedReason)
	}

	body := msg.Summary
	if msg.Transcript != "" {
		if body != "" {
			body += "\n\n"
		}
		body += "Transcript:\n" + msg.Transcript
	}
	body += fmt.Sprintf("\n\nVAPI call id: %s", msg.Call.ID)

	if _, err := h.CreateCallEngagement(contact.ID, title, body, callTime, int(msg.DurationSeconds)); err != nil {
		return fmt.Errorf("failed to log call: %v", err)
	}

	log.Printf("✅ Logged call %s against contact %s", msg.Call.ID, contact.ID)
	return nil
}

// contactFromHubSpot maps a HubSpot contact object to the internal Contact
func contactFromHubSpot(hc *HubSpotContact) *Contact {
	return &Contact{
		ID:        hc.ID,
		FirstName: hc.Properties.FirstName,
		LastName:  hc.Properties.LastName,
		Email:     hc.Properties.Email,
		Phone:     hc.Properties.Phone,
	}
}

// splitName splits a display name into first and last parts the way HubSpot
// stores them
func splitName(name string) (string, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ""
	}
	parts := strings.SplitN(name, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}
