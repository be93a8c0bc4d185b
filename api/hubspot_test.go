package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHubSpot is a minimal stand-in for the CRM v3 endpoints this service hits
type fakeHubSpot struct {
	contactsByEmail map[string]HubSpotContact
	createdContacts int
	contactUpdates  int
	engagements     []map[string]interface{}
	lastAuth        string
}

func newFakeHubSpot() *fakeHubSpot {
	return &fakeHubSpot{contactsByEmail: map[string]HubSpotContact{}}
}

func (f *fakeHubSpot) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/crm/v3/objects/contacts/search", func(w http.ResponseWriter, r *http.Request) {
		f.lastAuth = r.Header.Get("Authorization")

		var req HubSpotSearchRequest
		json.NewDecoder(r.Body).Decode(&req)

		email := req.FilterGroups[0].Filters[0].Value
		resp := HubSpotSearchResponse{}
		if contact, ok := f.contactsByEmail[email]; ok {
			resp.Total = 1
			resp.Results = []HubSpotContact{contact}
		}
		json.NewEncoder(w).Encode(resp)
	})

	mux.HandleFunc("/crm/v3/objects/contacts/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		f.contactUpdates++
		json.NewEncoder(w).Encode(map[string]string{"id": "patched"})
	})

	mux.HandleFunc("/crm/v3/objects/contacts", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Properties HubSpotContactProperties `json:"properties"`
		}
		json.NewDecoder(r.Body).Decode(&req)

		f.createdContacts++
		contact := HubSpotContact{ID: "10001", Properties: req.Properties}
		f.contactsByEmail[req.Properties.Email] = contact

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(contact)
	})

	engagement := func(w http.ResponseWriter, r *http.Request) {
		var req map[string]interface{}
		json.NewDecoder(r.Body).Decode(&req)
		req["_path"] = r.URL.Path
		f.engagements = append(f.engagements, req)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(HubSpotEngagement{ID: "20001"})
	}
	mux.HandleFunc("/crm/v3/objects/calls", engagement)
	mux.HandleFunc("/crm/v3/objects/meetings", engagement)

	return mux
}

func newTestService(t *testing.T) (*HubSpotService, *fakeHubSpot) {
	t.Helper()
	fake := newFakeHubSpot()
	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)

	svc := NewHubSpotService(&Config{
		HubSpotAPIKey:  "test-key",
		HubSpotBaseURL: server.URL,
	})
	return svc, fake
}

func TestFindOrCreateContactByEmail_ExistingContactIsNotDuplicated(t *testing.T) {
	svc, fake := newTestService(t)
	fake.contactsByEmail["jamie@example.com"] = HubSpotContact{
		ID: "555",
		Properties: HubSpotContactProperties{
			Email:     "jamie@example.com",
			FirstName: "Jamie",
			LastName:  "Doe",
		},
	}

	contact, err := svc.FindOrCreateContactByEmail("jamie@example.com", "Jamie Doe", "+15125550147")
	require.NoError(t, err)
	assert.Equal(t, "555", contact.ID)
	assert.Equal(t, 0, fake.createdContacts, "existing contact must not be re-created")
	assert.Equal(t, "Bearer test-key", fake.lastAuth)
}

func TestFindOrCreateContactByEmail_CreatesWhenMissing(t *testing.T) {
	svc, fake := newTestService(t)

	contact, err := svc.FindOrCreateContactByEmail("new@example.com", "New Caller", "+15125550100")
	require.NoError(t, err)
	assert.Equal(t, "10001", contact.ID)
	assert.Equal(t, "New", contact.FirstName)
	assert.Equal(t, "Caller", contact.LastName)
	assert.Equal(t, 1, fake.createdContacts)
}

func TestFindOrCreateContactByEmail_SimulationMode(t *testing.T) {
	svc := NewHubSpotService(&Config{HubSpotBaseURL: "https://api.hubapi.com"})

	contact, err := svc.FindOrCreateContactByEmail("sim@example.com", "Sim User", "")
	require.NoError(t, err)
	assert.NotEmpty(t, contact.ID)
	assert.Equal(t, "sim@example.com", contact.Email)
}

func TestCreateCallEngagement(t *testing.T) {
	svc, fake := newTestService(t)

	id, err := svc.CreateCallEngagement("555", "AI voice call", "summary here", time.Now(), 95)
	require.NoError(t, err)
	assert.Equal(t, "20001", id)

	require.Len(t, fake.engagements, 1)
	eng := fake.engagements[0]
	assert.Equal(t, "/crm/v3/objects/calls", eng["_path"])

	props := eng["properties"].(map[string]interface{})
	assert.Equal(t, "AI voice call", props["hs_call_title"])
	assert.Equal(t, "95000", props["hs_call_duration"], "duration is sent in milliseconds")

	assocs := eng["associations"].([]interface{})
	require.Len(t, assocs, 1)
	assoc := assocs[0].(map[string]interface{})
	assert.Equal(t, "555", assoc["to"].(map[string]interface{})["id"])
	types := assoc["types"].([]interface{})
	assert.Equal(t, float64(assocCallToContact), types[0].(map[string]interface{})["associationTypeId"])
}

func TestCreateMeetingEngagement(t *testing.T) {
	svc, fake := newTestService(t)

	start := time.Date(2026, time.March, 3, 14, 30, 0, 0, time.UTC)
	id, err := svc.CreateMeetingEngagement("555", "Viewing: 1247 Maple Grove Lane", "details", start, start.Add(45*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "20001", id)

	require.Len(t, fake.engagements, 1)
	eng := fake.engagements[0]
	assert.Equal(t, "/crm/v3/objects/meetings", eng["_path"])

	props := eng["properties"].(map[string]interface{})
	assert.Equal(t, "SCHEDULED", props["hs_meeting_outcome"])

	assoc := eng["associations"].([]interface{})[0].(map[string]interface{})
	types := assoc["types"].([]interface{})
	assert.Equal(t, float64(assocMeetingToContact), types[0].(map[string]interface{})["associationTypeId"])
}

func TestProcessEndOfCallReport(t *testing.T) {
	svc, fake := newTestService(t)

	var payload EndOfCallReportPayload
	payload.Message.Type = "end-of-call-report"
	payload.Message.Call.ID = "vapi-call-1"
	payload.Message.Call.Customer.Number = "+15125550147"
	payload.Message.Call.Customer.Email = "caller@example.com"
	payload.Message.Summary = "Caller asked about condos in Austin."
	payload.Message.Transcript = "AI: Hello ..."
	payload.Message.DurationSeconds = 120

	require.NoError(t, svc.ProcessEndOfCallReport(payload))

	assert.Equal(t, 1, fake.createdContacts)
	require.Len(t, fake.engagements, 1)
	assert.Equal(t, "/crm/v3/objects/calls", fake.engagements[0]["_path"])
}

func TestProcessEndOfCallReport_FallsBackToPhoneKey(t *testing.T) {
	svc, fake := newTestService(t)

	var payload EndOfCallReportPayload
	payload.Message.Type = "end-of-call-report"
	payload.Message.Call.ID = "vapi-call-2"
	payload.Message.Call.Customer.Number = "+15125550147"

	require.NoError(t, svc.ProcessEndOfCallReport(payload))

	_, ok := fake.contactsByEmail["15125550147@voice.placeholder.local"]
	assert.True(t, ok, "contact should be keyed by the synthetic phone-derived email")
}

func TestProcessEndOfCallReport_BackfillsMissingPhone(t *testing.T) {
	svc, fake := newTestService(t)
	fake.contactsByEmail["old@example.com"] = HubSpotContact{
		ID:         "777",
		Properties: HubSpotContactProperties{Email: "old@example.com", FirstName: "Old"},
	}

	var payload EndOfCallReportPayload
	payload.Message.Type = "end-of-call-report"
	payload.Message.Call.ID = "vapi-call-4"
	payload.Message.Call.Customer.Number = "+15125550147"
	payload.Message.Call.Customer.Email = "old@example.com"

	require.NoError(t, svc.ProcessEndOfCallReport(payload))

	assert.Equal(t, 0, fake.createdContacts)
	assert.Equal(t, 1, fake.contactUpdates)
	require.Len(t, fake.engagements, 1)
}

func TestProcessEndOfCallReport_NoContactKey(t *testing.T) {
	svc, _ := newTestService(t)

	var payload EndOfCallReportPayload
	payload.Message.Type = "end-of-call-report"
	payload.Message.Call.ID = "vapi-call-3"

	err := svc.ProcessEndOfCallReport(payload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "neither customer email nor number")
}

func TestSplitName(t *testing.T) {
	first, last := splitName("Jamie Doe")
	assert.Equal(t, "Jamie", first)
	assert.Equal(t, "Doe", last)

	first, last = splitName("Cher")
	assert.Equal(t, "Cher", first)
	assert.Empty(t, last)

	first, last = splitName("Mary Anne van der Berg")
	assert.Equal(t, "Mary", first)
	assert.Equal(t, "Anne van der Berg", last)

	first, last = splitName("")
	assert.Empty(t, first)
	assert.Empty(t, last)
}
