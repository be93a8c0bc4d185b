package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedNow is a Monday morning, so relative slot math in these tests is stable
var fixedNow = time.Date(2026, time.March, 2, 8, 0, 0, 0, time.Local)

func TestParseViewingSlot_Valid(t *testing.T) {
	slot, err := ParseViewingSlot("2026-03-03", "10:00", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, time.Tuesday, slot.Weekday())
	assert.Equal(t, 10, slot.Hour())
}

func TestParseViewingSlot_Rejections(t *testing.T) {
	t.Run("past slot", func(t *testing.T) {
		_, err := ParseViewingSlot("2026-03-01", "10:00", fixedNow)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "in the past")
	})

	t.Run("sunday", func(t *testing.T) {
		_, err := ParseViewingSlot("2026-03-08", "10:00", fixedNow)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Sundays")
	})

	t.Run("before opening", func(t *testing.T) {
		_, err := ParseViewingSlot("2026-03-03", "08:30", fixedNow)
		assert.Error(t, err)
	})

	t.Run("at closing time", func(t *testing.T) {
		_, err := ParseViewingSlot("2026-03-03", "18:00", fixedNow)
		assert.Error(t, err)
	})

	t.Run("last bookable hour is fine", func(t *testing.T) {
		_, err := ParseViewingSlot("2026-03-03", "17:30", fixedNow)
		assert.NoError(t, err)
	})

	t.Run("bad date format", func(t *testing.T) {
		_, err := ParseViewingSlot("03/02/2026", "10:00", fixedNow)
		assert.Error(t, err)
	})

	t.Run("bad time format", func(t *testing.T) {
		_, err := ParseViewingSlot("2026-03-03", "10am", fixedNow)
		assert.Error(t, err)
	})
}

// futureSlot returns a date next week that is not a Sunday
func futureSlot(t *testing.T) string {
	t.Helper()
	day := time.Now().AddDate(0, 0, 7)
	if day.Weekday() == time.Sunday {
		day = day.AddDate(0, 0, 1)
	}
	return day.Format("2006-01-02")
}

func simulationService() *HubSpotService {
	return NewHubSpotService(&Config{HubSpotBaseURL: "https://api.hubapi.com"})
}

func TestScheduleViewing_Succeeds(t *testing.T) {
	svc := simulationService()

	confirmation, err := svc.ScheduleViewing(ScheduleViewingArgs{
		Name:       "Jamie Doe",
		Email:      "jamie@example.com",
		PropertyID: "prop-001",
		Date:       futureSlot(t),
		Time:       "14:30",
	})

	require.NoError(t, err)
	assert.Regexp(t, `^view-[0-9a-f]{8}$`, confirmation.BookingRef)
	assert.Equal(t, "jamie@example.com", confirmation.Email)
	assert.Equal(t, "prop-001", confirmation.PropertyID)
	assert.Equal(t, 14, confirmation.StartsAt.Hour())
	assert.NotEmpty(t, confirmation.Message)
}

func TestScheduleViewing_RequiredFields(t *testing.T) {
	svc := simulationService()

	_, err := svc.ScheduleViewing(ScheduleViewingArgs{
		Name: "Jamie Doe",
		Date: futureSlot(t),
		Time: "14:30",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
}

func TestScheduleViewing_InvalidEmail(t *testing.T) {
	svc := simulationService()

	_, err := svc.ScheduleViewing(ScheduleViewingArgs{
		Name:  "Jamie Doe",
		Email: "not-an-email",
		Date:  futureSlot(t),
		Time:  "14:30",
	})
	assert.Error(t, err)
}

func TestScheduleViewing_UnknownProperty(t *testing.T) {
	svc := simulationService()

	_, err := svc.ScheduleViewing(ScheduleViewingArgs{
		Name:       "Jamie Doe",
		Email:      "jamie@example.com",
		PropertyID: "prop-999",
		Date:       futureSlot(t),
		Time:       "14:30",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown property")
}

func TestScheduleViewing_HubSpotFailureIsSwallowed(t *testing.T) {
	// CRM sync failing must not break the booking itself
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewHubSpotService(&Config{
		HubSpotAPIKey:  "test-key",
		HubSpotBaseURL: server.URL,
	})

	confirmation, err := svc.ScheduleViewing(ScheduleViewingArgs{
		Name:  "Jamie Doe",
		Email: "jamie@example.com",
		Date:  futureSlot(t),
		Time:  "11:00",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, confirmation.BookingRef)
}
