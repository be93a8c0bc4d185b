package handler

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

const (
	viewingDateLayout = "2006-01-02"
	viewingTimeLayout = "15:04"

	businessOpenHour  = 9
	businessCloseHour = 18

	viewingDuration = 45 * time.Minute
)

// ParseViewingSlot validates and parses the requested viewing date and time.
// The rules are illustrative stand-ins for a real availability source: slots
// must be in the future, on a business day, between 09:00 and 18:00.
func ParseViewingSlot(date, timeOfDay string, now time.Time) (time.Time, error) {
	slot, err := time.ParseInLocation(viewingDateLayout+" "+viewingTimeLayout, date+" "+timeOfDay, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date or time format, expected YYYY-MM-DD and HH:MM: %v", err)
	}

	if !slot.After(now) {
		return time.Time{}, fmt.Errorf("requested slot %s is in the past", slot.Format(time.RFC3339))
	}
	if slot.Weekday() == time.Sunday {
		return time.Time{}, fmt.Errorf("viewings are not available on Sundays")
	}
	if slot.Hour() < businessOpenHour || slot.Hour() >= businessCloseHour {
		return time.Time{}, fmt.Errorf("viewings are available between %02d:00 and %02d:00", businessOpenHour, businessCloseHour)
	}

	return slot, nil
}

// ScheduleViewing validates the requested slot, books it, and syncs the
// booking to HubSpot. The booking itself always succeeds once validation
// passes; a HubSpot failure is logged and swallowed so the caller still gets
// their confirmation.
func (h *HubSpotService) ScheduleViewing(args ScheduleViewingArgs) (*ViewingConfirmation, error) {
	if err := validate.Struct(args); err != nil {
		return nil, fmt.Errorf("missing or invalid fields: %v", formatValidationError(err))
	}

	slot, err := ParseViewingSlot(args.Date, args.Time, time.Now())
	if err != nil {
		return nil, err
	}

	if args.PropertyID != "" && GetPropertyByID(args.PropertyID) == nil {
		return nil, fmt.Errorf("unknown property: %s", args.PropertyID)
	}

	confirmation := &ViewingConfirmation{
		BookingRef: "view-" + uuid.New().String()[:8],
		Name:       args.Name,
		Email:      args.Email,
		PropertyID: args.PropertyID,
		StartsAt:   slot,
		Message:    fmt.Sprintf("Viewing confirmed for %s at %s", slot.Format("Monday, January 2"), slot.Format("3:04 PM")),
	}

	log.Printf("✅ Booked viewing %s for %s (%s) at %s", confirmation.BookingRef, args.Name, args.Email, slot.Format(time.RFC3339))

	// Sync to HubSpot: contact dedupe by email, then a meeting engagement.
	// Failures here must not break the booking.
	if err := h.syncViewingToHubSpot(args, slot, confirmation.BookingRef); err != nil {
		log.Printf("⚠️ Warning: Failed to sync viewing to HubSpot: %v", err)
	}

	return confirmation, nil
}

func (h *HubSpotService) syncViewingToHubSpot(args ScheduleViewingArgs, slot time.Time, bookingRef string) error {
	contact, err := h.FindOrCreateContactByEmail(args.Email, args.Name, args.Phone)
	if err != nil {
		return fmt.Errorf("failed to find/create contact: %v", err)
	}

	title := "Property viewing"
	body := fmt.Sprintf("Booking ref: %s\nRequested by: %s (%s)", bookingRef, args.Name, args.Email)
	if args.PropertyID != "" {
		if p := GetPropertyByID(args.PropertyID); p != nil {
			title = fmt.Sprintf("Viewing: %s, %s", p.Address, p.City)
			body += fmt.Sprintf("\nProperty: %s — %s, %s ($%d)", p.ID, p.Address, p.City, p.Price)
		}
	}
	if args.Notes != "" {
		body += "\nNotes: " + args.Notes
	}

	if _, err := h.CreateMeetingEngagement(contact.ID, title, body, slot, slot.Add(viewingDuration)); err != nil {
		return fmt.Errorf("failed to create meeting engagement: %v", err)
	}

	return nil
}

// formatValidationError flattens validator errors into the short field list
// used in webhook error messages
func formatValidationError(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.ToLower(fe.Field()))
	}
	return strings.Join(fields, ", ")
}
