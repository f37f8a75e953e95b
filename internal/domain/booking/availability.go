package booking

import (
	"time"

	"github.com/agendaly/salon-platform/internal/httperr"
)

type AvailabilityInput struct {
	EstablishmentID *uint
	ProfessionalID  uint
	ServiceID       uint
	Date            time.Time
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// BusyInterval is a calendar-blocking appointment window together with the
// buffer its service requires after it. The buffer is advisory: it widens
// the overlap test but is never materialized into the persisted window.
type BusyInterval struct {
	AppointmentID uint
	Start         time.Time
	End           time.Time
	BufferMinutes int
}

// CheckWindow rejects malformed request windows.
func CheckWindow(start, end time.Time) error {
	if !start.Before(end) {
		return httperr.ErrBusiness(httperr.CodeValidation)
	}
	return nil
}

// HasOverlap applies the half-open interval test against every busy
// interval, expanding each interval's end by its service buffer so
// back-to-back bookings respect the gap.
func HasOverlap(busy []BusyInterval, start, end time.Time, excludeID uint) bool {
	for _, b := range busy {
		if excludeID != 0 && b.AppointmentID == excludeID {
			continue
		}

		bufferedEnd := b.End.Add(time.Duration(b.BufferMinutes) * time.Minute)
		if b.Start.Before(end) && bufferedEnd.After(start) {
			return true
		}
	}
	return false
}

// MeetsLeadTime checks the establishment's minimum booking lead time.
func MeetsLeadTime(start, now time.Time, minBookingHours int) bool {
	if minBookingHours <= 0 {
		minBookingHours = 2
	}
	return !start.Before(now.Add(time.Duration(minBookingHours) * time.Hour))
}
