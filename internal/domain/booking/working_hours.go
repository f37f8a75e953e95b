package booking

import (
	"time"

	"github.com/agendaly/salon-platform/internal/models"
)

// WithinWorkingHours valida se um horário está dentro do expediente do
// profissional, incluindo o intervalo de pausa (regra de domínio).
func WithinWorkingHours(wh *models.WorkingHours, start, end time.Time) bool {
	if wh == nil || !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
		return false
	}

	loc := start.Location()

	parseHM := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(
			start.Year(), start.Month(), start.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		)
	}

	workStart := parseHM(wh.StartTime)
	workEnd := parseHM(wh.EndTime)

	if start.Before(workStart) || end.After(workEnd) {
		return false
	}

	if wh.BreakStart != "" && wh.BreakEnd != "" {
		breakStart := parseHM(wh.BreakStart)
		breakEnd := parseHM(wh.BreakEnd)

		if start.Before(breakEnd) && end.After(breakStart) {
			return false
		}
	}

	return true
}

// FreeSlots lists open slots of the given duration across the weekday
// window, skipping the break and any busy interval (buffer included).
func FreeSlots(
	wh *models.WorkingHours,
	busy []BusyInterval,
	date time.Time,
	durationMinutes int,
) []TimeSlot {

	if wh == nil || !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
		return []TimeSlot{}
	}

	loc := date.Location()

	parseHM := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(
			date.Year(), date.Month(), date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		)
	}

	dayStart := parseHM(wh.StartTime)
	dayEnd := parseHM(wh.EndTime)

	hasBreak := wh.BreakStart != "" && wh.BreakEnd != ""
	var breakStart, breakEnd time.Time
	if hasBreak {
		breakStart = parseHM(wh.BreakStart)
		breakEnd = parseHM(wh.BreakEnd)
	}

	slotDuration := time.Duration(durationMinutes) * time.Minute
	slots := []TimeSlot{}

	for cur := dayStart; !cur.Add(slotDuration).After(dayEnd); cur = cur.Add(slotDuration) {

		slotStart := cur
		slotEnd := cur.Add(slotDuration)

		if hasBreak && slotStart.Before(breakEnd) && slotEnd.After(breakStart) {
			continue
		}

		if HasOverlap(busy, slotStart, slotEnd, 0) {
			continue
		}

		slots = append(slots, TimeSlot{
			Start: slotStart.Format("15:04"),
			End:   slotEnd.Format("15:04"),
		})
	}

	return slots
}
