package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/agendaly/salon-platform/internal/domain/booking"
	"github.com/agendaly/salon-platform/internal/httperr"
)

func TestReschedule_MovesWindow(t *testing.T) {
	e := setupEnv(t)
	uc := NewRescheduleBooking(e.repo, e.dispatcher, e.cache)

	ap := e.seedAppointment(t, string(domain.StatusConfirmed), time.Now().UTC().Add(48*time.Hour))

	date, hm := futureSlot(5, "14:00")

	moved, err := uc.Execute(context.Background(), e.pro.ID, ap.ID, date, hm)
	require.NoError(t, err)

	assert.Equal(t, "14:00", moved.ScheduledAt.Format("15:04"))
	assert.Equal(t, date, moved.ScheduledAt.Format("2006-01-02"))
	assert.Equal(t, moved.ScheduledAt.Add(time.Hour), moved.ScheduledEndAt)

	// status preservado, preço recalculado a partir do catálogo
	assert.Equal(t, string(domain.StatusConfirmed), moved.Status)
	assert.True(t, moved.Total.Equal(dec("100.00")))
}

func TestReschedule_ConflictWithOtherAppointment(t *testing.T) {
	e := setupEnv(t)
	uc := NewRescheduleBooking(e.repo, e.dispatcher, e.cache)

	target := time.Now().UTC().Add(72 * time.Hour)
	occupied := e.seedAppointment(t, string(domain.StatusConfirmed), target)
	_ = occupied

	moving := e.seedAppointment(t, string(domain.StatusPending), time.Now().UTC().Add(48*time.Hour))

	_, err := uc.Execute(
		context.Background(),
		e.pro.ID,
		moving.ID,
		target.Format("2006-01-02"),
		target.Format("15:04"),
	)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotUnavailable))
}

// Remarcar para a própria janela não conflita consigo mesmo.
func TestReschedule_SelfWindowAllowed(t *testing.T) {
	e := setupEnv(t)
	uc := NewRescheduleBooking(e.repo, e.dispatcher, e.cache)

	at := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Minute)
	ap := e.seedAppointment(t, string(domain.StatusConfirmed), at)

	_, err := uc.Execute(
		context.Background(),
		e.pro.ID,
		ap.ID,
		at.Format("2006-01-02"),
		at.Format("15:04"),
	)
	assert.NoError(t, err)
}

func TestReschedule_TerminalRejected(t *testing.T) {
	e := setupEnv(t)
	uc := NewRescheduleBooking(e.repo, e.dispatcher, e.cache)

	ap := e.seedAppointment(t, string(domain.StatusCompleted), time.Now().UTC())

	date, hm := futureSlot(5, "14:00")
	_, err := uc.Execute(context.Background(), e.pro.ID, ap.ID, date, hm)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))
}

func TestReschedule_LeadTimeEnforced(t *testing.T) {
	e := setupEnv(t)
	uc := NewRescheduleBooking(e.repo, e.dispatcher, e.cache)

	ap := e.seedAppointment(t, string(domain.StatusPending), time.Now().UTC().Add(48*time.Hour))

	soon := time.Now().UTC().Add(30 * time.Minute)
	_, err := uc.Execute(
		context.Background(),
		e.pro.ID,
		ap.ID,
		soon.Format("2006-01-02"),
		soon.Format("15:04"),
	)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeTooSoon))
}
