package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendaly/salon-platform/internal/httperr"
	"github.com/agendaly/salon-platform/internal/models"
)

func TestTerminalStatuses(t *testing.T) {
	terminal := []Status{
		StatusCompleted,
		StatusCancelledByCustomer,
		StatusCancelledByEstablishment,
		StatusNoShow,
	}
	for _, s := range terminal {
		assert.True(t, s.Terminal(), "status %s", s)
	}

	open := []Status{StatusPending, StatusConfirmed, StatusInProgress}
	for _, s := range open {
		assert.False(t, s.Terminal(), "status %s", s)
	}
}

func TestTransitionGuards(t *testing.T) {
	cases := []struct {
		name    string
		check   func(Status) error
		allowed []Status
	}{
		{"confirm", CanConfirm, []Status{StatusPending}},
		{"start", CanStart, []Status{StatusConfirmed}},
		{"complete", CanComplete, []Status{StatusConfirmed, StatusInProgress}},
		{"cancel", CanCancel, []Status{StatusPending, StatusConfirmed}},
		{"no_show", CanMarkNoShow, []Status{StatusConfirmed}},
		{"reschedule", CanReschedule, []Status{StatusPending, StatusConfirmed}},
	}

	all := []Status{
		StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted,
		StatusCancelledByCustomer, StatusCancelledByEstablishment, StatusNoShow,
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allowed := map[Status]bool{}
			for _, s := range tc.allowed {
				allowed[s] = true
			}

			for _, s := range all {
				err := tc.check(s)
				if allowed[s] {
					assert.NoError(t, err, "from %s", s)
				} else {
					require.Error(t, err, "from %s", s)
					assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState), "from %s", s)
				}
			}
		})
	}
}

func TestTerminalStatusesRejectEverything(t *testing.T) {
	for _, s := range []Status{
		StatusCompleted,
		StatusCancelledByCustomer,
		StatusCancelledByEstablishment,
		StatusNoShow,
	} {
		assert.Error(t, CanConfirm(s))
		assert.Error(t, CanStart(s))
		assert.Error(t, CanComplete(s))
		assert.Error(t, CanCancel(s))
		assert.Error(t, CanMarkNoShow(s))
		assert.Error(t, CanReschedule(s))
	}
}

func TestLifecycleTimestamps(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	ap := &models.Appointment{Status: string(StatusPending)}

	require.NoError(t, Confirm(ap, now))
	require.NotNil(t, ap.ConfirmedAt)
	assert.Equal(t, now, *ap.ConfirmedAt)

	later := now.Add(30 * time.Minute)
	require.NoError(t, Start(ap, later))
	require.NotNil(t, ap.StartedAt)
	assert.Equal(t, later, *ap.StartedAt)

	end := later.Add(45 * time.Minute)
	require.NoError(t, Complete(ap, end))
	require.NotNil(t, ap.CompletedAt)
	assert.Equal(t, string(StatusCompleted), ap.Status)

	// terminal: replaying any transition fails
	assert.Error(t, Confirm(ap, end))
	assert.Error(t, Complete(ap, end))
}

func TestCancelStampsActorAndReason(t *testing.T) {
	now := time.Now()

	ap := &models.Appointment{Status: string(StatusConfirmed)}
	require.NoError(t, Cancel(ap, ByEstablishment, "profissional indisponível", now))
	assert.Equal(t, string(StatusCancelledByEstablishment), ap.Status)
	assert.Equal(t, "profissional indisponível", ap.CancellationReason)
	require.NotNil(t, ap.CancelledAt)

	ap2 := &models.Appointment{Status: string(StatusPending)}
	require.NoError(t, Cancel(ap2, ByCustomer, "", now))
	assert.Equal(t, string(StatusCancelledByCustomer), ap2.Status)
}

func TestMarkNoShowKeepsCancelledAtEmpty(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusConfirmed)}
	require.NoError(t, MarkNoShow(ap))
	assert.Equal(t, string(StatusNoShow), ap.Status)
	assert.Nil(t, ap.CancelledAt)

	ap2 := &models.Appointment{Status: string(StatusPending)}
	assert.Error(t, MarkNoShow(ap2))
}
