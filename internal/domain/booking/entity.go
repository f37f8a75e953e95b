package booking

import (
	"time"

	"github.com/agendaly/salon-platform/internal/models"
)

// ===============================
// Cancellation actors
// ===============================

type CancelActor string

const (
	ByCustomer      CancelActor = "customer"
	ByEstablishment CancelActor = "establishment"
)

// ===============================
// Domain Actions
// ===============================
//
// Each transition guards the current status and stamps its lifecycle
// timestamp exactly once. Re-invoking an applied transition fails with
// invalid_state instead of silently succeeding, so duplicate requests
// are detectable by the caller.

func Confirm(ap *models.Appointment, now time.Time) error {
	if err := CanConfirm(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	ap.ConfirmedAt = &now
	return nil
}

func Start(ap *models.Appointment, now time.Time) error {
	if err := CanStart(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusInProgress)
	ap.StartedAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

func Cancel(ap *models.Appointment, by CancelActor, reason string, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	switch by {
	case ByEstablishment:
		ap.Status = string(StatusCancelledByEstablishment)
	default:
		ap.Status = string(StatusCancelledByCustomer)
	}

	ap.CancelledAt = &now
	ap.CancellationReason = reason
	return nil
}

func MarkNoShow(ap *models.Appointment) error {
	if err := CanMarkNoShow(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusNoShow)
	return nil
}
