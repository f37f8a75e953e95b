package booking

import "github.com/agendaly/salon-platform/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending                  Status = "pending"
	StatusConfirmed                Status = "confirmed"
	StatusInProgress               Status = "in_progress"
	StatusCompleted                Status = "completed"
	StatusCancelledByCustomer      Status = "cancelled_by_customer"
	StatusCancelledByEstablishment Status = "cancelled_by_establishment"
	StatusNoShow                   Status = "no_show"
)

// Terminal reports whether no further transition is permitted.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted,
		StatusCancelledByCustomer,
		StatusCancelledByEstablishment,
		StatusNoShow:
		return true
	}
	return false
}

// ActiveStatuses are the statuses that block a professional's calendar.
func ActiveStatuses() []string {
	return []string{
		string(StatusPending),
		string(StatusConfirmed),
		string(StatusInProgress),
	}
}

// ===============================
// Validations
// ===============================

func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

func CanStart(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusConfirmed && current != StatusInProgress {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

func CanCancel(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

func CanMarkNoShow(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

func CanReschedule(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
