package booking

import (
	"context"

	domain "github.com/agendaly/salon-platform/internal/domain/booking"
	"github.com/agendaly/salon-platform/internal/events"
	"github.com/agendaly/salon-platform/internal/httperr"
	"github.com/agendaly/salon-platform/internal/models"
)

type ConfirmBooking struct {
	repo   domain.Repository
	events *events.Dispatcher
}

func NewConfirmBooking(
	repo domain.Repository,
	dispatcher *events.Dispatcher,
) *ConfirmBooking {
	return &ConfirmBooking{
		repo:   repo,
		events: dispatcher,
	}
}

func (uc *ConfirmBooking) Execute(
	ctx context.Context,
	professionalID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForProfessional(ctx, appointmentID, professionalID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now, _, err := appointmentClock(ctx, uc.repo, ap)
	if err != nil {
		return nil, err
	}

	if err := domain.Confirm(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.events.Dispatch(events.Event{
		Type:            events.BookingConfirmed,
		EstablishmentID: ap.EstablishmentID,
		ProfessionalID:  ap.ProfessionalID,
		ActorID:         &professionalID,
		AppointmentID:   ap.ID,
		BookingCode:     ap.BookingCode,
	})

	return ap, nil
}
