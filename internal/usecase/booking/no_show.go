package booking

import (
	"context"

	domain "github.com/agendaly/salon-platform/internal/domain/booking"
	"github.com/agendaly/salon-platform/internal/events"
	"github.com/agendaly/salon-platform/internal/httperr"
	"github.com/agendaly/salon-platform/internal/infra/cache"
	"github.com/agendaly/salon-platform/internal/models"
)

type MarkNoShow struct {
	repo   domain.Repository
	events *events.Dispatcher
	cache  *cache.AvailabilityCache
}

func NewMarkNoShow(
	repo domain.Repository,
	dispatcher *events.Dispatcher,
	availCache *cache.AvailabilityCache,
) *MarkNoShow {
	return &MarkNoShow{
		repo:   repo,
		events: dispatcher,
		cache:  availCache,
	}
}

func (uc *MarkNoShow) Execute(
	ctx context.Context,
	professionalID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForProfessional(ctx, appointmentID, professionalID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	_, est, err := appointmentClock(ctx, uc.repo, ap)
	if err != nil {
		return nil, err
	}

	err = uc.repo.InTx(ctx, func(txr domain.Repository) error {
		if err := domain.MarkNoShow(ap); err != nil {
			return err
		}

		if err := txr.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		if est != nil && !est.NoShowFee.IsZero() {
			return txr.CreateTransaction(ctx, feeTransaction(
				ap,
				est.NoShowFee,
				"no-show fee",
			))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.events.Dispatch(events.Event{
		Type:            events.NoShowMarked,
		EstablishmentID: ap.EstablishmentID,
		ProfessionalID:  ap.ProfessionalID,
		ActorID:         &professionalID,
		AppointmentID:   ap.ID,
		BookingCode:     ap.BookingCode,
	})

	if ap.ProfessionalID != nil {
		uc.cache.Invalidate(ctx, *ap.ProfessionalID)
	}

	return ap, nil
}
