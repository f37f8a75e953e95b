package booking

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/agendaly/salon-platform/internal/domain/booking"
	"github.com/agendaly/salon-platform/internal/events"
	"github.com/agendaly/salon-platform/internal/httperr"
	"github.com/agendaly/salon-platform/internal/infra/cache"
	"github.com/agendaly/salon-platform/internal/models"
)

type CancelBooking struct {
	repo   domain.Repository
	events *events.Dispatcher
	cache  *cache.AvailabilityCache
}

func NewCancelBooking(
	repo domain.Repository,
	dispatcher *events.Dispatcher,
	availCache *cache.AvailabilityCache,
) *CancelBooking {
	return &CancelBooking{
		repo:   repo,
		events: dispatcher,
		cache:  availCache,
	}
}

// Execute cancels on behalf of a professional/manager acting for the
// establishment.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	professionalID uint,
	appointmentID uint,
	by domain.CancelActor,
	reason string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForProfessional(ctx, appointmentID, professionalID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	return uc.run(ctx, ap, by, reason, &professionalID)
}

// ExecuteByCode cancels through the customer-facing surface, which only
// holds the booking code.
func (uc *CancelBooking) ExecuteByCode(
	ctx context.Context,
	code string,
	reason string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByCode(ctx, code)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	return uc.run(ctx, ap, domain.ByCustomer, reason, nil)
}

func (uc *CancelBooking) run(
	ctx context.Context,
	ap *models.Appointment,
	by domain.CancelActor,
	reason string,
	actorID *uint,
) (*models.Appointment, error) {

	now, est, err := appointmentClock(ctx, uc.repo, ap)
	if err != nil {
		return nil, err
	}

	err = uc.repo.InTx(ctx, func(txr domain.Repository) error {
		if err := domain.Cancel(ap, by, reason, now); err != nil {
			return err
		}

		if err := txr.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		// Late cancellation by the customer inside the establishment's
		// window books the configured fee as its own transaction.
		if by == domain.ByCustomer && lateCancellation(est, ap.ScheduledAt, now) {
			return txr.CreateTransaction(ctx, feeTransaction(
				ap,
				est.CancellationFee,
				"late cancellation fee",
			))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.events.Dispatch(events.Event{
		Type:            events.CancellationApplied,
		EstablishmentID: ap.EstablishmentID,
		ProfessionalID:  ap.ProfessionalID,
		ActorID:         actorID,
		AppointmentID:   ap.ID,
		BookingCode:     ap.BookingCode,
		Metadata: map[string]any{
			"by":     string(by),
			"reason": reason,
		},
	})

	if ap.ProfessionalID != nil {
		uc.cache.Invalidate(ctx, *ap.ProfessionalID)
	}

	return ap, nil
}

func lateCancellation(est *models.Establishment, scheduledAt, now time.Time) bool {
	if est == nil || est.CancellationFee.IsZero() {
		return false
	}

	window := time.Duration(est.CancellationHours) * time.Hour
	return scheduledAt.Sub(now) < window
}

// feeTransaction books a policy fee (cancellation, no-show) owed to the
// establishment. No commission split applies to fees.
func feeTransaction(ap *models.Appointment, fee decimal.Decimal, notes string) *models.Transaction {
	return &models.Transaction{
		TransactionCode: domain.NewTransactionCode(),
		Type:            models.TxPayment,

		AppointmentID:   &ap.ID,
		EstablishmentID: ap.EstablishmentID,
		ProfessionalID:  ap.ProfessionalID,
		CustomerID:      &ap.CustomerID,

		Subtotal: fee,
		Total:    fee,

		EstablishmentNet: fee,

		Status: models.TxStatusPending,
		Notes:  notes,
	}
}
