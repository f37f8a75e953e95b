package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/agendaly/salon-platform/internal/commission"
	domain "github.com/agendaly/salon-platform/internal/domain/booking"
	"github.com/agendaly/salon-platform/internal/events"
	"github.com/agendaly/salon-platform/internal/httperr"
	"github.com/agendaly/salon-platform/internal/infra/cache"
	"github.com/agendaly/salon-platform/internal/loyalty"
	"github.com/agendaly/salon-platform/internal/models"
)

type CompleteAppointment struct {
	repo   domain.Repository
	events *events.Dispatcher
	cache  *cache.AvailabilityCache

	platformFeePercent decimal.Decimal
}

func NewCompleteAppointment(
	repo domain.Repository,
	dispatcher *events.Dispatcher,
	availCache *cache.AvailabilityCache,
	platformFeePercent decimal.Decimal,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:               repo,
		events:             dispatcher,
		cache:              availCache,
		platformFeePercent: platformFeePercent,
	}
}

// Execute moves the appointment to completed and books the settlement and
// the loyalty accrual in the same database transaction. If any of the
// three legs fails, the whole completion rolls back: an appointment is
// never "completed" without its money accounted for.
func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	professionalID uint,
	appointmentID uint,
	tip decimal.Decimal,
) (*models.Appointment, *models.Transaction, error) {

	ap, err := uc.repo.GetAppointmentForProfessional(ctx, appointmentID, professionalID)
	if err != nil {
		return nil, nil, httperr.ErrBusiness("appointment_not_found")
	}

	now, est, err := appointmentClock(ctx, uc.repo, ap)
	if err != nil {
		return nil, nil, err
	}

	if tip.IsNegative() {
		return nil, nil, httperr.ErrBusiness(httperr.CodeValidation)
	}

	var settlement *models.Transaction

	err = uc.repo.InTx(ctx, func(txr domain.Repository) error {
		if err := domain.Complete(ap, now); err != nil {
			return err
		}

		if err := txr.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		tx, err := uc.settle(ctx, txr, ap, tip, now)
		if err != nil {
			return err
		}

		if err := txr.CreateTransaction(ctx, tx); err != nil {
			return err
		}
		settlement = tx

		return uc.earnLoyalty(ctx, txr, ap, est)
	})

	if err != nil {
		return nil, nil, err
	}

	uc.events.Dispatch(events.Event{
		Type:            events.AppointmentCompleted,
		EstablishmentID: ap.EstablishmentID,
		ProfessionalID:  ap.ProfessionalID,
		ActorID:         &professionalID,
		AppointmentID:   ap.ID,
		BookingCode:     ap.BookingCode,
		Metadata: map[string]any{
			"transaction_code": settlement.TransactionCode,
			"total":            settlement.Total,
		},
	})

	if ap.ProfessionalID != nil {
		uc.cache.Invalidate(ctx, *ap.ProfessionalID)
	}

	return ap, settlement, nil
}

// settle computes the commission split for the appointment and builds the
// immutable settlement record.
func (uc *CompleteAppointment) settle(
	ctx context.Context,
	txr domain.Repository,
	ap *models.Appointment,
	tip decimal.Decimal,
	now time.Time,
) (*models.Transaction, error) {

	total := ap.Total.Add(tip)

	var split commission.Split

	switch {
	case ap.EstablishmentID != nil && ap.ProfessionalID != nil:
		agreement, err := txr.GetActiveAgreement(
			ctx,
			*ap.EstablishmentID,
			*ap.ProfessionalID,
			ap.ScheduledAt,
		)
		if err != nil {
			return nil, err
		}
		if agreement == nil || !agreement.Covers(ap.ScheduledAt) {
			return nil, httperr.ErrBusiness(httperr.CodeNoActiveAgreement)
		}

		// Tiered commission measures the marginal rate against the
		// professional's settled revenue since the period reset
		// (calendar month in the establishment's clock).
		periodStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		periodRevenue, err := txr.SumSettledRevenue(
			ctx,
			*ap.EstablishmentID,
			*ap.ProfessionalID,
			periodStart,
			now,
		)
		if err != nil {
			return nil, err
		}

		split, err = commission.SplitForAgreement(
			agreement,
			total,
			tip,
			periodRevenue,
			uc.platformFeePercent,
		)
		if err != nil {
			return nil, err
		}

	case ap.ProfessionalID != nil:
		// Independent professional: platform fee off the top, the rest
		// is the professional's.
		fee := total.Mul(uc.platformFeePercent).Div(decimal.NewFromInt(100)).Round(2)
		split = commission.Split{
			ProfessionalCommission: total.Sub(fee),
			PlatformFee:            fee,
			EstablishmentNet:       decimal.Zero,
		}

	default:
		split = commission.Split{EstablishmentNet: total}
	}

	if !split.Reconciles(total, decimal.Zero) {
		return nil, fmt.Errorf("settlement does not reconcile for %s", ap.BookingCode)
	}

	return &models.Transaction{
		TransactionCode: domain.NewTransactionCode(),
		Type:            models.TxPayment,

		AppointmentID:   &ap.ID,
		EstablishmentID: ap.EstablishmentID,
		ProfessionalID:  ap.ProfessionalID,
		CustomerID:      &ap.CustomerID,

		Subtotal: ap.Subtotal,
		Discount: ap.Discount,
		Tip:      tip,
		Total:    total,

		ProfessionalCommission: split.ProfessionalCommission,
		PlatformFee:            split.PlatformFee,
		EstablishmentNet:       split.EstablishmentNet,

		Status: models.TxStatusCompleted,
	}, nil
}

// earnLoyalty credits points for the completed appointment based on the
// tenant's points-per-currency rate.
func (uc *CompleteAppointment) earnLoyalty(
	ctx context.Context,
	txr domain.Repository,
	ap *models.Appointment,
	est *models.Establishment,
) error {

	rate := 1
	if est != nil && est.PointsPerCurrency > 0 {
		rate = est.PointsPerCurrency
	}

	basePoints := int(ap.Total.IntPart()) * rate
	if basePoints <= 0 {
		return nil
	}

	lp, err := txr.GetOrCreateLoyalty(ctx, ap.CustomerID, ap.EstablishmentID, ap.ProfessionalID)
	if err != nil {
		return err
	}

	row := loyalty.Earn(lp, &ap.ID, basePoints, "appointment "+ap.BookingCode)

	if err := txr.SaveLoyalty(ctx, lp); err != nil {
		return err
	}
	return txr.CreateLoyaltyTransaction(ctx, row)
}
