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
	"github.com/agendaly/salon-platform/internal/pricing"
	"github.com/agendaly/salon-platform/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	EstablishmentID *uint
	ProfessionalID  *uint

	CustomerName  string
	CustomerPhone string
	CustomerEmail string

	ServiceID uint

	Date string
	Time string

	LocationType string
	HomeAddress  string
	DistanceKm   float64

	Discount decimal.Decimal

	Notes   string
	ActorID *uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo   domain.Repository
	events *events.Dispatcher
	cache  *cache.AvailabilityCache
}

func NewCreateBooking(
	repo domain.Repository,
	dispatcher *events.Dispatcher,
	availCache *cache.AvailabilityCache,
) *CreateBooking {
	return &CreateBooking{
		repo:   repo,
		events: dispatcher,
		cache:  availCache,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Tenant (establishment or independent professional)
	// --------------------------------------------------
	var est *models.Establishment
	if in.EstablishmentID != nil {
		loaded, err := uc.repo.GetEstablishmentByID(ctx, *in.EstablishmentID)
		if err != nil {
			return nil, httperr.ErrBusiness("establishment_not_found")
		}
		est = loaded
	}

	var pro *models.User
	if in.ProfessionalID != nil {
		loaded, err := uc.repo.GetProfessional(ctx, *in.ProfessionalID)
		if err != nil || !loaded.Active {
			return nil, httperr.ErrBusiness("professional_not_found")
		}
		pro = loaded
	}

	tz := tenantTimezone(est, pro)

	// --------------------------------------------------
	// Requested window in the tenant's timezone
	// --------------------------------------------------
	start, err := parseDateTime(in.Date, in.Time, tz)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Lead time
	// --------------------------------------------------
	minHours := 0
	if est != nil {
		minHours = est.MinBookingHours
	}

	now := timezone.NowIn(tz)
	if !domain.MeetsLeadTime(start, now, minHours) {
		return nil, httperr.ErrBusiness(httperr.CodeTooSoon)
	}

	// --------------------------------------------------
	// Service
	// --------------------------------------------------
	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil || !svc.Active {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	end := start.Add(time.Duration(svc.DurationMinutes) * time.Minute)
	if err := domain.CheckWindow(start, end); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Home-service coverage (independent professionals)
	// --------------------------------------------------
	if in.LocationType == models.LocationHomeService && est == nil && pro != nil {
		zone, err := uc.repo.GetServiceZone(ctx, pro.ID)
		if err != nil {
			return nil, err
		}
		if zone != nil && zone.RadiusKm > 0 && in.DistanceKm > zone.RadiusKm {
			return nil, httperr.ErrBusiness(httperr.CodeOutOfCoverage)
		}
	}

	// --------------------------------------------------
	// Working hours + break
	// --------------------------------------------------
	if pro != nil {
		wh, err := uc.repo.GetWorkingHours(ctx, pro.ID, int(start.Weekday()))
		if err != nil || !domain.WithinWorkingHours(wh, start, end) {
			return nil, httperr.ErrBusiness(httperr.CodeOutsideWorkingHours)
		}
	}

	// --------------------------------------------------
	// Customer (get or create)
	// --------------------------------------------------
	customer, err := uc.repo.GetOrCreateCustomer(
		ctx,
		in.EstablishmentID,
		in.ProfessionalID,
		in.CustomerName,
		in.CustomerPhone,
		in.CustomerEmail,
	)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Pricing
	// --------------------------------------------------
	var override *models.ServicePriceOverride
	if pro != nil {
		override, err = uc.repo.GetPriceOverride(ctx, svc.ID, pro.ID)
		if err != nil {
			return nil, err
		}
	}

	locationType := in.LocationType
	if locationType == "" {
		locationType = models.LocationInStore
	}

	quote, err := pricing.Compute(pricing.Input{
		Service:      svc,
		Override:     override,
		LocationType: locationType,
		DistanceKm:   in.DistanceKm,
		Discount:     in.Discount,
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Conflict check + insert under the professional lock
	// --------------------------------------------------
	ap := &models.Appointment{
		BookingCode:     domain.NewBookingCode(),
		EstablishmentID: in.EstablishmentID,
		ProfessionalID:  in.ProfessionalID,
		CustomerID:      customer.ID,
		ServiceID:       svc.ID,

		ScheduledAt:     start,
		ScheduledEndAt:  end,
		DurationMinutes: svc.DurationMinutes,

		LocationType: locationType,
		HomeAddress:  in.HomeAddress,
		DistanceKm:   in.DistanceKm,

		Status: string(domain.InitialStatus()),

		ServicePrice:         quote.ServicePrice,
		HomeServiceSurcharge: quote.Surcharge,
		Subtotal:             quote.Subtotal,
		Discount:             quote.Discount,
		Total:                quote.Total,

		Notes: in.Notes,
	}

	err = uc.repo.InTx(ctx, func(txr domain.Repository) error {
		if pro != nil {
			if err := txr.LockProfessional(ctx, pro.ID); err != nil {
				return err
			}
			busy, err := txr.LockBusyIntervals(ctx, pro.ID, start, end)
			if err != nil {
				return err
			}
			if domain.HasOverlap(busy, start, end, 0) {
				return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
			}
		}

		return txr.CreateAppointment(ctx, ap)
	})

	if err != nil {
		if httperr.IsExclusionConflict(err) {
			return nil, httperr.ErrBusiness(httperr.CodeSlotUnavailable)
		}
		return nil, err
	}

	// --------------------------------------------------
	// Post-commit: event + cache invalidation
	// --------------------------------------------------
	uc.events.Dispatch(events.Event{
		Type:            events.BookingCreated,
		EstablishmentID: in.EstablishmentID,
		ProfessionalID:  in.ProfessionalID,
		ActorID:         in.ActorID,
		AppointmentID:   ap.ID,
		BookingCode:     ap.BookingCode,
		Metadata: map[string]any{
			"scheduled_at": start,
			"total":        quote.Total,
		},
	})

	if pro != nil {
		uc.cache.Invalidate(ctx, pro.ID)
	}

	return ap, nil
}
