package booking

import (
	"context"
	"time"

	domain "github.com/agendaly/salon-platform/internal/domain/booking"
	"github.com/agendaly/salon-platform/internal/events"
	"github.com/agendaly/salon-platform/internal/httperr"
	"github.com/agendaly/salon-platform/internal/infra/cache"
	"github.com/agendaly/salon-platform/internal/models"
	"github.com/agendaly/salon-platform/internal/pricing"
	"github.com/agendaly/salon-platform/internal/timezone"
)

type RescheduleBooking struct {
	repo   domain.Repository
	events *events.Dispatcher
	cache  *cache.AvailabilityCache
}

func NewRescheduleBooking(
	repo domain.Repository,
	dispatcher *events.Dispatcher,
	availCache *cache.AvailabilityCache,
) *RescheduleBooking {
	return &RescheduleBooking{
		repo:   repo,
		events: dispatcher,
		cache:  availCache,
	}
}

// Execute moves a pending/confirmed appointment to a new window,
// re-running the availability check (ignoring the appointment itself) and
// recomputing the price.
func (uc *RescheduleBooking) Execute(
	ctx context.Context,
	professionalID uint,
	appointmentID uint,
	date string,
	hm string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForProfessional(ctx, appointmentID, professionalID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.CanReschedule(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	var est *models.Establishment
	var pro *models.User

	if ap.EstablishmentID != nil {
		est, err = uc.repo.GetEstablishmentByID(ctx, *ap.EstablishmentID)
		if err != nil {
			return nil, err
		}
	}
	pro, err = uc.repo.GetProfessional(ctx, professionalID)
	if err != nil {
		return nil, httperr.ErrBusiness("professional_not_found")
	}

	tz := tenantTimezone(est, pro)

	start, err := parseDateTime(date, hm, tz)
	if err != nil {
		return nil, err
	}

	svc, err := uc.repo.GetService(ctx, ap.ServiceID)
	if err != nil || !svc.Active {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	end := start.Add(time.Duration(svc.DurationMinutes) * time.Minute)
	if err := domain.CheckWindow(start, end); err != nil {
		return nil, err
	}

	minHours := 0
	if est != nil {
		minHours = est.MinBookingHours
	}
	if !domain.MeetsLeadTime(start, timezone.NowIn(tz), minHours) {
		return nil, httperr.ErrBusiness(httperr.CodeTooSoon)
	}

	wh, err := uc.repo.GetWorkingHours(ctx, professionalID, int(start.Weekday()))
	if err != nil || !domain.WithinWorkingHours(wh, start, end) {
		return nil, httperr.ErrBusiness(httperr.CodeOutsideWorkingHours)
	}

	override, err := uc.repo.GetPriceOverride(ctx, svc.ID, professionalID)
	if err != nil {
		return nil, err
	}

	quote, err := pricing.Compute(pricing.Input{
		Service:      svc,
		Override:     override,
		LocationType: ap.LocationType,
		DistanceKm:   ap.DistanceKm,
		Discount:     ap.Discount,
	})
	if err != nil {
		return nil, err
	}

	err = uc.repo.InTx(ctx, func(txr domain.Repository) error {
		if err := txr.LockProfessional(ctx, professionalID); err != nil {
			return err
		}
		busy, err := txr.LockBusyIntervals(ctx, professionalID, start, end)
		if err != nil {
			return err
		}
		if domain.HasOverlap(busy, start, end, ap.ID) {
			return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
		}

		ap.ScheduledAt = start
		ap.ScheduledEndAt = end
		ap.DurationMinutes = svc.DurationMinutes

		ap.ServicePrice = quote.ServicePrice
		ap.HomeServiceSurcharge = quote.Surcharge
		ap.Subtotal = quote.Subtotal
		ap.Discount = quote.Discount
		ap.Total = quote.Total

		return txr.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	uc.events.Dispatch(events.Event{
		Type:            events.BookingRescheduled,
		EstablishmentID: ap.EstablishmentID,
		ProfessionalID:  ap.ProfessionalID,
		ActorID:         &professionalID,
		AppointmentID:   ap.ID,
		BookingCode:     ap.BookingCode,
		Metadata: map[string]any{
			"scheduled_at": start,
		},
	})

	uc.cache.Invalidate(ctx, professionalID)

	return ap, nil
}
