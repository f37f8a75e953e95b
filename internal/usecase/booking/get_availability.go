package booking

import (
	"context"
	"time"

	domain "github.com/agendaly/salon-platform/internal/domain/booking"
	"github.com/agendaly/salon-platform/internal/httperr"
	"github.com/agendaly/salon-platform/internal/infra/cache"
	"github.com/agendaly/salon-platform/internal/timezone"
)

type GetAvailability struct {
	repo  domain.Repository
	cache *cache.AvailabilityCache
}

func NewGetAvailability(
	repo domain.Repository,
	availCache *cache.AvailabilityCache,
) *GetAvailability {
	return &GetAvailability{
		repo:  repo,
		cache: availCache,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	dateKey := in.Date.Format("2006-01-02")

	if slots, ok := uc.cache.Get(ctx, in.ProfessionalID, in.ServiceID, dateKey); ok {
		return slots, nil
	}

	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	wh, err := uc.repo.GetWorkingHours(ctx, in.ProfessionalID, int(in.Date.Weekday()))
	if err != nil || !wh.Active {
		return []domain.TimeSlot{}, nil
	}

	loc, err := uc.tenantLocation(ctx, in)
	if err != nil {
		return nil, err
	}
	day := time.Date(
		in.Date.Year(), in.Date.Month(), in.Date.Day(),
		0, 0, 0, 0,
		loc,
	)
	dayEnd := day.Add(24 * time.Hour)

	busy, err := uc.repo.ListBusyIntervals(ctx, in.ProfessionalID, day, dayEnd)
	if err != nil {
		return nil, err
	}

	slots := domain.FreeSlots(wh, busy, day, svc.DurationMinutes)

	uc.cache.Set(ctx, in.ProfessionalID, in.ServiceID, dateKey, slots)

	return slots, nil
}

func (uc *GetAvailability) tenantLocation(
	ctx context.Context,
	in domain.AvailabilityInput,
) (*time.Location, error) {

	if in.EstablishmentID != nil {
		est, err := uc.repo.GetEstablishmentByID(ctx, *in.EstablishmentID)
		if err != nil {
			return nil, httperr.ErrBusiness("establishment_not_found")
		}
		return timezone.Location(est.Timezone), nil
	}

	pro, err := uc.repo.GetProfessional(ctx, in.ProfessionalID)
	if err != nil {
		return nil, httperr.ErrBusiness("professional_not_found")
	}
	return timezone.Location(pro.Timezone), nil
}
