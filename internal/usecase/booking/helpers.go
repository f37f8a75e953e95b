package booking

import (
	"context"
	"time"

	domain "github.com/agendaly/salon-platform/internal/domain/booking"
	"github.com/agendaly/salon-platform/internal/httperr"
	"github.com/agendaly/salon-platform/internal/models"
	"github.com/agendaly/salon-platform/internal/timezone"
)

// parseDateTime interprets a date + time pair in the tenant's timezone.
func parseDateTime(date, hm, tz string) (time.Time, error) {
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		date+" "+hm,
		timezone.Location(tz),
	)
	if err != nil {
		return time.Time{}, httperr.ErrBusiness("invalid_date_or_time")
	}
	return start, nil
}

// tenantTimezone resolves the clock an appointment runs on: the
// establishment's zone, or the independent professional's own.
func tenantTimezone(est *models.Establishment, pro *models.User) string {
	if est != nil && est.Timezone != "" {
		return est.Timezone
	}
	if pro != nil && pro.Timezone != "" {
		return pro.Timezone
	}
	return timezone.DefaultTimezone
}

// appointmentClock loads whatever tenant rows the appointment references
// and returns "now" in that tenant's timezone.
func appointmentClock(
	ctx context.Context,
	repo domain.Repository,
	ap *models.Appointment,
) (time.Time, *models.Establishment, error) {

	var est *models.Establishment
	var pro *models.User

	if ap.EstablishmentID != nil {
		loaded, err := repo.GetEstablishmentByID(ctx, *ap.EstablishmentID)
		if err != nil {
			return time.Time{}, nil, err
		}
		est = loaded
	} else if ap.ProfessionalID != nil {
		loaded, err := repo.GetProfessional(ctx, *ap.ProfessionalID)
		if err != nil {
			return time.Time{}, nil, err
		}
		pro = loaded
	}

	return timezone.NowIn(tenantTimezone(est, pro)), est, nil
}
