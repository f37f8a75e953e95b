package booking

import (
	"context"
	"time"

	domain "github.com/agendaly/salon-platform/internal/domain/booking"
	"github.com/agendaly/salon-platform/internal/dto"
	"github.com/agendaly/salon-platform/internal/models"
	"github.com/agendaly/salon-platform/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	professionalID uint,
	establishmentID *uint,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	loc := date.Location()
	if establishmentID != nil {
		est, err := uc.repo.GetEstablishmentByID(ctx, *establishmentID)
		if err != nil {
			return nil, err
		}
		loc = timezone.Location(est.Timezone)
	}

	start := time.Date(
		date.Year(),
		date.Month(),
		date.Day(),
		0, 0, 0, 0,
		loc,
	)
	end := start.Add(24 * time.Hour)

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		professionalID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	return toListDTOs(appointments), nil
}

func toListDTOs(appointments []models.Appointment) []dto.AppointmentListDTO {
	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentListDTO{
			ID:             ap.ID,
			BookingCode:    ap.BookingCode,
			ScheduledAt:    ap.ScheduledAt,
			ScheduledEndAt: ap.ScheduledEndAt,
			Status:         ap.Status,
			CustomerName:   ap.Customer.Name,
			ServiceName:    ap.Service.Name,
			Total:          ap.Total,
		})
	}
	return out
}
