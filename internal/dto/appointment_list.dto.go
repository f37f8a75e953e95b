package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type AppointmentListDTO struct {
	ID             uint            `json:"id"`
	BookingCode    string          `json:"booking_code"`
	ScheduledAt    time.Time       `json:"scheduled_at"`
	ScheduledEndAt time.Time       `json:"scheduled_end_at"`
	Status         string          `json:"status"`
	CustomerName   string          `json:"customer_name"`
	ServiceName    string          `json:"service_name"`
	Total          decimal.Decimal `json:"total"`
}
