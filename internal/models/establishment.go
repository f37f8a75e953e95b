package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Establishment struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:100;not null" json:"name"`
	Slug    string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Phone   string `gorm:"size:20" json:"phone"`
	Address string `gorm:"size:255" json:"address"`

	Timezone string `gorm:"size:50" json:"timezone"`

	// Booking policy
	MinBookingHours   int             `gorm:"default:2" json:"min_booking_hours"`
	CancellationHours int             `gorm:"default:24" json:"cancellation_hours"`
	CancellationFee   decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"cancellation_fee"`
	NoShowFee         decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"no_show_fee"`

	// Loyalty: points earned per whole currency unit spent
	PointsPerCurrency int `gorm:"default:1" json:"points_per_currency"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
