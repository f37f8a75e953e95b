package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Location types
const (
	LocationInStore     = "in_store"
	LocationHomeService = "home_service"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Human-shareable reference for support lookups.
	BookingCode string `gorm:"size:20;uniqueIndex;not null" json:"booking_code"`

	EstablishmentID *uint          `gorm:"index" json:"establishment_id"`
	Establishment   *Establishment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"establishment,omitempty"`

	ProfessionalID *uint `gorm:"index" json:"professional_id"`
	Professional   *User `gorm:"foreignKey:ProfessionalID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"professional,omitempty"`

	CustomerID uint     `json:"customer_id"`
	Customer   Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	ScheduledAt     time.Time `gorm:"index" json:"scheduled_at"`
	ScheduledEndAt  time.Time `json:"scheduled_end_at"`
	DurationMinutes int       `json:"duration_minutes"`

	LocationType string   `gorm:"size:20;default:'in_store'" json:"location_type"`
	HomeAddress  string   `gorm:"size:255" json:"home_address"`
	HomeLat      *float64 `json:"home_lat"`
	HomeLng      *float64 `json:"home_lng"`
	DistanceKm   float64  `gorm:"default:0" json:"distance_km"`

	Status string `gorm:"size:30;default:'pending'" json:"status"`

	ServicePrice         decimal.Decimal `gorm:"type:decimal(12,2)" json:"service_price"`
	HomeServiceSurcharge decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"home_service_surcharge"`
	Subtotal             decimal.Decimal `gorm:"type:decimal(12,2)" json:"subtotal"`
	Discount             decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"discount"`
	Total                decimal.Decimal `gorm:"type:decimal(12,2)" json:"total"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	CancellationReason string `gorm:"size:255" json:"cancellation_reason"`
	Notes              string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
