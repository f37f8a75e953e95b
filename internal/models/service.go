package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Service struct {
	ID              uint  `gorm:"primaryKey" json:"id"`
	EstablishmentID *uint `gorm:"index" json:"establishment_id"`
	ProfessionalID  *uint `gorm:"index" json:"professional_id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	Category    string `gorm:"size:50" json:"category"`

	DurationMinutes   int `json:"duration_minutes"`
	BufferTimeMinutes int `gorm:"default:0" json:"buffer_time_minutes"`

	BasePrice decimal.Decimal `gorm:"type:decimal(12,2)" json:"base_price"`

	// Home-service pricing: flat surcharge unless distance tiers match.
	HomeServiceSurcharge decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"home_service_surcharge"`
	HomeServiceRadiusKm  float64         `gorm:"default:0" json:"home_service_radius_km"`
	DeliveryTiers        datatypes.JSON  `json:"delivery_tiers"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ServicePriceOverride is a professional-specific price for a service.
type ServicePriceOverride struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	ServiceID      uint `gorm:"index:idx_service_pro_override,unique" json:"service_id"`
	ProfessionalID uint `gorm:"index:idx_service_pro_override,unique" json:"professional_id"`

	Price decimal.Decimal `gorm:"type:decimal(12,2)" json:"price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
