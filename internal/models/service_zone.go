package models

import "time"

// Zone types
const (
	ZoneFixedLocation   = "fixed_location"
	ZoneServiceArea     = "service_area"
	ZoneHomeServiceOnly = "home_service_only"
)

// ProfessionalServiceZone defines where an independent professional is
// reachable; home-service requests must fall inside the covered radius.
type ProfessionalServiceZone struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	ProfessionalID uint `gorm:"index" json:"professional_id"`

	ZoneType string `gorm:"size:30;default:'fixed_location'" json:"zone_type"`

	CenterLat float64 `json:"center_lat"`
	CenterLng float64 `json:"center_lng"`
	RadiusKm  float64 `gorm:"default:0" json:"radius_km"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
