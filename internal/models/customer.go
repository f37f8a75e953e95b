package models

import "time"

// Customer books appointments and has no login. Each customer record is
// scoped to one establishment or to one independent professional.
type Customer struct {
	ID              uint  `gorm:"primaryKey" json:"id"`
	EstablishmentID *uint `gorm:"index" json:"establishment_id"`
	ProfessionalID  *uint `gorm:"index" json:"professional_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
