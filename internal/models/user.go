package models

import "time"

const (
	RoleManager      = "manager"
	RoleProfessional = "professional"
)

// User is a platform account: an establishment manager, a staff
// professional, or an independent (freelancer) professional.
type User struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	EstablishmentID *uint          `json:"establishment_id"`
	Establishment   *Establishment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"establishment,omitempty"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'professional'" json:"role"`

	// Freelancers carry their own timezone; staff inherit the establishment's.
	Timezone string `gorm:"size:50" json:"timezone"`
	Active   bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
