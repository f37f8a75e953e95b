package models

import "time"

// Loyalty transaction types
const (
	LoyaltyEarned   = "earned"
	LoyaltyRedeemed = "redeemed"
	LoyaltyExpired  = "expired"
	LoyaltyBonus    = "bonus"
	LoyaltyReferral = "referral"
	LoyaltyBirthday = "birthday"
	LoyaltyReview   = "review"
)

// LoyaltyPoint is a customer's running balance with one establishment or
// one independent professional.
type LoyaltyPoint struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID      uint  `gorm:"index" json:"customer_id"`
	EstablishmentID *uint `gorm:"index" json:"establishment_id"`
	ProfessionalID  *uint `gorm:"index" json:"professional_id"`

	Points         int    `gorm:"default:0" json:"points"`
	LifetimePoints int    `gorm:"default:0" json:"lifetime_points"`
	Tier           string `gorm:"size:20;default:'bronze'" json:"tier"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoyaltyPointTransaction is an append-only ledger row. BalanceAfter must
// equal the LoyaltyPoint.Points value immediately after the row is applied.
type LoyaltyPointTransaction struct {
	ID uint `gorm:"primaryKey" json:"id"`

	LoyaltyPointID uint         `gorm:"index" json:"loyalty_point_id"`
	LoyaltyPoint   LoyaltyPoint `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	AppointmentID *uint `json:"appointment_id"`

	Type         string `gorm:"size:20;not null" json:"type"`
	Points       int    `json:"points"`
	BalanceAfter int    `json:"balance_after"`
	Description  string `gorm:"size:255" json:"description"`

	CreatedAt time.Time `json:"created_at"`
}
