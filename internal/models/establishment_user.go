package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Commission models
const (
	CommissionPercentage      = "percentage"
	CommissionTiered          = "tiered"
	CommissionFixedPerService = "fixed_per_service"
	CommissionSalaryPlus      = "salary_plus"
	CommissionBoothRental     = "booth_rental"
	CommissionSalaryOnly      = "salary_only"
)

// Agreement status
const (
	AgreementPending  = "pending"
	AgreementActive   = "active"
	AgreementInactive = "inactive"
)

// EstablishmentUser is the employment/commission agreement between one
// professional and one establishment. Agreements are never deleted, only
// deactivated, so historical settlements stay reproducible.
type EstablishmentUser struct {
	ID uint `gorm:"primaryKey" json:"id"`

	EstablishmentID uint          `gorm:"index" json:"establishment_id"`
	Establishment   Establishment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"establishment"`

	UserID uint `gorm:"index" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	Role           string `gorm:"size:20;default:'staff'" json:"role"`
	EmploymentType string `gorm:"size:20;default:'employee'" json:"employment_type"`

	CommissionModel      string          `gorm:"size:30;not null" json:"commission_model"`
	CommissionPercentage decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"commission_percentage"`
	CommissionTiers      datatypes.JSON  `json:"commission_tiers"`

	FixedAmountPerService decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"fixed_amount_per_service"`
	BaseSalary            decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"base_salary"`
	BoothRentalFee        decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"booth_rental_fee"`

	TipsIncludedInCommission bool `gorm:"default:true" json:"tips_included_in_commission"`

	Status    string     `gorm:"size:20;default:'pending'" json:"status"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Covers reports whether the agreement is active and its validity window
// contains the given instant.
func (a *EstablishmentUser) Covers(at time.Time) bool {
	if a.Status != AgreementActive {
		return false
	}
	if at.Before(a.StartDate) {
		return false
	}
	if a.EndDate != nil && at.After(*a.EndDate) {
		return false
	}
	return true
}
