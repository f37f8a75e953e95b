package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types
const (
	TxPayment     = "payment"
	TxRefund      = "refund"
	TxCommission  = "commission"
	TxTip         = "tip"
	TxProductSale = "product_sale"
)

// Transaction statuses
const (
	TxStatusPending           = "pending"
	TxStatusCompleted         = "completed"
	TxStatusRefunded          = "refunded"
	TxStatusPartiallyRefunded = "partially_refunded"
)

// Transaction is an immutable settlement record. The commission split is
// written once at settlement time; refunds only touch RefundAmount/Status.
type Transaction struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TransactionCode string `gorm:"size:20;uniqueIndex;not null" json:"transaction_code"`
	Type            string `gorm:"size:20;not null" json:"type"`

	AppointmentID *uint        `gorm:"index" json:"appointment_id"`
	Appointment   *Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"appointment,omitempty"`

	EstablishmentID *uint `gorm:"index" json:"establishment_id"`
	ProfessionalID  *uint `gorm:"index" json:"professional_id"`
	CustomerID      *uint `json:"customer_id"`

	Subtotal decimal.Decimal `gorm:"type:decimal(12,2)" json:"subtotal"`
	Discount decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"discount"`
	Tip      decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"tip"`
	Tax      decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"tax"`
	Total    decimal.Decimal `gorm:"type:decimal(12,2)" json:"total"`

	ProfessionalCommission decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"professional_commission"`
	PlatformFee            decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"platform_fee"`
	EstablishmentNet       decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"establishment_net"`

	RefundAmount decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"refund_amount"`

	Status string `gorm:"size:30;default:'pending'" json:"status"`
	Notes  string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
