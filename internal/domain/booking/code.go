package booking

import (
	"strings"

	"github.com/google/uuid"
)

// Booking and transaction codes are short, human-shareable references
// (support lookups, receipts). Uniqueness rides on the uuid entropy plus
// the unique index on the column.

func NewBookingCode() string {
	return "BK-" + shortCode()
}

func NewTransactionCode() string {
	return "TX-" + shortCode()
}

func shortCode() string {
	id := uuid.New().String()
	return strings.ToUpper(id[:8])
}
