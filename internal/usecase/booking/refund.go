package booking

import (
	"context"

	"github.com/shopspring/decimal"

	domain "github.com/agendaly/salon-platform/internal/domain/booking"
	"github.com/agendaly/salon-platform/internal/httperr"
	"github.com/agendaly/salon-platform/internal/models"
)

type RefundTransaction struct {
	repo domain.Repository
}

func NewRefundTransaction(repo domain.Repository) *RefundTransaction {
	return &RefundTransaction{repo: repo}
}

// Execute applies a (possibly partial) refund. The original commission
// split is immutable: only RefundAmount and Status move.
func (uc *RefundTransaction) Execute(
	ctx context.Context,
	code string,
	amount decimal.Decimal,
	reason string,
) (*models.Transaction, error) {

	if !amount.IsPositive() {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}

	tx, err := uc.repo.GetTransactionByCode(ctx, code)
	if err != nil {
		return nil, httperr.ErrBusiness("transaction_not_found")
	}

	if tx.Status != models.TxStatusCompleted && tx.Status != models.TxStatusPartiallyRefunded {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidState)
	}

	refunded := tx.RefundAmount.Add(amount)
	if refunded.GreaterThan(tx.Total) {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}

	tx.RefundAmount = refunded
	if reason != "" {
		tx.Notes = reason
	}
	if refunded.Equal(tx.Total) {
		tx.Status = models.TxStatusRefunded
	} else {
		tx.Status = models.TxStatusPartiallyRefunded
	}

	if err := uc.repo.UpdateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}
