package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/agendaly/salon-platform/internal/domain/booking"
	"github.com/agendaly/salon-platform/internal/httperr"
	"github.com/agendaly/salon-platform/internal/models"
)

func (e *env) seedSettledTransaction(t *testing.T, total string) *models.Transaction {
	t.Helper()

	tx := models.Transaction{
		TransactionCode:        domain.NewTransactionCode(),
		Type:                   models.TxPayment,
		EstablishmentID:        &e.est.ID,
		ProfessionalID:         &e.pro.ID,
		Subtotal:               dec(total),
		Total:                  dec(total),
		ProfessionalCommission: dec("60.00"),
		EstablishmentNet:       dec("50.00"),
		Status:                 models.TxStatusCompleted,
	}
	require.NoError(t, e.db.Create(&tx).Error)
	return &tx
}

func TestRefund_PartialThenFull(t *testing.T) {
	e := setupEnv(t)
	uc := NewRefundTransaction(e.repo)

	tx := e.seedSettledTransaction(t, "110.00")

	partial, err := uc.Execute(context.Background(), tx.TransactionCode, dec("50.00"), "cliente insatisfeito")
	require.NoError(t, err)
	assert.Equal(t, models.TxStatusPartiallyRefunded, partial.Status)
	assert.True(t, partial.RefundAmount.Equal(dec("50.00")))
	assert.Equal(t, "cliente insatisfeito", partial.Notes)

	// o split original permanece imutável
	assert.True(t, partial.ProfessionalCommission.Equal(dec("60.00")))
	assert.True(t, partial.EstablishmentNet.Equal(dec("50.00")))

	full, err := uc.Execute(context.Background(), tx.TransactionCode, dec("60.00"), "")
	require.NoError(t, err)
	assert.Equal(t, models.TxStatusRefunded, full.Status)
	assert.True(t, full.RefundAmount.Equal(dec("110.00")))

	// transação já estornada não aceita novo estorno
	_, err = uc.Execute(context.Background(), tx.TransactionCode, dec("1.00"), "")
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))
}

func TestRefund_CannotExceedTotal(t *testing.T) {
	e := setupEnv(t)
	uc := NewRefundTransaction(e.repo)

	tx := e.seedSettledTransaction(t, "110.00")

	_, err := uc.Execute(context.Background(), tx.TransactionCode, dec("120.00"), "")
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeValidation))
}

func TestRefund_RejectsNonPositiveAmount(t *testing.T) {
	e := setupEnv(t)
	uc := NewRefundTransaction(e.repo)

	tx := e.seedSettledTransaction(t, "110.00")

	_, err := uc.Execute(context.Background(), tx.TransactionCode, dec("0"), "")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeValidation))

	_, err = uc.Execute(context.Background(), tx.TransactionCode, dec("-10.00"), "")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeValidation))
}

func TestRefund_UnknownCode(t *testing.T) {
	e := setupEnv(t)
	uc := NewRefundTransaction(e.repo)

	_, err := uc.Execute(context.Background(), "TX-NAOEXISTE", dec("10.00"), "")
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "transaction_not_found"))
}
