package booking

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/agendaly/salon-platform/internal/domain/booking"
	"github.com/agendaly/salon-platform/internal/models"
	loyaltyuc "github.com/agendaly/salon-platform/internal/usecase/loyalty"
)

// Reaplicar o extrato inteiro em ordem tem que reconstruir o saldo: a soma
// dos deltas bate com points e cada linha bate com o seu balance_after.
func TestLoyaltyLedger_ReplayRebuildsBalance(t *testing.T) {
	e := setupEnv(t)
	e.seedAgreement(t, models.CommissionPercentage, "60")
	ctx := context.Background()

	completeUC := NewCompleteAppointment(e.repo, e.dispatcher, e.cache, decimal.Zero)
	redeemUC := loyaltyuc.NewRedeemPoints(e.repo)

	// dois atendimentos concluídos (100 pontos cada) e um resgate
	for i := 0; i < 2; i++ {
		ap := e.seedAppointment(t, string(domain.StatusConfirmed), time.Now().UTC())
		_, _, err := completeUC.Execute(ctx, e.pro.ID, ap.ID, decimal.Zero)
		require.NoError(t, err)
	}

	lp, err := redeemUC.Execute(ctx, e.customer.ID, &e.est.ID, nil, 50, "resgate teste")
	require.NoError(t, err)
	assert.Equal(t, 150, lp.Points)
	assert.Equal(t, 200, lp.LifetimePoints)

	rows, err := e.repo.ListLoyaltyTransactions(ctx, lp.ID)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	balance := 0
	for _, row := range rows {
		balance += row.Points
		assert.Equal(t, row.BalanceAfter, balance,
			"linha %d (%s) fora de ordem", row.ID, row.Type)
	}

	var current models.LoyaltyPoint
	require.NoError(t, e.db.First(&current, lp.ID).Error)
	assert.Equal(t, current.Points, balance)
}
