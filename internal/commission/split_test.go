package commission

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/agendaly/salon-platform/internal/models"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// Aceita uma comissão de 60% sobre R$ 10.000: R$ 6.000 para o
// profissional, R$ 4.000 para o estabelecimento.
func TestPercentage_SixtyForty(t *testing.T) {
	s, err := percentageStrategy{}.Split(Basis{
		Total:            dec("10000.00"),
		TipsInCommission: true,
		Percentage:       dec("60"),
	})
	require.NoError(t, err)

	assert.True(t, s.ProfessionalCommission.Equal(dec("6000.00")))
	assert.True(t, s.PlatformFee.IsZero())
	assert.True(t, s.EstablishmentNet.Equal(dec("4000.00")))
	assert.True(t, s.Reconciles(dec("10000.00"), decimal.Zero))
}

func TestPercentage_TipExcludedFromBase(t *testing.T) {
	// total 110 = 100 serviço + 10 gorjeta; comissão de 50% só sobre 100
	s, err := percentageStrategy{}.Split(Basis{
		Total:            dec("110.00"),
		Tip:              dec("10.00"),
		TipsInCommission: false,
		Percentage:       dec("50"),
	})
	require.NoError(t, err)

	assert.True(t, s.ProfessionalCommission.Equal(dec("50.00")))
	assert.True(t, s.EstablishmentNet.Equal(dec("60.00")))
	assert.True(t, s.Reconciles(dec("110.00"), decimal.Zero))
}

func TestPercentage_PlatformFee(t *testing.T) {
	s, err := percentageStrategy{}.Split(Basis{
		Total:              dec("100.00"),
		TipsInCommission:   true,
		Percentage:         dec("40"),
		PlatformFeePercent: dec("5"),
	})
	require.NoError(t, err)

	assert.True(t, s.ProfessionalCommission.Equal(dec("40.00")))
	assert.True(t, s.PlatformFee.Equal(dec("5.00")))
	assert.True(t, s.EstablishmentNet.Equal(dec("55.00")))
}

func tieredBasis(periodRevenue, base string) Basis {
	max1 := dec("1000")
	max2 := dec("5000")
	return Basis{
		Total:            dec(base),
		TipsInCommission: true,
		PeriodRevenue:    dec(periodRevenue),
		Tiers: []Tier{
			{Min: dec("0"), Max: &max1, Rate: dec("40")},
			{Min: dec("1000"), Max: &max2, Rate: dec("50")},
			{Min: dec("5000"), Max: nil, Rate: dec("60")},
		},
	}
}

func TestTiered_WithinFirstTier(t *testing.T) {
	s, err := tieredStrategy{}.Split(tieredBasis("0", "500.00"))
	require.NoError(t, err)
	assert.True(t, s.ProfessionalCommission.Equal(dec("200.00")))
}

func TestTiered_MarginalAcrossBoundary(t *testing.T) {
	// 800 acumulado + 400 desta transação: 200 a 40% + 200 a 50%
	s, err := tieredStrategy{}.Split(tieredBasis("800", "400.00"))
	require.NoError(t, err)
	assert.True(t, s.ProfessionalCommission.Equal(dec("180.00")),
		"got %s", s.ProfessionalCommission)
	assert.True(t, s.Reconciles(dec("400.00"), decimal.Zero))
}

func TestTiered_TopTierUnbounded(t *testing.T) {
	s, err := tieredStrategy{}.Split(tieredBasis("10000", "1000.00"))
	require.NoError(t, err)
	assert.True(t, s.ProfessionalCommission.Equal(dec("600.00")))
}

// A comissão marginal de N transações deve bater com a comissão de uma
// única transação do mesmo valor total: nada é re-tarifado
// retroativamente ao cruzar um limite.
func TestTiered_PathIndependence(t *testing.T) {
	var periodRevenue = decimal.Zero
	var accumulated = decimal.Zero

	for i := 0; i < 8; i++ {
		b := tieredBasis(periodRevenue.String(), "900.00")
		s, err := tieredStrategy{}.Split(b)
		require.NoError(t, err)

		accumulated = accumulated.Add(s.ProfessionalCommission)
		periodRevenue = periodRevenue.Add(dec("900.00"))
	}

	single, err := tieredStrategy{}.Split(tieredBasis("0", "7200.00"))
	require.NoError(t, err)

	assert.True(t, accumulated.Equal(single.ProfessionalCommission),
		"accumulated %s != single %s", accumulated, single.ProfessionalCommission)
}

func TestFixedPerService(t *testing.T) {
	s, err := fixedPerServiceStrategy{}.Split(Basis{
		Total:       dec("80.00"),
		FixedAmount: dec("25.00"),
	})
	require.NoError(t, err)
	assert.True(t, s.ProfessionalCommission.Equal(dec("25.00")))
	assert.True(t, s.EstablishmentNet.Equal(dec("55.00")))
}

func TestFixedPerService_CappedAtTotal(t *testing.T) {
	s, err := fixedPerServiceStrategy{}.Split(Basis{
		Total:       dec("20.00"),
		FixedAmount: dec("25.00"),
	})
	require.NoError(t, err)
	assert.True(t, s.ProfessionalCommission.Equal(dec("20.00")))
	assert.True(t, s.EstablishmentNet.IsZero())
}

func TestPeriodicOnlyModels(t *testing.T) {
	for _, model := range []string{models.CommissionBoothRental, models.CommissionSalaryOnly} {
		strategy, err := ForModel(model)
		require.NoError(t, err)

		s, err := strategy.Split(Basis{
			Total:              dec("150.00"),
			PlatformFeePercent: dec("5"),
		})
		require.NoError(t, err)

		assert.True(t, s.ProfessionalCommission.IsZero(), model)
		assert.True(t, s.PlatformFee.IsZero(), model)
		assert.True(t, s.EstablishmentNet.Equal(dec("150.00")), model)
	}
}

func TestForModel_Unknown(t *testing.T) {
	_, err := ForModel("equity_share")
	assert.Error(t, err)
}

// Reconciliação por construção: para todo modelo e toda combinação de
// valores, comissão + taxa + líquido == total.
func TestReconciliationAcrossAllModels(t *testing.T) {
	totals := []string{"0.01", "33.33", "100.00", "999.99", "10000.00"}
	tips := []string{"0", "7.77"}
	models_ := []string{
		models.CommissionPercentage,
		models.CommissionTiered,
		models.CommissionFixedPerService,
		models.CommissionSalaryPlus,
		models.CommissionBoothRental,
		models.CommissionSalaryOnly,
	}

	max1 := dec("50")
	tiers := []Tier{
		{Min: dec("0"), Max: &max1, Rate: dec("33.33")},
		{Min: dec("50"), Max: nil, Rate: dec("47.5")},
	}

	for _, model := range models_ {
		strategy, err := ForModel(model)
		require.NoError(t, err)

		for _, totalStr := range totals {
			for _, tipStr := range tips {
				b := Basis{
					Total:              dec(totalStr).Add(dec(tipStr)),
					Tip:                dec(tipStr),
					TipsInCommission:   false,
					PeriodRevenue:      dec("123.45"),
					Percentage:         dec("37.5"),
					Tiers:              tiers,
					FixedAmount:        dec("12.34"),
					PlatformFeePercent: dec("2.5"),
				}

				s, err := strategy.Split(b)
				require.NoError(t, err)
				assert.True(t, s.Reconciles(b.Total, decimal.Zero),
					"model=%s total=%s tip=%s: %s + %s + %s != %s",
					model, totalStr, tipStr,
					s.ProfessionalCommission, s.PlatformFee, s.EstablishmentNet, b.Total)
			}
		}
	}
}

func TestSplitForAgreement(t *testing.T) {
	agreement := &models.EstablishmentUser{
		CommissionModel:          models.CommissionPercentage,
		CommissionPercentage:     dec("45"),
		TipsIncludedInCommission: true,
	}

	s, err := SplitForAgreement(agreement, dec("200.00"), decimal.Zero, decimal.Zero, dec("3"))
	require.NoError(t, err)

	assert.True(t, s.ProfessionalCommission.Equal(dec("90.00")))
	assert.True(t, s.PlatformFee.Equal(dec("6.00")))
	assert.True(t, s.EstablishmentNet.Equal(dec("104.00")))
}

func TestParseTiers_RejectsOutOfOrder(t *testing.T) {
	raw := datatypes.JSON(`[
		{"min": "1000", "max": "5000", "rate": "50"},
		{"min": "0", "max": "1000", "rate": "40"}
	]`)
	_, err := ParseTiers(raw)
	assert.Error(t, err)
}

func TestParseTiers_Empty(t *testing.T) {
	tiers, err := ParseTiers(nil)
	require.NoError(t, err)
	assert.Nil(t, tiers)
}
