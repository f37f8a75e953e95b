package commission

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/agendaly/salon-platform/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Tier is one band of a tiered commission schedule. Bands are contiguous,
// non-overlapping, ordered by Min ascending; a nil Max means unbounded.
type Tier struct {
	Min  decimal.Decimal  `json:"min"`
	Max  *decimal.Decimal `json:"max"`
	Rate decimal.Decimal  `json:"rate"`
}

func ParseTiers(raw datatypes.JSON) ([]Tier, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var tiers []Tier
	if err := json.Unmarshal(raw, &tiers); err != nil {
		return nil, err
	}

	for i := 1; i < len(tiers); i++ {
		if tiers[i].Min.LessThan(tiers[i-1].Min) {
			return nil, fmt.Errorf("commission tiers out of order at index %d", i)
		}
	}

	return tiers, nil
}

// ======================================================
// SPLIT
// ======================================================

// Basis carries everything a strategy needs to split one settlement.
type Basis struct {
	Total decimal.Decimal
	Tip   decimal.Decimal

	// TipsInCommission keeps the tip inside the commission base; when
	// false the tip is excluded from the base in every model.
	TipsInCommission bool

	// PeriodRevenue is the professional's settled revenue at this
	// establishment since the period reset, the marginal base for tiered.
	PeriodRevenue decimal.Decimal

	Percentage  decimal.Decimal
	Tiers       []Tier
	FixedAmount decimal.Decimal

	PlatformFeePercent decimal.Decimal
}

// Base is the amount commissions and the platform fee are computed on.
func (b Basis) Base() decimal.Decimal {
	base := b.Total
	if !b.TipsInCommission {
		base = base.Sub(b.Tip)
		if base.IsNegative() {
			base = decimal.Zero
		}
	}
	return base
}

// Split is the settlement outcome. EstablishmentNet is always the exact
// remainder, so professional_commission + platform_fee + establishment_net
// reconciles with the total to the cent.
type Split struct {
	ProfessionalCommission decimal.Decimal
	PlatformFee            decimal.Decimal
	EstablishmentNet       decimal.Decimal
}

// Reconciles checks the settlement identity against the transaction total
// net of refunds.
func (s Split) Reconciles(total, refund decimal.Decimal) bool {
	sum := s.ProfessionalCommission.Add(s.PlatformFee).Add(s.EstablishmentNet)
	return sum.Equal(total.Sub(refund))
}

// ======================================================
// STRATEGIES
// ======================================================

type Strategy interface {
	Split(b Basis) (Split, error)
}

// ForModel selects the strategy for an agreement's stored model tag.
func ForModel(model string) (Strategy, error) {
	switch model {
	case models.CommissionPercentage:
		return percentageStrategy{}, nil
	case models.CommissionTiered:
		return tieredStrategy{}, nil
	case models.CommissionFixedPerService:
		return fixedPerServiceStrategy{}, nil
	case models.CommissionSalaryPlus:
		// Salary itself is a periodic establishment expense, not drawn
		// from the transaction; per-transaction the split is percentage.
		return percentageStrategy{}, nil
	case models.CommissionBoothRental:
		return periodicOnlyStrategy{}, nil
	case models.CommissionSalaryOnly:
		return periodicOnlyStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown commission model %q", model)
	}
}

func remainder(total, commission, fee decimal.Decimal) Split {
	return Split{
		ProfessionalCommission: commission,
		PlatformFee:            fee,
		EstablishmentNet:       total.Sub(commission).Sub(fee),
	}
}

func platformFee(b Basis) decimal.Decimal {
	if b.PlatformFeePercent.IsZero() {
		return decimal.Zero
	}
	return b.Base().Mul(b.PlatformFeePercent).Div(hundred).Round(2)
}

// -------- percentage / salary_plus --------

type percentageStrategy struct{}

func (percentageStrategy) Split(b Basis) (Split, error) {
	commission := b.Base().Mul(b.Percentage).Div(hundred).Round(2)
	return remainder(b.Total, commission, platformFee(b)), nil
}

// -------- tiered --------

type tieredStrategy struct{}

// Split applies the marginal rate of each tier to the slice of this
// transaction's base that falls inside it, measured against cumulative
// period-to-date revenue. Amounts already settled below a boundary are
// never retroactively re-rated.
func (tieredStrategy) Split(b Basis) (Split, error) {
	base := b.Base()
	from := b.PeriodRevenue
	to := from.Add(base)

	commission := decimal.Zero

	for _, t := range b.Tiers {
		lo := decimal.Max(t.Min, from)

		hi := to
		if t.Max != nil && t.Max.LessThan(hi) {
			hi = *t.Max
		}

		if hi.LessThanOrEqual(lo) {
			continue
		}

		commission = commission.Add(hi.Sub(lo).Mul(t.Rate).Div(hundred))
	}

	return remainder(b.Total, commission.Round(2), platformFee(b)), nil
}

// -------- fixed_per_service --------

type fixedPerServiceStrategy struct{}

func (fixedPerServiceStrategy) Split(b Basis) (Split, error) {
	commission := b.FixedAmount
	if commission.GreaterThan(b.Total) {
		commission = b.Total
	}
	return remainder(b.Total, commission, platformFee(b)), nil
}

// -------- booth_rental / salary_only --------

// periodicOnlyStrategy covers the models where per-appointment money does
// not split through the ledger: booth renters keep 100% outside the
// platform and settle the rental fee periodically; salaried staff are a
// payroll expense. No platform fee is taken per transaction either.
type periodicOnlyStrategy struct{}

func (periodicOnlyStrategy) Split(b Basis) (Split, error) {
	return Split{
		ProfessionalCommission: decimal.Zero,
		PlatformFee:            decimal.Zero,
		EstablishmentNet:       b.Total,
	}, nil
}

// ======================================================
// AGREEMENT DISPATCH
// ======================================================

// SplitForAgreement builds the Basis from a stored agreement and runs the
// matching strategy.
func SplitForAgreement(
	agreement *models.EstablishmentUser,
	total decimal.Decimal,
	tip decimal.Decimal,
	periodRevenue decimal.Decimal,
	platformFeePercent decimal.Decimal,
) (Split, error) {

	tiers, err := ParseTiers(agreement.CommissionTiers)
	if err != nil {
		return Split{}, err
	}

	strategy, err := ForModel(agreement.CommissionModel)
	if err != nil {
		return Split{}, err
	}

	return strategy.Split(Basis{
		Total:              total,
		Tip:                tip,
		TipsInCommission:   agreement.TipsIncludedInCommission,
		PeriodRevenue:      periodRevenue,
		Percentage:         agreement.CommissionPercentage,
		Tiers:              tiers,
		FixedAmount:        agreement.FixedAmountPerService,
		PlatformFeePercent: platformFeePercent,
	})
}
