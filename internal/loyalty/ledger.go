package loyalty

import (
	"github.com/shopspring/decimal"

	"github.com/agendaly/salon-platform/internal/httperr"
	"github.com/agendaly/salon-platform/internal/models"
)

// ===============================
// Tiers
// ===============================

type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

// Lifetime-point thresholds. Tier only ever moves up: it is derived from
// lifetime points, which redemption never reduces.
const (
	silverThreshold   = 1000
	goldThreshold     = 5000
	platinumThreshold = 15000
)

func TierFor(lifetimePoints int) Tier {
	switch {
	case lifetimePoints >= platinumThreshold:
		return TierPlatinum
	case lifetimePoints >= goldThreshold:
		return TierGold
	case lifetimePoints >= silverThreshold:
		return TierSilver
	default:
		return TierBronze
	}
}

func Multiplier(t Tier) decimal.Decimal {
	switch t {
	case TierPlatinum:
		return decimal.NewFromFloat(2.0)
	case TierGold:
		return decimal.NewFromFloat(1.5)
	case TierSilver:
		return decimal.NewFromFloat(1.25)
	default:
		return decimal.NewFromInt(1)
	}
}

// EarnPoints applies the current tier's multiplier, floored.
func EarnPoints(basePoints int, tier Tier) int {
	return int(decimal.NewFromInt(int64(basePoints)).Mul(Multiplier(tier)).IntPart())
}

// ===============================
// Ledger mutations
// ===============================
//
// Pure ledger math: the caller persists the account row and the
// transaction row together, inside one database transaction.

// Earn credits points on the account and returns the ledger row to append.
func Earn(lp *models.LoyaltyPoint, appointmentID *uint, basePoints int, description string) *models.LoyaltyPointTransaction {
	points := EarnPoints(basePoints, Tier(lp.Tier))

	lp.Points += points
	lp.LifetimePoints += points
	lp.Tier = string(TierFor(lp.LifetimePoints))

	return &models.LoyaltyPointTransaction{
		LoyaltyPointID: lp.ID,
		AppointmentID:  appointmentID,
		Type:           models.LoyaltyEarned,
		Points:         points,
		BalanceAfter:   lp.Points,
		Description:    description,
	}
}

// Redeem debits points, guarding the balance. Lifetime points and tier are
// untouched by spending.
func Redeem(lp *models.LoyaltyPoint, points int, description string) (*models.LoyaltyPointTransaction, error) {
	if points <= 0 {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}
	if points > lp.Points {
		return nil, httperr.ErrBusiness(httperr.CodeInsufficientBalance)
	}

	lp.Points -= points

	return &models.LoyaltyPointTransaction{
		LoyaltyPointID: lp.ID,
		Type:           models.LoyaltyRedeemed,
		Points:         -points,
		BalanceAfter:   lp.Points,
		Description:    description,
	}, nil
}
