package loyalty

import (
	"context"

	domain "github.com/agendaly/salon-platform/internal/domain/booking"
	points "github.com/agendaly/salon-platform/internal/loyalty"
	"github.com/agendaly/salon-platform/internal/models"
)

type RedeemPoints struct {
	repo domain.Repository
}

func NewRedeemPoints(repo domain.Repository) *RedeemPoints {
	return &RedeemPoints{repo: repo}
}

// Execute debits points from the customer's ledger, appending the
// redemption row and the balance update atomically.
func (uc *RedeemPoints) Execute(
	ctx context.Context,
	customerID uint,
	establishmentID *uint,
	professionalID *uint,
	amount int,
	description string,
) (*models.LoyaltyPoint, error) {

	var lp *models.LoyaltyPoint

	err := uc.repo.InTx(ctx, func(txr domain.Repository) error {
		loaded, err := txr.GetOrCreateLoyalty(ctx, customerID, establishmentID, professionalID)
		if err != nil {
			return err
		}

		row, err := points.Redeem(loaded, amount, description)
		if err != nil {
			return err
		}

		if err := txr.SaveLoyalty(ctx, loaded); err != nil {
			return err
		}
		if err := txr.CreateLoyaltyTransaction(ctx, row); err != nil {
			return err
		}

		lp = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}

	return lp, nil
}
