package pricing

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/agendaly/salon-platform/internal/httperr"
	"github.com/agendaly/salon-platform/internal/models"
)

// DeliveryTier is one distance band of a home-service fee schedule.
// Bands are ordered and matched half-open: from_km <= d < to_km.
type DeliveryTier struct {
	FromKm float64         `json:"from_km"`
	ToKm   float64         `json:"to_km"`
	Fee    decimal.Decimal `json:"fee"`
}

func ParseDeliveryTiers(raw datatypes.JSON) ([]DeliveryTier, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var tiers []DeliveryTier
	if err := json.Unmarshal(raw, &tiers); err != nil {
		return nil, err
	}
	return tiers, nil
}

// ======================================================
// QUOTE
// ======================================================

type Quote struct {
	ServicePrice decimal.Decimal `json:"service_price"`
	Surcharge    decimal.Decimal `json:"surcharge"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Discount     decimal.Decimal `json:"discount"`
	Total        decimal.Decimal `json:"total"`
}

type Input struct {
	Service      *models.Service
	Override     *models.ServicePriceOverride
	LocationType string
	DistanceKm   float64
	Discount     decimal.Decimal
}

// Compute derives the booking price: professional override price when one
// exists, home-service surcharge (tiered or flat), discount clamped so the
// total never goes negative. Decimal arithmetic end to end.
func Compute(in Input) (Quote, error) {
	price := in.Service.BasePrice
	if in.Override != nil {
		price = in.Override.Price
	}

	surcharge := decimal.Zero

	if in.LocationType == models.LocationHomeService {
		if in.Service.HomeServiceRadiusKm > 0 && in.DistanceKm > in.Service.HomeServiceRadiusKm {
			return Quote{}, httperr.ErrBusiness(httperr.CodeOutOfCoverage)
		}

		tiers, err := ParseDeliveryTiers(in.Service.DeliveryTiers)
		if err != nil {
			return Quote{}, err
		}

		matched := false
		for _, t := range tiers {
			if in.DistanceKm >= t.FromKm && in.DistanceKm < t.ToKm {
				surcharge = t.Fee
				matched = true
				break
			}
		}

		if !matched {
			surcharge = in.Service.HomeServiceSurcharge
		}
	}

	discount := in.Discount
	if discount.IsNegative() {
		discount = decimal.Zero
	}

	subtotal := price.Add(surcharge)

	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}

	return Quote{
		ServicePrice: price,
		Surcharge:    surcharge,
		Subtotal:     subtotal,
		Discount:     discount,
		Total:        subtotal.Sub(discount),
	}, nil
}
