// Package pricing computes stay prices from the room variant rules.
package pricing

import (
	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/shopspring/decimal"
)

// Places is the number of fractional digits kept in a total.
const Places = 2

// Price returns the total for nights in a room of the given variant.
// Non-positive nights and unknown variants price to zero; callers validate before pricing.
func Price(variant domain.RoomVariant, nights int) decimal.Decimal {
	if nights <= 0 || !variant.Valid() {
		return decimal.Zero
	}
	spec := variant.Spec()
	total := spec.BasePrice.Mul(decimal.NewFromInt(int64(nights)))
	if nights > domain.DiscountThreshold {
		total = total.Mul(spec.Discount)
	}
	return total.Round(Places)
}

// Quote is a priced stay.
type Quote struct {
	Variant  domain.RoomVariant `json:"room_type"`
	Nights   int                `json:"nights"`
	Subtotal decimal.Decimal    `json:"subtotal"`
	Discount decimal.Decimal    `json:"discount"`
	Total    decimal.Decimal    `json:"total"`
}

// QuoteStay prices a stay and reports how much the variant discount saved.
func QuoteStay(variant domain.RoomVariant, nights int) Quote {
	subtotal := decimal.Zero
	if nights > 0 && variant.Valid() {
		subtotal = variant.Spec().BasePrice.Mul(decimal.NewFromInt(int64(nights)))
	}
	total := Price(variant, nights)
	return Quote{
		Variant:  variant,
		Nights:   nights,
		Subtotal: subtotal,
		Discount: subtotal.Sub(total),
		Total:    total,
	}
}
