package core

import (
	"time"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// ResolvePrice computes the effective price of a product against a set of
// offers at the given instant. Inactive and non-matching offers are ignored;
// among the matches the strictly highest discount wins, with ties broken by the
// lowest offer ID so resolution is deterministic regardless of slice order.
//
// The resolver trusts DiscountPercentage as stored — range checks happen at
// offer creation, not here.
func ResolvePrice(p Product, offers []Offer, now time.Time) PriceQuote {
	var best *Offer
	for i := range offers {
		o := &offers[i]
		if !o.ActiveAt(now) || !o.AppliesTo(p) {
			continue
		}
		if best == nil ||
			o.DiscountPercentage.GreaterThan(best.DiscountPercentage) ||
			(o.DiscountPercentage.Equal(best.DiscountPercentage) && o.ID < best.ID) {
			best = o
		}
	}

	if best == nil {
		return PriceQuote{Price: p.Price}
	}

	original := p.Price
	discount := best.DiscountPercentage
	discounted := original.Sub(original.Mul(discount).Div(oneHundred))

	return PriceQuote{
		Price:              discounted,
		OriginalPrice:      &original,
		DiscountPercentage: &discount,
		OfferName:          best.Name,
	}
}

// ResolveCatalog applies ResolvePrice to every product, pairing each with its
// quote. Used by the storefront listing so discounted prices render in one pass.
func ResolveCatalog(products []Product, offers []Offer, now time.Time) []PricedProduct {
	out := make([]PricedProduct, len(products))
	for i, p := range products {
		out[i] = PricedProduct{Product: p, Quote: ResolvePrice(p, offers, now)}
	}
	return out
}

// PricedProduct is a product joined with its resolved price quote.
type PricedProduct struct {
	Product Product    `json:"product"`
	Quote   PriceQuote `json:"quote"`
}
