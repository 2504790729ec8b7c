package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Offer is a time-boxed percentage discount targeting specific products or
// whole categories. A product matches when its ID is listed OR its category is.
type Offer struct {
	ID                 int             `json:"id"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	StartDate          time.Time       `json:"start_date"`
	EndDate            time.Time       `json:"end_date"`
	ProductIDs         []int           `json:"product_ids"`
	CategoryIDs        []int           `json:"category_ids"`
	CreatedAt          time.Time       `json:"created_at"`
}

// ActiveAt reports whether the offer window covers t. Both endpoints are
// inclusive.
func (o Offer) ActiveAt(t time.Time) bool {
	return !t.Before(o.StartDate) && !t.After(o.EndDate)
}

// AppliesTo reports whether the offer targets the product, directly or through
// its category.
func (o Offer) AppliesTo(p Product) bool {
	for _, id := range o.ProductIDs {
		if id == p.ID {
			return true
		}
	}
	for _, id := range o.CategoryIDs {
		if id == p.CategoryID {
			return true
		}
	}
	return false
}

// PriceQuote is the outcome of offer resolution for one product. For an
// undiscounted product only Price is set.
type PriceQuote struct {
	Price              decimal.Decimal  `json:"price"`
	OriginalPrice      *decimal.Decimal `json:"original_price,omitempty"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage,omitempty"`
	OfferName          string           `json:"offer_name,omitempty"`
}

// Discounted reports whether an offer lowered the price.
func (q PriceQuote) Discounted() bool {
	return q.OriginalPrice != nil
}
