package core_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"herbaldesk/internal/core"
)

var pricingNow = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

func offerWindow(days int) (time.Time, time.Time) {
	return pricingNow.AddDate(0, 0, -days), pricingNow.AddDate(0, 0, days)
}

func testProduct(id, categoryID int, price string) core.Product {
	return core.Product{
		ID:         id,
		Name:       "Chamomile Tea",
		Price:      decimal.RequireFromString(price),
		CategoryID: categoryID,
	}
}

func TestResolvePrice_NoOffers(t *testing.T) {
	p := testProduct(1, 10, "24.99")

	q := core.ResolvePrice(p, nil, pricingNow)

	assert.True(t, q.Price.Equal(decimal.RequireFromString("24.99")))
	assert.False(t, q.Discounted())
	assert.Nil(t, q.OriginalPrice)
	assert.Nil(t, q.DiscountPercentage)
	assert.Empty(t, q.OfferName)
}

func TestResolvePrice_ProductTargetedOffer(t *testing.T) {
	p := testProduct(1, 10, "100.00")
	start, end := offerWindow(5)
	offers := []core.Offer{{
		ID:                 1,
		Name:               "Summer Sale",
		DiscountPercentage: decimal.RequireFromString("20"),
		StartDate:          start,
		EndDate:            end,
		ProductIDs:         []int{1},
	}}

	q := core.ResolvePrice(p, offers, pricingNow)

	require.True(t, q.Discounted())
	assert.True(t, q.Price.Equal(decimal.RequireFromString("80")))
	assert.True(t, q.OriginalPrice.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, q.DiscountPercentage.Equal(decimal.RequireFromString("20")))
	assert.Equal(t, "Summer Sale", q.OfferName)
}

func TestResolvePrice_CategoryTargetedOffer(t *testing.T) {
	p := testProduct(7, 3, "50.00")
	start, end := offerWindow(5)
	offers := []core.Offer{{
		ID:                 1,
		Name:               "Tea Week",
		DiscountPercentage: decimal.RequireFromString("10"),
		StartDate:          start,
		EndDate:            end,
		CategoryIDs:        []int{3},
	}}

	q := core.ResolvePrice(p, offers, pricingNow)

	require.True(t, q.Discounted())
	assert.True(t, q.Price.Equal(decimal.RequireFromString("45")))
}

func TestResolvePrice_NonMatchingOfferIgnored(t *testing.T) {
	p := testProduct(7, 3, "50.00")
	start, end := offerWindow(5)
	offers := []core.Offer{{
		ID:                 1,
		DiscountPercentage: decimal.RequireFromString("10"),
		StartDate:          start,
		EndDate:            end,
		ProductIDs:         []int{99},
		CategoryIDs:        []int{42},
	}}

	q := core.ResolvePrice(p, offers, pricingNow)

	assert.False(t, q.Discounted())
}

func TestResolvePrice_WindowBoundsInclusive(t *testing.T) {
	p := testProduct(1, 0, "10.00")
	mk := func(start, end time.Time) []core.Offer {
		return []core.Offer{{
			ID:                 1,
			DiscountPercentage: decimal.RequireFromString("50"),
			StartDate:          start,
			EndDate:            end,
			ProductIDs:         []int{1},
		}}
	}

	// Starts exactly now: active.
	q := core.ResolvePrice(p, mk(pricingNow, pricingNow.AddDate(0, 0, 1)), pricingNow)
	assert.True(t, q.Discounted(), "offer starting at now should be active")

	// Ends exactly now: still active.
	q = core.ResolvePrice(p, mk(pricingNow.AddDate(0, 0, -1), pricingNow), pricingNow)
	assert.True(t, q.Discounted(), "offer ending at now should be active")

	// Not yet started.
	q = core.ResolvePrice(p, mk(pricingNow.Add(time.Second), pricingNow.AddDate(0, 0, 1)), pricingNow)
	assert.False(t, q.Discounted(), "future offer must not apply")

	// Already over.
	q = core.ResolvePrice(p, mk(pricingNow.AddDate(0, 0, -2), pricingNow.Add(-time.Second)), pricingNow)
	assert.False(t, q.Discounted(), "expired offer must not apply")
}

func TestResolvePrice_HighestDiscountWins(t *testing.T) {
	p := testProduct(1, 3, "200.00")
	start, end := offerWindow(5)
	offers := []core.Offer{
		{ID: 1, Name: "Small", DiscountPercentage: decimal.RequireFromString("5"),
			StartDate: start, EndDate: end, ProductIDs: []int{1}},
		{ID: 2, Name: "Big", DiscountPercentage: decimal.RequireFromString("30"),
			StartDate: start, EndDate: end, CategoryIDs: []int{3}},
		{ID: 3, Name: "Medium", DiscountPercentage: decimal.RequireFromString("15"),
			StartDate: start, EndDate: end, ProductIDs: []int{1}},
	}

	q := core.ResolvePrice(p, offers, pricingNow)

	require.True(t, q.Discounted())
	assert.Equal(t, "Big", q.OfferName)
	assert.True(t, q.Price.Equal(decimal.RequireFromString("140")))
}

func TestResolvePrice_TieBreaksOnLowestOfferID(t *testing.T) {
	p := testProduct(1, 0, "80.00")
	start, end := offerWindow(5)
	// Same discount, listed in reverse ID order: resolution must not depend on
	// slice order.
	offers := []core.Offer{
		{ID: 9, Name: "Later", DiscountPercentage: decimal.RequireFromString("25"),
			StartDate: start, EndDate: end, ProductIDs: []int{1}},
		{ID: 2, Name: "Earlier", DiscountPercentage: decimal.RequireFromString("25"),
			StartDate: start, EndDate: end, ProductIDs: []int{1}},
	}

	q := core.ResolvePrice(p, offers, pricingNow)

	require.True(t, q.Discounted())
	assert.Equal(t, "Earlier", q.OfferName)
}

func TestResolvePrice_KeepsFullPrecision(t *testing.T) {
	p := testProduct(1, 0, "19.99")
	start, end := offerWindow(5)
	offers := []core.Offer{{
		ID:                 1,
		DiscountPercentage: decimal.RequireFromString("15"),
		StartDate:          start,
		EndDate:            end,
		ProductIDs:         []int{1},
	}}

	q := core.ResolvePrice(p, offers, pricingNow)

	// 19.99 - 19.99*0.15 = 16.9915, unrounded.
	assert.True(t, q.Price.Equal(decimal.RequireFromString("16.9915")), "got %s", q.Price)
}

func TestResolveCatalog(t *testing.T) {
	start, end := offerWindow(5)
	products := []core.Product{
		testProduct(1, 3, "10.00"),
		testProduct(2, 4, "20.00"),
	}
	offers := []core.Offer{{
		ID:                 1,
		DiscountPercentage: decimal.RequireFromString("10"),
		StartDate:          start,
		EndDate:            end,
		CategoryIDs:        []int{3},
	}}

	priced := core.ResolveCatalog(products, offers, pricingNow)

	require.Len(t, priced, 2)
	assert.True(t, priced[0].Quote.Discounted())
	assert.True(t, priced[0].Quote.Price.Equal(decimal.RequireFromString("9")))
	assert.False(t, priced[1].Quote.Discounted())
	assert.True(t, priced[1].Quote.Price.Equal(decimal.RequireFromString("20.00")))
}
