package core_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"herbaldesk/internal/core"
)

func TestOfferService_CRUDAndActiveWindow(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	svc := core.NewOfferService(pool)
	ctx := context.Background()

	now := time.Now()

	live, err := svc.CreateOffer(ctx, core.Offer{
		Name:               "Harvest Sale",
		DiscountPercentage: d("20"),
		StartDate:          now.AddDate(0, 0, -1),
		EndDate:            now.AddDate(0, 0, 6),
		CategoryIDs:        []int{1},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{}, live.ProductIDs, "nil id list is stored as empty")

	_, err = svc.CreateOffer(ctx, core.Offer{
		Name:               "Next Month",
		DiscountPercentage: d("10"),
		StartDate:          now.AddDate(0, 1, 0),
		EndDate:            now.AddDate(0, 1, 7),
		ProductIDs:         []int{1, 3},
	})
	require.NoError(t, err)

	active, err := svc.GetActiveOffers(ctx, now)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Harvest Sale", active[0].Name)
	assert.Equal(t, []int{1}, active[0].CategoryIDs)

	all, err := svc.GetOffers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	live.DiscountPercentage = d("25")
	require.NoError(t, svc.UpdateOffer(ctx, *live))
	got, err := svc.GetOffer(ctx, live.ID)
	require.NoError(t, err)
	assert.True(t, got.DiscountPercentage.Equal(d("25")))

	require.NoError(t, svc.DeleteOffer(ctx, live.ID))
	_, err = svc.GetOffer(ctx, live.ID)
	assert.Error(t, err)
}

func TestOfferService_Validation(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	svc := core.NewOfferService(pool)
	ctx := context.Background()

	now := time.Now()
	base := core.Offer{
		Name:               "Sale",
		DiscountPercentage: d("10"),
		StartDate:          now,
		EndDate:            now.AddDate(0, 0, 7),
	}

	o := base
	o.Name = "  "
	_, err := svc.CreateOffer(ctx, o)
	assert.Error(t, err, "blank name")

	o = base
	o.DiscountPercentage = d("0")
	_, err = svc.CreateOffer(ctx, o)
	assert.Error(t, err, "discount below 1")

	o = base
	o.DiscountPercentage = d("100")
	_, err = svc.CreateOffer(ctx, o)
	assert.Error(t, err, "discount above 99")

	o = base
	o.EndDate = now.AddDate(0, 0, -1)
	_, err = svc.CreateOffer(ctx, o)
	assert.Error(t, err, "end before start")

	o = base
	o.StartDate = time.Time{}
	_, err = svc.CreateOffer(ctx, o)
	assert.Error(t, err, "missing start date")
}
