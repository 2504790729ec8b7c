package core_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"herbaldesk/internal/core"
)

func TestExpenseService_CRUD(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	svc := core.NewExpenseService(pool)
	ctx := context.Background()

	e, err := svc.CreateExpense(ctx, core.ExpenseInput{
		Name:        "August electricity",
		Amount:      d("84.20"),
		Category:    "Utilities",
		Date:        time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC),
		Description: "shop meter",
	})
	require.NoError(t, err)
	assert.True(t, e.Amount.Equal(d("84.20")))

	older, err := svc.CreateExpense(ctx, core.ExpenseInput{
		Name:     "Dried chamomile restock",
		Amount:   d("310.00"),
		Category: "Inventory",
		Date:     time.Date(2026, 7, 20, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	list, err := svc.GetExpenses(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, e.ID, list[0].ID, "newest expense date first")

	updated, err := svc.UpdateExpense(ctx, older.ID, core.ExpenseInput{
		Name:     "Dried chamomile restock",
		Amount:   d("295.50"),
		Category: "Inventory",
		Date:     older.Date,
	})
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(d("295.50")))

	require.NoError(t, svc.DeleteExpense(ctx, older.ID))
	_, err = svc.GetExpense(ctx, older.ID)
	assert.Error(t, err)
}

func TestExpenseService_DefaultsDateToNow(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	svc := core.NewExpenseService(pool)

	e, err := svc.CreateExpense(context.Background(), core.ExpenseInput{
		Name:     "Courier run",
		Amount:   d("18.00"),
		Category: "Shipping",
	})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), e.Date, time.Minute)
}

func TestExpenseService_Validation(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	svc := core.NewExpenseService(pool)
	ctx := context.Background()

	_, err := svc.CreateExpense(ctx, core.ExpenseInput{
		Amount:   d("10"),
		Category: "Utilities",
	})
	assert.Error(t, err, "name required")

	_, err = svc.CreateExpense(ctx, core.ExpenseInput{
		Name:     "Refund mistake",
		Amount:   d("-5"),
		Category: "Utilities",
	})
	assert.Error(t, err, "negative amount")

	_, err = svc.CreateExpense(ctx, core.ExpenseInput{
		Name:     "Misc",
		Amount:   d("5"),
		Category: "Snacks",
	})
	assert.Error(t, err, "unknown category")
}
