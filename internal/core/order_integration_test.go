package core_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"herbaldesk/internal/core"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	_ = godotenv.Load("../../.env")

	// Use a dedicated TEST database to avoid wiping the live app database.
	// Set TEST_DATABASE_URL in your .env or environment to run integration tests.
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set — skipping integration test to protect live database")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	_, err = pool.Exec(ctx, `
		TRUNCATE TABLE orders, products, categories, offers, employees, expenses, notifications RESTART IDENTITY CASCADE;

		INSERT INTO categories (id, name) VALUES
		(1, 'Teas'),
		(2, 'Tinctures');
		SELECT setval('categories_id_seq', 2);

		INSERT INTO products (id, name, price, inventory, category_id) VALUES
		(1, 'Chamomile Tea',     12.50, 40, 1),
		(2, 'Valerian Tincture', 29.00,  3, 2),
		(3, 'Peppermint Tea',     9.00, 12, 1);
		SELECT setval('products_id_seq', 3);
	`)
	if err != nil {
		t.Fatalf("Failed to seed test data: %v", err)
	}
	return pool
}

func newOrderService(pool *pgxpool.Pool) core.OrderService {
	return core.NewOrderService(pool, core.NewNotificationService(pool))
}

func inventoryOf(t *testing.T, pool *pgxpool.Pool, productID int) int {
	t.Helper()
	var n int
	err := pool.QueryRow(context.Background(),
		"SELECT inventory FROM products WHERE id = $1", productID).Scan(&n)
	require.NoError(t, err)
	return n
}

func TestOrderService_CreateOrder_SnapshotAndTotal(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	svc := newOrderService(pool)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, core.OrderInput{
		Name:      "Maya Lindqvist",
		Email:     "maya@example.com",
		Address:   "14 Fern Lane",
		ProductID: 1,
		Quantity:  4,
		Shipping:  d("5.00"),
		Tax:       d("2.00"),
		Source:    core.SourceLocal,
	})
	require.NoError(t, err)

	assert.Equal(t, core.StatusPending, order.Status)
	assert.Equal(t, "Chamomile Tea", order.Product.Name)
	assert.True(t, order.Product.Price.Equal(d("12.50")))
	// 12.50*4 + 5 + 2
	assert.True(t, order.Total.Equal(d("57.00")), "got %s", order.Total)
	assert.Empty(t, order.CallLogs)

	// Creating an order must NOT touch stock.
	assert.Equal(t, 40, inventoryOf(t, pool, 1))

	// Snapshot is frozen: repricing the product leaves the order untouched.
	_, err = pool.Exec(ctx, "UPDATE products SET price = 99.00 WHERE id = 1")
	require.NoError(t, err)
	got, err := svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, got.Product.Price.Equal(d("12.50")))
}

func TestOrderService_CreateOrder_Validation(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	svc := newOrderService(pool)
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, core.OrderInput{ProductID: 1, Quantity: 1})
	assert.Error(t, err, "missing customer name")

	_, err = svc.CreateOrder(ctx, core.OrderInput{Name: "X", ProductID: 1, Quantity: 0})
	assert.Error(t, err, "zero quantity")

	_, err = svc.CreateOrder(ctx, core.OrderInput{Name: "X", ProductID: 999, Quantity: 1})
	assert.Error(t, err, "unknown product")
}

func TestOrderService_Lifecycle_DebitExactlyOnce(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	svc := newOrderService(pool)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, core.OrderInput{
		Name: "Tom Okafor", ProductID: 1, Quantity: 5,
	})
	require.NoError(t, err)

	// pending → processing debits.
	order, err = svc.UpdateOrderStatus(ctx, order.ID, core.StatusProcessing, "ops@shop")
	require.NoError(t, err)
	assert.Equal(t, core.StatusProcessing, order.Status)
	assert.Equal(t, 35, inventoryOf(t, pool, 1))
	require.NotNil(t, order.LastUpdatedAt)
	assert.Equal(t, "ops@shop", order.LastUpdatedBy)

	// processing → shipped → delivered must not debit again.
	_, err = svc.UpdateOrderStatus(ctx, order.ID, core.StatusShipped, "ops@shop")
	require.NoError(t, err)
	assert.Equal(t, 35, inventoryOf(t, pool, 1))

	order, err = svc.UpdateOrderStatus(ctx, order.ID, core.StatusDelivered, "ops@shop")
	require.NoError(t, err)
	assert.Equal(t, 35, inventoryOf(t, pool, 1))

	// delivered is terminal.
	_, err = svc.UpdateOrderStatus(ctx, order.ID, core.StatusReturned, "ops@shop")
	assert.Error(t, err)
}

func TestOrderService_CancelRestoresStock(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	svc := newOrderService(pool)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, core.OrderInput{
		Name: "Ada", ProductID: 3, Quantity: 2,
	})
	require.NoError(t, err)

	_, err = svc.UpdateOrderStatus(ctx, order.ID, core.StatusProcessing, "ops@shop")
	require.NoError(t, err)
	assert.Equal(t, 10, inventoryOf(t, pool, 3))

	_, err = svc.UpdateOrderStatus(ctx, order.ID, core.StatusCancelled, "ops@shop")
	require.NoError(t, err)
	assert.Equal(t, 12, inventoryOf(t, pool, 3))
}

func TestOrderService_CancelFromPendingStillCredits(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	svc := newOrderService(pool)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, core.OrderInput{
		Name: "Ada", ProductID: 3, Quantity: 2,
	})
	require.NoError(t, err)

	// Nothing was debited, but cancelling from pending credits anyway. That is
	// the ledger's documented behavior, not an accident.
	_, err = svc.UpdateOrderStatus(ctx, order.ID, core.StatusCancelled, "ops@shop")
	require.NoError(t, err)
	assert.Equal(t, 14, inventoryOf(t, pool, 3))
}

func TestOrderService_DebitClampsAtZero(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	svc := newOrderService(pool)
	ctx := context.Background()

	// Product 2 has 3 units; order 10.
	order, err := svc.CreateOrder(ctx, core.OrderInput{
		Name: "Big Buyer", ProductID: 2, Quantity: 10,
	})
	require.NoError(t, err)

	_, err = svc.UpdateOrderStatus(ctx, order.ID, core.StatusProcessing, "ops@shop")
	require.NoError(t, err)
	assert.Equal(t, 0, inventoryOf(t, pool, 2))

	// Low stock alert was persisted with high severity (0 ≤ 5).
	var severity string
	err = pool.QueryRow(ctx,
		"SELECT severity FROM notifications WHERE type = 'low_stock' ORDER BY id DESC LIMIT 1").Scan(&severity)
	require.NoError(t, err)
	assert.Equal(t, "high", severity)
}

func TestOrderService_MissingProductSkippedOnTransition(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	svc := newOrderService(pool)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, core.OrderInput{
		Name: "Ghost", ProductID: 3, Quantity: 1,
	})
	require.NoError(t, err)

	_, err = pool.Exec(ctx, "DELETE FROM products WHERE id = 3")
	require.NoError(t, err)

	// The product is gone; the transition still succeeds and skips the debit.
	order, err = svc.UpdateOrderStatus(ctx, order.ID, core.StatusProcessing, "ops@shop")
	require.NoError(t, err)
	assert.Equal(t, core.StatusProcessing, order.Status)
}

func TestOrderService_InvalidTransitionLeavesStockAlone(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	svc := newOrderService(pool)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, core.OrderInput{
		Name: "Ada", ProductID: 1, Quantity: 2,
	})
	require.NoError(t, err)

	_, err = svc.UpdateOrderStatus(ctx, order.ID, core.StatusProcessing, "ops@shop")
	require.NoError(t, err)

	// processing → pending is not an edge.
	_, err = svc.UpdateOrderStatus(ctx, order.ID, core.StatusPending, "ops@shop")
	assert.Error(t, err)
	assert.Equal(t, 38, inventoryOf(t, pool, 1))

	got, err := svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, core.StatusProcessing, got.Status)
}

func TestOrderService_AssignAndCallLogs(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	svc := newOrderService(pool)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, core.OrderInput{
		Name: "Ada", ProductID: 1, Quantity: 1,
	})
	require.NoError(t, err)

	require.NoError(t, svc.AssignOrder(ctx, order.ID, 7, "Priya"))

	first, err := svc.AddCallLog(ctx, order.ID, core.CallLog{
		EmployeeID:   7,
		EmployeeName: "Priya",
		Notes:        "Confirmed delivery address",
		Outcome:      core.OutcomeSuccessful,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)

	followUp := time.Now().AddDate(0, 0, 2)
	_, err = svc.AddCallLog(ctx, order.ID, core.CallLog{
		EmployeeID:       7,
		EmployeeName:     "Priya",
		Outcome:          core.OutcomeVoicemail,
		FollowUpRequired: true,
		FollowUpDate:     &followUp,
	})
	require.NoError(t, err)

	_, err = svc.AddCallLog(ctx, order.ID, core.CallLog{Outcome: core.CallOutcome("shouted")})
	assert.Error(t, err, "unknown outcome")

	got, err := svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AssignedTo)
	assert.Equal(t, 7, *got.AssignedTo)
	assert.Equal(t, "Priya", got.AssignedToName)
	require.Len(t, got.CallLogs, 2)
	// Earlier entries are untouched by later appends.
	assert.Equal(t, first.ID, got.CallLogs[0].ID)
	assert.Equal(t, "Confirmed delivery address", got.CallLogs[0].Notes)
	assert.Equal(t, core.OutcomeVoicemail, got.CallLogs[1].Outcome)
	assert.True(t, got.CallLogs[1].FollowUpRequired)
}

func TestOrderService_DeleteDoesNotRestock(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	svc := newOrderService(pool)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, core.OrderInput{
		Name: "Ada", ProductID: 1, Quantity: 5,
	})
	require.NoError(t, err)
	_, err = svc.UpdateOrderStatus(ctx, order.ID, core.StatusProcessing, "ops@shop")
	require.NoError(t, err)
	require.Equal(t, 35, inventoryOf(t, pool, 1))

	require.NoError(t, svc.DeleteOrder(ctx, order.ID))

	// Hard delete; the debited units stay gone.
	assert.Equal(t, 35, inventoryOf(t, pool, 1))
	_, err = svc.GetOrder(ctx, order.ID)
	assert.Error(t, err)
}

func TestOrderService_QueryFilters(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	svc := newOrderService(pool)
	ctx := context.Background()

	a, err := svc.CreateOrder(ctx, core.OrderInput{Name: "A", ProductID: 1, Quantity: 1})
	require.NoError(t, err)
	b, err := svc.CreateOrder(ctx, core.OrderInput{Name: "B", ProductID: 3, Quantity: 1})
	require.NoError(t, err)

	_, err = svc.UpdateOrderStatus(ctx, b.ID, core.StatusProcessing, "ops@shop")
	require.NoError(t, err)
	require.NoError(t, svc.AssignOrder(ctx, a.ID, 4, "Jon"))

	all, err := svc.GetOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := svc.GetOrdersByStatus(ctx, core.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, a.ID, pending[0].ID)

	mine, err := svc.GetOrdersByEmployee(ctx, 4)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, a.ID, mine[0].ID)
}
