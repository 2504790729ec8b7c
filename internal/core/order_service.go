package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// OrderService manages the order lifecycle and triggers stock reconciliation at
// status transitions. Stock adjustments run in the same transaction as the
// status write, so a crash can never leave inventory out of step with the order.
type OrderService interface {
	CreateOrder(ctx context.Context, in OrderInput) (*Order, error)
	GetOrder(ctx context.Context, orderID int) (*Order, error)
	// GetOrders returns all orders, newest first.
	GetOrders(ctx context.Context) ([]Order, error)
	GetOrdersByStatus(ctx context.Context, status OrderStatus) ([]Order, error)
	GetOrdersByEmployee(ctx context.Context, employeeID int) ([]Order, error)

	// UpdateOrderStatus applies a transition of the order status graph,
	// debiting or crediting stock as the transition requires. Transitions the
	// graph does not define are rejected.
	UpdateOrderStatus(ctx context.Context, orderID int, to OrderStatus, actor string) (*Order, error)

	// AssignOrder sets the responsible employee. Last write wins; no history of
	// prior assignees is kept.
	AssignOrder(ctx context.Context, orderID, employeeID int, employeeName string) error

	// AddCallLog appends an immutable call record. The stored log gets a fresh
	// UUID and the current timestamp; prior entries are never touched.
	AddCallLog(ctx context.Context, orderID int, log CallLog) (*CallLog, error)

	// DeleteOrder hard-deletes the order. Stock already debited for it is NOT
	// restored; cancel the order first if the units should return to inventory.
	DeleteOrder(ctx context.Context, orderID int) error
}

type orderService struct {
	pool     *pgxpool.Pool
	notifier Notifier
}

// NewOrderService constructs an OrderService backed by PostgreSQL.
func NewOrderService(pool *pgxpool.Pool, notifier Notifier) OrderService {
	return &orderService{pool: pool, notifier: notifier}
}

// ── Create ───────────────────────────────────────────────────────────────────

func (s *orderService) CreateOrder(ctx context.Context, in OrderInput) (*Order, error) {
	var missing []string
	if strings.TrimSpace(in.Name) == "" {
		missing = append(missing, "name")
	}
	if in.ProductID == 0 {
		missing = append(missing, "product")
	}
	if in.Quantity < 1 {
		missing = append(missing, "quantity")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required order fields: %s", strings.Join(missing, ", "))
	}

	source := in.Source
	if source == "" {
		source = SourceOnline
	}

	// Snapshot the product. The snapshot is frozen here: later catalog edits
	// never change this order's pricing.
	var snap OrderLineItem
	err := s.pool.QueryRow(ctx,
		"SELECT id, name, price, category_id FROM products WHERE id = $1", in.ProductID,
	).Scan(&snap.ProductID, &snap.Name, &snap.Price, &snap.CategoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("product %d not found", in.ProductID)
		}
		return nil, fmt.Errorf("failed to resolve product %d: %w", in.ProductID, err)
	}

	// The storefront passes the offer-resolved unit price it showed the
	// customer; staff-entered orders fall back to the catalog price.
	if !in.UnitPrice.IsZero() {
		snap.Price = in.UnitPrice
	}

	total := snap.Price.Mul(decimal.NewFromInt(int64(in.Quantity))).Add(in.Shipping).Add(in.Tax)

	var o Order
	err = s.pool.QueryRow(ctx, `
		INSERT INTO orders (name, email, phone, address,
		                    product_id, product_name, product_price, product_category_id,
		                    quantity, total, status, source, notes, call_logs, shipping, tax, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, '[]'::jsonb, $14, $15, $16)
		RETURNING id, created_at
	`, in.Name, in.Email, in.Phone, in.Address,
		snap.ProductID, snap.Name, snap.Price, snap.CategoryID,
		in.Quantity, total, StatusPending, source, in.Notes, in.Shipping, in.Tax, in.CreatedBy,
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	o.Name = in.Name
	o.Email = in.Email
	o.Phone = in.Phone
	o.Address = in.Address
	o.Product = snap
	o.Quantity = in.Quantity
	o.Total = total
	o.Status = StatusPending
	o.Source = source
	o.Notes = in.Notes
	o.CallLogs = []CallLog{}
	o.Shipping = in.Shipping
	o.Tax = in.Tax
	o.CreatedBy = in.CreatedBy

	s.notifier.Emit("New Order Received",
		fmt.Sprintf("Order #%d has been placed by %s.", o.ID, o.Name), SeveritySuccess)
	_ = s.notifier.CreatePersistent(ctx, Notification{
		Type:     NotificationNewOrder,
		Title:    "New Order Received",
		Message:  fmt.Sprintf("Order #%d has been placed by %s.", o.ID, o.Name),
		OrderID:  &o.ID,
		Severity: SeverityInfo,
	})

	return &o, nil
}

// ── Queries ──────────────────────────────────────────────────────────────────

const orderColumns = `id, name, email, phone, address,
       product_id, product_name, product_price, product_category_id,
       quantity, total, status, source, COALESCE(notes, ''), call_logs,
       assigned_to, COALESCE(assigned_to_name, ''), shipping, tax,
       created_at, COALESCE(created_by, ''), last_updated_at, COALESCE(last_updated_by, '')`

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.Name, &o.Email, &o.Phone, &o.Address,
		&o.Product.ProductID, &o.Product.Name, &o.Product.Price, &o.Product.CategoryID,
		&o.Quantity, &o.Total, &o.Status, &o.Source, &o.Notes, &o.CallLogs,
		&o.AssignedTo, &o.AssignedToName, &o.Shipping, &o.Tax,
		&o.CreatedAt, &o.CreatedBy, &o.LastUpdatedAt, &o.LastUpdatedBy)
	if err != nil {
		return nil, err
	}
	if o.CallLogs == nil {
		o.CallLogs = []CallLog{}
	}
	return &o, nil
}

func (s *orderService) GetOrder(ctx context.Context, orderID int) (*Order, error) {
	o, err := scanOrder(s.pool.QueryRow(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE id = $1", orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("order %d not found", orderID)
		}
		return nil, fmt.Errorf("failed to fetch order %d: %w", orderID, err)
	}
	return o, nil
}

func (s *orderService) queryOrders(ctx context.Context, query string, args ...any) ([]Order, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func (s *orderService) GetOrders(ctx context.Context) ([]Order, error) {
	return s.queryOrders(ctx, "SELECT "+orderColumns+" FROM orders ORDER BY created_at DESC")
}

func (s *orderService) GetOrdersByStatus(ctx context.Context, status OrderStatus) ([]Order, error) {
	return s.queryOrders(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE status = $1 ORDER BY created_at DESC", status)
}

func (s *orderService) GetOrdersByEmployee(ctx context.Context, employeeID int) ([]Order, error) {
	return s.queryOrders(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE assigned_to = $1 ORDER BY created_at DESC", employeeID)
}

// ── Status transitions ───────────────────────────────────────────────────────

func (s *orderService) UpdateOrderStatus(ctx context.Context, orderID int, to OrderStatus, actor string) (*Order, error) {
	if !to.Valid() {
		return nil, fmt.Errorf("unknown order status %q", to)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var from OrderStatus
	var productID, quantity int
	err = tx.QueryRow(ctx,
		"SELECT status, product_id, quantity FROM orders WHERE id = $1 FOR UPDATE",
		orderID,
	).Scan(&from, &productID, &quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("order %d not found", orderID)
		}
		return nil, fmt.Errorf("failed to fetch order %d: %w", orderID, err)
	}

	if !CanTransition(from, to) {
		return nil, fmt.Errorf("order %d cannot move from %s to %s", orderID, from, to)
	}

	// Reconcile stock in the SAME transaction as the status write: both land
	// together or not at all.
	var adj *StockAdjustment
	switch transitionStockEffect(from, to) {
	case stockDebit:
		adj, err = debitStockTx(ctx, tx, productID, quantity, actor)
	case stockCredit:
		_, err = creditStockTx(ctx, tx, productID, quantity, actor)
	}
	if err != nil {
		return nil, err
	}

	if _, err = tx.Exec(ctx,
		"UPDATE orders SET status = $1, last_updated_at = NOW(), last_updated_by = $2 WHERE id = $3",
		to, actor, orderID,
	); err != nil {
		return nil, fmt.Errorf("failed to update order %d status: %w", orderID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit status update for order %d: %w", orderID, err)
	}

	s.notifier.Emit("Order Updated",
		fmt.Sprintf("Order #%d has been updated to %s.", orderID, to), SeverityInfo)

	if adj != nil && adj.LowStock() {
		severity := adj.AlertSeverity()
		s.notifier.Emit("Low Stock Alert",
			fmt.Sprintf("Product %q has low stock (%d remaining)", adj.ProductName, adj.NewInventory), severity)
		_ = s.notifier.CreatePersistent(ctx, Notification{
			Type:      NotificationLowStock,
			Title:     "Low Stock Alert",
			Message:   fmt.Sprintf("Product %q has low stock (%d remaining)", adj.ProductName, adj.NewInventory),
			ProductID: &adj.ProductID,
			Severity:  severity,
		})
	}

	return s.GetOrder(ctx, orderID)
}

// ── Assignment and call logs ─────────────────────────────────────────────────

func (s *orderService) AssignOrder(ctx context.Context, orderID, employeeID int, employeeName string) error {
	tag, err := s.pool.Exec(ctx,
		"UPDATE orders SET assigned_to = $1, assigned_to_name = $2, last_updated_at = NOW() WHERE id = $3",
		employeeID, employeeName, orderID)
	if err != nil {
		return fmt.Errorf("failed to assign order %d: %w", orderID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %d not found", orderID)
	}

	s.notifier.Emit("Order Assigned",
		fmt.Sprintf("Order #%d has been assigned to %s.", orderID, employeeName), SeverityInfo)
	return nil
}

func (s *orderService) AddCallLog(ctx context.Context, orderID int, log CallLog) (*CallLog, error) {
	if log.Outcome == "" {
		return nil, fmt.Errorf("call log requires an outcome")
	}
	switch log.Outcome {
	case OutcomeSuccessful, OutcomeUnsuccessful, OutcomeVoicemail, OutcomeNoAnswer:
	default:
		return nil, fmt.Errorf("unknown call outcome %q", log.Outcome)
	}

	log.ID = uuid.NewString()
	log.Date = time.Now()

	// jsonb || appends without rewriting existing entries; prior logs are
	// immutable by construction.
	tag, err := s.pool.Exec(ctx, `
		UPDATE orders
		SET call_logs = call_logs || $1::jsonb, last_updated_at = NOW(), last_updated_by = $2
		WHERE id = $3
	`, []CallLog{log}, log.EmployeeName, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to append call log to order %d: %w", orderID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("order %d not found", orderID)
	}
	return &log, nil
}

// ── Delete ───────────────────────────────────────────────────────────────────

func (s *orderService) DeleteOrder(ctx context.Context, orderID int) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM orders WHERE id = $1", orderID)
	if err != nil {
		return fmt.Errorf("failed to delete order %d: %w", orderID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %d not found", orderID)
	}

	s.notifier.Emit("Order Deleted", fmt.Sprintf("Order #%d has been deleted.", orderID), SeverityInfo)
	return nil
}
