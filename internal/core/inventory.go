package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// lowStockThreshold is the inventory level at or below which a debit raises an
// alert; at or below lowStockCritical the alert severity is high.
const (
	lowStockThreshold = 10
	lowStockCritical  = 5
)

// StockAdjustment describes the outcome of a debit or credit so the caller can
// emit alerts after its transaction commits.
type StockAdjustment struct {
	ProductID    int
	ProductName  string
	OldInventory int
	NewInventory int
}

// LowStock reports whether the adjustment left the product at or below the
// alert threshold.
func (a StockAdjustment) LowStock() bool {
	return a.NewInventory <= lowStockThreshold
}

// Severity grades the low-stock alert for this adjustment.
func (a StockAdjustment) AlertSeverity() Severity {
	if a.NewInventory <= lowStockCritical {
		return SeverityHigh
	}
	return SeverityMedium
}

// debitStockTx decreases a product's inventory by qty within the caller's
// transaction, clamping at zero. A missing product is skipped silently —
// (nil, nil) — and the status update proceeds; the order snapshot may outlive
// the catalog record.
func debitStockTx(ctx context.Context, tx pgx.Tx, productID, qty int, actor string) (*StockAdjustment, error) {
	var name string
	var current int
	err := tx.QueryRow(ctx,
		"SELECT name, inventory FROM products WHERE id = $1 FOR UPDATE",
		productID,
	).Scan(&name, &current)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock product %d for stock debit: %w", productID, err)
	}

	next := current - qty
	if next < 0 {
		next = 0
	}

	if _, err := tx.Exec(ctx,
		"UPDATE products SET inventory = $1, updated_at = NOW(), last_updated_by = $2 WHERE id = $3",
		next, actor, productID,
	); err != nil {
		return nil, fmt.Errorf("failed to debit stock for product %d: %w", productID, err)
	}

	return &StockAdjustment{ProductID: productID, ProductName: name, OldInventory: current, NewInventory: next}, nil
}

// creditStockTx restores qty units of a product's inventory within the caller's
// transaction. Unbounded above. Missing products are skipped like in debitStockTx.
func creditStockTx(ctx context.Context, tx pgx.Tx, productID, qty int, actor string) (*StockAdjustment, error) {
	var name string
	var current int
	err := tx.QueryRow(ctx,
		"SELECT name, inventory FROM products WHERE id = $1 FOR UPDATE",
		productID,
	).Scan(&name, &current)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock product %d for stock credit: %w", productID, err)
	}

	next := current + qty

	if _, err := tx.Exec(ctx,
		"UPDATE products SET inventory = $1, updated_at = NOW(), last_updated_by = $2 WHERE id = $3",
		next, actor, productID,
	); err != nil {
		return nil, fmt.Errorf("failed to credit stock for product %d: %w", productID, err)
	}

	return &StockAdjustment{ProductID: productID, ProductName: name, OldInventory: current, NewInventory: next}, nil
}
