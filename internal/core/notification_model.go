package core

import (
	"context"
	"time"
)

// Severity grades a notification for display.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityMedium  Severity = "medium"
	SeverityHigh    Severity = "high"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// NotificationType tags what kind of event produced a persistent notification.
type NotificationType string

const (
	NotificationLowStock    NotificationType = "low_stock"
	NotificationOrderStatus NotificationType = "order_status"
	NotificationNewOrder    NotificationType = "new_order"
)

// Notification is a persisted record surfaced by the dashboard bell/badge.
type Notification struct {
	ID        int              `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	ProductID *int             `json:"product_id,omitempty"`
	OrderID   *int             `json:"order_id,omitempty"`
	Severity  Severity         `json:"severity"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}

// Notifier delivers user-visible alerts. Emit is fire-and-forget with no
// delivery guarantee; CreatePersistent writes to the notification log read back
// by the dashboard.
type Notifier interface {
	Emit(title, message string, severity Severity)
	CreatePersistent(ctx context.Context, n Notification) error
}
