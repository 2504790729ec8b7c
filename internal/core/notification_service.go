package core

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NotificationService stores dashboard notifications and doubles as the
// Notifier used by the order and inventory paths.
type NotificationService interface {
	Notifier

	// GetNotifications returns the most recent notifications, newest first,
	// capped at limit (0 means a sensible default).
	GetNotifications(ctx context.Context, limit int) ([]Notification, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, notificationID int) error
	MarkAllRead(ctx context.Context) error
	DeleteNotification(ctx context.Context, notificationID int) error
}

const defaultNotificationLimit = 50

type notificationService struct {
	pool *pgxpool.Pool
}

// NewNotificationService constructs a NotificationService backed by PostgreSQL.
func NewNotificationService(pool *pgxpool.Pool) NotificationService {
	return &notificationService{pool: pool}
}

// Emit is the transient channel: a log line. Delivery is best effort and
// nothing is persisted; callers that need durability use CreatePersistent.
func (s *notificationService) Emit(title, message string, severity Severity) {
	log.Printf("notify [%s] %s: %s", severity, title, message)
}

func (s *notificationService) CreatePersistent(ctx context.Context, n Notification) error {
	if n.Severity == "" {
		n.Severity = SeverityInfo
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO notifications (type, title, message, product_id, order_id, severity)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, n.Type, n.Title, n.Message, n.ProductID, n.OrderID, n.Severity)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (s *notificationService) GetNotifications(ctx context.Context, limit int) ([]Notification, error) {
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, type, title, message, product_id, order_id, severity, read, created_at
		FROM notifications
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.Type, &n.Title, &n.Message,
			&n.ProductID, &n.OrderID, &n.Severity, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (s *notificationService) UnreadCount(ctx context.Context) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx,
		"SELECT count(*) FROM notifications WHERE read = false").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func (s *notificationService) MarkRead(ctx context.Context, notificationID int) error {
	tag, err := s.pool.Exec(ctx,
		"UPDATE notifications SET read = true WHERE id = $1", notificationID)
	if err != nil {
		return fmt.Errorf("failed to mark notification %d read: %w", notificationID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("notification %d not found", notificationID)
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx,
		"UPDATE notifications SET read = true WHERE read = false"); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

func (s *notificationService) DeleteNotification(ctx context.Context, notificationID int) error {
	tag, err := s.pool.Exec(ctx,
		"DELETE FROM notifications WHERE id = $1", notificationID)
	if err != nil {
		return fmt.Errorf("failed to delete notification %d: %w", notificationID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("notification %d not found", notificationID)
	}
	return nil
}
