package repositories

import (
	"context"

	"github.com/SscSPs/store_credit_app/internal/core/domain"
)

// NotificationReader reads the delivery history.
type NotificationReader interface {
	// ListNotificationsByUser returns the newest notifications first.
	ListNotificationsByUser(ctx context.Context, userID string, limit int) ([]domain.Notification, error)
}

// NotificationWriter records delivered notifications.
type NotificationWriter interface {
	SaveNotification(ctx context.Context, notification domain.Notification) error
}

// NotificationRepository stores delivered notifications.
type NotificationRepository interface {
	NotificationReader
	NotificationWriter
}
