package services

import (
	"context"

	"github.com/SscSPs/store_credit_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// NotificationSvc dispatches customer emails. Both methods are best effort:
// failures are logged and never returned, so they cannot undo a financial operation.
type NotificationSvc interface {
	NotifyInvoice(ctx context.Context, sale domain.Sale)
	NotifyPayment(ctx context.Context, userID string, concept string, amount decimal.Decimal)
}

// NotificationHistorySvc lists what was delivered to a customer.
type NotificationHistorySvc interface {
	ListMyNotifications(ctx context.Context, userID string, limit int) ([]domain.Notification, error)
}

// NotificationSvcFacade combines dispatch and history.
type NotificationSvcFacade interface {
	NotificationSvc
	NotificationHistorySvc
}

// NotificationQueue hands a notification to the background worker.
type NotificationQueue interface {
	EnqueueNotification(ctx context.Context, notification domain.Notification) error
}
