package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/store_credit_app/internal/core/domain"
	portsrepo "github.com/SscSPs/store_credit_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/store_credit_app/internal/core/ports/services"
	"github.com/SscSPs/store_credit_app/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	enqueueTimeout          = 5 * time.Second
	defaultNotificationPage = 20
	maxNotificationPage     = 100
)

type notificationService struct {
	BaseService
	queue    portssvc.NotificationQueue
	accounts portsrepo.AccountReader
	users    portsrepo.UserReader
	history  portsrepo.NotificationReader
}

// NewNotificationService builds notifications and hands them to queue. A nil
// queue turns every call into a debug log line. history is what the worker saved.
func NewNotificationService(
	queue portssvc.NotificationQueue,
	accounts portsrepo.AccountReader,
	users portsrepo.UserReader,
	history portsrepo.NotificationReader,
) portssvc.NotificationSvcFacade {
	return &notificationService{
		queue:    queue,
		accounts: accounts,
		users:    users,
		history:  history,
	}
}

var _ portssvc.NotificationSvcFacade = (*notificationService)(nil)

func (s *notificationService) ListMyNotifications(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	if limit <= 0 || limit > maxNotificationPage {
		limit = defaultNotificationPage
	}
	notifications, err := s.history.ListNotificationsByUser(ctx, userID, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list notifications", slog.String("user_id", userID))
		return nil, err
	}
	return notifications, nil
}

func (s *notificationService) NotifyInvoice(ctx context.Context, sale domain.Sale) {
	if !sale.HasAccount() {
		return
	}
	account, err := s.accounts.FindAccountByID(ctx, sale.AccountID)
	if err != nil {
		s.LogError(ctx, err, "Invoice notification skipped: account lookup failed", slog.String("sale_id", sale.SaleID))
		return
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Sale #%s (%s)\n", sale.SaleID, sale.Kind)
	for _, item := range sale.Items {
		fmt.Fprintf(&body, "  %d x %s @ %s = %s\n",
			item.Quantity, item.ProductID, utils.FormatMoney(item.UnitPrice), utils.FormatMoney(item.Subtotal))
	}
	fmt.Fprintf(&body, "Total: %s\n", utils.FormatMoney(sale.Total))
	if sale.Kind == domain.SaleCredit {
		fmt.Fprintf(&body, "Charged to your store credit account.\n")
	}

	s.send(ctx, domain.Notification{
		UserID:      account.UserID,
		Kind:        domain.NotificationInvoice,
		Subject:     "Invoice for sale #" + sale.SaleID,
		Body:        body.String(),
		Amount:      sale.Total,
		ReferenceID: sale.SaleID,
	})
}

func (s *notificationService) NotifyPayment(ctx context.Context, userID string, concept string, amount decimal.Decimal) {
	s.send(ctx, domain.Notification{
		UserID:  userID,
		Kind:    domain.NotificationPayment,
		Subject: "Payment received",
		Body:    fmt.Sprintf("We received your payment of %s.\nConcept: %s\n", utils.FormatMoney(amount), concept),
		Amount:  amount,
	})
}

// send resolves the recipient and enqueues. The enqueue outlives request
// cancellation but is bounded by enqueueTimeout.
func (s *notificationService) send(ctx context.Context, n domain.Notification) {
	if s.queue == nil {
		s.LogDebug(ctx, "Notification queue not configured", slog.String("kind", string(n.Kind)))
		return
	}
	user, err := s.users.FindUserByID(ctx, n.UserID)
	if err != nil {
		s.LogError(ctx, err, "Notification skipped: user lookup failed", slog.String("user_id", n.UserID))
		return
	}
	n.NotificationID = uuid.NewString()
	n.Recipient = user.Email

	enqueueCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), enqueueTimeout)
	defer cancel()
	if err := s.queue.EnqueueNotification(enqueueCtx, n); err != nil {
		s.LogError(ctx, err, "Failed to enqueue notification",
			slog.String("user_id", n.UserID),
			slog.String("kind", string(n.Kind)))
		return
	}
	s.LogDebug(ctx, "Notification enqueued",
		slog.String("notification_id", n.NotificationID),
		slog.String("kind", string(n.Kind)))
}
