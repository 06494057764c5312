package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/store_credit_app/internal/core/domain"
	portsrepo "github.com/SscSPs/store_credit_app/internal/core/ports/repositories"
	"github.com/SscSPs/store_credit_app/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxNotificationRepository struct {
	pool *pgxpool.Pool
}

func newPgxNotificationRepository(pool *pgxpool.Pool) portsrepo.NotificationRepository {
	return &PgxNotificationRepository{pool: pool}
}

var _ portsrepo.NotificationRepository = (*PgxNotificationRepository)(nil)

// SaveNotification is idempotent on notification_id so task retries do not duplicate rows.
func (r *PgxNotificationRepository) SaveNotification(ctx context.Context, n domain.Notification) error {
	query := `
		INSERT INTO notifications (notification_id, user_id, recipient, kind, subject, body, amount, reference_id, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (notification_id) DO NOTHING;
	`
	_, err := r.pool.Exec(ctx, query,
		n.NotificationID,
		n.UserID,
		n.Recipient,
		string(n.Kind),
		n.Subject,
		n.Body,
		n.Amount,
		nullString(n.ReferenceID),
		n.SentAt,
	)
	if err != nil {
		return mapPgError(err, "notification %s", n.NotificationID)
	}
	return nil
}

func (r *PgxNotificationRepository) ListNotificationsByUser(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT notification_id, user_id, recipient, kind, subject, body, amount, reference_id, sent_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY sent_at DESC
		LIMIT $2;
	`
	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	notifications := []domain.Notification{}
	for rows.Next() {
		var m models.Notification
		if err := rows.Scan(&m.NotificationID, &m.UserID, &m.Recipient, &m.Kind, &m.Subject, &m.Body, &m.Amount, &m.ReferenceID, &m.SentAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification row: %w", err)
		}
		notifications = append(notifications, domain.Notification{
			NotificationID: m.NotificationID,
			UserID:         m.UserID,
			Recipient:      m.Recipient,
			Kind:           domain.NotificationKind(m.Kind),
			Subject:        m.Subject,
			Body:           m.Body,
			Amount:         m.Amount,
			ReferenceID:    derefString(m.ReferenceID),
			SentAt:         m.SentAt,
		})
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating notification rows: %w", rows.Err())
	}
	return notifications, nil
}
