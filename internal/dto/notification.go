package dto

import (
	"time"

	"github.com/SscSPs/store_credit_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListNotificationsParams defines query parameters for the notification history.
type ListNotificationsParams struct {
	Limit int `form:"limit,default=20" binding:"min=1,max=100"`
}

type NotificationResponse struct {
	NotificationID string                  `json:"notificationID"`
	Kind           domain.NotificationKind `json:"kind"`
	Subject        string                  `json:"subject"`
	Body           string                  `json:"body"`
	Amount         decimal.Decimal         `json:"amount"`
	ReferenceID    string                  `json:"referenceID,omitempty"`
	SentAt         time.Time               `json:"sentAt"`
}

type ListNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
}

func ToListNotificationResponse(notifications []domain.Notification) ListNotificationsResponse {
	out := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		out[i] = NotificationResponse{
			NotificationID: n.NotificationID,
			Kind:           n.Kind,
			Subject:        n.Subject,
			Body:           n.Body,
			Amount:         n.Amount,
			ReferenceID:    n.ReferenceID,
			SentAt:         n.SentAt,
		}
	}
	return ListNotificationsResponse{Notifications: out}
}
