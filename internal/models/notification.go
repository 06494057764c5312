package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Notification is a row of the notifications table.
type Notification struct {
	NotificationID string          `db:"notification_id"`
	UserID         string          `db:"user_id"`
	Recipient      string          `db:"recipient"`
	Kind           string          `db:"kind"`
	Subject        string          `db:"subject"`
	Body           string          `db:"body"`
	Amount         decimal.Decimal `db:"amount"`
	ReferenceID    *string         `db:"reference_id"`
	SentAt         time.Time       `db:"sent_at"`
}
