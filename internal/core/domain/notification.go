package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// NotificationKind mirrors what the notification was about.
type NotificationKind string

const (
	NotificationInvoice NotificationKind = "INVOICE"
	NotificationPayment NotificationKind = "PAYMENT"
)

// Notification is the record kept for every email the worker delivers.
type Notification struct {
	NotificationID string           `json:"notificationID"`
	UserID         string           `json:"userID"`
	Recipient      string           `json:"recipient"`
	Kind           NotificationKind `json:"kind"`
	Subject        string           `json:"subject"`
	Body           string           `json:"body"`
	Amount         decimal.Decimal  `json:"amount"`
	ReferenceID    string           `json:"referenceID,omitempty"`
	SentAt         time.Time        `json:"sentAt"`
}
