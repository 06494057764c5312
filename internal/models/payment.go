package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is a row of the payments table.
type Payment struct {
	PaymentID    string          `db:"payment_id"`
	AccountID    string          `db:"account_id"`
	Amount       decimal.Decimal `db:"amount"`
	Method       string          `db:"method"`
	PaymentDate  time.Time       `db:"payment_date"`
	Observations *string         `db:"observations"`
	Status       string          `db:"status"`
	AuditFields
}
