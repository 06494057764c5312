package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountStatus is stored as text and constrained by a CHECK.
type AccountStatus string

// Account is a row of the accounts table.
type Account struct {
	AccountID   string          `db:"account_id"`
	UserID      string          `db:"user_id"` // unique
	CreditLimit decimal.Decimal `db:"credit_limit"`
	Balance     decimal.Decimal `db:"balance"`
	OpeningDate time.Time       `db:"opening_date"`
	Status      AccountStatus   `db:"status"`
	AuditFields
}
