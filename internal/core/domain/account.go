package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountStatus is the lifecycle status of a customer credit account.
type AccountStatus string

const (
	AccountActive    AccountStatus = "ACTIVE"
	AccountSuspended AccountStatus = "SUSPENDED"
	AccountClosed    AccountStatus = "CLOSED"
)

// IsValid reports whether s is one of the known account statuses.
func (s AccountStatus) IsValid() bool {
	switch s {
	case AccountActive, AccountSuspended, AccountClosed:
		return true
	}
	return false
}

// Account is one customer's revolving store-credit line.
// Available credit is never stored; use AvailableCredit.
type Account struct {
	AccountID   string          `json:"accountID"`   // Primary Key (UUID)
	UserID      string          `json:"userID"`      // FK -> users.user_id, unique
	CreditLimit decimal.Decimal `json:"creditLimit"` // Non-negative
	Balance     decimal.Decimal `json:"balance"`     // Amount owed
	OpeningDate time.Time       `json:"openingDate"`
	Status      AccountStatus   `json:"status"`
	AuditFields
}

// MoneyScale is the number of decimal places every stored amount keeps.
const MoneyScale = 2

// IsWholeCents reports whether d has no digits past MoneyScale.
// Finer amounts would be rounded column by column on save.
func IsWholeCents(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(MoneyScale))
}

// AvailableCredit is creditLimit - balance.
func (a Account) AvailableCredit() decimal.Decimal {
	return a.CreditLimit.Sub(a.Balance)
}

// CanPurchase reports whether the account is ACTIVE and has at least amount
// of available credit.
func (a Account) CanPurchase(amount decimal.Decimal) bool {
	if a.Status != AccountActive {
		return false
	}
	return a.AvailableCredit().GreaterThanOrEqual(amount)
}

// HasPendingBalance reports whether the customer still owes anything.
func (a Account) HasPendingBalance() bool {
	return !a.Balance.IsZero()
}

// AccountFilter narrows ListAccounts. Zero values mean "no filter".
type AccountFilter struct {
	Status     AccountStatus
	MinLimit   *decimal.Decimal
	MaxLimit   *decimal.Decimal
	MinBalance *decimal.Decimal
	MaxBalance *decimal.Decimal
	Limit      int
	Offset     int
}
