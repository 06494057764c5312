package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Movement is a row of the append-only movements table.
// ReferenceKind and ReferenceID are both NULL or both set.
type Movement struct {
	MovementID    string          `db:"movement_id"`
	AccountID     string          `db:"account_id"`
	Kind          string          `db:"kind"`
	Concept       string          `db:"concept"`
	Amount        decimal.Decimal `db:"amount"`
	BalanceBefore decimal.Decimal `db:"balance_before"`
	BalanceAfter  decimal.Decimal `db:"balance_after"`
	ReferenceKind *string         `db:"reference_kind"`
	ReferenceID   *string         `db:"reference_id"`
	UserID        string          `db:"user_id"`
	CreatedAt     time.Time       `db:"created_at"`
}
