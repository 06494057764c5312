package services

import (
	"context"
	"time"

	"github.com/SscSPs/store_credit_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingSvc is the read-only façade over the ledger.
type ReportingSvc interface {
	// DailyTotals sums CHARGE and CREDIT movements for the calendar day of day.
	DailyTotals(ctx context.Context, day time.Time) (*domain.MovementTotals, error)

	// MonthlyTotals sums CHARGE and CREDIT movements for the given month.
	MonthlyTotals(ctx context.Context, year int, month time.Month) (*domain.MovementTotals, error)

	// Statement lists an account's movements from the start of from to the end of to.
	Statement(ctx context.Context, accountID string, from, to time.Time) (*domain.AccountStatement, error)

	// CurrentBalance returns the persisted balance of the account.
	CurrentBalance(ctx context.Context, accountID string) (decimal.Decimal, error)

	// Summary returns the daily and monthly totals for day.
	Summary(ctx context.Context, day time.Time) (*domain.LedgerSummary, error)
}
