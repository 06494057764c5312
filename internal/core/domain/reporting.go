package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountStatement lists the movements of one account over a date range.
type AccountStatement struct {
	AccountID      string          `json:"accountID"`
	From           time.Time       `json:"from"`
	To             time.Time       `json:"to"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	Movements      []Movement      `json:"movements"`
}

// LedgerSummary groups the totals shown on the back-office dashboard.
type LedgerSummary struct {
	Date    time.Time      `json:"date"`
	Daily   MovementTotals `json:"daily"`
	Monthly MovementTotals `json:"monthly"`
}

// StartOfDay truncates t to midnight in its location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable instant of t's day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
