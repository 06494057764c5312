package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind describes how a movement affected the balance.
type MovementKind string

const (
	MovementCharge     MovementKind = "CHARGE"
	MovementCredit     MovementKind = "CREDIT"
	MovementAdjustment MovementKind = "ADJUSTMENT"
)

// ReferenceKind identifies what originated a movement.
type ReferenceKind string

const (
	ReferenceSale       ReferenceKind = "SALE"
	ReferencePayment    ReferenceKind = "PAYMENT"
	ReferenceAdjustment ReferenceKind = "ADJUSTMENT"
)

// IsValid reports whether k is a known reference kind.
func (k ReferenceKind) IsValid() bool {
	switch k {
	case ReferenceSale, ReferencePayment, ReferenceAdjustment:
		return true
	}
	return false
}

// MovementReference points a movement back at the sale or payment that caused it.
type MovementReference struct {
	Kind ReferenceKind `json:"kind"`
	ID   string        `json:"id"`
}

// Movement is an immutable ledger entry. Once persisted it is never updated or deleted.
type Movement struct {
	MovementID    string             `json:"movementID"`
	AccountID     string             `json:"accountID"`
	Kind          MovementKind       `json:"kind"`
	Concept       string             `json:"concept"`
	Amount        decimal.Decimal    `json:"amount"`
	BalanceBefore decimal.Decimal    `json:"balanceBefore"`
	BalanceAfter  decimal.Decimal    `json:"balanceAfter"`
	Reference     *MovementReference `json:"reference,omitempty"`
	UserID        string             `json:"userID"` // acting user
	CreatedAt     time.Time          `json:"createdAt"`
}

// Validate checks the snapshot arithmetic against the movement kind.
func (m Movement) Validate() error {
	if m.AccountID == "" {
		return fmt.Errorf("movement account is required")
	}
	if m.Amount.IsNegative() {
		return fmt.Errorf("movement amount cannot be negative")
	}
	var expected decimal.Decimal
	switch m.Kind {
	case MovementCharge:
		if !m.Amount.IsPositive() {
			return fmt.Errorf("charge amount must be positive")
		}
		expected = m.BalanceBefore.Add(m.Amount)
	case MovementCredit:
		if !m.Amount.IsPositive() {
			return fmt.Errorf("credit amount must be positive")
		}
		expected = m.BalanceBefore.Sub(m.Amount)
	case MovementAdjustment:
		expected = m.BalanceBefore
	default:
		return fmt.Errorf("unknown movement kind %q", m.Kind)
	}
	if !m.BalanceAfter.Equal(expected) {
		return fmt.Errorf("balance after %s does not match %s %s on %s",
			m.BalanceAfter.String(), m.Kind, m.Amount.String(), m.BalanceBefore.String())
	}
	if m.Reference != nil && !m.Reference.Kind.IsValid() {
		return fmt.Errorf("unknown reference kind %q", m.Reference.Kind)
	}
	return nil
}

// MovementTotals sums charges and credits over a period.
type MovementTotals struct {
	From    time.Time       `json:"from"`
	To      time.Time       `json:"to"`
	Charges decimal.Decimal `json:"charges"`
	Credits decimal.Decimal `json:"credits"`
}

// Net is charges minus credits for the period.
func (t MovementTotals) Net() decimal.Decimal {
	return t.Charges.Sub(t.Credits)
}

// LedgerEntry is the input of a charge or credit. ActingUserID is recorded on
// the resulting movement.
type LedgerEntry struct {
	AccountID    string
	Amount       decimal.Decimal
	Concept      string
	ActingUserID string
	Reference    *MovementReference
}
