package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how the customer paid.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentCard     PaymentMethod = "CARD"
	PaymentTransfer PaymentMethod = "TRANSFER"
	PaymentCheck    PaymentMethod = "CHECK"
)

// IsValid reports whether m is a known payment method.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer, PaymentCheck:
		return true
	}
	return false
}

// PaymentStatus is the lifecycle status of a payment.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentApplied  PaymentStatus = "APPLIED"
	PaymentRejected PaymentStatus = "REJECTED"
)

// paymentTransitions lists allowed moves. APPLIED is terminal; a REJECTED
// payment can be reinstated to PENDING.
var paymentTransitions = map[PaymentStatus]map[PaymentStatus]bool{
	PaymentPending:  {PaymentApplied: true, PaymentRejected: true},
	PaymentRejected: {PaymentPending: true},
	PaymentApplied:  {},
}

// CanTransitionTo reports whether the payment may move from s to next.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	return paymentTransitions[s][next]
}

// IsValid reports whether s is a known payment status.
func (s PaymentStatus) IsValid() bool {
	_, ok := paymentTransitions[s]
	return ok
}

// Payment (abono) is a customer remittance against an account.
type Payment struct {
	PaymentID    string          `json:"paymentID"`
	AccountID    string          `json:"accountID"`
	Amount       decimal.Decimal `json:"amount"`
	Method       PaymentMethod   `json:"method"`
	PaymentDate  time.Time       `json:"paymentDate"`
	Observations string          `json:"observations,omitempty"`
	Status       PaymentStatus   `json:"status"`
	AuditFields
}

// AppendObservation adds a line to the observations without dropping earlier text.
func (p *Payment) AppendObservation(line string) {
	if p.Observations == "" {
		p.Observations = line
		return
	}
	p.Observations += "\n" + line
}

// CanDelete reports whether the payment may be removed. Applied payments are
// part of the ledger and stay.
func (p Payment) CanDelete() bool {
	return p.Status == PaymentPending || p.Status == PaymentRejected
}

// PaymentFilter narrows payment listings.
type PaymentFilter struct {
	AccountID string
	UserID    string
	Status    PaymentStatus
	Method    PaymentMethod
	From      *time.Time
	To        *time.Time
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
	Limit     int
	Offset    int
}
