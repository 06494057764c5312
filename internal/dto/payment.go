package dto

import (
	"time"

	"github.com/SscSPs/store_credit_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePaymentRequest defines the data needed to register a payment.
// Status defaults to APPLIED and Method to CASH.
type CreatePaymentRequest struct {
	AccountID    string               `json:"accountID" binding:"required"`
	Amount       decimal.Decimal      `json:"amount"`
	Method       domain.PaymentMethod `json:"method" binding:"omitempty,oneof=CASH CARD TRANSFER CHECK"`
	PaymentDate  *time.Time           `json:"paymentDate"`
	Observations string               `json:"observations" binding:"max=1000"`
	Status       domain.PaymentStatus `json:"status" binding:"omitempty,oneof=PENDING APPLIED"`
}

// UpdatePaymentRequest defines the editable fields of a PENDING payment.
type UpdatePaymentRequest struct {
	Method       *domain.PaymentMethod `json:"method" binding:"omitempty,oneof=CASH CARD TRANSFER CHECK"`
	Observations *string               `json:"observations" binding:"omitempty,max=1000"`
}

// RejectPaymentRequest carries the rejection reason.
type RejectPaymentRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// ListPaymentsParams defines query parameters for listing payments.
type ListPaymentsParams struct {
	AccountID string    `form:"accountID"`
	UserID    string    `form:"userID"`
	Status    string    `form:"status" binding:"omitempty,oneof=PENDING APPLIED REJECTED"`
	Method    string    `form:"method" binding:"omitempty,oneof=CASH CARD TRANSFER CHECK"`
	From      time.Time `form:"from" time_format:"2006-01-02"`
	To        time.Time `form:"to" time_format:"2006-01-02"`
	MinAmount string    `form:"minAmount" binding:"omitempty,numeric"`
	MaxAmount string    `form:"maxAmount" binding:"omitempty,numeric"`
	Limit     int       `form:"limit,default=20" binding:"min=1,max=100"`
	Offset    int       `form:"offset,default=0" binding:"min=0"`
}

// ToFilter converts query parameters to a domain filter. Dates cover whole days.
func (p ListPaymentsParams) ToFilter() domain.PaymentFilter {
	f := domain.PaymentFilter{
		AccountID: p.AccountID,
		UserID:    p.UserID,
		Status:    domain.PaymentStatus(p.Status),
		Method:    domain.PaymentMethod(p.Method),
		MinAmount: parseOptionalDecimal(p.MinAmount),
		MaxAmount: parseOptionalDecimal(p.MaxAmount),
		Limit:     p.Limit,
		Offset:    p.Offset,
	}
	if !p.From.IsZero() {
		from := domain.StartOfDay(p.From)
		f.From = &from
	}
	if !p.To.IsZero() {
		to := domain.EndOfDay(p.To)
		f.To = &to
	}
	return f
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID    string               `json:"paymentID"`
	AccountID    string               `json:"accountID"`
	Amount       decimal.Decimal      `json:"amount"`
	Method       domain.PaymentMethod `json:"method"`
	PaymentDate  time.Time            `json:"paymentDate"`
	Observations string               `json:"observations,omitempty"`
	Status       domain.PaymentStatus `json:"status"`
	CreatedBy    string               `json:"createdBy"`
}

// ToPaymentResponse converts a domain.Payment to PaymentResponse DTO
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:    p.PaymentID,
		AccountID:    p.AccountID,
		Amount:       p.Amount,
		Method:       p.Method,
		PaymentDate:  p.PaymentDate,
		Observations: p.Observations,
		Status:       p.Status,
		CreatedBy:    p.CreatedBy,
	}
}

// ToListPaymentResponse converts a slice of domain.Payment to PaymentResponse DTOs
func ToListPaymentResponse(payments []domain.Payment) []PaymentResponse {
	res := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		res[i] = ToPaymentResponse(&p)
	}
	return res
}
