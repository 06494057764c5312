package services

import (
	"context"

	"github.com/SscSPs/store_credit_app/internal/core/domain"
	"github.com/SscSPs/store_credit_app/internal/dto"
)

// PaymentReaderSvc defines read operations for payments
type PaymentReaderSvc interface {
	GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)
	ListPayments(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, error)
}

// PaymentWriterSvc defines payment creation and editing
type PaymentWriterSvc interface {
	CreatePayment(ctx context.Context, req dto.CreatePaymentRequest, actingUserID string) (*domain.Payment, error)
	UpdatePayment(ctx context.Context, paymentID string, req dto.UpdatePaymentRequest, actingUserID string) (*domain.Payment, error)
	DeletePayment(ctx context.Context, paymentID string, actingUserID string) error
}

// PaymentLifecycleSvc drives the payment state machine
type PaymentLifecycleSvc interface {
	ApplyPayment(ctx context.Context, paymentID string, actingUserID string) (*domain.Payment, error)
	RejectPayment(ctx context.Context, paymentID string, reason string, actingUserID string) (*domain.Payment, error)
	MarkPending(ctx context.Context, paymentID string, actingUserID string) (*domain.Payment, error)
}

// PaymentCustomerSvc serves the customer's own payments.
type PaymentCustomerSvc interface {
	ListMyPayments(ctx context.Context, userID string, filter domain.PaymentFilter) ([]domain.Payment, error)
	GetMyPayment(ctx context.Context, userID string, paymentID string) (*domain.Payment, error)
}

// PaymentSvcFacade combines all payment-related service interfaces
type PaymentSvcFacade interface {
	PaymentReaderSvc
	PaymentWriterSvc
	PaymentLifecycleSvc
	PaymentCustomerSvc
}
