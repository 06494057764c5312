package repositories

import (
	"context"

	"github.com/SscSPs/store_credit_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// PaymentReader defines read operations for payments.
type PaymentReader interface {
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)
	ListPayments(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, error)
}

// PaymentTransactionSupport defines payment writes inside a caller-owned transaction.
type PaymentTransactionSupport interface {
	FindPaymentByIDForUpdate(ctx context.Context, tx pgx.Tx, paymentID string) (*domain.Payment, error)
	SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error
	UpdatePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error
	DeletePaymentInTx(ctx context.Context, tx pgx.Tx, paymentID string) error
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentTransactionSupport
}
