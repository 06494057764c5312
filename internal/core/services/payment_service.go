package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/store_credit_app/internal/apperrors"
	"github.com/SscSPs/store_credit_app/internal/core/domain"
	portsrepo "github.com/SscSPs/store_credit_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/store_credit_app/internal/core/ports/services"
	"github.com/SscSPs/store_credit_app/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type paymentService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	paymentRepo portsrepo.PaymentRepositoryFacade
	accounts    portssvc.AccountSvcFacade
	notifier    portssvc.NotificationSvc
	now         func() time.Time
}

// PaymentServiceOption is a functional option for configuring the payment service
type PaymentServiceOption func(*paymentService)

// WithPaymentNotifier notifies the customer whenever a payment is applied.
func WithPaymentNotifier(notifier portssvc.NotificationSvc) PaymentServiceOption {
	return func(s *paymentService) {
		s.notifier = notifier
	}
}

// WithPaymentClock overrides time.Now, mostly for tests.
func WithPaymentClock(now func() time.Time) PaymentServiceOption {
	return func(s *paymentService) {
		s.now = now
	}
}

// NewPaymentService creates the payment service.
func NewPaymentService(
	txManager portsrepo.TransactionManager,
	paymentRepo portsrepo.PaymentRepositoryFacade,
	accounts portssvc.AccountSvcFacade,
	options ...PaymentServiceOption,
) portssvc.PaymentSvcFacade {
	svc := &paymentService{
		txManager:   txManager,
		paymentRepo: paymentRepo,
		accounts:    accounts,
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

func (s *paymentService) GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get payment", slog.String("payment_id", paymentID))
		}
		return nil, err
	}
	return payment, nil
}

func (s *paymentService) ListPayments(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	payments, err := s.paymentRepo.ListPayments(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments")
		return nil, err
	}
	return payments, nil
}

func (s *paymentService) CreatePayment(ctx context.Context, req dto.CreatePaymentRequest, actingUserID string) (*domain.Payment, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be greater than zero", apperrors.ErrInvalidAmount)
	}
	if err := requireCents(req.Amount, "payment amount"); err != nil {
		return nil, err
	}
	method := req.Method
	if method == "" {
		method = domain.PaymentCash
	}
	if !method.IsValid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, method)
	}
	status := req.Status
	if status == "" {
		status = domain.PaymentApplied
	}
	if status != domain.PaymentPending && status != domain.PaymentApplied {
		return nil, fmt.Errorf("%w: a payment cannot be created as %s", apperrors.ErrInvalidPaymentState, status)
	}

	now := s.now()
	payment := domain.Payment{
		PaymentID:    uuid.NewString(),
		AccountID:    req.AccountID,
		Amount:       req.Amount,
		Method:       method,
		PaymentDate:  now,
		Observations: req.Observations,
		Status:       status,
		AuditFields:  domain.NewAuditFields(actingUserID, now),
	}
	if req.PaymentDate != nil {
		payment.PaymentDate = *req.PaymentDate
	}

	var account *domain.Account
	err := withTx(ctx, s.txManager, func(tx pgx.Tx) error {
		var err error
		account, err = s.accounts.LockAccount(ctx, tx, payment.AccountID)
		if err != nil {
			return err
		}
		if err := s.paymentRepo.SavePaymentInTx(ctx, tx, payment); err != nil {
			return err
		}
		if payment.Status != domain.PaymentApplied {
			return nil
		}
		account, err = s.accounts.CreditInTx(ctx, tx, s.ledgerEntry(payment, "Payment #"+payment.PaymentID, actingUserID))
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create payment", slog.String("account_id", req.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Payment created",
		slog.String("payment_id", payment.PaymentID),
		slog.String("status", string(payment.Status)),
		slog.String("amount", payment.Amount.String()))

	if payment.Status == domain.PaymentApplied {
		s.notify(ctx, account.UserID, payment)
	}
	return &payment, nil
}

func (s *paymentService) UpdatePayment(ctx context.Context, paymentID string, req dto.UpdatePaymentRequest, actingUserID string) (*domain.Payment, error) {
	payment, _, err := s.mutate(ctx, paymentID, actingUserID, func(_ pgx.Tx, payment *domain.Payment) error {
		if payment.Status != domain.PaymentPending {
			return fmt.Errorf("%w: payment is %s, only PENDING payments can be edited", apperrors.ErrInvalidPaymentState, payment.Status)
		}
		if req.Method != nil {
			if !req.Method.IsValid() {
				return fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, *req.Method)
			}
			payment.Method = *req.Method
		}
		if req.Observations != nil {
			payment.Observations = *req.Observations
		}
		return nil
	})
	return payment, err
}

func (s *paymentService) DeletePayment(ctx context.Context, paymentID string, actingUserID string) error {
	err := withTx(ctx, s.txManager, func(tx pgx.Tx) error {
		payment, err := s.paymentRepo.FindPaymentByIDForUpdate(ctx, tx, paymentID)
		if err != nil {
			return err
		}
		if !payment.CanDelete() {
			return fmt.Errorf("%w: an APPLIED payment cannot be deleted", apperrors.ErrInvalidPaymentState)
		}
		return s.paymentRepo.DeletePaymentInTx(ctx, tx, paymentID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete payment", slog.String("payment_id", paymentID))
		return err
	}
	s.LogInfo(ctx, "Payment deleted", slog.String("payment_id", paymentID), slog.String("deleted_by", actingUserID))
	return nil
}

// ApplyPayment credits the account and moves the payment to APPLIED in one transaction.
func (s *paymentService) ApplyPayment(ctx context.Context, paymentID string, actingUserID string) (*domain.Payment, error) {
	payment, account, err := s.mutate(ctx, paymentID, actingUserID, func(tx pgx.Tx, payment *domain.Payment) (err error) {
		if !payment.Status.CanTransitionTo(domain.PaymentApplied) {
			return fmt.Errorf("%w: cannot apply a %s payment", apperrors.ErrInvalidPaymentState, payment.Status)
		}
		payment.Status = domain.PaymentApplied
		_, err = s.accounts.CreditInTx(ctx, tx, s.ledgerEntry(*payment, "Payment application #"+payment.PaymentID, actingUserID))
		return err
	})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, account.UserID, *payment)
	return payment, nil
}

func (s *paymentService) RejectPayment(ctx context.Context, paymentID string, reason string, actingUserID string) (*domain.Payment, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: a rejection reason is required", apperrors.ErrValidation)
	}
	payment, _, err := s.mutate(ctx, paymentID, actingUserID, func(_ pgx.Tx, payment *domain.Payment) error {
		if !payment.Status.CanTransitionTo(domain.PaymentRejected) {
			return fmt.Errorf("%w: cannot reject a %s payment", apperrors.ErrInvalidPaymentState, payment.Status)
		}
		payment.AppendObservation("REJECTED: " + reason)
		payment.Status = domain.PaymentRejected
		return nil
	})
	return payment, err
}

func (s *paymentService) MarkPending(ctx context.Context, paymentID string, actingUserID string) (*domain.Payment, error) {
	payment, _, err := s.mutate(ctx, paymentID, actingUserID, func(_ pgx.Tx, payment *domain.Payment) error {
		if !payment.Status.CanTransitionTo(domain.PaymentPending) {
			return fmt.Errorf("%w: cannot move a %s payment back to PENDING", apperrors.ErrInvalidPaymentState, payment.Status)
		}
		payment.Status = domain.PaymentPending
		return nil
	})
	return payment, err
}

func (s *paymentService) ListMyPayments(ctx context.Context, userID string, filter domain.PaymentFilter) ([]domain.Payment, error) {
	account, err := s.accounts.GetAccountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	filter.AccountID = account.AccountID
	filter.UserID = ""
	return s.ListPayments(ctx, filter)
}

func (s *paymentService) GetMyPayment(ctx context.Context, userID string, paymentID string) (*domain.Payment, error) {
	account, err := s.accounts.GetAccountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	payment, err := s.GetPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.AccountID != account.AccountID {
		return nil, fmt.Errorf("%w: payment %s", apperrors.ErrNotFound, paymentID)
	}
	return payment, nil
}

func (s *paymentService) ledgerEntry(payment domain.Payment, concept string, actingUserID string) domain.LedgerEntry {
	return domain.LedgerEntry{
		AccountID:    payment.AccountID,
		Amount:       payment.Amount,
		Concept:      concept,
		ActingUserID: actingUserID,
		Reference:    &domain.MovementReference{Kind: domain.ReferencePayment, ID: payment.PaymentID},
	}
}

func (s *paymentService) notify(ctx context.Context, userID string, payment domain.Payment) {
	if s.notifier == nil {
		return
	}
	s.notifier.NotifyPayment(ctx, userID, "Payment #"+payment.PaymentID, payment.Amount)
}

// mutate locks the owning account and then the payment row, applies fn and
// writes the payment back.
func (s *paymentService) mutate(
	ctx context.Context,
	paymentID string,
	actingUserID string,
	fn func(tx pgx.Tx, payment *domain.Payment) error,
) (*domain.Payment, *domain.Account, error) {
	var (
		payment *domain.Payment
		account *domain.Account
	)
	err := withTx(ctx, s.txManager, func(tx pgx.Tx) error {
		current, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
		if err != nil {
			return err
		}
		account, err = s.accounts.LockAccount(ctx, tx, current.AccountID)
		if err != nil {
			return err
		}
		payment, err = s.paymentRepo.FindPaymentByIDForUpdate(ctx, tx, paymentID)
		if err != nil {
			return err
		}
		if err := fn(tx, payment); err != nil {
			return err
		}
		payment.Touch(actingUserID, s.now())
		return s.paymentRepo.UpdatePaymentInTx(ctx, tx, *payment)
	})
	if err != nil {
		s.LogError(ctx, err, "Payment update failed", slog.String("payment_id", paymentID))
		return nil, nil, err
	}
	return payment, account, nil
}
