package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/store_credit_app/internal/apperrors"
	"github.com/SscSPs/store_credit_app/internal/core/domain"
	portsrepo "github.com/SscSPs/store_credit_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/store_credit_app/internal/core/ports/services"
	"github.com/SscSPs/store_credit_app/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const initialBalanceConcept = "Initial balance"

// accountService is the account balance engine. Charge and credit are the
// only code paths that change a balance, and each writes its movement in the
// same transaction.
type accountService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	accountRepo portsrepo.AccountRepositoryFacade
	recorder    portssvc.MovementRecorderSvc
	users       portssvc.UserReaderSvc
	now         func() time.Time
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithUserDirectory makes CreateAccount verify that the owning user exists.
func WithUserDirectory(users portssvc.UserReaderSvc) AccountServiceOption {
	return func(s *accountService) {
		s.users = users
	}
}

// WithAccountClock overrides time.Now, mostly for tests.
func WithAccountClock(now func() time.Time) AccountServiceOption {
	return func(s *accountService) {
		s.now = now
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(
	txManager portsrepo.TransactionManager,
	accountRepo portsrepo.AccountRepositoryFacade,
	recorder portssvc.MovementRecorderSvc,
	options ...AccountServiceOption,
) portssvc.AccountSvcFacade {
	svc := &accountService{
		txManager:   txManager,
		accountRepo: accountRepo,
		recorder:    recorder,
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get account", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetAccountByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get account by user", slog.String("user_id", userID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, err
	}
	return accounts, nil
}

func (s *accountService) AvailableCredit(ctx context.Context, accountID string) (decimal.Decimal, error) {
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return account.AvailableCredit(), nil
}

func (s *accountService) CanPurchase(ctx context.Context, accountID string, amount decimal.Decimal) (bool, error) {
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return false, err
	}
	return account.CanPurchase(amount), nil
}

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actingUserID string) (*domain.Account, error) {
	if req.CreditLimit.IsNegative() {
		return nil, fmt.Errorf("%w: credit limit cannot be negative", apperrors.ErrInvalidAmount)
	}
	if req.InitialBalance.IsNegative() {
		return nil, fmt.Errorf("%w: initial balance cannot be negative", apperrors.ErrInvalidAmount)
	}
	if err := requireCents(req.CreditLimit, "credit limit"); err != nil {
		return nil, err
	}
	if err := requireCents(req.InitialBalance, "initial balance"); err != nil {
		return nil, err
	}
	status := req.Status
	if status == "" {
		status = domain.AccountActive
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown account status %q", apperrors.ErrValidation, status)
	}

	if s.users != nil {
		exists, err := s.users.UserExists(ctx, req.UserID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, req.UserID)
		}
	}

	if _, err := s.accountRepo.FindAccountByUserID(ctx, req.UserID); err == nil {
		return nil, fmt.Errorf("%w: user %s already has an account", apperrors.ErrDuplicate, req.UserID)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check existing account", slog.String("user_id", req.UserID))
		return nil, err
	}

	now := s.now()
	openingDate := domain.StartOfDay(now)
	if req.OpeningDate != nil {
		openingDate = domain.StartOfDay(*req.OpeningDate)
	}
	account := domain.Account{
		AccountID:   uuid.NewString(),
		UserID:      req.UserID,
		CreditLimit: req.CreditLimit,
		Balance:     decimal.Zero,
		OpeningDate: openingDate,
		Status:      status,
		AuditFields: domain.NewAuditFields(actingUserID, now),
	}

	err := withTx(ctx, s.txManager, func(tx pgx.Tx) error {
		if err := s.accountRepo.SaveAccountInTx(ctx, tx, account); err != nil {
			return err
		}
		if req.InitialBalance.IsPositive() {
			return s.apply(ctx, tx, &account, domain.MovementCharge, domain.LedgerEntry{
				AccountID:    account.AccountID,
				Amount:       req.InitialBalance,
				Concept:      initialBalanceConcept,
				ActingUserID: actingUserID,
			})
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create account", slog.String("user_id", req.UserID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("user_id", account.UserID))
	return &account, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, actingUserID string) (*domain.Account, error) {
	return s.mutate(ctx, accountID, actingUserID, func(ctx context.Context, tx pgx.Tx, account *domain.Account) error {
		if req.OpeningDate != nil {
			account.OpeningDate = domain.StartOfDay(*req.OpeningDate)
		}
		return nil
	})
}

func (s *accountService) DeleteAccount(ctx context.Context, accountID string, actingUserID string) error {
	err := withTx(ctx, s.txManager, func(tx pgx.Tx) error {
		account, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, accountID)
		if err != nil {
			return err
		}
		if account.Status != domain.AccountClosed {
			return fmt.Errorf("%w: only CLOSED accounts can be deleted, account is %s", apperrors.ErrInvalidAccountState, account.Status)
		}
		if account.HasPendingBalance() {
			return fmt.Errorf("%w: balance is %s", apperrors.ErrPendingBalance, account.Balance.StringFixed(2))
		}
		return s.accountRepo.DeleteAccountInTx(ctx, tx, accountID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		return err
	}
	s.LogInfo(ctx, "Account deleted", slog.String("account_id", accountID), slog.String("deleted_by", actingUserID))
	return nil
}

func (s *accountService) SetCreditLimit(ctx context.Context, accountID string, newLimit decimal.Decimal, actingUserID string) (*domain.Account, error) {
	if newLimit.IsNegative() {
		return nil, fmt.Errorf("%w: credit limit cannot be negative", apperrors.ErrInvalidAmount)
	}
	if err := requireCents(newLimit, "credit limit"); err != nil {
		return nil, err
	}
	return s.mutate(ctx, accountID, actingUserID, func(ctx context.Context, tx pgx.Tx, account *domain.Account) error {
		oldLimit := account.CreditLimit
		account.CreditLimit = newLimit
		_, err := s.recorder.RecordInTx(ctx, tx, domain.Movement{
			AccountID:     account.AccountID,
			Kind:          domain.MovementAdjustment,
			Concept:       fmt.Sprintf("Credit limit adjustment from $%s to $%s", oldLimit.StringFixed(2), newLimit.StringFixed(2)),
			Amount:        decimal.Zero,
			BalanceBefore: account.Balance,
			BalanceAfter:  account.Balance,
			Reference:     &domain.MovementReference{Kind: domain.ReferenceAdjustment, ID: account.AccountID},
			UserID:        actingUserID,
		})
		return err
	})
}

// ChangeStatus sets any status except that CLOSED still requires a zero balance.
func (s *accountService) ChangeStatus(ctx context.Context, accountID string, status domain.AccountStatus, actingUserID string) (*domain.Account, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown account status %q", apperrors.ErrValidation, status)
	}
	if status == domain.AccountClosed {
		return s.Close(ctx, accountID, actingUserID)
	}
	return s.mutate(ctx, accountID, actingUserID, func(_ context.Context, _ pgx.Tx, account *domain.Account) error {
		account.Status = status
		return nil
	})
}

func (s *accountService) Activate(ctx context.Context, accountID string, actingUserID string) (*domain.Account, error) {
	return s.ChangeStatus(ctx, accountID, domain.AccountActive, actingUserID)
}

func (s *accountService) Suspend(ctx context.Context, accountID string, actingUserID string) (*domain.Account, error) {
	return s.ChangeStatus(ctx, accountID, domain.AccountSuspended, actingUserID)
}

func (s *accountService) Close(ctx context.Context, accountID string, actingUserID string) (*domain.Account, error) {
	return s.mutate(ctx, accountID, actingUserID, func(_ context.Context, _ pgx.Tx, account *domain.Account) error {
		if account.HasPendingBalance() {
			return fmt.Errorf("%w: cannot close account with balance %s", apperrors.ErrPendingBalance, account.Balance.StringFixed(2))
		}
		account.Status = domain.AccountClosed
		return nil
	})
}

func (s *accountService) Charge(ctx context.Context, entry domain.LedgerEntry) (*domain.Account, error) {
	var account *domain.Account
	err := withTx(ctx, s.txManager, func(tx pgx.Tx) error {
		var err error
		account, err = s.ChargeInTx(ctx, tx, entry)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Charge failed",
			slog.String("account_id", entry.AccountID),
			slog.String("amount", entry.Amount.String()))
		return nil, err
	}
	return account, nil
}

func (s *accountService) Credit(ctx context.Context, entry domain.LedgerEntry) (*domain.Account, error) {
	var account *domain.Account
	err := withTx(ctx, s.txManager, func(tx pgx.Tx) error {
		var err error
		account, err = s.CreditInTx(ctx, tx, entry)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Credit failed",
			slog.String("account_id", entry.AccountID),
			slog.String("amount", entry.Amount.String()))
		return nil, err
	}
	return account, nil
}

func (s *accountService) LockAccount(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByIDForUpdate(ctx, tx, accountID)
}

func (s *accountService) ChargeInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) (*domain.Account, error) {
	if !entry.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: charge amount must be greater than zero", apperrors.ErrInvalidAmount)
	}
	if err := requireCents(entry.Amount, "charge amount"); err != nil {
		return nil, err
	}
	account, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, entry.AccountID)
	if err != nil {
		return nil, err
	}
	if account.Status != domain.AccountActive {
		return nil, fmt.Errorf("%w: account is %s, only ACTIVE accounts can be charged", apperrors.ErrInvalidAccountState, account.Status)
	}
	if err := s.apply(ctx, tx, account, domain.MovementCharge, entry); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *accountService) CreditInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) (*domain.Account, error) {
	if !entry.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: credit amount must be greater than zero", apperrors.ErrInvalidAmount)
	}
	if err := requireCents(entry.Amount, "credit amount"); err != nil {
		return nil, err
	}
	account, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, entry.AccountID)
	if err != nil {
		return nil, err
	}
	if account.Balance.Sub(entry.Amount).IsNegative() {
		return nil, fmt.Errorf("%w: credit of %s exceeds balance of %s",
			apperrors.ErrInsufficientBalance, entry.Amount.StringFixed(2), account.Balance.StringFixed(2))
	}
	if err := s.apply(ctx, tx, account, domain.MovementCredit, entry); err != nil {
		return nil, err
	}
	return account, nil
}

func requireCents(amount decimal.Decimal, what string) error {
	if !domain.IsWholeCents(amount) {
		return fmt.Errorf("%w: %s %s has more than %d decimal places", apperrors.ErrInvalidAmount, what, amount.String(), domain.MoneyScale)
	}
	return nil
}

// apply moves the balance of a locked account and records the paired movement.
func (s *accountService) apply(ctx context.Context, tx pgx.Tx, account *domain.Account, kind domain.MovementKind, entry domain.LedgerEntry) error {
	before := account.Balance
	after := before.Add(entry.Amount)
	if kind == domain.MovementCredit {
		after = before.Sub(entry.Amount)
	}

	account.Balance = after
	account.Touch(entry.ActingUserID, s.now())
	if err := s.accountRepo.UpdateAccountInTx(ctx, tx, *account); err != nil {
		return err
	}

	_, err := s.recorder.RecordInTx(ctx, tx, domain.Movement{
		AccountID:     account.AccountID,
		Kind:          kind,
		Concept:       entry.Concept,
		Amount:        entry.Amount,
		BalanceBefore: before,
		BalanceAfter:  after,
		Reference:     entry.Reference,
		UserID:        entry.ActingUserID,
	})
	if err != nil {
		return err
	}

	s.LogDebug(ctx, "Balance updated",
		slog.String("account_id", account.AccountID),
		slog.String("kind", string(kind)),
		slog.String("before", before.String()),
		slog.String("after", after.String()))
	return nil
}

// mutate locks the account, lets fn change it and persists the result.
func (s *accountService) mutate(
	ctx context.Context,
	accountID string,
	actingUserID string,
	fn func(ctx context.Context, tx pgx.Tx, account *domain.Account) error,
) (*domain.Account, error) {
	var account *domain.Account
	err := withTx(ctx, s.txManager, func(tx pgx.Tx) error {
		var err error
		account, err = s.accountRepo.FindAccountByIDForUpdate(ctx, tx, accountID)
		if err != nil {
			return err
		}
		if err := fn(ctx, tx, account); err != nil {
			return err
		}
		account.Touch(actingUserID, s.now())
		return s.accountRepo.UpdateAccountInTx(ctx, tx, *account)
	})
	if err != nil {
		s.LogError(ctx, err, "Account update failed", slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}
