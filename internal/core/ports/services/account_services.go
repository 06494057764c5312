package services

import (
	"context"

	"github.com/SscSPs/store_credit_app/internal/core/domain"
	"github.com/SscSPs/store_credit_app/internal/dto"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountByUserID resolves "my account" for an authenticated user.
	GetAccountByUserID(ctx context.Context, userID string) (*domain.Account, error)

	// ListAccounts retrieves a filtered, paginated list of accounts.
	ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error)

	// AvailableCredit returns creditLimit - balance.
	AvailableCredit(ctx context.Context, accountID string) (decimal.Decimal, error)

	// CanPurchase is true iff the account is ACTIVE and has at least amount of available credit.
	CanPurchase(ctx context.Context, accountID string, amount decimal.Decimal) (bool, error)
}

// AccountWriterSvc defines account lifecycle operations
type AccountWriterSvc interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actingUserID string) (*domain.Account, error)
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, actingUserID string) (*domain.Account, error)
	DeleteAccount(ctx context.Context, accountID string, actingUserID string) error

	// SetCreditLimit changes the limit and records a zero-amount ADJUSTMENT movement.
	SetCreditLimit(ctx context.Context, accountID string, newLimit decimal.Decimal, actingUserID string) (*domain.Account, error)

	// ChangeStatus sets the status without any state-machine restriction,
	// except that CLOSED goes through Close and its zero-balance check.
	ChangeStatus(ctx context.Context, accountID string, status domain.AccountStatus, actingUserID string) (*domain.Account, error)
	Activate(ctx context.Context, accountID string, actingUserID string) (*domain.Account, error)
	Suspend(ctx context.Context, accountID string, actingUserID string) (*domain.Account, error)

	// Close requires a zero balance.
	Close(ctx context.Context, accountID string, actingUserID string) (*domain.Account, error)
}

// AccountLedgerSvc exposes the two balance-mutating primitives, each in its own transaction.
type AccountLedgerSvc interface {
	Charge(ctx context.Context, entry domain.LedgerEntry) (*domain.Account, error)
	Credit(ctx context.Context, entry domain.LedgerEntry) (*domain.Account, error)
}

// AccountLedgerTxSvc runs the ledger primitives inside a transaction owned by
// the caller, so a sale or payment and its balance change commit together.
type AccountLedgerTxSvc interface {
	// LockAccount loads the account and holds its row lock until tx ends.
	LockAccount(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error)
	ChargeInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) (*domain.Account, error)
	CreditInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountLedgerSvc
	AccountLedgerTxSvc
}
