package repositories

import (
	"context"

	"github.com/SscSPs/store_credit_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByUserID retrieves the account owned by a user.
	FindAccountByUserID(ctx context.Context, userID string) (*domain.Account, error)

	// ListAccounts retrieves a filtered, paginated list of accounts.
	ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error)
}

// AccountTransactionSupport defines account writes. They all run inside a caller-owned transaction.
type AccountTransactionSupport interface {
	// FindAccountByIDForUpdate selects the account and locks its row until tx ends.
	FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error)

	// SaveAccountInTx persists a new account. A second account for the same user yields apperrors.ErrDuplicate.
	SaveAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) error

	// UpdateAccountInTx writes balance, limit, status and opening date.
	UpdateAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) error

	// DeleteAccountInTx removes the account row.
	DeleteAccountInTx(ctx context.Context, tx pgx.Tx, accountID string) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountTransactionSupport
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
