package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/store_credit_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// MovementCursor marks the last movement of a page (newest-first order).
type MovementCursor struct {
	CreatedAt  time.Time
	MovementID string
}

// MovementWriter appends movements. There is deliberately no update or delete.
type MovementWriter interface {
	SaveMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.Movement) error
}

// MovementReader defines read operations over the ledger.
type MovementReader interface {
	// ListMovementsByAccount returns up to limit movements older than cursor, newest first.
	ListMovementsByAccount(ctx context.Context, accountID string, limit int, cursor *MovementCursor) ([]domain.Movement, error)

	// ListMovementsByAccountBetween returns movements in [from, to], oldest first.
	ListMovementsByAccountBetween(ctx context.Context, accountID string, from, to time.Time) ([]domain.Movement, error)

	// ListMovementsByReference returns every movement pointing at the given sale or payment.
	ListMovementsByReference(ctx context.Context, ref domain.MovementReference) ([]domain.Movement, error)

	// FindLastMovementBefore returns the latest movement strictly before t, or apperrors.ErrNotFound.
	FindLastMovementBefore(ctx context.Context, accountID string, t time.Time) (*domain.Movement, error)

	// SumMovements totals CHARGE and CREDIT amounts in [from, to] across all accounts.
	SumMovements(ctx context.Context, from, to time.Time) (domain.MovementTotals, error)
}

// MovementRepositoryFacade combines all movement-related repository interfaces
type MovementRepositoryFacade interface {
	MovementReader
	MovementWriter
}
