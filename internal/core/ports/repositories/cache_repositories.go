package repositories

import (
	"context"

	"github.com/SscSPs/store_credit_app/internal/core/domain"
)

// TotalsCache keeps computed movement totals for a short while.
type TotalsCache interface {
	// GetTotals returns the cached totals and whether the key was present.
	GetTotals(ctx context.Context, key string) (*domain.MovementTotals, bool, error)
	SetTotals(ctx context.Context, key string, totals domain.MovementTotals) error
}
