package services

import (
	"context"

	"github.com/SscSPs/store_credit_app/internal/core/domain"
	"github.com/SscSPs/store_credit_app/internal/dto"
	"github.com/jackc/pgx/v5"
)

// MovementRecorderSvc appends ledger entries.
type MovementRecorderSvc interface {
	// RecordInTx validates the snapshots and appends the movement within tx.
	RecordInTx(ctx context.Context, tx pgx.Tx, movement domain.Movement) (*domain.Movement, error)
}

// MovementReaderSvc defines read operations over the ledger.
type MovementReaderSvc interface {
	ListMovementsByAccount(ctx context.Context, accountID string, params dto.ListMovementsParams) (*dto.ListMovementsResponse, error)
	ListMovementsByReference(ctx context.Context, ref domain.MovementReference) ([]domain.Movement, error)
}

// MovementSvcFacade combines all movement-related service interfaces
type MovementSvcFacade interface {
	MovementRecorderSvc
	MovementReaderSvc
}
