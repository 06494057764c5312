package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/store_credit_app/internal/apperrors"
	"github.com/SscSPs/store_credit_app/internal/core/domain"
	portsrepo "github.com/SscSPs/store_credit_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/store_credit_app/internal/core/ports/services"
	"github.com/SscSPs/store_credit_app/internal/dto"
	"github.com/SscSPs/store_credit_app/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const defaultMovementPageSize = 20

type movementService struct {
	BaseService
	movementRepo portsrepo.MovementRepositoryFacade
	now          func() time.Time
}

// MovementServiceOption is a functional option for configuring the movement service
type MovementServiceOption func(*movementService)

// WithMovementClock overrides time.Now for the recorded creation timestamps.
func WithMovementClock(now func() time.Time) MovementServiceOption {
	return func(s *movementService) {
		s.now = now
	}
}

// NewMovementService creates the movement recorder and ledger reader.
func NewMovementService(movementRepo portsrepo.MovementRepositoryFacade, options ...MovementServiceOption) portssvc.MovementSvcFacade {
	svc := &movementService{
		movementRepo: movementRepo,
		now:          time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.MovementSvcFacade = (*movementService)(nil)

func (s *movementService) RecordInTx(ctx context.Context, tx pgx.Tx, movement domain.Movement) (*domain.Movement, error) {
	if err := movement.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if movement.MovementID == "" {
		movement.MovementID = uuid.NewString()
	}
	if movement.CreatedAt.IsZero() {
		movement.CreatedAt = s.now()
	}
	if err := s.movementRepo.SaveMovementInTx(ctx, tx, movement); err != nil {
		s.LogError(ctx, err, "Failed to record movement",
			slog.String("account_id", movement.AccountID),
			slog.String("kind", string(movement.Kind)))
		return nil, err
	}
	return &movement, nil
}

func (s *movementService) ListMovementsByAccount(ctx context.Context, accountID string, params dto.ListMovementsParams) (*dto.ListMovementsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultMovementPageSize
	}

	var cursor *portsrepo.MovementCursor
	if params.NextToken != "" {
		createdAt, movementID, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid next token", apperrors.ErrValidation)
		}
		cursor = &portsrepo.MovementCursor{CreatedAt: createdAt, MovementID: movementID}
	}

	// One extra row tells us whether another page exists.
	movements, err := s.movementRepo.ListMovementsByAccount(ctx, accountID, limit+1, cursor)
	if err != nil {
		s.LogError(ctx, err, "Failed to list movements", slog.String("account_id", accountID))
		return nil, err
	}

	res := &dto.ListMovementsResponse{}
	if len(movements) > limit {
		movements = movements[:limit]
		last := movements[len(movements)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.MovementID)
		res.NextToken = &token
	}
	res.Movements = dto.ToListMovementResponse(movements)
	return res, nil
}

func (s *movementService) ListMovementsByReference(ctx context.Context, ref domain.MovementReference) ([]domain.Movement, error) {
	if !ref.Kind.IsValid() || ref.ID == "" {
		return nil, fmt.Errorf("%w: invalid movement reference", apperrors.ErrValidation)
	}
	movements, err := s.movementRepo.ListMovementsByReference(ctx, ref)
	if err != nil {
		s.LogError(ctx, err, "Failed to list movements by reference",
			slog.String("reference_kind", string(ref.Kind)),
			slog.String("reference_id", ref.ID))
		return nil, err
	}
	return movements, nil
}
