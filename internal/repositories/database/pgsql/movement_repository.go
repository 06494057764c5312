package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/store_credit_app/internal/apperrors"
	"github.com/SscSPs/store_credit_app/internal/core/domain"
	portsrepo "github.com/SscSPs/store_credit_app/internal/core/ports/repositories"
	"github.com/SscSPs/store_credit_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const movementColumns = `movement_id, account_id, kind, concept, amount, balance_before, balance_after, reference_kind, reference_id, user_id, created_at`

type PgxMovementRepository struct {
	pool *pgxpool.Pool
}

func newPgxMovementRepository(pool *pgxpool.Pool) portsrepo.MovementRepositoryFacade {
	return &PgxMovementRepository{pool: pool}
}

var _ portsrepo.MovementRepositoryFacade = (*PgxMovementRepository)(nil)

func toModelMovement(d domain.Movement) models.Movement {
	m := models.Movement{
		MovementID:    d.MovementID,
		AccountID:     d.AccountID,
		Kind:          string(d.Kind),
		Concept:       d.Concept,
		Amount:        d.Amount,
		BalanceBefore: d.BalanceBefore,
		BalanceAfter:  d.BalanceAfter,
		UserID:        d.UserID,
		CreatedAt:     d.CreatedAt,
	}
	if d.Reference != nil {
		kind := string(d.Reference.Kind)
		m.ReferenceKind = &kind
		m.ReferenceID = &d.Reference.ID
	}
	return m
}

func toDomainMovement(m models.Movement) domain.Movement {
	d := domain.Movement{
		MovementID:    m.MovementID,
		AccountID:     m.AccountID,
		Kind:          domain.MovementKind(m.Kind),
		Concept:       m.Concept,
		Amount:        m.Amount,
		BalanceBefore: m.BalanceBefore,
		BalanceAfter:  m.BalanceAfter,
		UserID:        m.UserID,
		CreatedAt:     m.CreatedAt,
	}
	if m.ReferenceKind != nil && m.ReferenceID != nil {
		d.Reference = &domain.MovementReference{Kind: domain.ReferenceKind(*m.ReferenceKind), ID: *m.ReferenceID}
	}
	return d
}

func scanMovement(row pgx.Row) (models.Movement, error) {
	var m models.Movement
	err := row.Scan(
		&m.MovementID,
		&m.AccountID,
		&m.Kind,
		&m.Concept,
		&m.Amount,
		&m.BalanceBefore,
		&m.BalanceAfter,
		&m.ReferenceKind,
		&m.ReferenceID,
		&m.UserID,
		&m.CreatedAt,
	)
	return m, err
}

func (r *PgxMovementRepository) queryMovements(ctx context.Context, query string, args ...any) ([]domain.Movement, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query movements: %w", err)
	}
	defer rows.Close()

	movements := []domain.Movement{}
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movement row: %w", err)
		}
		movements = append(movements, toDomainMovement(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating movement rows: %w", rows.Err())
	}
	return movements, nil
}

// SaveMovementInTx appends a movement. The table has no UPDATE or DELETE path.
func (r *PgxMovementRepository) SaveMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.Movement) error {
	m := toModelMovement(movement)
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := tx.Exec(ctx, query,
		m.MovementID,
		m.AccountID,
		m.Kind,
		m.Concept,
		m.Amount,
		m.BalanceBefore,
		m.BalanceAfter,
		m.ReferenceKind,
		m.ReferenceID,
		m.UserID,
		m.CreatedAt,
	)
	if err != nil {
		return mapPgError(err, "movement %s", m.MovementID)
	}
	return nil
}

// ListMovementsByAccount uses keyset pagination on (created_at, movement_id).
func (r *PgxMovementRepository) ListMovementsByAccount(ctx context.Context, accountID string, limit int, cursor *portsrepo.MovementCursor) ([]domain.Movement, error) {
	if cursor == nil {
		return r.queryMovements(ctx, `
			SELECT `+movementColumns+` FROM movements
			WHERE account_id = $1
			ORDER BY created_at DESC, movement_id DESC
			LIMIT $2;`, accountID, limit)
	}
	return r.queryMovements(ctx, `
		SELECT `+movementColumns+` FROM movements
		WHERE account_id = $1 AND (created_at, movement_id) < ($2, $3)
		ORDER BY created_at DESC, movement_id DESC
		LIMIT $4;`, accountID, cursor.CreatedAt, cursor.MovementID, limit)
}

func (r *PgxMovementRepository) ListMovementsByAccountBetween(ctx context.Context, accountID string, from, to time.Time) ([]domain.Movement, error) {
	return r.queryMovements(ctx, `
		SELECT `+movementColumns+` FROM movements
		WHERE account_id = $1 AND created_at BETWEEN $2 AND $3
		ORDER BY created_at, movement_id;`, accountID, from, to)
}

func (r *PgxMovementRepository) ListMovementsByReference(ctx context.Context, ref domain.MovementReference) ([]domain.Movement, error) {
	return r.queryMovements(ctx, `
		SELECT `+movementColumns+` FROM movements
		WHERE reference_kind = $1 AND reference_id = $2
		ORDER BY created_at, movement_id;`, string(ref.Kind), ref.ID)
}

func (r *PgxMovementRepository) FindLastMovementBefore(ctx context.Context, accountID string, t time.Time) (*domain.Movement, error) {
	m, err := scanMovement(r.pool.QueryRow(ctx, `
		SELECT `+movementColumns+` FROM movements
		WHERE account_id = $1 AND created_at < $2
		ORDER BY created_at DESC, movement_id DESC
		LIMIT 1;`, accountID, t))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find last movement for account %s: %w", accountID, err)
	}
	movement := toDomainMovement(m)
	return &movement, nil
}

// SumMovements totals charges and credits over [from, to]. Adjustments carry no amount.
func (r *PgxMovementRepository) SumMovements(ctx context.Context, from, to time.Time) (domain.MovementTotals, error) {
	totals := domain.MovementTotals{From: from, To: to}
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE kind = 'CHARGE'), 0),
			COALESCE(SUM(amount) FILTER (WHERE kind = 'CREDIT'), 0)
		FROM movements
		WHERE created_at BETWEEN $1 AND $2;
	`
	var charges, credits decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, from, to).Scan(&charges, &credits); err != nil {
		return totals, fmt.Errorf("failed to sum movements: %w", err)
	}
	totals.Charges = charges
	totals.Credits = credits
	return totals, nil
}
