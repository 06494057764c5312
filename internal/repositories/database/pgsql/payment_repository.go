package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/store_credit_app/internal/apperrors"
	"github.com/SscSPs/store_credit_app/internal/core/domain"
	portsrepo "github.com/SscSPs/store_credit_app/internal/core/ports/repositories"
	"github.com/SscSPs/store_credit_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const paymentColumns = `payment_id, account_id, amount, method, payment_date, observations, status, created_at, created_by, last_updated_at, last_updated_by`

type PgxPaymentRepository struct {
	pool *pgxpool.Pool
}

func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{pool: pool}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

func toModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:    d.PaymentID,
		AccountID:    d.AccountID,
		Amount:       d.Amount,
		Method:       string(d.Method),
		PaymentDate:  d.PaymentDate,
		Observations: nullString(d.Observations),
		Status:       string(d.Status),
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:    m.PaymentID,
		AccountID:    m.AccountID,
		Amount:       m.Amount,
		Method:       domain.PaymentMethod(m.Method),
		PaymentDate:  m.PaymentDate,
		Observations: derefString(m.Observations),
		Status:       domain.PaymentStatus(m.Status),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanPayment(row pgx.Row) (models.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID,
		&m.AccountID,
		&m.Amount,
		&m.Method,
		&m.PaymentDate,
		&m.Observations,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxPaymentRepository) findOne(ctx context.Context, q querier, query, paymentID string) (*domain.Payment, error) {
	m, err := scanPayment(q.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: payment %s", apperrors.ErrNotFound, paymentID)
		}
		return nil, fmt.Errorf("failed to find payment %s: %w", paymentID, err)
	}
	payment := toDomainPayment(m)
	return &payment, nil
}

func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	return r.findOne(ctx, r.pool, `SELECT `+paymentColumns+` FROM payments WHERE payment_id = $1;`, paymentID)
}

func (r *PgxPaymentRepository) FindPaymentByIDForUpdate(ctx context.Context, tx pgx.Tx, paymentID string) (*domain.Payment, error) {
	return r.findOne(ctx, tx, `SELECT `+paymentColumns+` FROM payments WHERE payment_id = $1 FOR UPDATE;`, paymentID)
}

// ListPayments filters by account, or by owning user through the accounts table.
func (r *PgxPaymentRepository) ListPayments(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, error) {
	var w whereBuilder
	if filter.AccountID != "" {
		w.add("account_id = ?", filter.AccountID)
	}
	if filter.UserID != "" {
		w.add("account_id IN (SELECT account_id FROM accounts WHERE user_id = ?)", filter.UserID)
	}
	if filter.Status != "" {
		w.add("status = ?", string(filter.Status))
	}
	if filter.Method != "" {
		w.add("method = ?", string(filter.Method))
	}
	if filter.From != nil {
		w.add("payment_date >= ?", *filter.From)
	}
	if filter.To != nil {
		w.add("payment_date <= ?", *filter.To)
	}
	if filter.MinAmount != nil {
		w.add("amount >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		w.add("amount <= ?", *filter.MaxAmount)
	}
	query := `SELECT ` + paymentColumns + ` FROM payments` + w.clause() +
		` ORDER BY payment_date DESC, payment_id DESC` + w.page(filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		m, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, toDomainPayment(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", rows.Err())
	}
	return payments, nil
}

func (r *PgxPaymentRepository) SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error {
	m := toModelPayment(payment)
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := tx.Exec(ctx, query,
		m.PaymentID,
		m.AccountID,
		m.Amount,
		m.Method,
		m.PaymentDate,
		m.Observations,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "payment %s", m.PaymentID)
	}
	return nil
}

func (r *PgxPaymentRepository) UpdatePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error {
	m := toModelPayment(payment)
	query := `
		UPDATE payments
		SET amount = $2, method = $3, observations = $4, status = $5, last_updated_at = $6, last_updated_by = $7
		WHERE payment_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.PaymentID,
		m.Amount,
		m.Method,
		m.Observations,
		m.Status,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "update payment %s", m.PaymentID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: payment %s", apperrors.ErrNotFound, m.PaymentID)
	}
	return nil
}

func (r *PgxPaymentRepository) DeletePaymentInTx(ctx context.Context, tx pgx.Tx, paymentID string) error {
	cmdTag, err := tx.Exec(ctx, `DELETE FROM payments WHERE payment_id = $1;`, paymentID)
	if err != nil {
		return mapPgError(err, "payment %s", paymentID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: payment %s", apperrors.ErrNotFound, paymentID)
	}
	return nil
}
