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

const (
	saleColumns     = `sale_id, account_id, customer_name, sale_date, subtotal, total, kind, status, notes, created_at, created_by, last_updated_at, last_updated_by`
	saleItemColumns = `sale_item_id, sale_id, product_id, quantity, unit_price, subtotal`
)

type PgxSaleRepository struct {
	pool *pgxpool.Pool
}

func newPgxSaleRepository(pool *pgxpool.Pool) portsrepo.SaleRepositoryFacade {
	return &PgxSaleRepository{pool: pool}
}

var _ portsrepo.SaleRepositoryFacade = (*PgxSaleRepository)(nil)

func toModelSale(d domain.Sale) models.Sale {
	return models.Sale{
		SaleID:       d.SaleID,
		AccountID:    nullString(d.AccountID),
		CustomerName: nullString(d.CustomerName),
		SaleDate:     d.SaleDate,
		Subtotal:     d.Subtotal,
		Total:        d.Total,
		Kind:         string(d.Kind),
		Status:       string(d.Status),
		Notes:        nullString(d.Notes),
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainSale(m models.Sale) domain.Sale {
	return domain.Sale{
		SaleID:       m.SaleID,
		AccountID:    derefString(m.AccountID),
		CustomerName: derefString(m.CustomerName),
		SaleDate:     m.SaleDate,
		Subtotal:     m.Subtotal,
		Total:        m.Total,
		Kind:         domain.SaleKind(m.Kind),
		Status:       domain.SaleStatus(m.Status),
		Notes:        derefString(m.Notes),
		Items:        []domain.SaleItem{},
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanSale(row pgx.Row) (models.Sale, error) {
	var m models.Sale
	err := row.Scan(
		&m.SaleID,
		&m.AccountID,
		&m.CustomerName,
		&m.SaleDate,
		&m.Subtotal,
		&m.Total,
		&m.Kind,
		&m.Status,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxSaleRepository) loadItems(ctx context.Context, q querier, saleID string) ([]domain.SaleItem, error) {
	rows, err := q.Query(ctx, `SELECT `+saleItemColumns+` FROM sale_items WHERE sale_id = $1 ORDER BY sale_item_id;`, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for sale %s: %w", saleID, err)
	}
	defer rows.Close()

	items := []domain.SaleItem{}
	for rows.Next() {
		var m models.SaleItem
		if err := rows.Scan(&m.SaleItemID, &m.SaleID, &m.ProductID, &m.Quantity, &m.UnitPrice, &m.Subtotal); err != nil {
			return nil, fmt.Errorf("failed to scan sale item row: %w", err)
		}
		items = append(items, domain.SaleItem{
			SaleItemID: m.SaleItemID,
			SaleID:     m.SaleID,
			ProductID:  m.ProductID,
			Quantity:   m.Quantity,
			UnitPrice:  m.UnitPrice,
			Subtotal:   m.Subtotal,
		})
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating sale item rows: %w", rows.Err())
	}
	return items, nil
}

func (r *PgxSaleRepository) findOne(ctx context.Context, q querier, query, saleID string) (*domain.Sale, error) {
	m, err := scanSale(q.QueryRow(ctx, query, saleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: sale %s", apperrors.ErrNotFound, saleID)
		}
		return nil, fmt.Errorf("failed to find sale %s: %w", saleID, err)
	}
	sale := toDomainSale(m)
	if sale.Items, err = r.loadItems(ctx, q, saleID); err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *PgxSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	return r.findOne(ctx, r.pool, `SELECT `+saleColumns+` FROM sales WHERE sale_id = $1;`, saleID)
}

// FindSaleByIDForUpdate locks the sale header row. Items are read under the same tx.
func (r *PgxSaleRepository) FindSaleByIDForUpdate(ctx context.Context, tx pgx.Tx, saleID string) (*domain.Sale, error) {
	return r.findOne(ctx, tx, `SELECT `+saleColumns+` FROM sales WHERE sale_id = $1 FOR UPDATE;`, saleID)
}

// ListSales returns headers only; callers that need items fetch the sale by ID.
func (r *PgxSaleRepository) ListSales(ctx context.Context, filter domain.SaleFilter) ([]domain.Sale, error) {
	var w whereBuilder
	if filter.AccountID != "" {
		w.add("account_id = ?", filter.AccountID)
	}
	if filter.Kind != "" {
		w.add("kind = ?", string(filter.Kind))
	}
	if filter.Status != "" {
		w.add("status = ?", string(filter.Status))
	}
	if filter.From != nil {
		w.add("sale_date >= ?", *filter.From)
	}
	if filter.To != nil {
		w.add("sale_date <= ?", *filter.To)
	}
	if filter.MinTotal != nil {
		w.add("total >= ?", *filter.MinTotal)
	}
	if filter.MaxTotal != nil {
		w.add("total <= ?", *filter.MaxTotal)
	}
	if filter.CustomerName != "" {
		w.add("customer_name ILIKE ?", "%"+filter.CustomerName+"%")
	}
	query := `SELECT ` + saleColumns + ` FROM sales` + w.clause() +
		` ORDER BY sale_date DESC, sale_id DESC` + w.page(filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()

	sales := []domain.Sale{}
	for rows.Next() {
		m, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale row: %w", err)
		}
		sales = append(sales, toDomainSale(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating sale rows: %w", rows.Err())
	}
	return sales, nil
}

// SaveSaleInTx inserts the header then batches the items.
func (r *PgxSaleRepository) SaveSaleInTx(ctx context.Context, tx pgx.Tx, sale domain.Sale) error {
	m := toModelSale(sale)
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, query,
		m.SaleID,
		m.AccountID,
		m.CustomerName,
		m.SaleDate,
		m.Subtotal,
		m.Total,
		m.Kind,
		m.Status,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "sale %s", m.SaleID)
	}

	batch := &pgx.Batch{}
	itemQuery := `INSERT INTO sale_items (` + saleItemColumns + `) VALUES ($1, $2, $3, $4, $5, $6);`
	for _, item := range sale.Items {
		batch.Queue(itemQuery, item.SaleItemID, sale.SaleID, item.ProductID, item.Quantity, item.UnitPrice, item.Subtotal)
	}
	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for range sale.Items {
		if _, err := br.Exec(); err != nil {
			return mapPgError(err, "item of sale %s", sale.SaleID)
		}
	}
	return nil
}

func (r *PgxSaleRepository) UpdateSaleInTx(ctx context.Context, tx pgx.Tx, sale domain.Sale) error {
	m := toModelSale(sale)
	query := `
		UPDATE sales
		SET account_id = $2, customer_name = $3, subtotal = $4, total = $5, status = $6, notes = $7,
			last_updated_at = $8, last_updated_by = $9
		WHERE sale_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.SaleID,
		m.AccountID,
		m.CustomerName,
		m.Subtotal,
		m.Total,
		m.Status,
		m.Notes,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "update sale %s", m.SaleID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: sale %s", apperrors.ErrNotFound, m.SaleID)
	}
	return nil
}

// DeleteSaleInTx removes the sale; sale_items cascade.
func (r *PgxSaleRepository) DeleteSaleInTx(ctx context.Context, tx pgx.Tx, saleID string) error {
	cmdTag, err := tx.Exec(ctx, `DELETE FROM sales WHERE sale_id = $1;`, saleID)
	if err != nil {
		return mapPgError(err, "sale %s", saleID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: sale %s", apperrors.ErrNotFound, saleID)
	}
	return nil
}
