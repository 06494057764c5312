package repositories

import (
	"context"

	"github.com/SscSPs/store_credit_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// SaleReader defines read operations for sales.
type SaleReader interface {
	// FindSaleByID retrieves a sale together with its line items.
	FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)

	// ListSales retrieves sale headers matching the filter, newest first.
	ListSales(ctx context.Context, filter domain.SaleFilter) ([]domain.Sale, error)
}

// SaleTransactionSupport defines sale writes inside a caller-owned transaction.
type SaleTransactionSupport interface {
	// FindSaleByIDForUpdate loads the sale with its items and locks the sale row.
	FindSaleByIDForUpdate(ctx context.Context, tx pgx.Tx, saleID string) (*domain.Sale, error)

	// SaveSaleInTx inserts the sale and all of its items.
	SaveSaleInTx(ctx context.Context, tx pgx.Tx, sale domain.Sale) error

	// UpdateSaleInTx writes the header fields (status, totals, notes, customer name).
	UpdateSaleInTx(ctx context.Context, tx pgx.Tx, sale domain.Sale) error

	// DeleteSaleInTx removes the sale and its items.
	DeleteSaleInTx(ctx context.Context, tx pgx.Tx, saleID string) error
}

// SaleRepositoryFacade combines all sale-related repository interfaces
type SaleRepositoryFacade interface {
	SaleReader
	SaleTransactionSupport
}
