package services

import (
	"context"

	"github.com/SscSPs/store_credit_app/internal/core/domain"
	"github.com/SscSPs/store_credit_app/internal/dto"
)

// SaleReaderSvc defines read operations for sales
type SaleReaderSvc interface {
	GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)
	ListSales(ctx context.Context, filter domain.SaleFilter) ([]domain.Sale, error)
	CanModify(ctx context.Context, saleID string) (bool, error)
	CanCancel(ctx context.Context, saleID string) (bool, error)
}

// SaleWriterSvc defines sale creation and editing
type SaleWriterSvc interface {
	CreateSale(ctx context.Context, req dto.CreateSaleRequest, actingUserID string) (*domain.Sale, error)
	UpdateSale(ctx context.Context, saleID string, req dto.UpdateSaleRequest, actingUserID string) (*domain.Sale, error)
	RecalculateTotals(ctx context.Context, saleID string, actingUserID string) (*domain.Sale, error)
	DeleteSale(ctx context.Context, saleID string, actingUserID string) error
}

// SaleLifecycleSvc drives the sale state machine
type SaleLifecycleSvc interface {
	MarkPaid(ctx context.Context, saleID string, actingUserID string) (*domain.Sale, error)
	MarkPartial(ctx context.Context, saleID string, actingUserID string) (*domain.Sale, error)
	Cancel(ctx context.Context, saleID string, actingUserID string) (*domain.Sale, error)
}

// SaleCustomerSvc serves the customer's own purchases. Sales outside the
// customer's account are reported as not found.
type SaleCustomerSvc interface {
	ListMySales(ctx context.Context, userID string, filter domain.SaleFilter) ([]domain.Sale, error)
	GetMySale(ctx context.Context, userID string, saleID string) (*domain.Sale, error)
}

// SaleSvcFacade combines all sale-related service interfaces
type SaleSvcFacade interface {
	SaleReaderSvc
	SaleWriterSvc
	SaleLifecycleSvc
	SaleCustomerSvc
}
