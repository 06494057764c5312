package repositories

import (
	"context"

	"github.com/SscSPs/store_credit_app/internal/core/domain"
)

// ProductReader defines read operations for the product catalog
type ProductReader interface {
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// FindProductsByIDs returns the products keyed by ID. Missing IDs are simply absent.
	FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error)

	ListProducts(ctx context.Context, limit int, offset int) ([]domain.Product, error)
}

// ProductWriter defines write operations for the product catalog
type ProductWriter interface {
	SaveProduct(ctx context.Context, product domain.Product) error
	UpdateProduct(ctx context.Context, product domain.Product) error
}

// ProductRepositoryFacade combines all product-related repository interfaces
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
}
