package services

import (
	"context"

	"github.com/SscSPs/store_credit_app/internal/core/domain"
	"github.com/SscSPs/store_credit_app/internal/dto"
)

// ProductSvcFacade manages the product catalog.
type ProductSvcFacade interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, actingUserID string) (*domain.Product, error)
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, limit, offset int) ([]domain.Product, error)
	UpdateProductPrice(ctx context.Context, productID string, req dto.UpdateProductPriceRequest, actingUserID string) (*domain.Product, error)
}
