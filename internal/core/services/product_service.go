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
	"github.com/google/uuid"
)

type productService struct {
	BaseService
	productRepo portsrepo.ProductRepositoryFacade
}

func NewProductService(productRepo portsrepo.ProductRepositoryFacade) portssvc.ProductSvcFacade {
	return &productService{productRepo: productRepo}
}

var _ portssvc.ProductSvcFacade = (*productService)(nil)

func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, actingUserID string) (*domain.Product, error) {
	if req.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: unit price cannot be negative", apperrors.ErrInvalidAmount)
	}
	if err := requireCents(req.UnitPrice, "unit price"); err != nil {
		return nil, err
	}
	product := domain.Product{
		ProductID:   uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		UnitPrice:   req.UnitPrice,
		IsActive:    true,
		AuditFields: domain.NewAuditFields(actingUserID, time.Now()),
	}
	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		s.LogError(ctx, err, "Failed to create product", slog.String("name", req.Name))
		return nil, err
	}
	return &product, nil
}

func (s *productService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	return s.productRepo.FindProductByID(ctx, productID)
}

func (s *productService) ListProducts(ctx context.Context, limit, offset int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.productRepo.ListProducts(ctx, limit, offset)
}

// UpdateProductPrice only affects future sales; items already sold keep their price.
func (s *productService) UpdateProductPrice(ctx context.Context, productID string, req dto.UpdateProductPriceRequest, actingUserID string) (*domain.Product, error) {
	if req.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: unit price cannot be negative", apperrors.ErrInvalidAmount)
	}
	if err := requireCents(req.UnitPrice, "unit price"); err != nil {
		return nil, err
	}
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	product.UnitPrice = req.UnitPrice
	product.Touch(actingUserID, time.Now())
	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		s.LogError(ctx, err, "Failed to update product price", slog.String("product_id", productID))
		return nil, err
	}
	return product, nil
}
