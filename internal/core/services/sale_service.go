package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/store_credit_app/internal/apperrors"
	"github.com/SscSPs/store_credit_app/internal/core/domain"
	portsrepo "github.com/SscSPs/store_credit_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/store_credit_app/internal/core/ports/services"
	"github.com/SscSPs/store_credit_app/internal/dto"
	"github.com/SscSPs/store_credit_app/internal/utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type saleService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	saleRepo    portsrepo.SaleRepositoryFacade
	productRepo portsrepo.ProductReader
	accounts    portssvc.AccountSvcFacade
	notifier    portssvc.NotificationSvc
	now         func() time.Time
}

// SaleServiceOption is a functional option for configuring the sale service
type SaleServiceOption func(*saleService)

// WithSaleNotifier sends an invoice notification after every sale on an account.
func WithSaleNotifier(notifier portssvc.NotificationSvc) SaleServiceOption {
	return func(s *saleService) {
		s.notifier = notifier
	}
}

// WithSaleClock overrides time.Now, mostly for tests.
func WithSaleClock(now func() time.Time) SaleServiceOption {
	return func(s *saleService) {
		s.now = now
	}
}

// NewSaleService creates the sale service.
func NewSaleService(
	txManager portsrepo.TransactionManager,
	saleRepo portsrepo.SaleRepositoryFacade,
	productRepo portsrepo.ProductReader,
	accounts portssvc.AccountSvcFacade,
	options ...SaleServiceOption,
) portssvc.SaleSvcFacade {
	svc := &saleService{
		txManager:   txManager,
		saleRepo:    saleRepo,
		productRepo: productRepo,
		accounts:    accounts,
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.SaleSvcFacade = (*saleService)(nil)

func (s *saleService) GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	sale, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get sale", slog.String("sale_id", saleID))
		}
		return nil, err
	}
	return sale, nil
}

func (s *saleService) ListSales(ctx context.Context, filter domain.SaleFilter) ([]domain.Sale, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	sales, err := s.saleRepo.ListSales(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list sales")
		return nil, err
	}
	return sales, nil
}

func (s *saleService) CanModify(ctx context.Context, saleID string) (bool, error) {
	sale, err := s.GetSaleByID(ctx, saleID)
	if err != nil {
		return false, err
	}
	return sale.CanModify(), nil
}

func (s *saleService) CanCancel(ctx context.Context, saleID string) (bool, error) {
	sale, err := s.GetSaleByID(ctx, saleID)
	if err != nil {
		return false, err
	}
	return sale.CanCancel(), nil
}

func (s *saleService) CreateSale(ctx context.Context, req dto.CreateSaleRequest, actingUserID string) (*domain.Sale, error) {
	if !req.Kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown sale kind %q", apperrors.ErrValidation, req.Kind)
	}
	customerName := strings.TrimSpace(req.CustomerName)
	if req.Kind == domain.SaleCredit && req.AccountID == "" {
		return nil, fmt.Errorf("%w: a CREDIT sale requires an account", apperrors.ErrInvalidSaleType)
	}
	if req.AccountID == "" && customerName == "" {
		return nil, fmt.Errorf("%w: a sale without an account requires a customer name", apperrors.ErrInvalidSaleType)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: a sale needs at least one item", apperrors.ErrValidation)
	}

	now := s.now()
	sale := domain.Sale{
		SaleID:       uuid.NewString(),
		AccountID:    req.AccountID,
		CustomerName: customerName,
		SaleDate:     now,
		Kind:         req.Kind,
		Notes:        req.Notes,
		AuditFields:  domain.NewAuditFields(actingUserID, now),
	}
	items, err := s.priceItems(ctx, sale.SaleID, req.Items)
	if err != nil {
		return nil, err
	}
	sale.Items = items
	sale.RecalculateTotals()

	switch sale.Kind {
	case domain.SaleCash:
		sale.Status = domain.SalePaid
		err = s.createCashSale(ctx, sale)
	case domain.SaleCredit:
		sale.Status = domain.SalePending
		err = s.createCreditSale(ctx, sale, actingUserID)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to create sale",
			slog.String("kind", string(sale.Kind)),
			slog.String("account_id", sale.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Sale created",
		slog.String("sale_id", sale.SaleID),
		slog.String("kind", string(sale.Kind)),
		slog.String("total", sale.Total.String()))

	if s.notifier != nil && sale.HasAccount() {
		s.notifier.NotifyInvoice(ctx, sale)
	}
	return &sale, nil
}

// priceItems builds line items at the current catalog prices.
func (s *saleService) priceItems(ctx context.Context, saleID string, reqItems []dto.SaleItemRequest) ([]domain.SaleItem, error) {
	ids := make([]string, 0, len(reqItems))
	seen := make(map[string]bool, len(reqItems))
	for _, item := range reqItems {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be greater than zero", apperrors.ErrValidation)
		}
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}

	products, err := s.productRepo.FindProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]domain.SaleItem, 0, len(reqItems))
	for _, item := range reqItems {
		product, ok := products[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, item.ProductID)
		}
		if !product.IsActive {
			return nil, fmt.Errorf("%w: product %s is not available", apperrors.ErrValidation, item.ProductID)
		}
		items = append(items, domain.NewSaleItem(uuid.NewString(), saleID, product, item.Quantity))
	}
	return items, nil
}

func (s *saleService) createCashSale(ctx context.Context, sale domain.Sale) error {
	return withTx(ctx, s.txManager, func(tx pgx.Tx) error {
		if sale.HasAccount() {
			if _, err := s.accounts.LockAccount(ctx, tx, sale.AccountID); err != nil {
				return err
			}
		}
		return s.saleRepo.SaveSaleInTx(ctx, tx, sale)
	})
}

// createCreditSale checks and charges under the account row lock, so two
// concurrent sales cannot both pass the available-credit check.
func (s *saleService) createCreditSale(ctx context.Context, sale domain.Sale, actingUserID string) error {
	return withTx(ctx, s.txManager, func(tx pgx.Tx) error {
		account, err := s.accounts.LockAccount(ctx, tx, sale.AccountID)
		if err != nil {
			return err
		}
		if !account.CanPurchase(sale.Total) {
			if account.Status != domain.AccountActive {
				return fmt.Errorf("%w: account is %s", apperrors.ErrInsufficientBalance, account.Status)
			}
			return fmt.Errorf("%w: available credit is %s", apperrors.ErrInsufficientBalance, utils.FormatMoney(account.AvailableCredit()))
		}
		if err := s.saleRepo.SaveSaleInTx(ctx, tx, sale); err != nil {
			return err
		}
		_, err = s.accounts.ChargeInTx(ctx, tx, domain.LedgerEntry{
			AccountID:    sale.AccountID,
			Amount:       sale.Total,
			Concept:      "Sale #" + sale.SaleID,
			ActingUserID: actingUserID,
			Reference:    &domain.MovementReference{Kind: domain.ReferenceSale, ID: sale.SaleID},
		})
		return err
	})
}

func (s *saleService) UpdateSale(ctx context.Context, saleID string, req dto.UpdateSaleRequest, actingUserID string) (*domain.Sale, error) {
	return s.mutate(ctx, saleID, actingUserID, func(_ pgx.Tx, sale *domain.Sale) error {
		if !sale.CanModify() {
			return fmt.Errorf("%w: sale is %s, only PENDING sales can be edited", apperrors.ErrInvalidSaleState, sale.Status)
		}
		if req.CustomerName != nil {
			sale.CustomerName = strings.TrimSpace(*req.CustomerName)
		}
		if req.Notes != nil {
			sale.Notes = *req.Notes
		}
		if !sale.HasAccount() && sale.CustomerName == "" {
			return fmt.Errorf("%w: a sale without an account requires a customer name", apperrors.ErrInvalidSaleType)
		}
		return nil
	})
}

func (s *saleService) RecalculateTotals(ctx context.Context, saleID string, actingUserID string) (*domain.Sale, error) {
	return s.mutate(ctx, saleID, actingUserID, func(_ pgx.Tx, sale *domain.Sale) error {
		if !sale.CanModify() {
			return fmt.Errorf("%w: sale is %s, only PENDING sales can be recalculated", apperrors.ErrInvalidSaleState, sale.Status)
		}
		sale.RecalculateTotals()
		return nil
	})
}

func (s *saleService) DeleteSale(ctx context.Context, saleID string, actingUserID string) error {
	err := withTx(ctx, s.txManager, func(tx pgx.Tx) error {
		sale, err := s.saleRepo.FindSaleByIDForUpdate(ctx, tx, saleID)
		if err != nil {
			return err
		}
		if sale.Status != domain.SaleCancelled {
			return fmt.Errorf("%w: sale is %s, only CANCELLED sales can be deleted", apperrors.ErrInvalidSaleState, sale.Status)
		}
		return s.saleRepo.DeleteSaleInTx(ctx, tx, saleID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete sale", slog.String("sale_id", saleID))
		return err
	}
	s.LogInfo(ctx, "Sale deleted", slog.String("sale_id", saleID), slog.String("deleted_by", actingUserID))
	return nil
}

// MarkPaid settles the sale. A credit sale on an account credits its full total back.
func (s *saleService) MarkPaid(ctx context.Context, saleID string, actingUserID string) (*domain.Sale, error) {
	return s.mutate(ctx, saleID, actingUserID, func(tx pgx.Tx, sale *domain.Sale) error {
		if !sale.Status.CanTransitionTo(domain.SalePaid) {
			return fmt.Errorf("%w: cannot mark a %s sale as PAID", apperrors.ErrInvalidSaleState, sale.Status)
		}
		if sale.Kind == domain.SaleCredit && sale.HasAccount() {
			_, err := s.accounts.CreditInTx(ctx, tx, domain.LedgerEntry{
				AccountID:    sale.AccountID,
				Amount:       sale.Total,
				Concept:      "Payment sale #" + sale.SaleID,
				ActingUserID: actingUserID,
				Reference:    &domain.MovementReference{Kind: domain.ReferenceSale, ID: sale.SaleID},
			})
			if err != nil {
				return err
			}
		}
		sale.Status = domain.SalePaid
		return nil
	})
}

// MarkPartial only changes the status; partial amounts are not tracked on the ledger.
func (s *saleService) MarkPartial(ctx context.Context, saleID string, actingUserID string) (*domain.Sale, error) {
	return s.mutate(ctx, saleID, actingUserID, func(_ pgx.Tx, sale *domain.Sale) error {
		if !sale.Status.CanTransitionTo(domain.SalePartial) {
			return fmt.Errorf("%w: cannot mark a %s sale as PARTIAL", apperrors.ErrInvalidSaleState, sale.Status)
		}
		s.LogWarn(ctx, "Sale marked PARTIAL without a ledger entry",
			slog.String("sale_id", sale.SaleID),
			slog.String("account_id", sale.AccountID))
		sale.Status = domain.SalePartial
		return nil
	})
}

// Cancel reverses the charge of a PENDING credit sale. A PARTIAL sale is
// cancelled without any reversal.
func (s *saleService) Cancel(ctx context.Context, saleID string, actingUserID string) (*domain.Sale, error) {
	return s.mutate(ctx, saleID, actingUserID, func(tx pgx.Tx, sale *domain.Sale) error {
		if !sale.CanCancel() {
			return fmt.Errorf("%w: cannot cancel a %s sale", apperrors.ErrInvalidSaleState, sale.Status)
		}
		if sale.Kind == domain.SaleCredit && sale.HasAccount() {
			switch sale.Status {
			case domain.SalePending:
				_, err := s.accounts.CreditInTx(ctx, tx, domain.LedgerEntry{
					AccountID:    sale.AccountID,
					Amount:       sale.Total,
					Concept:      "Cancellation #" + sale.SaleID,
					ActingUserID: actingUserID,
					Reference:    &domain.MovementReference{Kind: domain.ReferenceSale, ID: sale.SaleID},
				})
				if err != nil {
					return err
				}
			case domain.SalePartial:
				s.LogWarn(ctx, "Cancelling PARTIAL sale without reversing its charge",
					slog.String("sale_id", sale.SaleID),
					slog.String("account_id", sale.AccountID),
					slog.String("total", sale.Total.String()))
			}
		}
		sale.Status = domain.SaleCancelled
		return nil
	})
}

func (s *saleService) ListMySales(ctx context.Context, userID string, filter domain.SaleFilter) ([]domain.Sale, error) {
	account, err := s.accounts.GetAccountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	filter.AccountID = account.AccountID
	return s.ListSales(ctx, filter)
}

func (s *saleService) GetMySale(ctx context.Context, userID string, saleID string) (*domain.Sale, error) {
	account, err := s.accounts.GetAccountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	sale, err := s.GetSaleByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale.AccountID != account.AccountID {
		return nil, fmt.Errorf("%w: sale %s", apperrors.ErrNotFound, saleID)
	}
	return sale, nil
}

// mutate locks the sale row, applies fn and writes the header back.
func (s *saleService) mutate(ctx context.Context, saleID string, actingUserID string, fn func(tx pgx.Tx, sale *domain.Sale) error) (*domain.Sale, error) {
	var sale *domain.Sale
	err := withTx(ctx, s.txManager, func(tx pgx.Tx) error {
		var err error
		sale, err = s.saleRepo.FindSaleByIDForUpdate(ctx, tx, saleID)
		if err != nil {
			return err
		}
		if err := fn(tx, sale); err != nil {
			return err
		}
		sale.Touch(actingUserID, s.now())
		return s.saleRepo.UpdateSaleInTx(ctx, tx, *sale)
	})
	if err != nil {
		s.LogError(ctx, err, "Sale update failed", slog.String("sale_id", saleID))
		return nil, err
	}
	return sale, nil
}
