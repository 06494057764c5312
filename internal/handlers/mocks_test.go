package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/store_credit_app/internal/core/domain"
	portssvc "github.com/SscSPs/store_credit_app/internal/core/ports/services"
	"github.com/SscSPs/store_credit_app/internal/dto"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) account(args mock.Arguments) (*domain.Account, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return m.account(m.Called(ctx, accountID))
}
func (m *MockAccountService) GetAccountByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	return m.account(m.Called(ctx, userID))
}
func (m *MockAccountService) ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) AvailableCredit(ctx context.Context, accountID string) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockAccountService) CanPurchase(ctx context.Context, accountID string, amount decimal.Decimal) (bool, error) {
	args := m.Called(ctx, accountID, amount)
	return args.Bool(0), args.Error(1)
}
func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actingUserID string) (*domain.Account, error) {
	return m.account(m.Called(ctx, req, actingUserID))
}
func (m *MockAccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, actingUserID string) (*domain.Account, error) {
	return m.account(m.Called(ctx, accountID, req, actingUserID))
}
func (m *MockAccountService) DeleteAccount(ctx context.Context, accountID string, actingUserID string) error {
	return m.Called(ctx, accountID, actingUserID).Error(0)
}
func (m *MockAccountService) SetCreditLimit(ctx context.Context, accountID string, newLimit decimal.Decimal, actingUserID string) (*domain.Account, error) {
	return m.account(m.Called(ctx, accountID, newLimit, actingUserID))
}
func (m *MockAccountService) ChangeStatus(ctx context.Context, accountID string, status domain.AccountStatus, actingUserID string) (*domain.Account, error) {
	return m.account(m.Called(ctx, accountID, status, actingUserID))
}
func (m *MockAccountService) Activate(ctx context.Context, accountID string, actingUserID string) (*domain.Account, error) {
	return m.account(m.Called(ctx, accountID, actingUserID))
}
func (m *MockAccountService) Suspend(ctx context.Context, accountID string, actingUserID string) (*domain.Account, error) {
	return m.account(m.Called(ctx, accountID, actingUserID))
}
func (m *MockAccountService) Close(ctx context.Context, accountID string, actingUserID string) (*domain.Account, error) {
	return m.account(m.Called(ctx, accountID, actingUserID))
}
func (m *MockAccountService) Charge(ctx context.Context, entry domain.LedgerEntry) (*domain.Account, error) {
	return m.account(m.Called(ctx, entry))
}
func (m *MockAccountService) Credit(ctx context.Context, entry domain.LedgerEntry) (*domain.Account, error) {
	return m.account(m.Called(ctx, entry))
}
func (m *MockAccountService) LockAccount(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error) {
	return m.account(m.Called(ctx, tx, accountID))
}
func (m *MockAccountService) ChargeInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) (*domain.Account, error) {
	return m.account(m.Called(ctx, tx, entry))
}
func (m *MockAccountService) CreditInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) (*domain.Account, error) {
	return m.account(m.Called(ctx, tx, entry))
}

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock SaleService ---
type MockSaleService struct {
	mock.Mock
}

func (m *MockSaleService) sale(args mock.Arguments) (*domain.Sale, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockSaleService) sales(args mock.Arguments) ([]domain.Sale, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sale), args.Error(1)
}

func (m *MockSaleService) GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	return m.sale(m.Called(ctx, saleID))
}
func (m *MockSaleService) ListSales(ctx context.Context, filter domain.SaleFilter) ([]domain.Sale, error) {
	return m.sales(m.Called(ctx, filter))
}
func (m *MockSaleService) CanModify(ctx context.Context, saleID string) (bool, error) {
	args := m.Called(ctx, saleID)
	return args.Bool(0), args.Error(1)
}
func (m *MockSaleService) CanCancel(ctx context.Context, saleID string) (bool, error) {
	args := m.Called(ctx, saleID)
	return args.Bool(0), args.Error(1)
}
func (m *MockSaleService) CreateSale(ctx context.Context, req dto.CreateSaleRequest, actingUserID string) (*domain.Sale, error) {
	return m.sale(m.Called(ctx, req, actingUserID))
}
func (m *MockSaleService) UpdateSale(ctx context.Context, saleID string, req dto.UpdateSaleRequest, actingUserID string) (*domain.Sale, error) {
	return m.sale(m.Called(ctx, saleID, req, actingUserID))
}
func (m *MockSaleService) RecalculateTotals(ctx context.Context, saleID string, actingUserID string) (*domain.Sale, error) {
	return m.sale(m.Called(ctx, saleID, actingUserID))
}
func (m *MockSaleService) DeleteSale(ctx context.Context, saleID string, actingUserID string) error {
	return m.Called(ctx, saleID, actingUserID).Error(0)
}
func (m *MockSaleService) MarkPaid(ctx context.Context, saleID string, actingUserID string) (*domain.Sale, error) {
	return m.sale(m.Called(ctx, saleID, actingUserID))
}
func (m *MockSaleService) MarkPartial(ctx context.Context, saleID string, actingUserID string) (*domain.Sale, error) {
	return m.sale(m.Called(ctx, saleID, actingUserID))
}
func (m *MockSaleService) Cancel(ctx context.Context, saleID string, actingUserID string) (*domain.Sale, error) {
	return m.sale(m.Called(ctx, saleID, actingUserID))
}
func (m *MockSaleService) ListMySales(ctx context.Context, userID string, filter domain.SaleFilter) ([]domain.Sale, error) {
	return m.sales(m.Called(ctx, userID, filter))
}
func (m *MockSaleService) GetMySale(ctx context.Context, userID string, saleID string) (*domain.Sale, error) {
	return m.sale(m.Called(ctx, userID, saleID))
}

var _ portssvc.SaleSvcFacade = (*MockSaleService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) totals(args mock.Arguments) (*domain.MovementTotals, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MovementTotals), args.Error(1)
}

func (m *MockReportingService) DailyTotals(ctx context.Context, day time.Time) (*domain.MovementTotals, error) {
	return m.totals(m.Called(ctx, day))
}
func (m *MockReportingService) MonthlyTotals(ctx context.Context, year int, month time.Month) (*domain.MovementTotals, error) {
	return m.totals(m.Called(ctx, year, month))
}
func (m *MockReportingService) Statement(ctx context.Context, accountID string, from, to time.Time) (*domain.AccountStatement, error) {
	args := m.Called(ctx, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountStatement), args.Error(1)
}
func (m *MockReportingService) CurrentBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockReportingService) Summary(ctx context.Context, day time.Time) (*domain.LedgerSummary, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerSummary), args.Error(1)
}

var _ portssvc.ReportingSvc = (*MockReportingService)(nil)

// --- Mock NotificationHistory ---
type MockNotificationHistory struct {
	mock.Mock
}

func (m *MockNotificationHistory) ListMyNotifications(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

var _ portssvc.NotificationHistorySvc = (*MockNotificationHistory)(nil)
