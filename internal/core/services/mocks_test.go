package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/store_credit_app/internal/core/domain"
	portsrepo "github.com/SscSPs/store_credit_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockNotifier is a mock type for the NotificationSvc interface
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyInvoice(ctx context.Context, sale domain.Sale) {
	m.Called(ctx, sale)
}

func (m *MockNotifier) NotifyPayment(ctx context.Context, userID string, concept string, amount decimal.Decimal) {
	m.Called(ctx, userID, concept, amount)
}

// MockNotificationQueue is a mock type for the NotificationQueue interface
type MockNotificationQueue struct {
	mock.Mock
}

func (m *MockNotificationQueue) EnqueueNotification(ctx context.Context, notification domain.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

// MockMovementRecorder is a mock type for the MovementRecorderSvc interface
type MockMovementRecorder struct {
	mock.Mock
}

func (m *MockMovementRecorder) RecordInTx(ctx context.Context, tx pgx.Tx, movement domain.Movement) (*domain.Movement, error) {
	args := m.Called(ctx, tx, movement)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movement), args.Error(1)
}

// MockMovementReader is a mock type for the MovementReader interface
type MockMovementReader struct {
	mock.Mock
}

func (m *MockMovementReader) ListMovementsByAccount(ctx context.Context, accountID string, limit int, cursor *portsrepo.MovementCursor) ([]domain.Movement, error) {
	args := m.Called(ctx, accountID, limit, cursor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Movement), args.Error(1)
}

func (m *MockMovementReader) ListMovementsByAccountBetween(ctx context.Context, accountID string, from, to time.Time) ([]domain.Movement, error) {
	args := m.Called(ctx, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Movement), args.Error(1)
}

func (m *MockMovementReader) ListMovementsByReference(ctx context.Context, ref domain.MovementReference) ([]domain.Movement, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Movement), args.Error(1)
}

func (m *MockMovementReader) FindLastMovementBefore(ctx context.Context, accountID string, t time.Time) (*domain.Movement, error) {
	args := m.Called(ctx, accountID, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movement), args.Error(1)
}

func (m *MockMovementReader) SumMovements(ctx context.Context, from, to time.Time) (domain.MovementTotals, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(domain.MovementTotals), args.Error(1)
}

// MockTotalsCache is a mock type for the TotalsCache interface
type MockTotalsCache struct {
	mock.Mock
}

func (m *MockTotalsCache) GetTotals(ctx context.Context, key string) (*domain.MovementTotals, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.MovementTotals), args.Bool(1), args.Error(2)
}

func (m *MockTotalsCache) SetTotals(ctx context.Context, key string, totals domain.MovementTotals) error {
	args := m.Called(ctx, key, totals)
	return args.Error(0)
}
