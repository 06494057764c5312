package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/store_credit_app/internal/apperrors"
	"github.com/SscSPs/store_credit_app/internal/core/domain"
	portsrepo "github.com/SscSPs/store_credit_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/store_credit_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

type reportingService struct {
	BaseService
	movementRepo portsrepo.MovementReader
	accountRepo  portsrepo.AccountReader
	cache        portsrepo.TotalsCache
	location     *time.Location
	group        singleflight.Group
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithTotalsCache caches daily and monthly totals.
func WithTotalsCache(cache portsrepo.TotalsCache) ReportingServiceOption {
	return func(s *reportingService) {
		s.cache = cache
	}
}

// WithReportingLocation sets the time zone that day and month boundaries are computed in.
func WithReportingLocation(loc *time.Location) ReportingServiceOption {
	return func(s *reportingService) {
		s.location = loc
	}
}

// NewReportingService creates the read-only reporting façade.
func NewReportingService(
	movementRepo portsrepo.MovementReader,
	accountRepo portsrepo.AccountReader,
	options ...ReportingServiceOption,
) portssvc.ReportingSvc {
	svc := &reportingService{
		movementRepo: movementRepo,
		accountRepo:  accountRepo,
		location:     time.Local,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReportingSvc = (*reportingService)(nil)

func (s *reportingService) DailyTotals(ctx context.Context, day time.Time) (*domain.MovementTotals, error) {
	day = day.In(s.location)
	from := domain.StartOfDay(day)
	to := domain.EndOfDay(day)
	return s.totals(ctx, "daily:"+from.Format("2006-01-02"), from, to)
}

func (s *reportingService) MonthlyTotals(ctx context.Context, year int, month time.Month) (*domain.MovementTotals, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: month must be between 1 and 12", apperrors.ErrValidation)
	}
	from := time.Date(year, month, 1, 0, 0, 0, 0, s.location)
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return s.totals(ctx, "monthly:"+from.Format("2006-01"), from, to)
}

// totals serves from cache when possible. Concurrent misses for the same key
// share a single query.
func (s *reportingService) totals(ctx context.Context, key string, from, to time.Time) (*domain.MovementTotals, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.GetTotals(ctx, key)
		if err != nil {
			s.LogWarn(ctx, "Totals cache read failed", slog.String("key", key), slog.String("error", err.Error()))
		} else if ok {
			return cached, nil
		}
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		totals, err := s.movementRepo.SumMovements(ctx, from, to)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			if err := s.cache.SetTotals(ctx, key, totals); err != nil {
				s.LogWarn(ctx, "Totals cache write failed", slog.String("key", key), slog.String("error", err.Error()))
			}
		}
		return totals, nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to sum movements", slog.String("key", key))
		return nil, err
	}
	totals := v.(domain.MovementTotals)
	return &totals, nil
}

func (s *reportingService) Statement(ctx context.Context, accountID string, from, to time.Time) (*domain.AccountStatement, error) {
	from = domain.StartOfDay(from.In(s.location))
	to = domain.EndOfDay(to.In(s.location))
	if to.Before(from) {
		return nil, fmt.Errorf("%w: statement range ends before it starts", apperrors.ErrValidation)
	}
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}

	movements, err := s.movementRepo.ListMovementsByAccountBetween(ctx, accountID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load statement movements", slog.String("account_id", accountID))
		return nil, err
	}

	statement := &domain.AccountStatement{
		AccountID: accountID,
		From:      from,
		To:        to,
		Movements: movements,
	}
	if len(movements) > 0 {
		statement.OpeningBalance = movements[0].BalanceBefore
		statement.ClosingBalance = movements[len(movements)-1].BalanceAfter
		return statement, nil
	}

	// Nothing in range: the balance is whatever the last earlier movement left.
	last, err := s.movementRepo.FindLastMovementBefore(ctx, accountID, from)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		statement.OpeningBalance = decimal.Zero
	case err != nil:
		return nil, err
	default:
		statement.OpeningBalance = last.BalanceAfter
	}
	statement.ClosingBalance = statement.OpeningBalance
	return statement, nil
}

func (s *reportingService) CurrentBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return account.Balance, nil
}

func (s *reportingService) Summary(ctx context.Context, day time.Time) (*domain.LedgerSummary, error) {
	day = day.In(s.location)
	summary := &domain.LedgerSummary{Date: domain.StartOfDay(day)}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		daily, err := s.DailyTotals(gctx, day)
		if err != nil {
			return err
		}
		summary.Daily = *daily
		return nil
	})
	g.Go(func() error {
		monthly, err := s.MonthlyTotals(gctx, day.Year(), day.Month())
		if err != nil {
			return err
		}
		summary.Monthly = *monthly
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summary, nil
}
