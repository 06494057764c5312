package services

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/store_credit_app/internal/core/ports/repositories"
	"github.com/SscSPs/store_credit_app/internal/middleware"
	"github.com/jackc/pgx/v5"
)

// withTx runs fn in a transaction. Any error or panic rolls back; nothing fn
// wrote is visible unless it returns nil and the commit succeeds.
func withTx(ctx context.Context, tm portsrepo.TransactionManager, fn func(tx pgx.Tx) error) (err error) {
	tx, err := tm.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tm.Rollback(ctx, tx)
			panic(p)
		}
		if err != nil {
			if rbErr := tm.Rollback(ctx, tx); rbErr != nil {
				middleware.GetLoggerFromCtx(ctx).Error("Failed to roll back transaction",
					slog.String("error", rbErr.Error()))
			}
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tm.Commit(ctx, tx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
