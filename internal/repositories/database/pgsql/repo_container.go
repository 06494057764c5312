package pgsql

import (
	portsrepo "github.com/SscSPs/store_credit_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:        &BaseRepository{Pool: dbPool},
		AccountRepo:      newPgxAccountRepository(dbPool),
		MovementRepo:     newPgxMovementRepository(dbPool),
		SaleRepo:         newPgxSaleRepository(dbPool),
		PaymentRepo:      newPgxPaymentRepository(dbPool),
		ProductRepo:      newPgxProductRepository(dbPool),
		UserRepo:         newPgxUserRepository(dbPool),
		NotificationRepo: newPgxNotificationRepository(dbPool),
	}
}
