package services_test

import (
	"time"

	"github.com/SscSPs/store_credit_app/internal/core/domain"
	portssvc "github.com/SscSPs/store_credit_app/internal/core/ports/services"
	"github.com/SscSPs/store_credit_app/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const adminID = "admin-1"

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// ledger wires the real services over a memStore.
type ledger struct {
	store    *memStore
	accounts portssvc.AccountSvcFacade
	sales    portssvc.SaleSvcFacade
	payments portssvc.PaymentSvcFacade
}

func newLedger(notifier portssvc.NotificationSvc) *ledger {
	store := newMemStore()
	users := services.NewUserService(store)
	movements := services.NewMovementService(store)
	accounts := services.NewAccountService(store, store, movements, services.WithUserDirectory(users))

	saleOpts := []services.SaleServiceOption{}
	paymentOpts := []services.PaymentServiceOption{}
	if notifier != nil {
		saleOpts = append(saleOpts, services.WithSaleNotifier(notifier))
		paymentOpts = append(paymentOpts, services.WithPaymentNotifier(notifier))
	}
	return &ledger{
		store:    store,
		accounts: accounts,
		sales:    services.NewSaleService(store, store, store, accounts, saleOpts...),
		payments: services.NewPaymentService(store, store, accounts, paymentOpts...),
	}
}

// seedCustomer stores a customer and an ACTIVE account with the given limit and balance.
func (l *ledger) seedCustomer(limit, balance string) domain.Account {
	now := time.Now()
	user := domain.User{
		UserID:      uuid.NewString(),
		Email:       uuid.NewString() + "@example.com",
		FullName:    "Test Customer",
		Role:        domain.RoleCustomer,
		AuditFields: domain.NewAuditFields(adminID, now),
	}
	l.store.seedUser(user)
	account := domain.Account{
		AccountID:   uuid.NewString(),
		UserID:      user.UserID,
		CreditLimit: dec(limit),
		Balance:     dec(balance),
		OpeningDate: domain.StartOfDay(now),
		Status:      domain.AccountActive,
		AuditFields: domain.NewAuditFields(adminID, now),
	}
	l.store.seedAccount(account)
	return account
}

func (l *ledger) seedProduct(price string) domain.Product {
	product := domain.Product{
		ProductID:   uuid.NewString(),
		Name:        "Widget " + price,
		UnitPrice:   dec(price),
		IsActive:    true,
		AuditFields: domain.NewAuditFields(adminID, time.Now()),
	}
	l.store.seedProduct(product)
	return product
}
