package services_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/store_credit_app/internal/apperrors"
	"github.com/SscSPs/store_credit_app/internal/core/domain"
	portsrepo "github.com/SscSPs/store_credit_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

// memStore is an in-memory stand-in for the Postgres repositories.
// Transactions run concurrently. Find*ForUpdate takes a per-row lock that is
// held until commit or rollback, like SELECT ... FOR UPDATE. Rolled back
// writes are undone.
type memStore struct {
	mu sync.RWMutex

	locksMu  sync.Mutex
	rowLocks map[string]*sync.Mutex

	// afterAccountLock runs once the account row is locked and read.
	afterAccountLock func(accountID string)

	accounts      map[string]domain.Account
	movements     []domain.Movement
	sales         map[string]domain.Sale
	payments      map[string]domain.Payment
	products      map[string]domain.Product
	users         map[string]domain.User
	notifications []domain.Notification

	commits   int
	rollbacks int
}

type memTx struct {
	pgx.Tx
	undo []func()
	held map[string]*sync.Mutex
	done bool
}

func newMemStore() *memStore {
	return &memStore{
		accounts: map[string]domain.Account{},
		sales:    map[string]domain.Sale{},
		payments: map[string]domain.Payment{},
		products: map[string]domain.Product{},
		users:    map[string]domain.User{},
		rowLocks: map[string]*sync.Mutex{},
	}
}

var (
	_ portsrepo.TransactionManager       = (*memStore)(nil)
	_ portsrepo.AccountRepositoryFacade  = (*memStore)(nil)
	_ portsrepo.MovementRepositoryFacade = (*memStore)(nil)
	_ portsrepo.SaleRepositoryFacade     = (*memStore)(nil)
	_ portsrepo.PaymentRepositoryFacade  = (*memStore)(nil)
	_ portsrepo.ProductRepositoryFacade  = (*memStore)(nil)
	_ portsrepo.UserRepositoryFacade     = (*memStore)(nil)
	_ portsrepo.NotificationRepository   = (*memStore)(nil)
)

func (s *memStore) provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:        s,
		AccountRepo:      s,
		MovementRepo:     s,
		SaleRepo:         s,
		PaymentRepo:      s,
		ProductRepo:      s,
		UserRepo:         s,
		NotificationRepo: s,
	}
}

// --- TransactionManager ---

func (s *memStore) Begin(ctx context.Context) (pgx.Tx, error) {
	return &memTx{held: map[string]*sync.Mutex{}}, nil
}

// lockRow blocks until tx owns key. Locks are re-entrant within a transaction.
func (s *memStore) lockRow(tx pgx.Tx, key string) {
	mt := tx.(*memTx)
	if _, ok := mt.held[key]; ok {
		return
	}
	s.locksMu.Lock()
	l, ok := s.rowLocks[key]
	if !ok {
		l = &sync.Mutex{}
		s.rowLocks[key] = l
	}
	s.locksMu.Unlock()
	l.Lock()
	mt.held[key] = l
}

func (mt *memTx) release() {
	for key, l := range mt.held {
		l.Unlock()
		delete(mt.held, key)
	}
}

func (s *memStore) Commit(ctx context.Context, tx pgx.Tx) error {
	mt := tx.(*memTx)
	if mt.done {
		return pgx.ErrTxClosed
	}
	mt.done = true
	mt.undo = nil
	s.mu.Lock()
	s.commits++
	s.mu.Unlock()
	mt.release()
	return nil
}

func (s *memStore) Rollback(ctx context.Context, tx pgx.Tx) error {
	mt := tx.(*memTx)
	if mt.done {
		return nil
	}
	mt.done = true
	s.mu.Lock()
	for i := len(mt.undo) - 1; i >= 0; i-- {
		mt.undo[i]()
	}
	s.rollbacks++
	s.mu.Unlock()
	mt.release()
	return nil
}

// write applies fn under the data lock and registers undo on the transaction.
func (s *memStore) write(tx pgx.Tx, fn func() error, undo func()) error {
	mt := tx.(*memTx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(); err != nil {
		return err
	}
	mt.undo = append(mt.undo, undo)
	return nil
}

// --- seeding helpers ---

func (s *memStore) seedUser(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.UserID] = u
}

func (s *memStore) seedProduct(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ProductID] = p
}

func (s *memStore) seedAccount(a domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[a.AccountID] = a
}

func (s *memStore) account(id string) domain.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accounts[id]
}

func (s *memStore) movementsFor(accountID string) []domain.Movement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Movement
	for _, m := range s.movements {
		if m.AccountID == accountID {
			out = append(out, m)
		}
	}
	return out
}

// --- AccountRepositoryFacade ---

func (s *memStore) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[accountID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &a, nil
}

func (s *memStore) FindAccountByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.accounts {
		if a.UserID == userID {
			return &a, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *memStore) ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Account
	for _, a := range s.accounts {
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *memStore) FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error) {
	s.lockRow(tx, "account:"+accountID)
	account, err := s.FindAccountByID(ctx, accountID)
	if err == nil && s.afterAccountLock != nil {
		s.afterAccountLock(accountID)
	}
	return account, err
}

func (s *memStore) SaveAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	return s.write(tx, func() error {
		for _, a := range s.accounts {
			if a.UserID == account.UserID {
				return apperrors.ErrDuplicate
			}
		}
		s.accounts[account.AccountID] = account
		return nil
	}, func() { delete(s.accounts, account.AccountID) })
}

func (s *memStore) UpdateAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	var prev domain.Account
	return s.write(tx, func() error {
		var ok bool
		if prev, ok = s.accounts[account.AccountID]; !ok {
			return apperrors.ErrNotFound
		}
		s.accounts[account.AccountID] = account
		return nil
	}, func() { s.accounts[account.AccountID] = prev })
}

func (s *memStore) DeleteAccountInTx(ctx context.Context, tx pgx.Tx, accountID string) error {
	var prev domain.Account
	return s.write(tx, func() error {
		var ok bool
		if prev, ok = s.accounts[accountID]; !ok {
			return apperrors.ErrNotFound
		}
		delete(s.accounts, accountID)
		return nil
	}, func() { s.accounts[accountID] = prev })
}

// --- MovementRepositoryFacade ---

func (s *memStore) SaveMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.Movement) error {
	return s.write(tx, func() error {
		s.movements = append(s.movements, movement)
		return nil
	}, func() {
		for i := range s.movements {
			if s.movements[i].MovementID == movement.MovementID {
				s.movements = append(s.movements[:i], s.movements[i+1:]...)
				return
			}
		}
	})
}

func (s *memStore) ListMovementsByAccount(ctx context.Context, accountID string, limit int, cursor *portsrepo.MovementCursor) ([]domain.Movement, error) {
	all := s.movementsFor(accountID)
	// newest first
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}
	if cursor != nil {
		for i, m := range all {
			if m.MovementID == cursor.MovementID {
				all = all[i+1:]
				break
			}
		}
	}
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (s *memStore) ListMovementsByAccountBetween(ctx context.Context, accountID string, from, to time.Time) ([]domain.Movement, error) {
	var out []domain.Movement
	for _, m := range s.movementsFor(accountID) {
		if !m.CreatedAt.Before(from) && !m.CreatedAt.After(to) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *memStore) ListMovementsByReference(ctx context.Context, ref domain.MovementReference) ([]domain.Movement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Movement
	for _, m := range s.movements {
		if m.Reference != nil && *m.Reference == ref {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *memStore) FindLastMovementBefore(ctx context.Context, accountID string, t time.Time) (*domain.Movement, error) {
	var last *domain.Movement
	for _, m := range s.movementsFor(accountID) {
		if m.CreatedAt.Before(t) {
			m := m
			last = &m
		}
	}
	if last == nil {
		return nil, apperrors.ErrNotFound
	}
	return last, nil
}

func (s *memStore) SumMovements(ctx context.Context, from, to time.Time) (domain.MovementTotals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	totals := domain.MovementTotals{From: from, To: to}
	for _, m := range s.movements {
		if m.CreatedAt.Before(from) || m.CreatedAt.After(to) {
			continue
		}
		switch m.Kind {
		case domain.MovementCharge:
			totals.Charges = totals.Charges.Add(m.Amount)
		case domain.MovementCredit:
			totals.Credits = totals.Credits.Add(m.Amount)
		}
	}
	return totals, nil
}

// --- SaleRepositoryFacade ---

func copySale(sale domain.Sale) domain.Sale {
	sale.Items = append([]domain.SaleItem(nil), sale.Items...)
	return sale
}

func (s *memStore) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sale, ok := s.sales[saleID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	sale = copySale(sale)
	return &sale, nil
}

func (s *memStore) ListSales(ctx context.Context, filter domain.SaleFilter) ([]domain.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Sale
	for _, sale := range s.sales {
		if filter.AccountID != "" && sale.AccountID != filter.AccountID {
			continue
		}
		if filter.Status != "" && sale.Status != filter.Status {
			continue
		}
		out = append(out, copySale(sale))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SaleDate.After(out[j].SaleDate) })
	return out, nil
}

func (s *memStore) FindSaleByIDForUpdate(ctx context.Context, tx pgx.Tx, saleID string) (*domain.Sale, error) {
	s.lockRow(tx, "sale:"+saleID)
	return s.FindSaleByID(ctx, saleID)
}

func (s *memStore) SaveSaleInTx(ctx context.Context, tx pgx.Tx, sale domain.Sale) error {
	return s.write(tx, func() error {
		s.sales[sale.SaleID] = copySale(sale)
		return nil
	}, func() { delete(s.sales, sale.SaleID) })
}

func (s *memStore) UpdateSaleInTx(ctx context.Context, tx pgx.Tx, sale domain.Sale) error {
	var prev domain.Sale
	return s.write(tx, func() error {
		var ok bool
		if prev, ok = s.sales[sale.SaleID]; !ok {
			return apperrors.ErrNotFound
		}
		// header only, items are immutable
		updated := copySale(sale)
		updated.Items = prev.Items
		s.sales[sale.SaleID] = updated
		return nil
	}, func() { s.sales[sale.SaleID] = prev })
}

func (s *memStore) DeleteSaleInTx(ctx context.Context, tx pgx.Tx, saleID string) error {
	var prev domain.Sale
	return s.write(tx, func() error {
		var ok bool
		if prev, ok = s.sales[saleID]; !ok {
			return apperrors.ErrNotFound
		}
		delete(s.sales, saleID)
		return nil
	}, func() { s.sales[saleID] = prev })
}

// --- PaymentRepositoryFacade ---

func (s *memStore) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.payments[paymentID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &p, nil
}

func (s *memStore) ListPayments(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Payment
	for _, p := range s.payments {
		if filter.AccountID != "" && p.AccountID != filter.AccountID {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *memStore) FindPaymentByIDForUpdate(ctx context.Context, tx pgx.Tx, paymentID string) (*domain.Payment, error) {
	s.lockRow(tx, "payment:"+paymentID)
	return s.FindPaymentByID(ctx, paymentID)
}

func (s *memStore) SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error {
	return s.write(tx, func() error {
		s.payments[payment.PaymentID] = payment
		return nil
	}, func() { delete(s.payments, payment.PaymentID) })
}

func (s *memStore) UpdatePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error {
	var prev domain.Payment
	return s.write(tx, func() error {
		var ok bool
		if prev, ok = s.payments[payment.PaymentID]; !ok {
			return apperrors.ErrNotFound
		}
		s.payments[payment.PaymentID] = payment
		return nil
	}, func() { s.payments[payment.PaymentID] = prev })
}

func (s *memStore) DeletePaymentInTx(ctx context.Context, tx pgx.Tx, paymentID string) error {
	var prev domain.Payment
	return s.write(tx, func() error {
		var ok bool
		if prev, ok = s.payments[paymentID]; !ok {
			return apperrors.ErrNotFound
		}
		delete(s.payments, paymentID)
		return nil
	}, func() { s.payments[paymentID] = prev })
}

// --- ProductRepositoryFacade ---

func (s *memStore) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[productID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &p, nil
}

func (s *memStore) FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]domain.Product, len(productIDs))
	for _, id := range productIDs {
		if p, ok := s.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (s *memStore) ListProducts(ctx context.Context, limit int, offset int) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Product
	for _, p := range s.products {
		out = append(out, p)
	}
	return out, nil
}

func (s *memStore) SaveProduct(ctx context.Context, product domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[product.ProductID] = product
	return nil
}

func (s *memStore) UpdateProduct(ctx context.Context, product domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[product.ProductID]; !ok {
		return apperrors.ErrNotFound
	}
	s.products[product.ProductID] = product
	return nil
}

// --- UserRepositoryFacade ---

func (s *memStore) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (s *memStore) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *memStore) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.User
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s *memStore) SaveUser(ctx context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return fmt.Errorf("%w: email %s", apperrors.ErrDuplicate, user.Email)
		}
	}
	s.users[user.UserID] = user
	return nil
}

// --- NotificationRepository ---

func (s *memStore) SaveNotification(ctx context.Context, notification domain.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append(s.notifications, notification)
	return nil
}

func (s *memStore) ListNotificationsByUser(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Notification{}
	for i := len(s.notifications) - 1; i >= 0 && len(out) < limit; i-- {
		if s.notifications[i].UserID == userID {
			out = append(out, s.notifications[i])
		}
	}
	return out, nil
}

// errBoom is returned by failing collaborators in rollback tests.
var errBoom = errors.New("boom")
