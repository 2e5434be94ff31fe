// Package memory provides an in-process implementation of the ledger and
// account repositories. It backs tests and local development where no
// Postgres is available, and enforces the same protocol guarantees as the
// SQL implementation: per-account mutual exclusion around the
// check-then-write section, bounded lock waits, and all-or-nothing
// application of balance mutation plus log entry.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hamisi/atm-backend/internal/apperrors"
	"github.com/hamisi/atm-backend/internal/core/domain"
	portsrepo "github.com/hamisi/atm-backend/internal/core/ports/repositories"
)

type account struct {
	meta    domain.Account
	balance decimal.Decimal
	// sem is a binary semaphore serializing all balance mutations of this
	// account. A channel instead of sync.Mutex allows a bounded wait.
	sem chan struct{}
}

// Ledger is an in-memory account store plus transaction log.
type Ledger struct {
	mu           sync.RWMutex
	accounts     map[string]*account
	byNumber     map[string]string
	transactions map[string][]domain.Transaction
	lockTimeout  time.Duration
}

// NewLedger creates an empty in-memory ledger. lockTimeout bounds how long
// an operation waits for an account's lock before failing with
// apperrors.ErrTimeout.
func NewLedger(lockTimeout time.Duration) *Ledger {
	return &Ledger{
		accounts:     make(map[string]*account),
		byNumber:     make(map[string]string),
		transactions: make(map[string][]domain.Transaction),
		lockTimeout:  lockTimeout,
	}
}

var (
	_ portsrepo.LedgerRepository  = (*Ledger)(nil)
	_ portsrepo.AccountRepository = (*Ledger)(nil)
)

// SeedAccount registers an account. Accounts come from seed data only;
// there is no runtime account creation in this core.
func (l *Ledger) SeedAccount(acc domain.Account) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.accounts[acc.AccountID] = &account{
		meta:    acc,
		balance: acc.Balance,
		sem:     make(chan struct{}, 1),
	}
	l.byNumber[acc.AccountNumber] = acc.AccountID
}

func (l *Ledger) get(accountID string) (*account, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	a, ok := l.accounts[accountID]
	return a, ok
}

// acquire takes an account's semaphore within the bounded wait.
func (l *Ledger) acquire(ctx context.Context, a *account) error {
	select {
	case a.sem <- struct{}{}:
		return nil
	case <-time.After(l.lockTimeout):
		return apperrors.ErrTimeout
	case <-ctx.Done():
		return apperrors.ErrTimeout
	}
}

func (l *Ledger) release(a *account) {
	<-a.sem
}

// commit publishes one operation's balance writes together with its log
// entry under the store lock, so no reader observes the mutation without
// the entry or a half-applied transfer. Callers hold the account
// semaphore(s), which keeps the preceding balance check valid.
func (l *Ledger) commit(txnType domain.TransactionType, amount decimal.Decimal, logAccountID string, writes func()) domain.Transaction {
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     logAccountID,
		Type:          txnType,
		Amount:        amount,
		CreatedAt:     time.Now().UTC(),
	}
	l.mu.Lock()
	writes()
	l.transactions[logAccountID] = append(l.transactions[logAccountID], txn)
	l.mu.Unlock()
	return txn
}

// Withdraw debits the account under its lock, declining rather than
// driving the balance negative.
func (l *Ledger) Withdraw(ctx context.Context, accountID string, amount decimal.Decimal) (*domain.Transaction, error) {
	a, ok := l.get(accountID)
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if err := l.acquire(ctx, a); err != nil {
		return nil, err
	}
	defer l.release(a)

	if a.balance.LessThan(amount) {
		return nil, apperrors.ErrInsufficientFunds
	}
	txn := l.commit(domain.Withdraw, amount, accountID, func() {
		a.balance = a.balance.Sub(amount)
	})
	return &txn, nil
}

// Deposit credits the account under its lock.
func (l *Ledger) Deposit(ctx context.Context, accountID string, amount decimal.Decimal) (*domain.Transaction, error) {
	a, ok := l.get(accountID)
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if err := l.acquire(ctx, a); err != nil {
		return nil, err
	}
	defer l.release(a)

	txn := l.commit(domain.Deposit, amount, accountID, func() {
		a.balance = a.balance.Add(amount)
	})
	return &txn, nil
}

// Transfer locks both accounts in sorted ID order (so opposing transfers
// cannot deadlock), then applies debit, credit and the sender-side log
// entry while both locks are held.
func (l *Ledger) Transfer(ctx context.Context, fromAccountID, toAccountID string, amount decimal.Decimal) (*domain.Transaction, error) {
	from, ok := l.get(fromAccountID)
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	to, ok := l.get(toAccountID)
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	// A single binary semaphore per account cannot be acquired twice.
	if fromAccountID == toAccountID {
		return nil, fmt.Errorf("%w: cannot transfer to the same account", apperrors.ErrValidation)
	}

	ordered := []*account{from, to}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].meta.AccountID < ordered[j].meta.AccountID
	})
	for i, a := range ordered {
		if err := l.acquire(ctx, a); err != nil {
			for _, held := range ordered[:i] {
				l.release(held)
			}
			return nil, err
		}
	}
	defer func() {
		for _, a := range ordered {
			l.release(a)
		}
	}()

	if from.balance.LessThan(amount) {
		return nil, apperrors.ErrInsufficientFunds
	}
	txn := l.commit(domain.Transfer, amount, fromAccountID, func() {
		from.balance = from.balance.Sub(amount)
		to.balance = to.balance.Add(amount)
	})
	return &txn, nil
}

// FindTransactionsByAccountID returns the account's most recent log
// entries, newest first.
func (l *Ledger) FindTransactionsByAccountID(ctx context.Context, accountID string, limit int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 10
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	log := l.transactions[accountID]
	out := make([]domain.Transaction, 0, limit)
	for i := len(log) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, log[i])
	}
	return out, nil
}

// FindAccountByID returns a snapshot of the account's current state.
func (l *Ledger) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	a, ok := l.get(accountID)
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	snap := a.meta
	snap.Balance = a.balance
	return &snap, nil
}

// FindAccountByNumber resolves an external account number to its account.
func (l *Ledger) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	l.mu.RLock()
	id, ok := l.byNumber[accountNumber]
	l.mu.RUnlock()
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return l.FindAccountByID(ctx, id)
}

// FindAccountsByCustomerID lists a customer's accounts, ordered by number.
func (l *Ledger) FindAccountsByCustomerID(ctx context.Context, customerID string) ([]domain.Account, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	accounts := []domain.Account{}
	for _, a := range l.accounts {
		if a.meta.CustomerID == customerID {
			snap := a.meta
			snap.Balance = a.balance
			accounts = append(accounts, snap)
		}
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].AccountNumber < accounts[j].AccountNumber
	})
	return accounts, nil
}
