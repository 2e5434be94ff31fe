package repositories

import (
	"context"

	"github.com/hamisi/atm-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerRepository applies balance mutations and their log entries as
// single atomic units. Implementations must guarantee that the balance
// check, the balance write and the transaction insert for one operation
// are never interleaved with another operation's writes to the same
// account, and that a partially applied operation is never observable.
//
// Expected sentinel errors: apperrors.ErrNotFound when the (sender)
// account does not exist, apperrors.ErrInsufficientFunds when a debit
// would drive the balance negative, apperrors.ErrTimeout when locks
// cannot be acquired within the bounded wait.
type LedgerRepository interface {
	// Withdraw debits the account and appends a withdraw log entry.
	Withdraw(ctx context.Context, accountID string, amount decimal.Decimal) (*domain.Transaction, error)

	// Deposit credits the account and appends a deposit log entry.
	Deposit(ctx context.Context, accountID string, amount decimal.Decimal) (*domain.Transaction, error)

	// Transfer debits the sender, credits the recipient and appends one
	// transfer log entry attributed to the sender. Both account IDs must be
	// internal IDs; number-to-ID resolution happens in the service layer.
	Transfer(ctx context.Context, fromAccountID, toAccountID string, amount decimal.Decimal) (*domain.Transaction, error)

	// FindTransactionsByAccountID returns the most recent log entries for
	// the account, newest first.
	FindTransactionsByAccountID(ctx context.Context, accountID string, limit int) ([]domain.Transaction, error)
}
