package services

import (
	"context"

	"github.com/hamisi/atm-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerSvcFacade exposes the money-movement protocol. Every operation
// either commits fully (balance mutation plus log entry) or leaves no
// trace; declined outcomes are reported through sentinel errors that
// handlers translate into {success:false} responses.
type LedgerSvcFacade interface {
	Withdraw(ctx context.Context, accountID string, amount decimal.Decimal) (*domain.Transaction, error)
	Deposit(ctx context.Context, accountID string, amount decimal.Decimal) (*domain.Transaction, error)
	Transfer(ctx context.Context, fromAccountID, toAccountNumber string, amount decimal.Decimal) (*domain.Transaction, error)
	ListRecentTransactions(ctx context.Context, accountID string, limit int) ([]domain.Transaction, error)
}
