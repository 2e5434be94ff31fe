package repositories

import (
	"context"

	"github.com/hamisi/atm-backend/internal/core/domain"
)

// AccountRepository provides read access to accounts. Balance mutation is
// the LedgerRepository's job; nothing here writes.
type AccountRepository interface {
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)
	FindAccountsByCustomerID(ctx context.Context, customerID string) ([]domain.Account, error)
}
