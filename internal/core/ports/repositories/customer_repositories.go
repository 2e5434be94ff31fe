package repositories

import (
	"context"

	"github.com/hamisi/atm-backend/internal/core/domain"
)

// CustomerRepository provides read access to card holders.
type CustomerRepository interface {
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	FindCustomerByCardNumber(ctx context.Context, cardNumber string) (*domain.Customer, error)
}
