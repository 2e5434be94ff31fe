package services

import (
	"context"

	"github.com/hamisi/atm-backend/internal/core/domain"
	"github.com/hamisi/atm-backend/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountSvcFacade exposes read-side account operations and the advisory
// bank pre-authorization check.
type AccountSvcFacade interface {
	GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error)
	ListAccountsByCustomer(ctx context.Context, customerID string) ([]domain.Account, error)
	LinkAccountsByCard(ctx context.Context, cardNumber string) (*domain.Customer, []domain.Account, error)
	Authorize(ctx context.Context, req dto.AuthorizeRequest) (*dto.AuthorizeResponse, error)
}
