package services

import (
	"context"

	"github.com/hamisi/atm-backend/internal/core/domain"
)

// AuthSvcFacade verifies customer and technician credentials. Token
// issuance stays in the handler layer; these methods only decide whether
// the presented PIN matches.
type AuthSvcFacade interface {
	AuthenticateCustomer(ctx context.Context, cardNumber, pin string) (*domain.Customer, error)
	AuthenticateTechnician(ctx context.Context, badgeNumber, pin string) (*domain.Technician, error)
}
