package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hamisi/atm-backend/internal/apperrors"
	"github.com/hamisi/atm-backend/internal/core/domain"
	portsrepo "github.com/hamisi/atm-backend/internal/core/ports/repositories"
	portssvc "github.com/hamisi/atm-backend/internal/core/ports/services"
	"github.com/hamisi/atm-backend/internal/middleware"
	"github.com/hamisi/atm-backend/internal/utils"
)

// authService verifies card or badge credentials against stored bcrypt
// PIN hashes. Token issuance stays in the handler layer.
type authService struct {
	customerRepo   portsrepo.CustomerRepository
	technicianRepo portsrepo.TechnicianRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(customerRepo portsrepo.CustomerRepository, technicianRepo portsrepo.TechnicianRepository) portssvc.AuthSvcFacade {
	return &authService{customerRepo: customerRepo, technicianRepo: technicianRepo}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// AuthenticateCustomer checks a card number and PIN pair. Unknown cards
// and wrong PINs both collapse into ErrUnauthorized so the caller cannot
// tell which half failed.
func (s *authService) AuthenticateCustomer(ctx context.Context, cardNumber, pin string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	customer, err := s.customerRepo.FindCustomerByCardNumber(ctx, cardNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Info("Customer authentication declined, card not found")
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up card: %w", err)
	}

	if !utils.CheckPINHash(pin, customer.PINHash) {
		logger.Info("Customer authentication declined, PIN mismatch", slog.String("customer_id", customer.CustomerID))
		return nil, apperrors.ErrUnauthorized
	}

	logger.Info("Customer authenticated", slog.String("customer_id", customer.CustomerID))
	return customer, nil
}

// AuthenticateTechnician checks a badge number and PIN pair.
func (s *authService) AuthenticateTechnician(ctx context.Context, badgeNumber, pin string) (*domain.Technician, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	technician, err := s.technicianRepo.FindTechnicianByBadge(ctx, badgeNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Info("Technician authentication declined, badge not found")
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up badge: %w", err)
	}

	if !utils.CheckPINHash(pin, technician.PINHash) {
		logger.Info("Technician authentication declined, PIN mismatch", slog.String("technician_id", technician.TechnicianID))
		return nil, apperrors.ErrUnauthorized
	}

	logger.Info("Technician authenticated", slog.String("technician_id", technician.TechnicianID))
	return technician, nil
}
