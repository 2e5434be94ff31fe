package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/hamisi/atm-backend/internal/apperrors"
	"github.com/hamisi/atm-backend/internal/core/domain"
	portsrepo "github.com/hamisi/atm-backend/internal/core/ports/repositories"
	portssvc "github.com/hamisi/atm-backend/internal/core/ports/services"
	"github.com/hamisi/atm-backend/internal/dto"
	"github.com/hamisi/atm-backend/internal/middleware"
)

type accountService struct {
	accountRepo  portsrepo.AccountRepository
	customerRepo portsrepo.CustomerRepository
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepository, customerRepo portsrepo.CustomerRepository) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo, customerRepo: customerRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// GetBalance returns the account's current balance.
func (s *accountService) GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, err
		}
		return decimal.Zero, fmt.Errorf("failed to retrieve account: %w", err)
	}
	return account.Balance, nil
}

// ListAccountsByCustomer returns every account owned by the customer.
func (s *accountService) ListAccountsByCustomer(ctx context.Context, customerID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByCustomerID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve accounts: %w", err)
	}
	return accounts, nil
}

// LinkAccountsByCard resolves a card number to its owner and the owner's
// accounts. An unknown card is a declined outcome, not an error page.
func (s *accountService) LinkAccountsByCard(ctx context.Context, cardNumber string) (*domain.Customer, []domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	customer, err := s.customerRepo.FindCustomerByCardNumber(ctx, cardNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Info("Account link declined, card not found")
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("failed to look up card: %w", err)
	}

	accounts, err := s.accountRepo.FindAccountsByCustomerID(ctx, customer.CustomerID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve linked accounts: %w", err)
	}
	return customer, accounts, nil
}

// Authorize gives an advisory verdict on whether a transaction would
// succeed right now. It reserves nothing; the ledger re-checks balances
// under its own locks when the transaction is actually applied.
func (s *accountService) Authorize(ctx context.Context, req dto.AuthorizeRequest) (*dto.AuthorizeResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Requests that cannot be evaluated at all are rejected with
	// success=false. Evaluated requests report success=true and carry
	// the verdict in authorized.
	rejected := func(message string) *dto.AuthorizeResponse {
		return &dto.AuthorizeResponse{Success: false, Message: message}
	}

	switch req.TransactionType {
	case "withdraw", "deposit", "transfer":
	default:
		return rejected("Invalid transaction type"), nil
	}

	account, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return rejected("Account not found"), nil
		}
		return nil, fmt.Errorf("failed to retrieve account: %w", err)
	}

	customer, err := s.customerRepo.FindCustomerByID(ctx, account.CustomerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return rejected("Card verification failed"), nil
		}
		return nil, fmt.Errorf("failed to retrieve account owner: %w", err)
	}
	if customer.CardNumber != req.CardNumber {
		logger.Info("Authorization rejected, card does not match account owner",
			slog.String("account_id", req.AccountID))
		return rejected("Card verification failed"), nil
	}

	extent := &dto.AuthorizedExtent{ID: account.AccountID, Balance: account.Balance}
	verdict := func(authorized bool, message string) *dto.AuthorizeResponse {
		return &dto.AuthorizeResponse{Success: true, Authorized: authorized, Message: message, Account: extent}
	}

	switch req.TransactionType {
	case "withdraw":
		if account.Balance.LessThan(req.Amount) {
			return verdict(false, "Insufficient funds"), nil
		}
		return verdict(true, "Withdrawal authorized"), nil
	case "transfer":
		if account.Balance.LessThan(req.Amount) {
			return verdict(false, "Insufficient funds for transfer"), nil
		}
		return verdict(true, "Transfer authorized"), nil
	default:
		return verdict(true, "Deposit authorized"), nil
	}
}
