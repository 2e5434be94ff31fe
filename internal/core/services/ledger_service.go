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
	"github.com/hamisi/atm-backend/internal/middleware"
)

var (
	// ErrSelfTransfer is returned when the resolved recipient is the
	// sending account.
	ErrSelfTransfer = errors.New("cannot transfer to the same account")

	// ErrRecipientNotFound is returned when no account carries the
	// destination account number.
	ErrRecipientNotFound = errors.New("recipient account not found")
)

// ledgerService validates operation parameters and delegates the atomic
// apply-and-log step to the ledger repository. The repository owns the
// isolation guarantees; this layer owns input validation, recipient
// resolution and outcome classification.
type ledgerService struct {
	ledgerRepo  portsrepo.LedgerRepository
	accountRepo portsrepo.AccountRepository
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepository, accountRepo portsrepo.AccountRepository) portssvc.LedgerSvcFacade {
	return &ledgerService{ledgerRepo: ledgerRepo, accountRepo: accountRepo}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func validateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	return nil
}

// Withdraw debits the account. Insufficient funds and missing accounts
// are declined outcomes; everything else is an infrastructure failure.
func (s *ledgerService) Withdraw(ctx context.Context, accountID string, amount decimal.Decimal) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	txn, err := s.ledgerRepo.Withdraw(ctx, accountID, amount)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInsufficientFunds), errors.Is(err, apperrors.ErrNotFound):
			logger.Info("Withdrawal declined", slog.String("account_id", accountID), slog.String("reason", err.Error()))
		default:
			logger.Error("Withdrawal failed", slog.String("account_id", accountID), slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Withdrawal committed", slog.String("account_id", accountID), slog.String("amount", amount.String()))
	return txn, nil
}

// Deposit credits the account. Only a missing account is declined; there
// is no upper balance bound.
func (s *ledgerService) Deposit(ctx context.Context, accountID string, amount decimal.Decimal) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	txn, err := s.ledgerRepo.Deposit(ctx, accountID, amount)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Info("Deposit declined, account not found", slog.String("account_id", accountID))
		} else {
			logger.Error("Deposit failed", slog.String("account_id", accountID), slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Deposit committed", slog.String("account_id", accountID), slog.String("amount", amount.String()))
	return txn, nil
}

// Transfer resolves the destination account number, rejects transfers to
// the sending account, then moves the amount atomically. Only the sender
// side is logged; the recipient's history will not show the credit.
func (s *ledgerService) Transfer(ctx context.Context, fromAccountID, toAccountNumber string, amount decimal.Decimal) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	recipient, err := s.accountRepo.FindAccountByNumber(ctx, toAccountNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Info("Transfer declined, recipient not found", slog.String("to_account_number", toAccountNumber))
			return nil, ErrRecipientNotFound
		}
		logger.Error("Failed to resolve transfer recipient", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to resolve recipient: %w", err)
	}

	if recipient.AccountID == fromAccountID {
		logger.Info("Transfer declined, self transfer", slog.String("account_id", fromAccountID))
		return nil, ErrSelfTransfer
	}

	txn, err := s.ledgerRepo.Transfer(ctx, fromAccountID, recipient.AccountID, amount)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInsufficientFunds), errors.Is(err, apperrors.ErrNotFound):
			logger.Info("Transfer declined", slog.String("from_account_id", fromAccountID), slog.String("reason", err.Error()))
		default:
			logger.Error("Transfer failed", slog.String("from_account_id", fromAccountID), slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Transfer committed",
		slog.String("from_account_id", fromAccountID),
		slog.String("to_account_id", recipient.AccountID),
		slog.String("amount", amount.String()),
	)
	return txn, nil
}

// ListRecentTransactions returns the account's latest log entries, newest
// first. An unknown account yields an empty history, matching the
// behavior existing callers rely on.
func (s *ledgerService) ListRecentTransactions(ctx context.Context, accountID string, limit int) ([]domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	transactions, err := s.ledgerRepo.FindTransactionsByAccountID(ctx, accountID, limit)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve transactions: %w", err)
	}
	return transactions, nil
}
