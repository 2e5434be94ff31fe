package dto

import (
	"time"

	"github.com/hamisi/atm-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// WithdrawRequest is the body of POST /api/withdraw.
type WithdrawRequest struct {
	AccountID string          `json:"accountId" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
}

// DepositRequest is the body of POST /api/deposit.
type DepositRequest struct {
	AccountID string          `json:"accountId" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
}

// TransferRequest is the body of POST /api/transfer. The destination is an
// account number, not an internal ID.
type TransferRequest struct {
	FromAccountID   string          `json:"fromAccountId" binding:"required"`
	ToAccountNumber string          `json:"toAccountNumber" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
}

// OperationResponse is the common envelope for ledger operations.
// Declined outcomes are reported with Success=false and a message, under a
// 200 status; callers must check the flag, not the transport status.
type OperationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// BalanceResponse is the body of GET /api/balance/:accountId.
type BalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

// TransactionResponse mirrors one transaction log entry.
type TransactionResponse struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
	AccountID string          `json:"account_id"`
}

// ToTransactionResponse converts a domain transaction to its API shape.
func ToTransactionResponse(t domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:        t.TransactionID,
		Type:      string(t.Type),
		Amount:    t.Amount,
		Date:      t.CreatedAt,
		AccountID: t.AccountID,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(ts []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(ts))
	for i, t := range ts {
		out[i] = ToTransactionResponse(t)
	}
	return out
}
