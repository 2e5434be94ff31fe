package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType names the ledger operation that produced a log entry.
type TransactionType string

const (
	Deposit  TransactionType = "deposit"
	Withdraw TransactionType = "withdraw"
	Transfer TransactionType = "transfer"
)

// Transaction is an immutable log entry recording one committed balance
// mutation. The amount is always positive; the type carries the direction.
//
// A transfer produces exactly one entry, attributed to the sender account.
// The recipient's history does not show incoming transfers; that asymmetry
// is inherited product behavior and is relied upon by existing callers.
type Transaction struct {
	TransactionID string          `json:"id"`
	AccountID     string          `json:"accountId"`
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	CreatedAt     time.Time       `json:"date"`
}
