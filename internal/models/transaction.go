package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType mirrors the transactions "type" column.
type TransactionType string

const (
	Deposit  TransactionType = "deposit"
	Withdraw TransactionType = "withdraw"
	Transfer TransactionType = "transfer"
)

// Transaction represents a row of the transactions table. Rows are
// insert-only; created_at is assigned by the database at insertion.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	AccountID     string          `db:"account_id"`
	Type          TransactionType `db:"type"`
	Amount        decimal.Decimal `db:"amount"`
	CreatedAt     time.Time       `db:"created_at"`
}
