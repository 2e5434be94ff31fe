package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType mirrors the account "type" column.
type AccountType string

const (
	Checking AccountType = "checking"
	Savings  AccountType = "savings"
)

// Account represents a row of the accounts table.
type Account struct {
	AccountID     string          `db:"account_id"`
	CustomerID    string          `db:"customer_id"`
	AccountNumber string          `db:"account_number"`
	AccountType   AccountType     `db:"type"`
	Balance       decimal.Decimal `db:"balance"`
	CreatedAt     time.Time       `db:"created_at"`
}
