package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType distinguishes the product kind of a customer account.
type AccountType string

const (
	Checking AccountType = "checking"
	Savings  AccountType = "savings"
)

// Account represents a balance-holding entity. It is identified internally
// by AccountID and externally by AccountNumber (the number printed on a
// card or statement, used as the transfer destination).
//
// The balance is mutated exclusively through the ledger protocol
// (withdraw, deposit, transfer); accounts are created by seed data and are
// never deleted.
type Account struct {
	AccountID     string          `json:"id"`
	CustomerID    string          `json:"customerId"`
	AccountNumber string          `json:"accountNumber"`
	AccountType   AccountType     `json:"type"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"createdAt"`
}
