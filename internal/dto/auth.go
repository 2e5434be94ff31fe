package dto

import (
	"github.com/hamisi/atm-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AuthenticateRequest is the body of POST /api/authenticate.
type AuthenticateRequest struct {
	CardNumber string `json:"cardNumber" binding:"required"`
	PIN        string `json:"pin" binding:"required,pin"`
}

// CustomerResponse is the customer profile returned after authentication.
type CustomerResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CardNumber string `json:"card_number"`
}

// AuthenticateResponse carries the outcome of customer authentication.
// Invalid credentials are a declined outcome (Success=false, HTTP 200).
type AuthenticateResponse struct {
	Success  bool              `json:"success"`
	Customer *CustomerResponse `json:"customer,omitempty"`
	Token    string            `json:"token,omitempty"`
	Message  string            `json:"message,omitempty"`
}

// TechnicianAuthRequest is the body of POST /api/technician-auth.
type TechnicianAuthRequest struct {
	TechnicianID string `json:"technicianId" binding:"required"`
	PIN          string `json:"pin" binding:"required,pin"`
}

// TechnicianResponse is the technician profile returned after authentication.
type TechnicianResponse struct {
	ID           string `json:"id"`
	TechnicianID string `json:"technician_id"`
	Name         string `json:"name"`
	ContactInfo  string `json:"contact_info"`
	AssignedBank string `json:"assigned_bank"`
}

// TechnicianAuthResponse carries the outcome of technician authentication.
type TechnicianAuthResponse struct {
	Success    bool                `json:"success"`
	Technician *TechnicianResponse `json:"technician,omitempty"`
	Token      string              `json:"token,omitempty"`
	Message    string              `json:"message,omitempty"`
}

// LinkAccountRequest is the body of POST /api/bank/link-account.
type LinkAccountRequest struct {
	CardNumber string `json:"cardNumber" binding:"required"`
}

// LinkedAccount is one account in a link-account response.
type LinkedAccount struct {
	ID            string          `json:"id"`
	AccountNumber string          `json:"accountNumber"`
	Balance       decimal.Decimal `json:"balance"`
	Type          string          `json:"type"`
}

// LinkAccountResponse lists the accounts reachable through a card.
type LinkAccountResponse struct {
	Success  bool              `json:"success"`
	Customer *CustomerResponse `json:"customer,omitempty"`
	Accounts []LinkedAccount   `json:"accounts,omitempty"`
	Message  string            `json:"message,omitempty"`
}

// AuthorizeRequest is the body of POST /api/bank/authorize.
type AuthorizeRequest struct {
	TransactionType string          `json:"transactionType" binding:"required"`
	AccountID       string          `json:"accountId" binding:"required"`
	Amount          decimal.Decimal `json:"amount"`
	CardNumber      string          `json:"cardNumber" binding:"required"`
}

// AuthorizeResponse carries an advisory pre-authorization verdict. It does
// not reserve funds; the ledger re-checks under its own locks.
type AuthorizeResponse struct {
	Success    bool              `json:"success"`
	Authorized bool              `json:"authorized"`
	Message    string            `json:"message"`
	Account    *AuthorizedExtent `json:"account,omitempty"`
}

// AuthorizedExtent echoes the checked account and its balance.
type AuthorizedExtent struct {
	ID      string          `json:"id"`
	Balance decimal.Decimal `json:"balance"`
}

// ToCustomerResponse converts a domain customer to its API shape.
func ToCustomerResponse(c *domain.Customer) *CustomerResponse {
	return &CustomerResponse{ID: c.CustomerID, Name: c.Name, CardNumber: c.CardNumber}
}

// ToTechnicianResponse converts a domain technician to its API shape.
func ToTechnicianResponse(t *domain.Technician) *TechnicianResponse {
	return &TechnicianResponse{
		ID:           t.TechnicianID,
		TechnicianID: t.BadgeNumber,
		Name:         t.Name,
		ContactInfo:  t.ContactInfo,
		AssignedBank: t.AssignedBank,
	}
}
