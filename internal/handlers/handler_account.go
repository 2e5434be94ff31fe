package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hamisi/atm-backend/internal/apperrors"
	portssvc "github.com/hamisi/atm-backend/internal/core/ports/services"
	"github.com/hamisi/atm-backend/internal/dto"
	"github.com/hamisi/atm-backend/internal/middleware"
)

// accountHandler handles account reads and the bank integration
// endpoints.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{accountService: as}
}

// registerAccountRoutes registers account reads plus the /bank group.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	rg.GET("/accounts/:customerId", h.listAccounts)
	rg.GET("/balance/:accountId", h.getBalance)

	bank := rg.Group("/bank")
	{
		bank.POST("/link-account", h.linkAccount)
		bank.POST("/authorize", h.authorize)
	}
}

func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerId")

	accounts, err := h.accountService.ListAccountsByCustomer(c.Request.Context(), customerID)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("customer_id", customerID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve accounts"})
		return
	}

	c.JSON(http.StatusOK, accounts)
}

func (h *accountHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountId")

	balance, err := h.accountService.GetBalance(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		logger.Error("Failed to get balance", slog.String("account_id", accountID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve balance"})
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{Balance: balance})
}

func (h *accountHandler) linkAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LinkAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for link account", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	customer, accounts, err := h.accountService.LinkAccountsByCard(c.Request.Context(), req.CardNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusOK, dto.LinkAccountResponse{Success: false, Message: "Card not found"})
			return
		}
		logger.Error("Failed to link accounts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to link accounts"})
		return
	}

	linked := make([]dto.LinkedAccount, len(accounts))
	for i, a := range accounts {
		linked[i] = dto.LinkedAccount{
			ID:            a.AccountID,
			AccountNumber: a.AccountNumber,
			Balance:       a.Balance,
			Type:          string(a.AccountType),
		}
	}

	c.JSON(http.StatusOK, dto.LinkAccountResponse{
		Success:  true,
		Customer: dto.ToCustomerResponse(customer),
		Accounts: linked,
	})
}

func (h *accountHandler) authorize(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AuthorizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for authorize", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.accountService.Authorize(c.Request.Context(), req)
	if err != nil {
		logger.Error("Authorization check failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to authorize transaction"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
