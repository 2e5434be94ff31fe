package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hamisi/atm-backend/internal/apperrors"
	portssvc "github.com/hamisi/atm-backend/internal/core/ports/services"
	"github.com/hamisi/atm-backend/internal/core/services"
	"github.com/hamisi/atm-backend/internal/dto"
	"github.com/hamisi/atm-backend/internal/middleware"
)

// ledgerHandler handles the money-movement endpoints.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers the withdraw/deposit/transfer endpoints
// and the transaction history.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	rg.POST("/withdraw", h.withdraw)
	rg.POST("/deposit", h.deposit)
	rg.POST("/transfer", h.transfer)
	rg.GET("/transactions/:accountId", h.listTransactions)
}

// declined writes the 200-with-flag decline envelope. Clients of these
// endpoints check the success flag, not the HTTP status.
func declined(c *gin.Context, message string) {
	c.JSON(http.StatusOK, dto.OperationResponse{Success: false, Message: message})
}

func (h *ledgerHandler) withdraw(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for withdraw", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	_, err := h.ledgerService.Withdraw(c.Request.Context(), req.AccountID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInsufficientFunds):
			declined(c, "Insufficient funds")
		case errors.Is(err, apperrors.ErrNotFound):
			declined(c, "Account not found")
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Withdraw failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process withdrawal"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.OperationResponse{Success: true, Message: "Withdrawal successful"})
}

func (h *ledgerHandler) deposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for deposit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	_, err := h.ledgerService.Deposit(c.Request.Context(), req.AccountID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			declined(c, "Account not found")
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Deposit failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process deposit"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.OperationResponse{Success: true, Message: "Deposit successful"})
}

func (h *ledgerHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	_, err := h.ledgerService.Transfer(c.Request.Context(), req.FromAccountID, req.ToAccountNumber, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInsufficientFunds):
			declined(c, "Insufficient funds")
		case errors.Is(err, services.ErrRecipientNotFound):
			declined(c, "Recipient account not found")
		case errors.Is(err, services.ErrSelfTransfer):
			declined(c, "Cannot transfer to the same account")
		case errors.Is(err, apperrors.ErrNotFound):
			declined(c, "Sender account not found")
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Transfer failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process transfer"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.OperationResponse{Success: true, Message: "Transfer successful"})
}

func (h *ledgerHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountId")

	transactions, err := h.ledgerService.ListRecentTransactions(c.Request.Context(), accountID, 10)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transactions"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponses(transactions))
}
