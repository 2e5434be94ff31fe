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
	"github.com/hamisi/atm-backend/internal/utils"
	"github.com/hamisi/atm-backend/pkg/config"
)

// authHandler handles customer and technician authentication. It owns
// token issuance; the service layer only verifies credentials.
type authHandler struct {
	authService portssvc.AuthSvcFacade
	cfg         *config.Config
}

func newAuthHandler(as portssvc.AuthSvcFacade, cfg *config.Config) *authHandler {
	return &authHandler{authService: as, cfg: cfg}
}

// registerAuthRoutes registers the two authentication endpoints behind
// the shared rate limiter.
func registerAuthRoutes(rg *gin.RouterGroup, cfg *config.Config, authService portssvc.AuthSvcFacade, rateLimit gin.HandlerFunc) {
	h := newAuthHandler(authService, cfg)

	rg.POST("/authenticate", rateLimit, h.authenticateCustomer)
	rg.POST("/technician-auth", rateLimit, h.authenticateTechnician)
}

func (h *authHandler) authenticateCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AuthenticateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for authenticate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	customer, err := h.authService.AuthenticateCustomer(c.Request.Context(), req.CardNumber, req.PIN)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusOK, dto.AuthenticateResponse{Success: false, Message: "Invalid card number or PIN"})
			return
		}
		logger.Error("Customer authentication failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
		return
	}

	token, err := utils.GenerateSessionToken(customer.CustomerID, middleware.RoleCustomer, h.cfg.JWTSecret, h.cfg.JWTIssuer, h.cfg.JWTExpiryDuration)
	if err != nil {
		logger.Error("Failed to generate session token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
		return
	}

	c.JSON(http.StatusOK, dto.AuthenticateResponse{
		Success:  true,
		Customer: dto.ToCustomerResponse(customer),
		Token:    token,
	})
}

func (h *authHandler) authenticateTechnician(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.TechnicianAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for technician auth", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	technician, err := h.authService.AuthenticateTechnician(c.Request.Context(), req.TechnicianID, req.PIN)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusOK, dto.TechnicianAuthResponse{Success: false, Message: "Invalid technician ID or PIN"})
			return
		}
		logger.Error("Technician authentication failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
		return
	}

	token, err := utils.GenerateSessionToken(technician.TechnicianID, middleware.RoleTechnician, h.cfg.JWTSecret, h.cfg.JWTIssuer, h.cfg.JWTExpiryDuration)
	if err != nil {
		logger.Error("Failed to generate session token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
		return
	}

	c.JSON(http.StatusOK, dto.TechnicianAuthResponse{
		Success:    true,
		Technician: dto.ToTechnicianResponse(technician),
		Token:      token,
	})
}
