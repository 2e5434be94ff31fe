package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hamisi/atm-backend/internal/apperrors"
	portssvc "github.com/hamisi/atm-backend/internal/core/ports/services"
	"github.com/hamisi/atm-backend/internal/core/services"
	"github.com/hamisi/atm-backend/internal/dto"
	"github.com/hamisi/atm-backend/internal/middleware"
)

// maintenanceHandler handles technician workflows. All routes in this
// group sit behind the technician-role auth middleware.
type maintenanceHandler struct {
	maintenanceService portssvc.MaintenanceSvcFacade
}

func newMaintenanceHandler(ms portssvc.MaintenanceSvcFacade) *maintenanceHandler {
	return &maintenanceHandler{maintenanceService: ms}
}

// registerMaintenanceRoutes registers the maintenance group behind the
// given auth middleware.
func registerMaintenanceRoutes(rg *gin.RouterGroup, maintenanceService portssvc.MaintenanceSvcFacade, auth gin.HandlerFunc) {
	h := newMaintenanceHandler(maintenanceService)

	maintenance := rg.Group("/maintenance", auth)
	{
		maintenance.POST("/diagnose", h.diagnose)
		maintenance.POST("/replenish", h.replenish)
		maintenance.POST("/upgrade", h.upgrade)
	}
}

func (h *maintenanceHandler) diagnose(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.DiagnoseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for diagnose", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	// Attribute the record to the authenticated technician, not whatever
	// ID the body claims.
	if subjectID, ok := middleware.GetSubjectIDFromCtx(c.Request.Context()); ok {
		req.TechnicianID = subjectID
	}

	diagnostics, err := h.maintenanceService.Diagnose(c.Request.Context(), req.ATMID, req.TechnicianID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusOK, dto.DiagnoseResponse{Success: false, Message: "ATM not found"})
			return
		}
		logger.Error("Diagnostics failed", slog.String("atm_id", req.ATMID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run diagnostics"})
		return
	}

	message := "Diagnostics completed, no issues found"
	if len(diagnostics.Issues) > 0 {
		message = fmt.Sprintf("Diagnostics completed, %d issue(s) found", len(diagnostics.Issues))
	}

	c.JSON(http.StatusOK, dto.DiagnoseResponse{Success: true, Diagnostics: diagnostics, Message: message})
}

func (h *maintenanceHandler) replenish(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ReplenishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for replenish", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if subjectID, ok := middleware.GetSubjectIDFromCtx(c.Request.Context()); ok {
		req.TechnicianID = subjectID
	}

	status, err := h.maintenanceService.Replenish(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusOK, dto.ReplenishResponse{Success: false, Message: "ATM not found"})
			return
		}
		logger.Error("Replenishment failed", slog.String("atm_id", req.ATMID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to replenish supplies"})
		return
	}

	c.JSON(http.StatusOK, dto.ReplenishResponse{
		Success:        true,
		Message:        "ATM replenished successfully",
		SuppliesStatus: status,
	})
}

func (h *maintenanceHandler) upgrade(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpgradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for upgrade", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if subjectID, ok := middleware.GetSubjectIDFromCtx(c.Request.Context()); ok {
		req.TechnicianID = subjectID
	}

	details, err := h.maintenanceService.Upgrade(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidUpgradeType):
			c.JSON(http.StatusOK, dto.UpgradeResponse{Success: false, Message: "Invalid upgrade type. Must be: hardware, software, or firmware"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusOK, dto.UpgradeResponse{Success: false, Message: "ATM not found"})
		default:
			logger.Error("Upgrade failed", slog.String("atm_id", req.ATMID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade ATM"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.UpgradeResponse{
		Success:        true,
		Message:        fmt.Sprintf("ATM %s upgrade completed successfully", details.Type),
		UpgradeDetails: details,
	})
}
