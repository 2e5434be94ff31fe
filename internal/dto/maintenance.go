package dto

import (
	"time"

	"github.com/hamisi/atm-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DiagnoseRequest is the body of POST /api/maintenance/diagnose.
type DiagnoseRequest struct {
	ATMID        string `json:"atmId" binding:"required"`
	TechnicianID string `json:"technicianId" binding:"required"`
}

// DiagnoseResponse carries the diagnostics result.
type DiagnoseResponse struct {
	Success     bool                `json:"success"`
	Diagnostics *domain.Diagnostics `json:"diagnostics,omitempty"`
	Message     string              `json:"message"`
}

// ReplenishSupplies flags which supplies the technician restocked. Cash
// carries the new cash level when it was replenished.
type ReplenishSupplies struct {
	Cash  *decimal.Decimal `json:"cash,omitempty"`
	Ink   bool             `json:"ink,omitempty"`
	Paper bool             `json:"paper,omitempty"`
}

// ReplenishRequest is the body of POST /api/maintenance/replenish.
type ReplenishRequest struct {
	ATMID        string            `json:"atmId" binding:"required"`
	TechnicianID string            `json:"technicianId" binding:"required"`
	Supplies     ReplenishSupplies `json:"supplies"`
}

// ReplenishResponse reports the new supplies status.
type ReplenishResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	SuppliesStatus string `json:"suppliesStatus,omitempty"`
}

// UpgradeRequest is the body of POST /api/maintenance/upgrade.
type UpgradeRequest struct {
	ATMID        string `json:"atmId" binding:"required"`
	TechnicianID string `json:"technicianId" binding:"required"`
	UpgradeType  string `json:"upgradeType" binding:"required"`
	Version      string `json:"version"`
}

// UpgradeDetails describes a completed upgrade.
type UpgradeDetails struct {
	Type      string    `json:"type"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// UpgradeResponse reports an upgrade outcome.
type UpgradeResponse struct {
	Success        bool            `json:"success"`
	Message        string          `json:"message"`
	UpgradeDetails *UpgradeDetails `json:"upgradeDetails,omitempty"`
}
