package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hamisi/atm-backend/internal/apperrors"
	"github.com/hamisi/atm-backend/internal/core/domain"
	portsrepo "github.com/hamisi/atm-backend/internal/core/ports/repositories"
	portssvc "github.com/hamisi/atm-backend/internal/core/ports/services"
	"github.com/hamisi/atm-backend/internal/dto"
	"github.com/hamisi/atm-backend/internal/middleware"
)

// ErrInvalidUpgradeType is returned when the upgrade type is not one of
// hardware, software or firmware.
var ErrInvalidUpgradeType = errors.New("invalid upgrade type, must be hardware, software, or firmware")

// cash below this level counts as a diagnostic issue.
var lowCashThreshold = decimal.NewFromInt(1000)

type maintenanceService struct {
	atmRepo portsrepo.ATMRepository
}

// NewMaintenanceService creates a new MaintenanceService.
func NewMaintenanceService(atmRepo portsrepo.ATMRepository) portssvc.MaintenanceSvcFacade {
	return &maintenanceService{atmRepo: atmRepo}
}

var _ portssvc.MaintenanceSvcFacade = (*maintenanceService)(nil)

// recordMaintenance appends a maintenance log entry. A failed append is
// logged but does not fail the workflow that produced it.
func (s *maintenanceService) recordMaintenance(ctx context.Context, record domain.MaintenanceRecord) {
	if err := s.atmRepo.SaveMaintenanceRecord(ctx, record); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to save maintenance record",
			slog.String("atm_id", record.ATMID), slog.String("error", err.Error()))
	}
}

// Diagnose inspects an ATM and scores its health. Each detected issue
// costs 20 points off a base of 100, floored at zero.
func (s *maintenanceService) Diagnose(ctx context.Context, atmID, technicianID string) (*domain.Diagnostics, error) {
	atm, err := s.atmRepo.FindATMByLabel(ctx, atmID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to retrieve ATM: %w", err)
	}

	var issues []string
	if atm.CashAvailable.LessThan(lowCashThreshold) {
		issues = append(issues, "Low cash reserves")
	}
	if !atm.IsOperational {
		issues = append(issues, "ATM marked as non-operational")
	}
	if atm.SuppliesStatus != "OK" {
		issues = append(issues, "Supplies issue: "+atm.SuppliesStatus)
	}

	healthScore := 100 - 20*len(issues)
	if healthScore < 0 {
		healthScore = 0
	}

	status := "healthy"
	notes := "No issues detected"
	if len(issues) > 0 {
		status = "issues_found"
		notes = "Issues found: " + strings.Join(issues, ", ")
	}

	s.recordMaintenance(ctx, domain.MaintenanceRecord{
		Type:         domain.MaintenanceDiagnose,
		Description:  "Routine diagnostics",
		TechnicianID: technicianID,
		ATMID:        atm.Label,
		Notes:        notes,
		Status:       status,
	})

	return &domain.Diagnostics{
		ATMID:           atm.Label,
		Location:        atm.Location,
		Operational:     atm.IsOperational,
		SuppliesStatus:  atm.SuppliesStatus,
		CashAvailable:   atm.CashAvailable,
		LastMaintenance: atm.LastMaintenance,
		Issues:          issues,
		HealthScore:     healthScore,
	}, nil
}

// Replenish restocks the flagged supplies and stamps the maintenance
// time. It returns the new supplies status string.
func (s *maintenanceService) Replenish(ctx context.Context, req dto.ReplenishRequest) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	suppliesStatus := "Supplies OK"
	switch {
	case req.Supplies.Cash != nil:
		suppliesStatus = "Cash replenished"
	case req.Supplies.Ink:
		suppliesStatus = "Ink replenished"
	case req.Supplies.Paper:
		suppliesStatus = "Paper replenished"
	}

	now := time.Now().UTC()
	if err := s.atmRepo.UpdateATMStatus(ctx, req.ATMID, suppliesStatus, req.Supplies.Cash, now); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", err
		}
		return "", fmt.Errorf("failed to update ATM supplies: %w", err)
	}

	logger.Info("ATM supplies replenished", slog.String("atm_id", req.ATMID), slog.String("supplies_status", suppliesStatus))

	s.recordMaintenance(ctx, domain.MaintenanceRecord{
		Type:         domain.MaintenanceReplenish,
		Description:  "Supplies replenishment",
		TechnicianID: req.TechnicianID,
		ATMID:        req.ATMID,
		Notes:        suppliesStatus,
		Status:       "completed",
	})
	return suppliesStatus, nil
}

// Upgrade applies a hardware, software or firmware upgrade and records
// it. Any other upgrade type is declined.
func (s *maintenanceService) Upgrade(ctx context.Context, req dto.UpgradeRequest) (*dto.UpgradeDetails, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	switch req.UpgradeType {
	case "hardware", "software", "firmware":
	default:
		return nil, ErrInvalidUpgradeType
	}

	version := req.Version
	if version == "" {
		version = "latest"
	}
	notes := fmt.Sprintf("%s upgraded to %s", req.UpgradeType, version)

	now := time.Now().UTC()
	if err := s.atmRepo.UpdateATMStatus(ctx, req.ATMID, "Upgraded: "+notes, nil, now); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update ATM status: %w", err)
	}

	logger.Info("ATM upgraded", slog.String("atm_id", req.ATMID), slog.String("upgrade_type", req.UpgradeType), slog.String("version", version))

	s.recordMaintenance(ctx, domain.MaintenanceRecord{
		Type:         domain.MaintenanceUpgrade,
		Description:  "Component upgrade",
		TechnicianID: req.TechnicianID,
		ATMID:        req.ATMID,
		Notes:        notes,
		Status:       "completed",
	})

	return &dto.UpgradeDetails{Type: req.UpgradeType, Version: version, Timestamp: now}, nil
}
