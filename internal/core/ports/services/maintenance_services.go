package services

import (
	"context"

	"github.com/hamisi/atm-backend/internal/core/domain"
	"github.com/hamisi/atm-backend/internal/dto"
)

// MaintenanceSvcFacade exposes the technician workflows. All three
// operations append a maintenance record; none of them touch account
// balances.
type MaintenanceSvcFacade interface {
	Diagnose(ctx context.Context, atmID, technicianID string) (*domain.Diagnostics, error)
	Replenish(ctx context.Context, req dto.ReplenishRequest) (string, error)
	Upgrade(ctx context.Context, req dto.UpgradeRequest) (*dto.UpgradeDetails, error)
}
