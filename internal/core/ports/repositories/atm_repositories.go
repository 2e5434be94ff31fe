package repositories

import (
	"context"
	"time"

	"github.com/hamisi/atm-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TechnicianRepository provides read access to maintenance operators.
type TechnicianRepository interface {
	FindTechnicianByBadge(ctx context.Context, badgeNumber string) (*domain.Technician, error)
}

// ATMRepository holds machine state and the maintenance log. Machines
// are addressed by their external label (e.g. "ATM001"), the identifier
// technicians work with.
type ATMRepository interface {
	FindATMByLabel(ctx context.Context, label string) (*domain.ATM, error)

	// UpdateATMStatus stamps the supplies status and maintenance time.
	// cashAvailable is only written when non-nil.
	UpdateATMStatus(ctx context.Context, label string, suppliesStatus string, cashAvailable *decimal.Decimal, lastMaintenance time.Time) error

	// SaveMaintenanceRecord appends one maintenance log entry.
	SaveMaintenanceRecord(ctx context.Context, record domain.MaintenanceRecord) error
}
