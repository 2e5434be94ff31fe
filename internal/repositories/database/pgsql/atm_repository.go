package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/hamisi/atm-backend/internal/apperrors"
	"github.com/hamisi/atm-backend/internal/core/domain"
	portsrepo "github.com/hamisi/atm-backend/internal/core/ports/repositories"
	"github.com/hamisi/atm-backend/internal/models"
)

type PgxATMRepository struct {
	pool *pgxpool.Pool
}

// NewATMRepository creates a repository for ATM state and maintenance logs.
func NewATMRepository(pool *pgxpool.Pool) portsrepo.ATMRepository {
	return &PgxATMRepository{pool: pool}
}

var _ portsrepo.ATMRepository = (*PgxATMRepository)(nil)

// FindATMByLabel retrieves one machine's state by its external label.
func (r *PgxATMRepository) FindATMByLabel(ctx context.Context, label string) (*domain.ATM, error) {
	var m models.ATM
	err := r.pool.QueryRow(ctx,
		`SELECT atm_id, label, location, is_operational, supplies_status, cash_available, last_maintenance
		 FROM atms WHERE label = $1;`,
		label,
	).Scan(&m.ATMID, &m.Label, &m.Location, &m.IsOperational, &m.SuppliesStatus, &m.CashAvailable, &m.LastMaintenance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find ATM %s: %w", label, err)
	}

	return &domain.ATM{
		ATMID:           m.ATMID,
		Label:           m.Label,
		Location:        m.Location,
		IsOperational:   m.IsOperational,
		SuppliesStatus:  m.SuppliesStatus,
		CashAvailable:   m.CashAvailable,
		LastMaintenance: m.LastMaintenance,
	}, nil
}

// UpdateATMStatus stamps supplies status and last_maintenance, and writes
// cash_available only when the caller provides a new level.
func (r *PgxATMRepository) UpdateATMStatus(ctx context.Context, label string, suppliesStatus string, cashAvailable *decimal.Decimal, lastMaintenance time.Time) error {
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE atms
		 SET supplies_status = $2,
		     cash_available = COALESCE($3, cash_available),
		     last_maintenance = $4
		 WHERE label = $1;`,
		label, suppliesStatus, cashAvailable, lastMaintenance,
	)
	if err != nil {
		return fmt.Errorf("failed to update ATM %s: %w", label, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveMaintenanceRecord appends one maintenance log entry.
func (r *PgxATMRepository) SaveMaintenanceRecord(ctx context.Context, record domain.MaintenanceRecord) error {
	recordID := record.RecordID
	if recordID == "" {
		recordID = uuid.NewString()
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO maintenance (record_id, maintenance_type, description, technician_id, atm_id, notes, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7);`,
		recordID, string(record.Type), record.Description, record.TechnicianID, record.ATMID, record.Notes, record.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to insert maintenance record for ATM %s: %w", record.ATMID, err)
	}
	return nil
}
