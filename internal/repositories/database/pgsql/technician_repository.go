package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hamisi/atm-backend/internal/apperrors"
	"github.com/hamisi/atm-backend/internal/core/domain"
	portsrepo "github.com/hamisi/atm-backend/internal/core/ports/repositories"
	"github.com/hamisi/atm-backend/internal/models"
)

type PgxTechnicianRepository struct {
	pool *pgxpool.Pool
}

// NewTechnicianRepository creates a repository for technician data.
func NewTechnicianRepository(pool *pgxpool.Pool) portsrepo.TechnicianRepository {
	return &PgxTechnicianRepository{pool: pool}
}

var _ portsrepo.TechnicianRepository = (*PgxTechnicianRepository)(nil)

// FindTechnicianByBadge retrieves a technician by badge number.
func (r *PgxTechnicianRepository) FindTechnicianByBadge(ctx context.Context, badgeNumber string) (*domain.Technician, error) {
	var m models.Technician
	err := r.pool.QueryRow(ctx,
		`SELECT technician_id, badge_number, name, contact_info, assigned_bank, pin_hash, created_at
		 FROM technicians WHERE badge_number = $1;`,
		badgeNumber,
	).Scan(&m.TechnicianID, &m.BadgeNumber, &m.Name, &m.ContactInfo, &m.AssignedBank, &m.PINHash, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find technician %s: %w", badgeNumber, err)
	}

	return &domain.Technician{
		TechnicianID: m.TechnicianID,
		BadgeNumber:  m.BadgeNumber,
		Name:         m.Name,
		ContactInfo:  m.ContactInfo,
		AssignedBank: m.AssignedBank,
		PINHash:      m.PINHash,
		CreatedAt:    m.CreatedAt,
	}, nil
}
