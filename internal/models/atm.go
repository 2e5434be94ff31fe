package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Technician represents a row of the technicians table.
type Technician struct {
	TechnicianID string    `db:"technician_id"`
	BadgeNumber  string    `db:"badge_number"`
	Name         string    `db:"name"`
	ContactInfo  string    `db:"contact_info"`
	AssignedBank string    `db:"assigned_bank"`
	PINHash      string    `db:"pin_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// ATM represents a row of the atms table.
type ATM struct {
	ATMID           string          `db:"atm_id"`
	Label           string          `db:"label"`
	Location        string          `db:"location"`
	IsOperational   bool            `db:"is_operational"`
	SuppliesStatus  string          `db:"supplies_status"`
	CashAvailable   decimal.Decimal `db:"cash_available"`
	LastMaintenance time.Time       `db:"last_maintenance"`
}

// MaintenanceRecord represents a row of the maintenance table.
type MaintenanceRecord struct {
	RecordID     string    `db:"record_id"`
	Type         string    `db:"maintenance_type"`
	Description  string    `db:"description"`
	TechnicianID string    `db:"technician_id"`
	ATMID        string    `db:"atm_id"`
	Notes        string    `db:"notes"`
	Status       string    `db:"status"`
	CreatedAt    time.Time `db:"created_at"`
}
