package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Technician is a maintenance operator identified by a badge number
// (TechnicianID is the internal key, BadgeNumber the externally used one).
type Technician struct {
	TechnicianID string    `json:"id"`
	BadgeNumber  string    `json:"technicianId"`
	Name         string    `json:"name"`
	ContactInfo  string    `json:"contactInfo"`
	AssignedBank string    `json:"assignedBank"`
	PINHash      string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ATM describes one physical machine and its serviceable state.
type ATM struct {
	ATMID           string          `json:"id"`
	Label           string          `json:"atmId"`
	Location        string          `json:"location"`
	IsOperational   bool            `json:"operational"`
	SuppliesStatus  string          `json:"suppliesStatus"`
	CashAvailable   decimal.Decimal `json:"cashAvailable"`
	LastMaintenance time.Time       `json:"lastMaintenance"`
}

// MaintenanceType names the technician workflow that produced a record.
type MaintenanceType string

const (
	MaintenanceDiagnose  MaintenanceType = "diagnose"
	MaintenanceReplenish MaintenanceType = "replenish"
	MaintenanceUpgrade   MaintenanceType = "upgrade"
)

// MaintenanceRecord is an append-only log entry for technician activity.
type MaintenanceRecord struct {
	RecordID     string          `json:"id"`
	Type         MaintenanceType `json:"maintenanceType"`
	Description  string          `json:"description"`
	TechnicianID string          `json:"technicianId"`
	ATMID        string          `json:"atmId"`
	Notes        string          `json:"notes"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// Diagnostics is the result of a diagnose run. HealthScore starts at 100
// and loses 20 points per detected issue, floored at zero.
type Diagnostics struct {
	ATMID           string          `json:"atmId"`
	Location        string          `json:"location"`
	Operational     bool            `json:"operational"`
	SuppliesStatus  string          `json:"suppliesStatus"`
	CashAvailable   decimal.Decimal `json:"cashAvailable"`
	LastMaintenance time.Time       `json:"lastMaintenance"`
	Issues          []string        `json:"issues"`
	HealthScore     int             `json:"healthScore"`
}
