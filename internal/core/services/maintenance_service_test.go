package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/hamisi/atm-backend/internal/apperrors"
	"github.com/hamisi/atm-backend/internal/core/domain"
	portssvc "github.com/hamisi/atm-backend/internal/core/ports/services"
	"github.com/hamisi/atm-backend/internal/core/services"
	"github.com/hamisi/atm-backend/internal/dto"
)

// MockATMRepository is a mock type for the ATMRepository interface
type MockATMRepository struct {
	mock.Mock
}

func (m *MockATMRepository) FindATMByLabel(ctx context.Context, label string) (*domain.ATM, error) {
	args := m.Called(ctx, label)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ATM), args.Error(1)
}

func (m *MockATMRepository) UpdateATMStatus(ctx context.Context, label string, suppliesStatus string, cashAvailable *decimal.Decimal, lastMaintenance time.Time) error {
	args := m.Called(ctx, label, suppliesStatus, cashAvailable, lastMaintenance)
	return args.Error(0)
}

func (m *MockATMRepository) SaveMaintenanceRecord(ctx context.Context, record domain.MaintenanceRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// --- Test Suite Setup ---

type MaintenanceServiceTestSuite struct {
	suite.Suite
	mockATMs *MockATMRepository
	service  portssvc.MaintenanceSvcFacade

	atmID        string
	technicianID string
}

func (suite *MaintenanceServiceTestSuite) SetupTest() {
	suite.mockATMs = new(MockATMRepository)
	suite.service = services.NewMaintenanceService(suite.mockATMs)
	suite.atmID = "ATM001"
	suite.technicianID = uuid.NewString()
}

func (suite *MaintenanceServiceTestSuite) healthyATM() *domain.ATM {
	return &domain.ATM{
		ATMID:          suite.atmID,
		Label:          "ATM001",
		Location:       "Main Branch",
		IsOperational:  true,
		SuppliesStatus: "OK",
		CashAvailable:  decimal.NewFromInt(50000),
	}
}

// --- Diagnose ---

func (suite *MaintenanceServiceTestSuite) TestDiagnose_Healthy() {
	ctx := context.Background()

	suite.mockATMs.On("FindATMByLabel", ctx, suite.atmID).Return(suite.healthyATM(), nil).Once()
	suite.mockATMs.On("SaveMaintenanceRecord", ctx, mock.MatchedBy(func(r domain.MaintenanceRecord) bool {
		return r.Type == domain.MaintenanceDiagnose && r.Status == "healthy"
	})).Return(nil).Once()

	diag, err := suite.service.Diagnose(ctx, suite.atmID, suite.technicianID)

	suite.Require().NoError(err)
	suite.Empty(diag.Issues)
	suite.Equal(100, diag.HealthScore)
	suite.Equal("ATM001", diag.ATMID)
	suite.mockATMs.AssertExpectations(suite.T())
}

func (suite *MaintenanceServiceTestSuite) TestDiagnose_AllIssues() {
	ctx := context.Background()
	atm := suite.healthyATM()
	atm.CashAvailable = decimal.NewFromInt(500)
	atm.IsOperational = false
	atm.SuppliesStatus = "Low paper"

	suite.mockATMs.On("FindATMByLabel", ctx, suite.atmID).Return(atm, nil).Once()
	suite.mockATMs.On("SaveMaintenanceRecord", ctx, mock.MatchedBy(func(r domain.MaintenanceRecord) bool {
		return r.Status == "issues_found"
	})).Return(nil).Once()

	diag, err := suite.service.Diagnose(ctx, suite.atmID, suite.technicianID)

	suite.Require().NoError(err)
	suite.Equal([]string{
		"Low cash reserves",
		"ATM marked as non-operational",
		"Supplies issue: Low paper",
	}, diag.Issues)
	suite.Equal(40, diag.HealthScore)
}

func (suite *MaintenanceServiceTestSuite) TestDiagnose_ATMNotFound() {
	ctx := context.Background()

	suite.mockATMs.On("FindATMByLabel", ctx, suite.atmID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Diagnose(ctx, suite.atmID, suite.technicianID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockATMs.AssertNotCalled(suite.T(), "SaveMaintenanceRecord", mock.Anything, mock.Anything)
}

// --- Replenish ---

func (suite *MaintenanceServiceTestSuite) TestReplenish_Cash() {
	ctx := context.Background()
	newCash := decimal.NewFromInt(75000)

	suite.mockATMs.On("UpdateATMStatus", ctx, suite.atmID, "Cash replenished", &newCash, mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	suite.mockATMs.On("SaveMaintenanceRecord", ctx, mock.MatchedBy(func(r domain.MaintenanceRecord) bool {
		return r.Type == domain.MaintenanceReplenish && r.Status == "completed"
	})).Return(nil).Once()

	status, err := suite.service.Replenish(ctx, dto.ReplenishRequest{
		ATMID:        suite.atmID,
		TechnicianID: suite.technicianID,
		Supplies:     dto.ReplenishSupplies{Cash: &newCash},
	})

	suite.Require().NoError(err)
	suite.Equal("Cash replenished", status)
	suite.mockATMs.AssertExpectations(suite.T())
}

func (suite *MaintenanceServiceTestSuite) TestReplenish_InkOnly() {
	ctx := context.Background()

	suite.mockATMs.On("UpdateATMStatus", ctx, suite.atmID, "Ink replenished", (*decimal.Decimal)(nil), mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	suite.mockATMs.On("SaveMaintenanceRecord", ctx, mock.Anything).Return(nil).Once()

	status, err := suite.service.Replenish(ctx, dto.ReplenishRequest{
		ATMID:        suite.atmID,
		TechnicianID: suite.technicianID,
		Supplies:     dto.ReplenishSupplies{Ink: true},
	})

	suite.Require().NoError(err)
	suite.Equal("Ink replenished", status)
}

func (suite *MaintenanceServiceTestSuite) TestReplenish_ATMNotFound() {
	ctx := context.Background()

	suite.mockATMs.On("UpdateATMStatus", ctx, suite.atmID, mock.Anything, mock.Anything, mock.Anything).
		Return(apperrors.ErrNotFound).Once()

	_, err := suite.service.Replenish(ctx, dto.ReplenishRequest{
		ATMID:        suite.atmID,
		TechnicianID: suite.technicianID,
	})

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Upgrade ---

func (suite *MaintenanceServiceTestSuite) TestUpgrade_Software() {
	ctx := context.Background()

	suite.mockATMs.On("UpdateATMStatus", ctx, suite.atmID, "Upgraded: software upgraded to 2.1.0", (*decimal.Decimal)(nil), mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	suite.mockATMs.On("SaveMaintenanceRecord", ctx, mock.MatchedBy(func(r domain.MaintenanceRecord) bool {
		return r.Type == domain.MaintenanceUpgrade && r.Notes == "software upgraded to 2.1.0"
	})).Return(nil).Once()

	details, err := suite.service.Upgrade(ctx, dto.UpgradeRequest{
		ATMID:        suite.atmID,
		TechnicianID: suite.technicianID,
		UpgradeType:  "software",
		Version:      "2.1.0",
	})

	suite.Require().NoError(err)
	suite.Equal("software", details.Type)
	suite.Equal("2.1.0", details.Version)
}

func (suite *MaintenanceServiceTestSuite) TestUpgrade_VersionDefaultsToLatest() {
	ctx := context.Background()

	suite.mockATMs.On("UpdateATMStatus", ctx, suite.atmID, "Upgraded: firmware upgraded to latest", (*decimal.Decimal)(nil), mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	suite.mockATMs.On("SaveMaintenanceRecord", ctx, mock.Anything).Return(nil).Once()

	details, err := suite.service.Upgrade(ctx, dto.UpgradeRequest{
		ATMID:        suite.atmID,
		TechnicianID: suite.technicianID,
		UpgradeType:  "firmware",
	})

	suite.Require().NoError(err)
	suite.Equal("latest", details.Version)
}

func (suite *MaintenanceServiceTestSuite) TestUpgrade_InvalidType() {
	ctx := context.Background()

	_, err := suite.service.Upgrade(ctx, dto.UpgradeRequest{
		ATMID:        suite.atmID,
		TechnicianID: suite.technicianID,
		UpgradeType:  "plumbing",
	})

	suite.ErrorIs(err, services.ErrInvalidUpgradeType)
	suite.mockATMs.AssertNotCalled(suite.T(), "UpdateATMStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMaintenanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MaintenanceServiceTestSuite))
}
