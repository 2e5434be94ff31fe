package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/hamisi/atm-backend/internal/apperrors"
	"github.com/hamisi/atm-backend/internal/core/domain"
	portssvc "github.com/hamisi/atm-backend/internal/core/ports/services"
	"github.com/hamisi/atm-backend/internal/core/services"
	"github.com/hamisi/atm-backend/internal/utils"
)

// MockTechnicianRepository is a mock type for the TechnicianRepository interface
type MockTechnicianRepository struct {
	mock.Mock
}

func (m *MockTechnicianRepository) FindTechnicianByBadge(ctx context.Context, badgeNumber string) (*domain.Technician, error) {
	args := m.Called(ctx, badgeNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Technician), args.Error(1)
}

// --- Test Suite Setup ---

type AuthServiceTestSuite struct {
	suite.Suite
	mockCustomers   *MockCustomerRepository
	mockTechnicians *MockTechnicianRepository
	service         portssvc.AuthSvcFacade

	pinHash string
}

func (suite *AuthServiceTestSuite) SetupSuite() {
	// bcrypt is slow on purpose; hash once for the whole suite.
	hash, err := utils.HashPIN("1234")
	suite.Require().NoError(err)
	suite.pinHash = hash
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.mockCustomers = new(MockCustomerRepository)
	suite.mockTechnicians = new(MockTechnicianRepository)
	suite.service = services.NewAuthService(suite.mockCustomers, suite.mockTechnicians)
}

// --- Customer ---

func (suite *AuthServiceTestSuite) TestAuthenticateCustomer_Success() {
	ctx := context.Background()
	want := &domain.Customer{
		CustomerID: uuid.NewString(),
		Name:       "Hamisi Mwangi",
		CardNumber: "123456789",
		PINHash:    suite.pinHash,
	}

	suite.mockCustomers.On("FindCustomerByCardNumber", ctx, "123456789").Return(want, nil).Once()

	customer, err := suite.service.AuthenticateCustomer(ctx, "123456789", "1234")

	suite.Require().NoError(err)
	suite.Equal(want.CustomerID, customer.CustomerID)
	suite.mockCustomers.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestAuthenticateCustomer_WrongPIN() {
	ctx := context.Background()
	customer := &domain.Customer{
		CustomerID: uuid.NewString(),
		CardNumber: "123456789",
		PINHash:    suite.pinHash,
	}

	suite.mockCustomers.On("FindCustomerByCardNumber", ctx, "123456789").Return(customer, nil).Once()

	_, err := suite.service.AuthenticateCustomer(ctx, "123456789", "9999")

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestAuthenticateCustomer_UnknownCard() {
	ctx := context.Background()

	suite.mockCustomers.On("FindCustomerByCardNumber", ctx, "000000000").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.AuthenticateCustomer(ctx, "000000000", "1234")

	// Unknown card and wrong PIN are indistinguishable for the caller.
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

// --- Technician ---

func (suite *AuthServiceTestSuite) TestAuthenticateTechnician_Success() {
	ctx := context.Background()
	want := &domain.Technician{
		TechnicianID: uuid.NewString(),
		BadgeNumber:  "TECH001",
		Name:         "Amina Odhiambo",
		PINHash:      suite.pinHash,
	}

	suite.mockTechnicians.On("FindTechnicianByBadge", ctx, "TECH001").Return(want, nil).Once()

	technician, err := suite.service.AuthenticateTechnician(ctx, "TECH001", "1234")

	suite.Require().NoError(err)
	suite.Equal(want.TechnicianID, technician.TechnicianID)
}

func (suite *AuthServiceTestSuite) TestAuthenticateTechnician_WrongPIN() {
	ctx := context.Background()
	technician := &domain.Technician{
		TechnicianID: uuid.NewString(),
		BadgeNumber:  "TECH001",
		PINHash:      suite.pinHash,
	}

	suite.mockTechnicians.On("FindTechnicianByBadge", ctx, "TECH001").Return(technician, nil).Once()

	_, err := suite.service.AuthenticateTechnician(ctx, "TECH001", "0000")

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestAuthenticateTechnician_UnknownBadge() {
	ctx := context.Background()

	suite.mockTechnicians.On("FindTechnicianByBadge", ctx, "TECH999").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.AuthenticateTechnician(ctx, "TECH999", "1234")

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
