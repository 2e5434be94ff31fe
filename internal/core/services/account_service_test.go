package services_test

import (
	"context"
	"testing"

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

// MockCustomerRepository is a mock type for the CustomerRepository interface
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindCustomerByCardNumber(ctx context.Context, cardNumber string) (*domain.Customer, error) {
	args := m.Called(ctx, cardNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

// --- Test Suite Setup ---

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccounts  *MockAccountRepository
	mockCustomers *MockCustomerRepository
	service       portssvc.AccountSvcFacade

	customerID string
	accountID  string
	cardNumber string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccounts = new(MockAccountRepository)
	suite.mockCustomers = new(MockCustomerRepository)
	suite.service = services.NewAccountService(suite.mockAccounts, suite.mockCustomers)

	suite.customerID = uuid.NewString()
	suite.accountID = uuid.NewString()
	suite.cardNumber = "123456789"
}

func (suite *AccountServiceTestSuite) account(balance int64) *domain.Account {
	return &domain.Account{
		AccountID:     suite.accountID,
		CustomerID:    suite.customerID,
		AccountNumber: "1234567890",
		AccountType:   domain.Checking,
		Balance:       decimal.NewFromInt(balance),
	}
}

func (suite *AccountServiceTestSuite) customer() *domain.Customer {
	return &domain.Customer{
		CustomerID: suite.customerID,
		Name:       "Hamisi Mwangi",
		CardNumber: suite.cardNumber,
	}
}

// --- GetBalance ---

func (suite *AccountServiceTestSuite) TestGetBalance_Success() {
	ctx := context.Background()

	suite.mockAccounts.On("FindAccountByID", ctx, suite.accountID).
		Return(suite.account(150), nil).Once()

	balance, err := suite.service.GetBalance(ctx, suite.accountID)

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(150).Equal(balance))
}

func (suite *AccountServiceTestSuite) TestGetBalance_NotFound() {
	ctx := context.Background()

	suite.mockAccounts.On("FindAccountByID", ctx, suite.accountID).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetBalance(ctx, suite.accountID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- LinkAccountsByCard ---

func (suite *AccountServiceTestSuite) TestLinkAccountsByCard_Success() {
	ctx := context.Background()
	accounts := []domain.Account{*suite.account(150)}

	suite.mockCustomers.On("FindCustomerByCardNumber", ctx, suite.cardNumber).
		Return(suite.customer(), nil).Once()
	suite.mockAccounts.On("FindAccountsByCustomerID", ctx, suite.customerID).
		Return(accounts, nil).Once()

	customer, got, err := suite.service.LinkAccountsByCard(ctx, suite.cardNumber)

	suite.Require().NoError(err)
	suite.Equal(suite.customerID, customer.CustomerID)
	suite.Equal(accounts, got)
}

func (suite *AccountServiceTestSuite) TestLinkAccountsByCard_UnknownCard() {
	ctx := context.Background()

	suite.mockCustomers.On("FindCustomerByCardNumber", ctx, "999999999").
		Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.LinkAccountsByCard(ctx, "999999999")

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockAccounts.AssertNotCalled(suite.T(), "FindAccountsByCustomerID", mock.Anything, mock.Anything)
}

// --- Authorize ---

func (suite *AccountServiceTestSuite) authorizeReq(txnType string, amount int64) dto.AuthorizeRequest {
	return dto.AuthorizeRequest{
		TransactionType: txnType,
		AccountID:       suite.accountID,
		Amount:          decimal.NewFromInt(amount),
		CardNumber:      suite.cardNumber,
	}
}

func (suite *AccountServiceTestSuite) TestAuthorize_WithdrawAuthorized() {
	ctx := context.Background()

	suite.mockAccounts.On("FindAccountByID", ctx, suite.accountID).Return(suite.account(100), nil).Once()
	suite.mockCustomers.On("FindCustomerByID", ctx, suite.customerID).Return(suite.customer(), nil).Once()

	resp, err := suite.service.Authorize(ctx, suite.authorizeReq("withdraw", 60))

	suite.Require().NoError(err)
	suite.True(resp.Success)
	suite.True(resp.Authorized)
	suite.Equal("Withdrawal authorized", resp.Message)
	suite.Require().NotNil(resp.Account)
	suite.True(decimal.NewFromInt(100).Equal(resp.Account.Balance))
}

func (suite *AccountServiceTestSuite) TestAuthorize_WithdrawInsufficientFunds() {
	ctx := context.Background()

	suite.mockAccounts.On("FindAccountByID", ctx, suite.accountID).Return(suite.account(50), nil).Once()
	suite.mockCustomers.On("FindCustomerByID", ctx, suite.customerID).Return(suite.customer(), nil).Once()

	resp, err := suite.service.Authorize(ctx, suite.authorizeReq("withdraw", 60))

	suite.Require().NoError(err)
	// An evaluated decline is a successful call with Authorized=false.
	suite.True(resp.Success)
	suite.False(resp.Authorized)
	suite.Equal("Insufficient funds", resp.Message)
	suite.Require().NotNil(resp.Account)
	suite.True(decimal.NewFromInt(50).Equal(resp.Account.Balance))
}

func (suite *AccountServiceTestSuite) TestAuthorize_DepositAlwaysAuthorized() {
	ctx := context.Background()

	suite.mockAccounts.On("FindAccountByID", ctx, suite.accountID).Return(suite.account(0), nil).Once()
	suite.mockCustomers.On("FindCustomerByID", ctx, suite.customerID).Return(suite.customer(), nil).Once()

	resp, err := suite.service.Authorize(ctx, suite.authorizeReq("deposit", 100000))

	suite.Require().NoError(err)
	suite.True(resp.Authorized)
	suite.Equal("Deposit authorized", resp.Message)
}

func (suite *AccountServiceTestSuite) TestAuthorize_TransferInsufficientFunds() {
	ctx := context.Background()

	suite.mockAccounts.On("FindAccountByID", ctx, suite.accountID).Return(suite.account(10), nil).Once()
	suite.mockCustomers.On("FindCustomerByID", ctx, suite.customerID).Return(suite.customer(), nil).Once()

	resp, err := suite.service.Authorize(ctx, suite.authorizeReq("transfer", 25))

	suite.Require().NoError(err)
	suite.False(resp.Authorized)
	suite.Equal("Insufficient funds for transfer", resp.Message)
}

func (suite *AccountServiceTestSuite) TestAuthorize_InvalidType() {
	ctx := context.Background()

	resp, err := suite.service.Authorize(ctx, suite.authorizeReq("loan", 10))

	suite.Require().NoError(err)
	// A request that cannot be evaluated is rejected outright.
	suite.False(resp.Success)
	suite.False(resp.Authorized)
	suite.Equal("Invalid transaction type", resp.Message)
	suite.Nil(resp.Account)
	suite.mockAccounts.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestAuthorize_CardMismatch() {
	ctx := context.Background()

	req := suite.authorizeReq("withdraw", 10)
	req.CardNumber = "000000000"

	suite.mockAccounts.On("FindAccountByID", ctx, suite.accountID).Return(suite.account(100), nil).Once()
	suite.mockCustomers.On("FindCustomerByID", ctx, suite.customerID).Return(suite.customer(), nil).Once()

	resp, err := suite.service.Authorize(ctx, req)

	suite.Require().NoError(err)
	suite.False(resp.Success)
	suite.False(resp.Authorized)
	suite.Equal("Card verification failed", resp.Message)
}

func (suite *AccountServiceTestSuite) TestAuthorize_AccountNotFound() {
	ctx := context.Background()

	suite.mockAccounts.On("FindAccountByID", ctx, suite.accountID).
		Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.Authorize(ctx, suite.authorizeReq("withdraw", 10))

	suite.Require().NoError(err)
	suite.False(resp.Success)
	suite.False(resp.Authorized)
	suite.Equal("Account not found", resp.Message)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
