package services_test

import (
	"context"
	"testing"

	"github.com/quayside/bankledger/internal/apperrors"
	"github.com/quayside/bankledger/internal/core/domain"
	portssvc "github.com/quayside/bankledger/internal/core/ports/services"
	"github.com/quayside/bankledger/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CustomerServiceTestSuite struct {
	suite.Suite
	mockLedger   *MockLedgerRepository
	mockCustomer *MockCustomerRepository
	service      portssvc.CustomerSvcFacade
}

func (suite *CustomerServiceTestSuite) SetupTest() {
	suite.mockLedger = new(MockLedgerRepository)
	suite.mockCustomer = new(MockCustomerRepository)
	suite.service = services.NewCustomerService(suite.mockLedger, suite.mockCustomer)
}

func (suite *CustomerServiceTestSuite) testCustomer() *domain.Customer {
	return &domain.Customer{
		Username:    "alice",
		Name:        "Alice Doe",
		Role:        domain.RoleCustomer,
		CreditScore: 700,
		LoanDebt:    decimal.Zero,
	}
}

func (suite *CustomerServiceTestSuite) TestRegister_DefaultsRoleAndZeroDebt() {
	ctx := context.Background()

	suite.mockCustomer.On("SaveCustomer", ctx, mock.MatchedBy(func(c domain.Customer) bool {
		return c.Username == "bob" && c.Role == domain.RoleCustomer && c.LoanDebt.IsZero()
	})).Return(nil).Once()

	err := suite.service.Register(ctx, domain.Customer{
		Username: "bob",
		Name:     "Bob Roe",
		// LoanDebt set by a hostile caller must be discarded.
		LoanDebt: decimal.NewFromInt(9999),
	})

	suite.Require().NoError(err)
	suite.mockCustomer.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestRegister_MissingUsername() {
	ctx := context.Background()

	err := suite.service.Register(ctx, domain.Customer{Name: "No Name"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCustomer.AssertNotCalled(suite.T(), "SaveCustomer")
}

func (suite *CustomerServiceTestSuite) TestLoad_ComposesAccounts() {
	ctx := context.Background()
	checking := &domain.Account{AccountID: 1, OwnerUsername: "alice", AccountType: "checking", Balance: decimal.NewFromInt(100)}
	savings := &domain.Account{AccountID: 2, OwnerUsername: "alice", AccountType: "savings", Balance: decimal.NewFromInt(250)}

	suite.mockCustomer.On("FindCustomerByUsername", ctx, "alice").Return(suite.testCustomer(), nil).Once()
	suite.mockLedger.On("ListAccountTypes", ctx, "alice").Return([]string{"checking", "savings"}, nil).Once()
	suite.mockLedger.On("FindAccountByOwnerAndType", ctx, "alice", "checking").Return(checking, nil).Once()
	suite.mockLedger.On("FindAccountByOwnerAndType", ctx, "alice", "savings").Return(savings, nil).Once()

	view, err := suite.service.Load(ctx, "alice")

	suite.Require().NoError(err)
	suite.Require().NotNil(view)
	suite.Equal("alice", view.Username)
	suite.Len(view.Accounts, 2)
	suite.mockLedger.AssertExpectations(suite.T())
	suite.mockCustomer.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestLoad_UnknownCustomer() {
	ctx := context.Background()

	suite.mockCustomer.On("FindCustomerByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	view, err := suite.service.Load(ctx, "ghost")

	suite.Require().Error(err)
	suite.Nil(view)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockLedger.AssertNotCalled(suite.T(), "ListAccountTypes")
}

func (suite *CustomerServiceTestSuite) TestLoad_SkipsConcurrentlyClosedAccount() {
	ctx := context.Background()
	checking := &domain.Account{AccountID: 1, OwnerUsername: "alice", AccountType: "checking", Balance: decimal.NewFromInt(100)}

	suite.mockCustomer.On("FindCustomerByUsername", ctx, "alice").Return(suite.testCustomer(), nil).Once()
	suite.mockLedger.On("ListAccountTypes", ctx, "alice").Return([]string{"checking", "savings"}, nil).Once()
	suite.mockLedger.On("FindAccountByOwnerAndType", ctx, "alice", "checking").Return(checking, nil).Once()
	suite.mockLedger.On("FindAccountByOwnerAndType", ctx, "alice", "savings").Return(nil, apperrors.ErrNotFound).Once()

	view, err := suite.service.Load(ctx, "alice")

	suite.Require().NoError(err)
	suite.Len(view.Accounts, 1)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestTotalFunds_SumsBalances() {
	ctx := context.Background()
	checking := &domain.Account{AccountID: 1, OwnerUsername: "alice", AccountType: "checking", Balance: decimal.NewFromFloat(100.50)}
	savings := &domain.Account{AccountID: 2, OwnerUsername: "alice", AccountType: "savings", Balance: decimal.NewFromFloat(249.50)}

	suite.mockCustomer.On("FindCustomerByUsername", ctx, "alice").Return(suite.testCustomer(), nil).Once()
	suite.mockLedger.On("ListAccountTypes", ctx, "alice").Return([]string{"checking", "savings"}, nil).Once()
	suite.mockLedger.On("FindAccountByOwnerAndType", ctx, "alice", "checking").Return(checking, nil).Once()
	suite.mockLedger.On("FindAccountByOwnerAndType", ctx, "alice", "savings").Return(savings, nil).Once()

	total, err := suite.service.TotalFunds(ctx, "alice")

	suite.Require().NoError(err)
	suite.True(total.Equal(decimal.NewFromInt(350)))
}

func (suite *CustomerServiceTestSuite) TestBalanceOf_ExistingAccount() {
	ctx := context.Background()
	savings := &domain.Account{AccountID: 2, OwnerUsername: "alice", AccountType: "savings", Balance: decimal.Zero}

	suite.mockLedger.On("FindAccountByOwnerAndType", ctx, "alice", "savings").Return(savings, nil).Once()

	balance, exists, err := suite.service.BalanceOf(ctx, "alice", "savings")

	suite.Require().NoError(err)
	suite.True(exists, "a zero-balance account still exists")
	suite.True(balance.IsZero())
}

func (suite *CustomerServiceTestSuite) TestBalanceOf_MissingAccount() {
	ctx := context.Background()

	suite.mockLedger.On("FindAccountByOwnerAndType", ctx, "alice", "brokerage").Return(nil, apperrors.ErrNotFound).Once()

	balance, exists, err := suite.service.BalanceOf(ctx, "alice", "brokerage")

	// Absence is an ordinary answer, not an error, but it must be
	// distinguishable from a real zero balance.
	suite.Require().NoError(err)
	suite.False(exists)
	suite.True(balance.IsZero())
}

func (suite *CustomerServiceTestSuite) TestBalanceOf_StoreError() {
	ctx := context.Background()

	suite.mockLedger.On("FindAccountByOwnerAndType", ctx, "alice", "savings").Return(nil, assert.AnError).Once()

	_, exists, err := suite.service.BalanceOf(ctx, "alice", "savings")

	suite.Require().Error(err)
	suite.False(exists)
}

func (suite *CustomerServiceTestSuite) TestOpenAccount_Success() {
	ctx := context.Background()
	initial := decimal.NewFromInt(100)
	created := &domain.Account{AccountID: 3, OwnerUsername: "alice", AccountType: "savings", Balance: initial}

	suite.mockCustomer.On("FindCustomerByUsername", ctx, "alice").Return(suite.testCustomer(), nil).Once()
	suite.mockLedger.On("CreateAccount", ctx, "alice", "savings", initial).Return(created, nil).Once()

	opened, err := suite.service.OpenAccount(ctx, "alice", "savings", initial)

	suite.Require().NoError(err)
	suite.True(opened)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestOpenAccount_DuplicateType() {
	ctx := context.Background()
	initial := decimal.NewFromInt(100)

	suite.mockCustomer.On("FindCustomerByUsername", ctx, "alice").Return(suite.testCustomer(), nil).Once()
	suite.mockLedger.On("CreateAccount", ctx, "alice", "savings", initial).
		Return(nil, apperrors.ErrDuplicateAccount).Once()

	opened, err := suite.service.OpenAccount(ctx, "alice", "savings", initial)

	suite.Require().NoError(err, "a duplicate type is an ordinary outcome")
	suite.False(opened)
}

func (suite *CustomerServiceTestSuite) TestOpenAccount_UnknownCustomer() {
	ctx := context.Background()

	suite.mockCustomer.On("FindCustomerByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	opened, err := suite.service.OpenAccount(ctx, "ghost", "savings", decimal.NewFromInt(10))

	suite.Require().Error(err)
	suite.False(opened)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockLedger.AssertNotCalled(suite.T(), "CreateAccount")
}

func (suite *CustomerServiceTestSuite) TestOpenAccount_NegativeInitialDeposit() {
	ctx := context.Background()

	opened, err := suite.service.OpenAccount(ctx, "alice", "savings", decimal.NewFromInt(-5))

	suite.Require().Error(err)
	suite.False(opened)
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
	suite.mockLedger.AssertNotCalled(suite.T(), "CreateAccount")
}

func (suite *CustomerServiceTestSuite) TestCloseAccount_Success() {
	ctx := context.Background()
	savings := &domain.Account{AccountID: 2, OwnerUsername: "alice", AccountType: "savings", Balance: decimal.NewFromInt(10)}

	suite.mockLedger.On("FindAccountByOwnerAndType", ctx, "alice", "savings").Return(savings, nil).Once()
	suite.mockLedger.On("DeleteAccount", ctx, int64(2)).Return(nil).Once()

	closed, err := suite.service.CloseAccount(ctx, "alice", "savings")

	suite.Require().NoError(err)
	suite.True(closed)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestCloseAccount_MissingAccount() {
	ctx := context.Background()

	suite.mockLedger.On("FindAccountByOwnerAndType", ctx, "alice", "brokerage").Return(nil, apperrors.ErrNotFound).Once()

	closed, err := suite.service.CloseAccount(ctx, "alice", "brokerage")

	suite.Require().NoError(err)
	suite.False(closed)
	suite.mockLedger.AssertNotCalled(suite.T(), "DeleteAccount")
}

func TestCustomerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CustomerServiceTestSuite))
}
