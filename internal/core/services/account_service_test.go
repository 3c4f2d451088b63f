package services_test

import (
	"context"
	"testing"

	"github.com/quayside/bankledger/internal/apperrors"
	"github.com/quayside/bankledger/internal/core/domain"
	portssvc "github.com/quayside/bankledger/internal/core/ports/services"
	"github.com/quayside/bankledger/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockLedgerRepository
	service  portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockLedgerRepository)
	suite.service = services.NewAccountService(suite.mockRepo)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_Success() {
	ctx := context.Background()
	expected := &domain.Account{
		AccountID:     1,
		OwnerUsername: "alice",
		AccountType:   "checking",
		Balance:       decimal.NewFromInt(100),
	}

	suite.mockRepo.On("FindAccountByID", ctx, int64(1)).Return(expected, nil).Once()

	account, err := suite.service.GetAccountByID(ctx, 1)

	suite.Require().NoError(err)
	suite.Equal(expected, account)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("FindAccountByID", ctx, int64(42)).Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.GetAccountByID(ctx, 42)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestGetTransactionHistory_OrderedByID() {
	ctx := context.Background()
	account := &domain.Account{AccountID: 1, OwnerUsername: "alice", AccountType: "checking"}
	history := []domain.Transaction{
		{TransactionID: 3, SenderAccountID: 1, Type: domain.Deposit},
		{TransactionID: 5, SenderAccountID: 1, Type: domain.Withdraw},
	}

	suite.mockRepo.On("FindAccountByID", ctx, int64(1)).Return(account, nil).Once()
	suite.mockRepo.On("FindTransactionsByAccountID", ctx, int64(1)).Return(history, nil).Once()

	txns, err := suite.service.GetTransactionHistory(ctx, 1)

	suite.Require().NoError(err)
	suite.Equal(history, txns)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetTransactionHistory_UnknownAccount() {
	ctx := context.Background()

	suite.mockRepo.On("FindAccountByID", ctx, int64(42)).Return(nil, apperrors.ErrNotFound).Once()

	txns, err := suite.service.GetTransactionHistory(ctx, 42)

	// An unknown account is NotFound, never an empty history.
	suite.Require().Error(err)
	suite.Nil(txns)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindTransactionsByAccountID")
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
