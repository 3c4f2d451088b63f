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
	"github.com/stretchr/testify/suite"
)

type LoanAuthorizerTestSuite struct {
	suite.Suite
	mockLedger   *MockLedgerRepository
	mockCustomer *MockCustomerRepository
	service      portssvc.LoanSvcFacade
}

func (suite *LoanAuthorizerTestSuite) SetupTest() {
	suite.mockLedger = new(MockLedgerRepository)
	suite.mockCustomer = new(MockCustomerRepository)
	suite.service = services.NewLoanAuthorizer(suite.mockLedger, suite.mockCustomer)
}

func accountWithBalance(id int64, owner string, balance int64) *domain.Account {
	return &domain.Account{
		AccountID:     id,
		OwnerUsername: owner,
		AccountType:   "checking",
		Balance:       decimal.NewFromInt(balance),
	}
}

func (suite *LoanAuthorizerTestSuite) TestEvaluate_BalanceAboveThreshold() {
	ctx := context.Background()

	suite.mockLedger.On("FindAccountByID", ctx, int64(1)).
		Return(accountWithBalance(1, "alice", 501), nil).Once()

	approved, err := suite.service.Evaluate(ctx, 1, decimal.NewFromInt(100000))

	suite.Require().NoError(err)
	suite.True(approved, "501 exceeds the threshold, requested amount is irrelevant")
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *LoanAuthorizerTestSuite) TestEvaluate_BalanceAtThreshold() {
	ctx := context.Background()

	suite.mockLedger.On("FindAccountByID", ctx, int64(1)).
		Return(accountWithBalance(1, "alice", 500), nil).Once()

	approved, err := suite.service.Evaluate(ctx, 1, decimal.NewFromInt(10))

	suite.Require().NoError(err)
	suite.False(approved, "exactly 500 does not exceed the threshold")
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *LoanAuthorizerTestSuite) TestEvaluate_UnknownAccount() {
	ctx := context.Background()

	suite.mockLedger.On("FindAccountByID", ctx, int64(77)).
		Return(nil, apperrors.ErrNotFound).Once()

	approved, err := suite.service.Evaluate(ctx, 77, decimal.NewFromInt(10))

	suite.Require().Error(err)
	suite.False(approved)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *LoanAuthorizerTestSuite) TestDisburse_Success() {
	ctx := context.Background()
	amount := decimal.NewFromInt(200)
	txn := &domain.Transaction{
		TransactionID:   21,
		SenderAccountID: 1,
		Type:            domain.Loan,
		Amount:          amount,
		RunningBalance:  decimal.NewFromInt(800),
	}

	suite.mockLedger.On("FindAccountByID", ctx, int64(1)).
		Return(accountWithBalance(1, "alice", 600), nil).Once()
	suite.mockLedger.On("ApplyBalanceDelta", ctx, int64(1), amount, domain.Loan, (*int64)(nil)).
		Return(txn, nil).Once()
	suite.mockCustomer.On("IncreaseLoanDebt", ctx, "alice", amount).
		Return(decimal.NewFromInt(200), nil).Once()

	disbursement, err := suite.service.Disburse(ctx, 1, amount)

	suite.Require().NoError(err)
	suite.Require().NotNil(disbursement)
	suite.Equal(*txn, disbursement.Transaction)
	suite.True(disbursement.LoanDebt.Equal(amount), "debt grows by exactly the disbursed amount")
	suite.mockLedger.AssertExpectations(suite.T())
	suite.mockCustomer.AssertExpectations(suite.T())
}

func (suite *LoanAuthorizerTestSuite) TestDisburse_BelowThreshold() {
	ctx := context.Background()

	suite.mockLedger.On("FindAccountByID", ctx, int64(1)).
		Return(accountWithBalance(1, "alice", 100), nil).Once()

	disbursement, err := suite.service.Disburse(ctx, 1, decimal.NewFromInt(50))

	suite.Require().Error(err)
	suite.Nil(disbursement)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLedger.AssertNotCalled(suite.T(), "ApplyBalanceDelta")
	suite.mockCustomer.AssertNotCalled(suite.T(), "IncreaseLoanDebt")
}

func (suite *LoanAuthorizerTestSuite) TestDisburse_NonPositiveAmount() {
	ctx := context.Background()

	disbursement, err := suite.service.Disburse(ctx, 1, decimal.Zero)

	suite.Require().Error(err)
	suite.Nil(disbursement)
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
	suite.mockLedger.AssertNotCalled(suite.T(), "FindAccountByID")
}

func (suite *LoanAuthorizerTestSuite) TestDisburse_DebtUpdateFails() {
	ctx := context.Background()
	amount := decimal.NewFromInt(200)
	txn := &domain.Transaction{
		TransactionID:   22,
		SenderAccountID: 1,
		Type:            domain.Loan,
		Amount:          amount,
		RunningBalance:  decimal.NewFromInt(800),
	}

	suite.mockLedger.On("FindAccountByID", ctx, int64(1)).
		Return(accountWithBalance(1, "alice", 600), nil).Once()
	suite.mockLedger.On("ApplyBalanceDelta", ctx, int64(1), amount, domain.Loan, (*int64)(nil)).
		Return(txn, nil).Once()
	suite.mockCustomer.On("IncreaseLoanDebt", ctx, "alice", amount).
		Return(decimal.Zero, assert.AnError).Once()

	disbursement, err := suite.service.Disburse(ctx, 1, amount)

	// The committed credit is not rolled back; the partial state is reported
	// as a reconciliation error, never silently retried.
	suite.Require().Error(err)
	suite.Nil(disbursement)
	suite.ErrorIs(err, apperrors.ErrReconciliation)
	suite.mockLedger.AssertExpectations(suite.T())
	suite.mockCustomer.AssertExpectations(suite.T())
}

func (suite *LoanAuthorizerTestSuite) TestDisburse_CreditFails() {
	ctx := context.Background()
	amount := decimal.NewFromInt(200)

	suite.mockLedger.On("FindAccountByID", ctx, int64(1)).
		Return(accountWithBalance(1, "alice", 600), nil).Once()
	suite.mockLedger.On("ApplyBalanceDelta", ctx, int64(1), amount, domain.Loan, (*int64)(nil)).
		Return(nil, apperrors.ErrBusy).Once()

	disbursement, err := suite.service.Disburse(ctx, 1, amount)

	suite.Require().Error(err)
	suite.Nil(disbursement)
	suite.ErrorIs(err, apperrors.ErrBusy)
	suite.mockCustomer.AssertNotCalled(suite.T(), "IncreaseLoanDebt")
}

func TestLoanAuthorizerTestSuite(t *testing.T) {
	suite.Run(t, new(LoanAuthorizerTestSuite))
}
