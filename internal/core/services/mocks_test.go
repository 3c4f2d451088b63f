package services_test

import (
	"context"

	"github.com/quayside/bankledger/internal/core/domain"
	portsrepo "github.com/quayside/bankledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockLedgerRepository is a mock type for the LedgerRepositoryFacade interface
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerRepository) FindAccountByOwnerAndType(ctx context.Context, owner, accountType string) (*domain.Account, error) {
	args := m.Called(ctx, owner, accountType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerRepository) ListAccountTypes(ctx context.Context, owner string) ([]string, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockLedgerRepository) FindTransactionsByAccountID(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) CreateAccount(ctx context.Context, owner, accountType string, initial decimal.Decimal) (*domain.Account, error) {
	args := m.Called(ctx, owner, accountType, initial)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerRepository) DeleteAccount(ctx context.Context, accountID int64) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func (m *MockLedgerRepository) ApplyBalanceDelta(ctx context.Context, accountID int64, delta decimal.Decimal, txnType domain.TransactionType, counterpartyID *int64) (*domain.Transaction, error) {
	args := m.Called(ctx, accountID, delta, txnType, counterpartyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) TransferFunds(ctx context.Context, senderID, receiverID int64, amount decimal.Decimal) (*domain.Transaction, *domain.Transaction, error) {
	args := m.Called(ctx, senderID, receiverID, amount)
	var send, receive *domain.Transaction
	if args.Get(0) != nil {
		send = args.Get(0).(*domain.Transaction)
	}
	if args.Get(1) != nil {
		receive = args.Get(1).(*domain.Transaction)
	}
	return send, receive, args.Error(2)
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

// MockCustomerRepository is a mock type for the CustomerRepositoryFacade interface
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindCustomerByUsername(ctx context.Context, username string) (*domain.Customer, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) IncreaseLoanDebt(ctx context.Context, username string, amount decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(ctx, username, amount)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

var _ portsrepo.CustomerRepositoryFacade = (*MockCustomerRepository)(nil)

// MockReportingRepository is a mock type for the ReportingRepository interface
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) AverageAccountBalance(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportingRepository) AverageCreditScore(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportingRepository) TransactionCounts(ctx context.Context) (map[domain.TransactionType]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.TransactionType]int64), args.Error(1)
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)
