package services

import (
	"context"

	"github.com/quayside/bankledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionSvcFacade is the transaction engine boundary: it validates and
// executes money movement against the ledger store. Accounts are addressed
// by their store-assigned IDs.
type TransactionSvcFacade interface {
	// Withdraw debits amount from the account and returns the new balance.
	Withdraw(ctx context.Context, accountID int64, amount decimal.Decimal) (decimal.Decimal, error)

	// Deposit credits amount to the account and returns the new balance.
	Deposit(ctx context.Context, accountID int64, amount decimal.Decimal) (decimal.Decimal, error)

	// Transfer moves amount between two distinct accounts as a single logical
	// unit, producing linked send/receive records.
	Transfer(ctx context.Context, senderID, receiverID int64, amount decimal.Decimal) (*domain.TransferRecord, error)
}

// AccountSvcFacade exposes read access to accounts and their history for
// administrator-facing collaborators.
type AccountSvcFacade interface {
	GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)
	GetTransactionHistory(ctx context.Context, accountID int64) ([]domain.Transaction, error)
}
