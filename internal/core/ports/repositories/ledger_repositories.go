package repositories

import (
	"context"

	"github.com/quayside/bankledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerReader defines read operations against the durable ledger.
// Reads observe only committed state: a half-applied mutation (debit without
// its matching credit) is never visible.
type LedgerReader interface {
	// FindAccountByID retrieves a specific account by its store-assigned ID.
	FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)

	// FindAccountByOwnerAndType resolves a human-facing account type label to
	// the account a customer holds under it.
	FindAccountByOwnerAndType(ctx context.Context, owner, accountType string) (*domain.Account, error)

	// ListAccountTypes returns the account type labels held by a customer,
	// used to reconstruct the customer aggregate.
	ListAccountTypes(ctx context.Context, owner string) ([]string, error)

	// FindTransactionsByAccountID returns the append-only transaction history
	// owned by an account, ordered by transaction ID.
	FindTransactionsByAccountID(ctx context.Context, accountID int64) ([]domain.Transaction, error)
}

// LedgerWriter defines account lifecycle operations.
type LedgerWriter interface {
	// CreateAccount persists a new account with its initial deposit.
	// Returns apperrors.ErrDuplicateAccount if (owner, accountType) exists.
	CreateAccount(ctx context.Context, owner, accountType string, initial decimal.Decimal) (*domain.Account, error)

	// DeleteAccount removes an account and cascades deletion of every
	// transaction it owns. Returns apperrors.ErrNotFound if absent.
	DeleteAccount(ctx context.Context, accountID int64) error
}

// LedgerTransactionSupport defines the atomic money-movement operations.
// Each call is indivisible with respect to any other mutation on the same
// account(s): balance re-read, funds check, balance write and transaction
// append happen under one exclusive section.
type LedgerTransactionSupport interface {
	// ApplyBalanceDelta atomically applies delta to one account and appends
	// the transaction record documenting it. A negative delta that would take
	// the balance below zero fails with apperrors.ErrInsufficientFunds and
	// changes nothing. Lock waits are bounded; on timeout it returns
	// apperrors.ErrBusy with state unchanged.
	ApplyBalanceDelta(ctx context.Context, accountID int64, delta decimal.Decimal, txnType domain.TransactionType, counterpartyID *int64) (*domain.Transaction, error)

	// TransferFunds atomically debits the sender and credits the receiver,
	// appending linked send/receive records. Locks are taken in ascending
	// account-ID order. The debit is validated before the credit is attempted;
	// on any failure neither balance changes. A missing receiver fails with
	// apperrors.ErrUnknownAccount, a missing sender with apperrors.ErrNotFound.
	TransferFunds(ctx context.Context, senderID, receiverID int64, amount decimal.Decimal) (send, receive *domain.Transaction, err error)
}

// LedgerRepositoryFacade combines all ledger store interfaces. This is the
// single source of truth for balances and transaction history; in-memory
// views are caches that must be refreshed through it.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
	LedgerTransactionSupport
}
