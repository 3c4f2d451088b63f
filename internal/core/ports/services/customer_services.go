package services

import (
	"context"

	"github.com/quayside/bankledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CustomerSvcFacade composes a customer's accounts into an aggregate view
// and manages account lifecycle on the customer's behalf.
type CustomerSvcFacade interface {
	// Register persists a new customer profile with zero loan debt.
	Register(ctx context.Context, customer domain.Customer) error

	// Load reconstructs the customer aggregate from the ledger store.
	Load(ctx context.Context, username string) (*domain.CustomerView, error)

	// TotalFunds sums the customer's balances across all accounts,
	// recomputed from the store on every call.
	TotalFunds(ctx context.Context, username string) (decimal.Decimal, error)

	// BalanceOf returns the balance of the customer's account of the given
	// type. The boolean distinguishes "no such account" from a genuine zero
	// balance.
	BalanceOf(ctx context.Context, username, accountType string) (decimal.Decimal, bool, error)

	// OpenAccount creates an account of the given type with an initial
	// deposit. Returns false, without error, if one already exists.
	OpenAccount(ctx context.Context, username, accountType string, initial decimal.Decimal) (bool, error)

	// CloseAccount deletes the account of the given type and its transaction
	// history. Returns false, without error, if no such account exists.
	CloseAccount(ctx context.Context, username, accountType string) (bool, error)
}
