package repositories

import (
	"context"

	"github.com/quayside/bankledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CustomerReader defines read operations for customer profiles.
type CustomerReader interface {
	// FindCustomerByUsername retrieves a customer profile.
	FindCustomerByUsername(ctx context.Context, username string) (*domain.Customer, error)
}

// CustomerWriter defines write operations for customer profiles.
type CustomerWriter interface {
	// SaveCustomer persists a new customer profile.
	SaveCustomer(ctx context.Context, customer domain.Customer) error

	// IncreaseLoanDebt adds amount to the customer's undischarged loan
	// principal and returns the new total. LoanDebt only ever grows through
	// this call.
	IncreaseLoanDebt(ctx context.Context, username string, amount decimal.Decimal) (decimal.Decimal, error)
}

// CustomerRepositoryFacade combines customer repository interfaces.
type CustomerRepositoryFacade interface {
	CustomerReader
	CustomerWriter
}
