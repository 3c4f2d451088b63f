package memory

import (
	"context"
	"fmt"

	"github.com/quayside/bankledger/internal/apperrors"
	"github.com/quayside/bankledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FindCustomerByUsername returns a snapshot of the customer profile.
func (s *Store) FindCustomerByUsername(ctx context.Context, username string) (*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customer, ok := s.customers[username]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &customer, nil
}

// SaveCustomer inserts a new customer profile.
func (s *Store) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[customer.Username]; ok {
		return fmt.Errorf("%w: customer %s already exists", apperrors.ErrValidation, customer.Username)
	}
	s.customers[customer.Username] = customer
	return nil
}

// IncreaseLoanDebt adds amount to the customer's loan principal and returns
// the new total.
func (s *Store) IncreaseLoanDebt(ctx context.Context, username string, amount decimal.Decimal) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customer, ok := s.customers[username]
	if !ok {
		return decimal.Zero, apperrors.ErrNotFound
	}
	customer.LoanDebt = customer.LoanDebt.Add(amount)
	s.customers[username] = customer
	return customer.LoanDebt, nil
}
