package memory

import (
	"context"

	"github.com/quayside/bankledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AverageAccountBalance returns the mean balance across all accounts.
func (s *Store) AverageAccountBalance(ctx context.Context) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.accounts) == 0 {
		return decimal.Zero, nil
	}

	total := decimal.Zero
	for _, st := range s.accounts {
		total = total.Add(st.account.Balance)
	}
	return total.Div(decimal.NewFromInt(int64(len(s.accounts)))), nil
}

// AverageCreditScore returns the mean credit score across all customers.
func (s *Store) AverageCreditScore(ctx context.Context) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.customers) == 0 {
		return decimal.Zero, nil
	}

	total := decimal.Zero
	for _, customer := range s.customers {
		total = total.Add(decimal.NewFromInt(int64(customer.CreditScore)))
	}
	return total.Div(decimal.NewFromInt(int64(len(s.customers)))), nil
}

// TransactionCounts returns the number of ledger events per type.
func (s *Store) TransactionCounts(ctx context.Context) (map[domain.TransactionType]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[domain.TransactionType]int64)
	for _, txn := range s.log {
		counts[txn.Type]++
	}
	return counts, nil
}
