package repositories

import (
	"context"

	"github.com/quayside/bankledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository defines the read-only aggregate queries used by the
// administrator/analytics collaborator.
type ReportingRepository interface {
	// AverageAccountBalance returns the mean balance across all accounts.
	AverageAccountBalance(ctx context.Context) (decimal.Decimal, error)

	// AverageCreditScore returns the mean credit score across all customers.
	AverageCreditScore(ctx context.Context) (decimal.Decimal, error)

	// TransactionCounts returns the number of ledger events per type.
	TransactionCounts(ctx context.Context) (map[domain.TransactionType]int64, error)
}
