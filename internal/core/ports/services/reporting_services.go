package services

import (
	"context"

	"github.com/quayside/bankledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerSummary aggregates the statistics the administrator collaborator
// reads from the ledger.
type LedgerSummary struct {
	AverageAccountBalance decimal.Decimal                  `json:"averageAccountBalance"`
	AverageCreditScore    decimal.Decimal                  `json:"averageCreditScore"`
	TransactionCounts     map[domain.TransactionType]int64 `json:"transactionCounts"`
}

// ReportingSvcFacade exposes read-only aggregate statistics. These reads
// never observe a half-applied mutation.
type ReportingSvcFacade interface {
	Summary(ctx context.Context) (*LedgerSummary, error)
	CustomerLoanDebt(ctx context.Context, username string) (decimal.Decimal, error)
}
