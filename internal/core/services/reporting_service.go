package services

import (
	"context"
	"fmt"

	portsrepo "github.com/quayside/bankledger/internal/core/ports/repositories"
	portssvc "github.com/quayside/bankledger/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// reportingService answers the administrator collaborator's aggregate
// queries. All reads come from committed store state.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
	customerRepo  portsrepo.CustomerReader
}

// NewReportingService creates the reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, customerRepo portsrepo.CustomerReader) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo, customerRepo: customerRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) Summary(ctx context.Context) (*portssvc.LedgerSummary, error) {
	avgBalance, err := s.reportingRepo.AverageAccountBalance(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute average account balance: %w", err)
	}

	avgScore, err := s.reportingRepo.AverageCreditScore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute average credit score: %w", err)
	}

	counts, err := s.reportingRepo.TransactionCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	return &portssvc.LedgerSummary{
		AverageAccountBalance: avgBalance,
		AverageCreditScore:    avgScore,
		TransactionCounts:     counts,
	}, nil
}

func (s *reportingService) CustomerLoanDebt(ctx context.Context, username string) (decimal.Decimal, error) {
	customer, err := s.customerRepo.FindCustomerByUsername(ctx, username)
	if err != nil {
		return decimal.Zero, err
	}
	return customer.LoanDebt, nil
}
