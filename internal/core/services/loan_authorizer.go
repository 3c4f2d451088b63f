package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/quayside/bankledger/internal/apperrors"
	"github.com/quayside/bankledger/internal/core/domain"
	portsrepo "github.com/quayside/bankledger/internal/core/ports/repositories"
	portssvc "github.com/quayside/bankledger/internal/core/ports/services"
	"github.com/quayside/bankledger/internal/middleware"
	"github.com/shopspring/decimal"
)

// loanApprovalThreshold is the minimum balance above which a loan is
// approved: 200% of the typical minimum-balance policy. A deliberately
// simple affordability heuristic, not a credit-risk model.
var loanApprovalThreshold = decimal.NewFromInt(500)

// loanAuthorizer gates loan disbursement on current account balance, then
// delegates the credit to the ledger store and records the debt increase on
// the owning customer.
type loanAuthorizer struct {
	ledgerRepo   portsrepo.LedgerRepositoryFacade
	customerRepo portsrepo.CustomerRepositoryFacade
}

// NewLoanAuthorizer creates the loan authorizer service.
func NewLoanAuthorizer(ledgerRepo portsrepo.LedgerRepositoryFacade, customerRepo portsrepo.CustomerRepositoryFacade) portssvc.LoanSvcFacade {
	return &loanAuthorizer{ledgerRepo: ledgerRepo, customerRepo: customerRepo}
}

var _ portssvc.LoanSvcFacade = (*loanAuthorizer)(nil)

// Evaluate approves a loan iff the account's current balance exceeds the
// threshold. The requested amount does not enter the decision.
func (s *loanAuthorizer) Evaluate(ctx context.Context, accountID int64, requested decimal.Decimal) (bool, error) {
	account, err := s.ledgerRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return false, err
	}
	return account.Balance.GreaterThan(loanApprovalThreshold), nil
}

// Disburse re-evaluates the affordability gate, credits the account with a
// loan-typed transaction, then increases the owning customer's loan debt.
// If the debt update fails after the credit committed, the partial state is
// reported as apperrors.ErrReconciliation: the credit is NOT rolled back,
// and retrying blindly would risk double-crediting.
func (s *loanAuthorizer) Disburse(ctx context.Context, accountID int64, amount decimal.Decimal) (*domain.LoanDisbursement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: loan amount must be positive, got %s", apperrors.ErrInvalidAmount, amount)
	}

	account, err := s.ledgerRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !account.Balance.GreaterThan(loanApprovalThreshold) {
		return nil, fmt.Errorf("%w: account %d does not meet the loan approval threshold", apperrors.ErrValidation, accountID)
	}

	txn, err := s.ledgerRepo.ApplyBalanceDelta(ctx, accountID, amount, domain.Loan, nil)
	if err != nil {
		return nil, err
	}

	newDebt, err := s.customerRepo.IncreaseLoanDebt(ctx, account.OwnerUsername, amount)
	if err != nil {
		logger.Error("Loan credit committed but debt update failed",
			slog.Int64("account_id", accountID),
			slog.Int64("transaction_id", txn.TransactionID),
			slog.String("owner", account.OwnerUsername),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("%w: loan transaction %d credited account %d but loan debt for %s was not updated: %v",
			apperrors.ErrReconciliation, txn.TransactionID, accountID, account.OwnerUsername, err)
	}

	logger.Info("Loan disbursed",
		slog.Int64("account_id", accountID),
		slog.Int64("transaction_id", txn.TransactionID),
		slog.String("amount", amount.String()),
		slog.String("loan_debt", newDebt.String()),
	)
	return &domain.LoanDisbursement{Transaction: *txn, LoanDebt: newDebt}, nil
}
