package services

import (
	"context"

	"github.com/quayside/bankledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LoanSvcFacade is the policy gate for loan issuance.
type LoanSvcFacade interface {
	// Evaluate reports whether a loan may be disbursed against the account.
	// The decision is an affordability heuristic on the current balance, not
	// a credit-risk model; the requested amount does not influence it.
	Evaluate(ctx context.Context, accountID int64, requested decimal.Decimal) (bool, error)

	// Disburse credits amount to an approved account and increases the owning
	// customer's loan debt by the same amount.
	Disburse(ctx context.Context, accountID int64, amount decimal.Decimal) (*domain.LoanDisbursement, error)
}
