package dto

import (
	"github.com/quayside/bankledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LoanRequest carries the amount for a loan evaluation or disbursement.
type LoanRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// LoanEvaluationResponse reports the affordability decision.
type LoanEvaluationResponse struct {
	AccountID int64 `json:"accountID"`
	Approved  bool  `json:"approved"`
}

// LoanDisbursementResponse reports a granted loan.
type LoanDisbursementResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	LoanDebt    decimal.Decimal     `json:"loanDebt"`
}

// ToLoanDisbursementResponse converts a domain.LoanDisbursement.
func ToLoanDisbursementResponse(d *domain.LoanDisbursement) LoanDisbursementResponse {
	return LoanDisbursementResponse{
		Transaction: ToTransactionResponse(&d.Transaction),
		LoanDebt:    d.LoanDebt,
	}
}
