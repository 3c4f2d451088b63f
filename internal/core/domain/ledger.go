package domain

import "github.com/shopspring/decimal"

// TransferRecord pairs the two transaction records a successful transfer
// produces: a send owned by the sender and a receive owned by the receiver,
// sharing the same amount and linked through their counterparty IDs.
type TransferRecord struct {
	Send    Transaction `json:"send"`
	Receive Transaction `json:"receive"`
}

// LoanDisbursement is the result of a granted loan: the loan-typed credit on
// the account plus the customer's updated debt obligation.
type LoanDisbursement struct {
	Transaction Transaction     `json:"transaction"`
	LoanDebt    decimal.Decimal `json:"loanDebt"`
}
