package dto

import (
	"github.com/quayside/bankledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RegisterCustomerRequest defines the data needed to register a customer.
type RegisterCustomerRequest struct {
	Username    string      `json:"username" binding:"required"`
	Name        string      `json:"name" binding:"required"`
	Role        domain.Role `json:"role" binding:"omitempty,oneof=customer administrator"`
	CreditScore int         `json:"creditScore" binding:"gte=0"`
}

// CustomerResponse defines the aggregate view returned for a customer.
type CustomerResponse struct {
	Username    string            `json:"username"`
	Name        string            `json:"name"`
	Role        domain.Role       `json:"role"`
	CreditScore int               `json:"creditScore"`
	LoanDebt    decimal.Decimal   `json:"loanDebt"`
	Accounts    []AccountResponse `json:"accounts"`
}

// ToCustomerResponse converts a domain.CustomerView to its response DTO.
func ToCustomerResponse(view *domain.CustomerView) CustomerResponse {
	accounts := make([]AccountResponse, len(view.Accounts))
	for i := range view.Accounts {
		accounts[i] = ToAccountResponse(&view.Accounts[i])
	}
	return CustomerResponse{
		Username:    view.Username,
		Name:        view.Name,
		Role:        view.Role,
		CreditScore: view.CreditScore,
		LoanDebt:    view.LoanDebt,
		Accounts:    accounts,
	}
}

// TotalFundsResponse reports a customer's cross-account total.
type TotalFundsResponse struct {
	Username   string          `json:"username"`
	TotalFunds decimal.Decimal `json:"totalFunds"`
}
