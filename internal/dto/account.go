package dto

import (
	"time"

	"github.com/quayside/bankledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OpenAccountRequest defines the data needed to open a new account.
type OpenAccountRequest struct {
	AccountType    string          `json:"accountType" binding:"required"`
	InitialDeposit decimal.Decimal `json:"initialDeposit"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID      int64           `json:"accountID"`
	OwnerUsername  string          `json:"ownerUsername"`
	AccountType    string          `json:"accountType"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	Balance        decimal.Decimal `json:"balance"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      acc.AccountID,
		OwnerUsername:  acc.OwnerUsername,
		AccountType:    acc.AccountType,
		InitialBalance: acc.InitialBalance,
		Balance:        acc.Balance,
		CreatedAt:      acc.CreatedAt,
	}
}

// BalanceResponse reports one account's balance. Exists distinguishes "no
// such account" from an account holding zero.
type BalanceResponse struct {
	AccountType string          `json:"accountType"`
	Balance     decimal.Decimal `json:"balance"`
	Exists      bool            `json:"exists"`
}
