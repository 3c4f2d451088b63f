package dto

import (
	"time"

	"github.com/quayside/bankledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AmountRequest carries the amount for a withdraw or deposit.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// TransferRequest defines the data needed to move money between accounts.
type TransferRequest struct {
	SenderAccountID   int64           `json:"senderAccountID" binding:"required"`
	ReceiverAccountID int64           `json:"receiverAccountID" binding:"required"`
	Amount            decimal.Decimal `json:"amount" binding:"required"`
}

// TransactionResponse defines the data returned for one ledger event.
type TransactionResponse struct {
	TransactionID     int64                  `json:"transactionID"`
	SenderAccountID   int64                  `json:"senderAccountID"`
	ReceiverAccountID *int64                 `json:"receiverAccountID,omitempty"`
	Type              domain.TransactionType `json:"type"`
	Amount            decimal.Decimal        `json:"amount"`
	RunningBalance    decimal.Decimal        `json:"runningBalance"`
	Timestamp         time.Time              `json:"timestamp"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:     txn.TransactionID,
		SenderAccountID:   txn.SenderAccountID,
		ReceiverAccountID: txn.ReceiverAccountID,
		Type:              txn.Type,
		Amount:            txn.Amount,
		RunningBalance:    txn.RunningBalance,
		Timestamp:         txn.Timestamp,
	}
}

// ToTransactionListResponse converts a history slice.
func ToTransactionListResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}

// BalanceMutationResponse is returned by withdraw and deposit.
type BalanceMutationResponse struct {
	AccountID  int64           `json:"accountID"`
	NewBalance decimal.Decimal `json:"newBalance"`
}

// TransferResponse pairs the linked send/receive records of a transfer.
type TransferResponse struct {
	Send    TransactionResponse `json:"send"`
	Receive TransactionResponse `json:"receive"`
}
