package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a single ledger event.
type TransactionType string

const (
	Withdraw TransactionType = "withdraw"
	Deposit  TransactionType = "deposit"
	Send     TransactionType = "send"    // debit half of a transfer
	Receive  TransactionType = "receive" // credit half of a transfer
	Loan     TransactionType = "loan"    // credit from a loan disbursement
)

// Transaction is an immutable record of one balance-affecting event.
// Records are append-only; the store-assigned TransactionID is monotonically
// increasing and defines the total order of ledger events.
type Transaction struct {
	TransactionID     int64           `json:"transactionID"`
	SenderAccountID   int64           `json:"senderAccountID"`             // Owning account
	ReceiverAccountID *int64          `json:"receiverAccountID,omitempty"` // Counterparty, transfers only
	Type              TransactionType `json:"type"`
	Amount            decimal.Decimal `json:"amount"`         // Always positive
	RunningBalance    decimal.Decimal `json:"runningBalance"` // Owning account balance after this event
	Timestamp         time.Time       `json:"timestamp"`
}
