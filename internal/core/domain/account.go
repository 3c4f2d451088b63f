package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a typed balance belonging to one customer. A customer holds at
// most one account per account type (e.g. "chequing", "savings"), and the
// balance never goes below zero.
type Account struct {
	AccountID      int64           `json:"accountID"`      // Store-assigned, immutable
	OwnerUsername  string          `json:"ownerUsername"`  // FK -> customers.username
	AccountType    string          `json:"accountType"`    // Free-form label, unique per owner
	InitialBalance decimal.Decimal `json:"initialBalance"` // Snapshot at creation, immutable
	Balance        decimal.Decimal `json:"balance"`        // Mutated only by the transaction engine
	CreatedAt      time.Time       `json:"createdAt"`
}
