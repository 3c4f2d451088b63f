package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested account or customer could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrDuplicateAccount indicates that the customer already holds an account of that type.
var ErrDuplicateAccount = errors.New("account of this type already exists")

// ErrInvalidAmount indicates a non-positive or otherwise malformed money amount.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrInsufficientFunds indicates a debit would take an account balance below zero.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrUnknownAccount indicates a transfer counterparty that does not resolve to an account.
var ErrUnknownAccount = errors.New("unknown counterparty account")

// ErrBusy indicates a mutating operation timed out waiting for an account lock.
// State is unchanged when this is returned.
var ErrBusy = errors.New("account busy, operation timed out")

// ErrReconciliation indicates a multi-step money movement committed its first
// step but failed a later one. It must never be retried blindly: the ledger
// needs operator reconciliation, not a second credit.
var ErrReconciliation = errors.New("ledger reconciliation required")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// AppError wraps infrastructure failures with a status-like code so handlers
// can map them without inspecting driver errors.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping an underlying cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
