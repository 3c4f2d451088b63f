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

// transactionEngine validates and executes money movement against the ledger
// store. It never mutates a balance itself: every change goes through the
// store's atomic delta operations so the balance update and its transaction
// record commit as one unit.
type transactionEngine struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

// NewTransactionEngine creates the transaction engine service.
func NewTransactionEngine(ledgerRepo portsrepo.LedgerRepositoryFacade) portssvc.TransactionSvcFacade {
	return &transactionEngine{ledgerRepo: ledgerRepo}
}

var _ portssvc.TransactionSvcFacade = (*transactionEngine)(nil)

// Withdraw debits amount from the account. ErrInsufficientFunds from the
// store is surfaced unchanged; the caller may retry with a corrected amount.
func (s *transactionEngine) Withdraw(ctx context.Context, accountID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: withdrawal amount must be positive, got %s", apperrors.ErrInvalidAmount, amount)
	}

	txn, err := s.ledgerRepo.ApplyBalanceDelta(ctx, accountID, amount.Neg(), domain.Withdraw, nil)
	if err != nil {
		return decimal.Zero, err
	}

	logger.Info("Withdrawal completed",
		slog.Int64("account_id", accountID),
		slog.Int64("transaction_id", txn.TransactionID),
		slog.String("amount", amount.String()),
	)
	return txn.RunningBalance, nil
}

// Deposit credits amount to the account. There is no upper bound on a
// balance, so the only validation is positivity.
func (s *transactionEngine) Deposit(ctx context.Context, accountID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: deposit amount must be positive, got %s", apperrors.ErrInvalidAmount, amount)
	}

	txn, err := s.ledgerRepo.ApplyBalanceDelta(ctx, accountID, amount, domain.Deposit, nil)
	if err != nil {
		return decimal.Zero, err
	}

	logger.Info("Deposit completed",
		slog.Int64("account_id", accountID),
		slog.Int64("transaction_id", txn.TransactionID),
		slog.String("amount", amount.String()),
	)
	return txn.RunningBalance, nil
}

// Transfer moves amount from sender to receiver as one logical unit. The
// store performs the debit and credit under a single atomic section, so a
// failed funds check leaves both balances untouched. A partial state that
// the store could not roll back arrives here as apperrors.ErrReconciliation
// and is passed through undecorated so operators see it distinctly.
func (s *transactionEngine) Transfer(ctx context.Context, senderID, receiverID int64, amount decimal.Decimal) (*domain.TransferRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: transfer amount must be positive, got %s", apperrors.ErrInvalidAmount, amount)
	}
	if senderID == receiverID {
		return nil, fmt.Errorf("%w: sender and receiver accounts must differ", apperrors.ErrValidation)
	}

	send, receive, err := s.ledgerRepo.TransferFunds(ctx, senderID, receiverID, amount)
	if err != nil {
		return nil, err
	}

	logger.Info("Transfer completed",
		slog.Int64("sender_account_id", senderID),
		slog.Int64("receiver_account_id", receiverID),
		slog.String("amount", amount.String()),
		slog.Int64("send_transaction_id", send.TransactionID),
		slog.Int64("receive_transaction_id", receive.TransactionID),
	)
	return &domain.TransferRecord{Send: *send, Receive: *receive}, nil
}
