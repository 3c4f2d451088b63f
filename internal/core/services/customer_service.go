package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/quayside/bankledger/internal/apperrors"
	"github.com/quayside/bankledger/internal/core/domain"
	portsrepo "github.com/quayside/bankledger/internal/core/ports/repositories"
	portssvc "github.com/quayside/bankledger/internal/core/ports/services"
	"github.com/quayside/bankledger/internal/middleware"
	"github.com/shopspring/decimal"
)

// customerService composes a customer's accounts into an aggregate view.
// The view is a cache over the ledger store: every operation re-reads the
// store rather than trusting previously loaded balances.
type customerService struct {
	ledgerRepo   portsrepo.LedgerRepositoryFacade
	customerRepo portsrepo.CustomerRepositoryFacade
}

// NewCustomerService creates the customer aggregate service.
func NewCustomerService(ledgerRepo portsrepo.LedgerRepositoryFacade, customerRepo portsrepo.CustomerRepositoryFacade) portssvc.CustomerSvcFacade {
	return &customerService{ledgerRepo: ledgerRepo, customerRepo: customerRepo}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

// Register persists a new customer profile. Loan debt always starts at zero
// and only grows through disbursement.
func (s *customerService) Register(ctx context.Context, customer domain.Customer) error {
	if customer.Username == "" {
		return fmt.Errorf("%w: username is required", apperrors.ErrValidation)
	}
	if customer.Role == "" {
		customer.Role = domain.RoleCustomer
	}
	customer.LoanDebt = decimal.Zero
	return s.customerRepo.SaveCustomer(ctx, customer)
}

// Load reconstructs the aggregate: profile fields plus one account view per
// account type the customer holds.
func (s *customerService) Load(ctx context.Context, username string) (*domain.CustomerView, error) {
	customer, err := s.customerRepo.FindCustomerByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	types, err := s.ledgerRepo.ListAccountTypes(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list account types for %s: %w", username, err)
	}

	accounts := make([]domain.Account, 0, len(types))
	for _, accountType := range types {
		account, err := s.ledgerRepo.FindAccountByOwnerAndType(ctx, username, accountType)
		if err != nil {
			// An account closed between the two reads is not an error for
			// the aggregate; skip it.
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return nil, err
		}
		accounts = append(accounts, *account)
	}

	return &domain.CustomerView{Customer: *customer, Accounts: accounts}, nil
}

// TotalFunds sums all the customer's balances, recomputed on demand from the
// store to avoid staleness.
func (s *customerService) TotalFunds(ctx context.Context, username string) (decimal.Decimal, error) {
	view, err := s.Load(ctx, username)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, account := range view.Accounts {
		total = total.Add(account.Balance)
	}
	return total, nil
}

// BalanceOf returns the balance of the account of the given type. The
// boolean is false when no such account exists, which is distinct from an
// existing account holding zero.
func (s *customerService) BalanceOf(ctx context.Context, username, accountType string) (decimal.Decimal, bool, error) {
	account, err := s.ledgerRepo.FindAccountByOwnerAndType(ctx, username, accountType)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, err
	}
	return account.Balance, true, nil
}

// OpenAccount creates an account of the given type for the customer. A
// duplicate type is reported as false, not an error, so callers can treat it
// as an ordinary outcome.
func (s *customerService) OpenAccount(ctx context.Context, username, accountType string, initial decimal.Decimal) (bool, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if accountType == "" {
		return false, fmt.Errorf("%w: account type is required", apperrors.ErrValidation)
	}
	if initial.IsNegative() {
		return false, fmt.Errorf("%w: initial deposit cannot be negative, got %s", apperrors.ErrInvalidAmount, initial)
	}

	// The customer must exist before it can own accounts.
	if _, err := s.customerRepo.FindCustomerByUsername(ctx, username); err != nil {
		return false, err
	}

	account, err := s.ledgerRepo.CreateAccount(ctx, username, accountType, initial)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateAccount) {
			return false, nil
		}
		return false, err
	}

	logger.Info("Account opened",
		slog.Int64("account_id", account.AccountID),
		slog.String("owner", username),
		slog.String("account_type", accountType),
		slog.String("initial_balance", initial.String()),
	)
	return true, nil
}

// CloseAccount deletes the account of the given type along with its
// transaction history. Returns false when no such account exists.
func (s *customerService) CloseAccount(ctx context.Context, username, accountType string) (bool, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.ledgerRepo.FindAccountByOwnerAndType(ctx, username, accountType)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := s.ledgerRepo.DeleteAccount(ctx, account.AccountID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Deleted concurrently between resolve and delete.
			return false, nil
		}
		return false, err
	}

	logger.Info("Account closed",
		slog.Int64("account_id", account.AccountID),
		slog.String("owner", username),
		slog.String("account_type", accountType),
	)
	return true, nil
}
