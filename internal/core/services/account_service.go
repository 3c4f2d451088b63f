package services

import (
	"context"

	"github.com/quayside/bankledger/internal/core/domain"
	portsrepo "github.com/quayside/bankledger/internal/core/ports/repositories"
	portssvc "github.com/quayside/bankledger/internal/core/ports/services"
)

// accountService exposes read access to accounts and their append-only
// transaction history.
type accountService struct {
	ledgerRepo portsrepo.LedgerReader
}

// NewAccountService creates the account read service.
func NewAccountService(ledgerRepo portsrepo.LedgerReader) portssvc.AccountSvcFacade {
	return &accountService{ledgerRepo: ledgerRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	return s.ledgerRepo.FindAccountByID(ctx, accountID)
}

func (s *accountService) GetTransactionHistory(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	// Resolve the account first so an unknown ID reports NotFound rather
	// than an empty history.
	if _, err := s.ledgerRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}
	return s.ledgerRepo.FindTransactionsByAccountID(ctx, accountID)
}
