package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/quayside/bankledger/internal/apperrors"
	"github.com/quayside/bankledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

func errBusy(cause error) error {
	if cause != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrBusy, cause)
	}
	return apperrors.ErrBusy
}

// CreateAccount persists a new account; at most one per (owner, type).
func (s *Store) CreateAccount(ctx context.Context, owner, accountType string, initial decimal.Decimal) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[owner]; !ok {
		return nil, fmt.Errorf("%w: customer %s does not exist", apperrors.ErrNotFound, owner)
	}

	key := ownerTypeKey{owner: owner, accountType: accountType}
	if _, ok := s.byOwnerType[key]; ok {
		return nil, fmt.Errorf("%w: %s already holds a %q account", apperrors.ErrDuplicateAccount, owner, accountType)
	}

	s.nextAccountID++
	account := domain.Account{
		AccountID:      s.nextAccountID,
		OwnerUsername:  owner,
		AccountType:    accountType,
		InitialBalance: initial,
		Balance:        initial,
		CreatedAt:      time.Now().UTC(),
	}
	s.accounts[account.AccountID] = &accountState{
		sem:     make(chan struct{}, 1),
		account: account,
	}
	s.byOwnerType[key] = account.AccountID
	return &account, nil
}

// FindAccountByID returns a snapshot of the account.
func (s *Store) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.accounts[accountID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := st.account
	return &cp, nil
}

// FindAccountByOwnerAndType resolves an account-type label under an owner.
func (s *Store) FindAccountByOwnerAndType(ctx context.Context, owner, accountType string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byOwnerType[ownerTypeKey{owner: owner, accountType: accountType}]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := s.accounts[id].account
	return &cp, nil
}

// ListAccountTypes returns the account type labels held by a customer.
func (s *Store) ListAccountTypes(ctx context.Context, owner string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	types := []string{}
	for key := range s.byOwnerType {
		if key.owner == owner {
			types = append(types, key.accountType)
		}
	}
	return types, nil
}

// FindTransactionsByAccountID returns the history owned by an account in
// transaction-ID order.
func (s *Store) FindTransactionsByAccountID(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	transactions := []domain.Transaction{}
	for _, txn := range s.log {
		if txn.SenderAccountID == accountID {
			transactions = append(transactions, txn)
		}
	}
	return transactions, nil
}

// ApplyBalanceDelta applies delta and appends the documenting transaction
// inside the account's exclusive section.
func (s *Store) ApplyBalanceDelta(ctx context.Context, accountID int64, delta decimal.Decimal, txnType domain.TransactionType, counterpartyID *int64) (*domain.Transaction, error) {
	st, ok := s.lookup(accountID)
	if !ok {
		return nil, apperrors.ErrNotFound
	}

	if err := s.acquire(ctx, st); err != nil {
		return nil, err
	}
	defer s.release(st)

	s.mu.Lock()
	defer s.mu.Unlock()

	// The account may have been deleted while we waited on its section.
	if _, ok := s.accounts[accountID]; !ok {
		return nil, apperrors.ErrNotFound
	}

	newBalance := st.account.Balance.Add(delta)
	if delta.IsNegative() && newBalance.IsNegative() {
		return nil, fmt.Errorf("%w: account %d holds %s, cannot debit %s",
			apperrors.ErrInsufficientFunds, accountID, st.account.Balance, delta.Abs())
	}

	st.account.Balance = newBalance
	txn := s.appendTransaction(domain.Transaction{
		SenderAccountID:   accountID,
		ReceiverAccountID: counterpartyID,
		Type:              txnType,
		Amount:            delta.Abs(),
		RunningBalance:    newBalance,
		Timestamp:         time.Now().UTC(),
	})
	return &txn, nil
}

// TransferFunds debits the sender and credits the receiver under both
// accounts' sections, taken in ascending ID order.
func (s *Store) TransferFunds(ctx context.Context, senderID, receiverID int64, amount decimal.Decimal) (*domain.Transaction, *domain.Transaction, error) {
	sender, ok := s.lookup(senderID)
	if !ok {
		return nil, nil, fmt.Errorf("%w: sender account %d", apperrors.ErrNotFound, senderID)
	}
	receiver, ok := s.lookup(receiverID)
	if !ok {
		return nil, nil, fmt.Errorf("%w: receiver account %d", apperrors.ErrUnknownAccount, receiverID)
	}

	release, err := s.acquireOrdered(ctx, map[int64]*accountState{
		senderID:   sender,
		receiverID: receiver,
	})
	if err != nil {
		return nil, nil, err
	}
	defer release()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[senderID]; !ok {
		return nil, nil, fmt.Errorf("%w: sender account %d", apperrors.ErrNotFound, senderID)
	}
	if _, ok := s.accounts[receiverID]; !ok {
		return nil, nil, fmt.Errorf("%w: receiver account %d", apperrors.ErrUnknownAccount, receiverID)
	}

	senderBalance := sender.account.Balance.Sub(amount)
	if senderBalance.IsNegative() {
		return nil, nil, fmt.Errorf("%w: account %d holds %s, cannot send %s",
			apperrors.ErrInsufficientFunds, senderID, sender.account.Balance, amount)
	}

	sender.account.Balance = senderBalance
	receiver.account.Balance = receiver.account.Balance.Add(amount)

	now := time.Now().UTC()
	send := s.appendTransaction(domain.Transaction{
		SenderAccountID:   senderID,
		ReceiverAccountID: &receiverID,
		Type:              domain.Send,
		Amount:            amount,
		RunningBalance:    sender.account.Balance,
		Timestamp:         now,
	})
	receive := s.appendTransaction(domain.Transaction{
		SenderAccountID:   receiverID,
		ReceiverAccountID: &senderID,
		Type:              domain.Receive,
		Amount:            amount,
		RunningBalance:    receiver.account.Balance,
		Timestamp:         now,
	})
	return &send, &receive, nil
}

// DeleteAccount removes the account and every transaction it owns.
func (s *Store) DeleteAccount(ctx context.Context, accountID int64) error {
	st, ok := s.lookup(accountID)
	if !ok {
		return apperrors.ErrNotFound
	}

	if err := s.acquire(ctx, st); err != nil {
		return err
	}
	defer s.release(st)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[accountID]; !ok {
		return apperrors.ErrNotFound
	}

	delete(s.accounts, accountID)
	delete(s.byOwnerType, ownerTypeKey{owner: st.account.OwnerUsername, accountType: st.account.AccountType})

	kept := s.log[:0]
	for _, txn := range s.log {
		if txn.SenderAccountID != accountID {
			kept = append(kept, txn)
		}
	}
	s.log = kept
	return nil
}
