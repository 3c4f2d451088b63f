// Package memory provides an in-memory ledger store implementing the same
// ports as the pgsql repositories. It preserves the store's concurrency
// contract — per-account exclusive sections, ordered two-account locking,
// bounded lock waits — so tests can exercise the ledger invariants without
// a database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/quayside/bankledger/internal/core/domain"
	portsrepo "github.com/quayside/bankledger/internal/core/ports/repositories"
)

// DefaultLockTimeout bounds lock waits when none is configured.
const DefaultLockTimeout = 2 * time.Second

type accountState struct {
	sem     chan struct{} // capacity 1: the account's exclusive section
	account domain.Account
}

// Store is the in-memory ledger. mu guards the maps and the transaction
// log; each account additionally carries a semaphore serializing balance
// mutations, acquired in ascending account-ID order for transfers.
type Store struct {
	mu          sync.RWMutex
	lockTimeout time.Duration

	nextAccountID     int64
	nextTransactionID int64

	accounts    map[int64]*accountState
	byOwnerType map[ownerTypeKey]int64
	log         []domain.Transaction
	customers   map[string]domain.Customer
}

type ownerTypeKey struct {
	owner       string
	accountType string
}

// NewStore creates an empty in-memory ledger store.
func NewStore(lockTimeout time.Duration) *Store {
	if lockTimeout <= 0 {
		lockTimeout = DefaultLockTimeout
	}
	return &Store{
		lockTimeout: lockTimeout,
		accounts:    make(map[int64]*accountState),
		byOwnerType: make(map[ownerTypeKey]int64),
		customers:   make(map[string]domain.Customer),
	}
}

var (
	_ portsrepo.LedgerRepositoryFacade   = (*Store)(nil)
	_ portsrepo.CustomerRepositoryFacade = (*Store)(nil)
	_ portsrepo.ReportingRepository      = (*Store)(nil)
)

// Provider returns a RepositoryProvider serving every port from this store.
func (s *Store) Provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LedgerRepo:    s,
		CustomerRepo:  s,
		ReportingRepo: s,
	}
}

// acquire enters the account's exclusive section, giving up when the
// context is cancelled or the lock wait exceeds the configured bound.
func (s *Store) acquire(ctx context.Context, st *accountState) error {
	timer := time.NewTimer(s.lockTimeout)
	defer timer.Stop()

	select {
	case st.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return errBusy(ctx.Err())
	case <-timer.C:
		return errBusy(nil)
	}
}

func (s *Store) release(st *accountState) {
	<-st.sem
}

// acquireOrdered locks a set of accounts in ascending ID order, releasing
// everything taken so far on failure.
func (s *Store) acquireOrdered(ctx context.Context, states map[int64]*accountState) (release func(), err error) {
	ids := make([]int64, 0, len(states))
	for id := range states {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	taken := make([]*accountState, 0, len(ids))
	releaseTaken := func() {
		for i := len(taken) - 1; i >= 0; i-- {
			s.release(taken[i])
		}
	}

	for _, id := range ids {
		if err := s.acquire(ctx, states[id]); err != nil {
			releaseTaken()
			return nil, err
		}
		taken = append(taken, states[id])
	}
	return releaseTaken, nil
}

func (s *Store) lookup(accountID int64) (*accountState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.accounts[accountID]
	return st, ok
}

// appendTransaction assigns the next monotonic ID and appends to the log.
// Callers must hold s.mu.
func (s *Store) appendTransaction(txn domain.Transaction) domain.Transaction {
	s.nextTransactionID++
	txn.TransactionID = s.nextTransactionID
	s.log = append(s.log, txn)
	return txn
}
