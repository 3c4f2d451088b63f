package pgsql

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/quayside/bankledger/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgsql repository over one shared pool.
// The single injected pool (rather than a handle per object) is what lets
// multi-step operations share a transaction scope.
func NewRepositoryProvider(pool *pgxpool.Pool, lockTimeout time.Duration) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LedgerRepo:    NewLedgerRepository(pool, lockTimeout),
		CustomerRepo:  NewCustomerRepository(pool),
		ReportingRepo: NewReportingRepository(pool),
	}
}
