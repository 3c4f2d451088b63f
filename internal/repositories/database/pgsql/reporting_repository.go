package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quayside/bankledger/internal/core/domain"
	portsrepo "github.com/quayside/bankledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// PgxReportingRepository answers aggregate queries for the administrator
// collaborator. All queries read committed rows only, so they never observe
// a debit without its matching credit.
type PgxReportingRepository struct {
	BaseRepository
}

// NewReportingRepository creates a new reporting repository.
func NewReportingRepository(pool *pgxpool.Pool) *PgxReportingRepository {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// AverageAccountBalance returns the mean balance across all accounts, zero
// when the ledger holds none.
func (r *PgxReportingRepository) AverageAccountBalance(ctx context.Context) (decimal.Decimal, error) {
	query := `SELECT COALESCE(AVG(balance), 0) FROM accounts;`

	var avg decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query).Scan(&avg); err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute average account balance: %w", err)
	}
	return avg, nil
}

// AverageCreditScore returns the mean credit score across all customers.
func (r *PgxReportingRepository) AverageCreditScore(ctx context.Context) (decimal.Decimal, error) {
	query := `SELECT COALESCE(AVG(credit_score), 0) FROM customers;`

	var avg decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query).Scan(&avg); err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute average credit score: %w", err)
	}
	return avg, nil
}

// TransactionCounts returns the number of ledger events per transaction type.
func (r *PgxReportingRepository) TransactionCounts(ctx context.Context) (map[domain.TransactionType]int64, error) {
	query := `
		SELECT transaction_type, COUNT(*)
		FROM transactions
		GROUP BY transaction_type;
	`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.TransactionType]int64)
	for rows.Next() {
		var txnType domain.TransactionType
		var count int64
		if err := rows.Scan(&txnType, &count); err != nil {
			return nil, fmt.Errorf("failed to scan transaction count row: %w", err)
		}
		counts[txnType] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction count rows: %w", err)
	}
	return counts, nil
}
