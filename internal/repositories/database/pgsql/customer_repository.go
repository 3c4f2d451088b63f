package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quayside/bankledger/internal/apperrors"
	"github.com/quayside/bankledger/internal/core/domain"
	portsrepo "github.com/quayside/bankledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// PgxCustomerRepository persists customer profiles.
type PgxCustomerRepository struct {
	BaseRepository
}

// NewCustomerRepository creates a new repository for customer data.
func NewCustomerRepository(pool *pgxpool.Pool) *PgxCustomerRepository {
	return &PgxCustomerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

// FindCustomerByUsername retrieves a customer profile.
func (r *PgxCustomerRepository) FindCustomerByUsername(ctx context.Context, username string) (*domain.Customer, error) {
	query := `
		SELECT username, name, role, credit_score, loan_debt
		FROM customers
		WHERE username = $1;
	`
	var customer domain.Customer
	err := r.Pool.QueryRow(ctx, query, username).Scan(
		&customer.Username,
		&customer.Name,
		&customer.Role,
		&customer.CreditScore,
		&customer.LoanDebt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer %s: %w", username, err)
	}
	return &customer, nil
}

// SaveCustomer inserts a new customer profile.
func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	query := `
		INSERT INTO customers (username, name, role, credit_score, loan_debt)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.Pool.Exec(ctx, query,
		customer.Username,
		customer.Name,
		customer.Role,
		customer.CreditScore,
		customer.LoanDebt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("%w: customer %s already exists", apperrors.ErrValidation, customer.Username)
		}
		return fmt.Errorf("failed to save customer %s: %w", customer.Username, err)
	}
	return nil
}

// IncreaseLoanDebt adds amount to the customer's undischarged loan principal
// as a single guarded statement, returning the new total.
func (r *PgxCustomerRepository) IncreaseLoanDebt(ctx context.Context, username string, amount decimal.Decimal) (decimal.Decimal, error) {
	query := `
		UPDATE customers
		SET loan_debt = loan_debt + $2
		WHERE username = $1
		RETURNING loan_debt;
	`
	var newDebt decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, username, amount).Scan(&newDebt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, apperrors.ErrNotFound
		}
		return decimal.Zero, fmt.Errorf("failed to increase loan debt for %s: %w", username, err)
	}
	return newDebt, nil
}
