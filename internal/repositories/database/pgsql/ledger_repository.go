package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quayside/bankledger/internal/apperrors"
	"github.com/quayside/bankledger/internal/core/domain"
	portsrepo "github.com/quayside/bankledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// PgxLedgerRepository is the durable ledger store. Every balance mutation
// and its transaction record commit inside one database transaction, with
// the affected account rows locked FOR UPDATE for the duration.
type PgxLedgerRepository struct {
	BaseRepository
	lockTimeout time.Duration
}

// NewLedgerRepository creates the ledger store backed by a pgx pool.
// lockTimeout bounds how long a mutation may wait on a row lock before the
// operation fails with ErrBusy.
func NewLedgerRepository(pool *pgxpool.Pool, lockTimeout time.Duration) *PgxLedgerRepository {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		lockTimeout:    lockTimeout,
	}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const accountColumns = `account_id, owner_username, account_type, initial_balance, balance, created_at`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var acc domain.Account
	err := row.Scan(
		&acc.AccountID,
		&acc.OwnerUsername,
		&acc.AccountType,
		&acc.InitialBalance,
		&acc.Balance,
		&acc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &acc, nil
}

// CreateAccount persists a new account holding its initial deposit. The
// unique (owner_username, account_type) constraint enforces one account per
// type per customer; no opening transaction row is written.
func (r *PgxLedgerRepository) CreateAccount(ctx context.Context, owner, accountType string, initial decimal.Decimal) (*domain.Account, error) {
	query := `
		INSERT INTO accounts (owner_username, account_type, initial_balance, balance, created_at)
		VALUES ($1, $2, $3, $3, $4)
		RETURNING account_id;
	`
	now := time.Now().UTC()

	var accountID int64
	err := r.Pool.QueryRow(ctx, query, owner, accountType, initial, now).Scan(&accountID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgUniqueViolation:
				return nil, fmt.Errorf("%w: %s already holds a %q account", apperrors.ErrDuplicateAccount, owner, accountType)
			case pgFKViolation:
				return nil, fmt.Errorf("%w: customer %s does not exist", apperrors.ErrNotFound, owner)
			}
		}
		return nil, fmt.Errorf("failed to create account for %s: %w", owner, err)
	}

	return &domain.Account{
		AccountID:      accountID,
		OwnerUsername:  owner,
		AccountType:    accountType,
		InitialBalance: initial,
		Balance:        initial,
		CreatedAt:      now,
	}, nil
}

// FindAccountByID retrieves an account by its store-assigned ID.
func (r *PgxLedgerRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find account %d: %w", accountID, err)
	}
	return acc, nil
}

// FindAccountByOwnerAndType resolves an account-type label under an owner.
func (r *PgxLedgerRepository) FindAccountByOwnerAndType(ctx context.Context, owner, accountType string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE owner_username = $1 AND account_type = $2;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, owner, accountType))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find account %q for %s: %w", accountType, owner, err)
	}
	return acc, nil
}

// ListAccountTypes returns the account type labels held by a customer.
func (r *PgxLedgerRepository) ListAccountTypes(ctx context.Context, owner string) ([]string, error) {
	query := `SELECT account_type FROM accounts WHERE owner_username = $1 ORDER BY account_type;`

	rows, err := r.Pool.Query(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list account types for %s: %w", owner, err)
	}
	defer rows.Close()

	types := []string{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("failed to scan account type row: %w", err)
		}
		types = append(types, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account type rows: %w", err)
	}
	return types, nil
}

// FindTransactionsByAccountID returns the history owned by an account in
// transaction-ID order, which is the total order of ledger events.
func (r *PgxLedgerRepository) FindTransactionsByAccountID(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	query := `
		SELECT transaction_id, sender_account_id, receiver_account_id, transaction_type, amount, running_balance, created_at
		FROM transactions
		WHERE sender_account_id = $1
		ORDER BY transaction_id;
	`

	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for account %d: %w", accountID, err)
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		var txn domain.Transaction
		err := rows.Scan(
			&txn.TransactionID,
			&txn.SenderAccountID,
			&txn.ReceiverAccountID,
			&txn.Type,
			&txn.Amount,
			&txn.RunningBalance,
			&txn.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		transactions = append(transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return transactions, nil
}

// lockAccountForUpdate reads one account row under FOR UPDATE within tx.
func (r *PgxLedgerRepository) lockAccountForUpdate(ctx context.Context, tx pgx.Tx, accountID int64) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1 FOR UPDATE;`
	acc, err := scanAccount(tx.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, mapLockError(err)
	}
	return acc, nil
}

// setLockTimeout bounds lock waits for the current transaction only.
func (r *PgxLedgerRepository) setLockTimeout(ctx context.Context, tx pgx.Tx) error {
	if r.lockTimeout <= 0 {
		return nil
	}
	_, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds()))
	if err != nil {
		return fmt.Errorf("failed to set lock timeout: %w", err)
	}
	return nil
}

const insertTransactionQuery = `
	INSERT INTO transactions (sender_account_id, receiver_account_id, transaction_type, amount, running_balance, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING transaction_id;
`

// ApplyBalanceDelta atomically re-reads the balance under a row lock,
// validates funds, writes the new balance and appends the transaction record
// documenting it. The four steps are indivisible with respect to any other
// delta on the same account.
func (r *PgxLedgerRepository) ApplyBalanceDelta(ctx context.Context, accountID int64, delta decimal.Decimal, txnType domain.TransactionType, counterpartyID *int64) (*domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if err := r.setLockTimeout(ctx, tx); err != nil {
		return nil, err
	}

	account, err := r.lockAccountForUpdate(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}

	newBalance := account.Balance.Add(delta)
	if delta.IsNegative() && newBalance.IsNegative() {
		return nil, fmt.Errorf("%w: account %d holds %s, cannot debit %s",
			apperrors.ErrInsufficientFunds, accountID, account.Balance, delta.Abs())
	}

	if _, err := tx.Exec(ctx, `UPDATE accounts SET balance = $2 WHERE account_id = $1;`, accountID, newBalance); err != nil {
		return nil, fmt.Errorf("failed to update balance for account %d: %w", accountID, mapLockError(err))
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		SenderAccountID:   accountID,
		ReceiverAccountID: counterpartyID,
		Type:              txnType,
		Amount:            delta.Abs(),
		RunningBalance:    newBalance,
		Timestamp:         now,
	}
	err = tx.QueryRow(ctx, insertTransactionQuery,
		txn.SenderAccountID, txn.ReceiverAccountID, txn.Type, txn.Amount, txn.RunningBalance, txn.Timestamp,
	).Scan(&txn.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to append transaction for account %d: %w", accountID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &txn, nil
}

// TransferFunds debits the sender and credits the receiver as one database
// transaction. Both rows are locked in ascending account-ID order so two
// opposing transfers over the same pair cannot deadlock; the debit is
// validated before the credit is written.
func (r *PgxLedgerRepository) TransferFunds(ctx context.Context, senderID, receiverID int64, amount decimal.Decimal) (*domain.Transaction, *domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx)

	if err := r.setLockTimeout(ctx, tx); err != nil {
		return nil, nil, err
	}

	// Total lock order over account IDs, not request order.
	first, second := senderID, receiverID
	if first > second {
		first, second = second, first
	}

	locked := make(map[int64]*domain.Account, 2)
	for _, id := range []int64{first, second} {
		acc, err := r.lockAccountForUpdate(ctx, tx, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				if id == receiverID {
					return nil, nil, fmt.Errorf("%w: receiver account %d", apperrors.ErrUnknownAccount, receiverID)
				}
				return nil, nil, fmt.Errorf("%w: sender account %d", apperrors.ErrNotFound, senderID)
			}
			return nil, nil, err
		}
		locked[id] = acc
	}

	sender := locked[senderID]
	receiver := locked[receiverID]

	senderBalance := sender.Balance.Sub(amount)
	if senderBalance.IsNegative() {
		return nil, nil, fmt.Errorf("%w: account %d holds %s, cannot send %s",
			apperrors.ErrInsufficientFunds, senderID, sender.Balance, amount)
	}
	receiverBalance := receiver.Balance.Add(amount)

	if _, err := tx.Exec(ctx, `UPDATE accounts SET balance = $2 WHERE account_id = $1;`, senderID, senderBalance); err != nil {
		return nil, nil, fmt.Errorf("failed to debit sender %d: %w", senderID, mapLockError(err))
	}
	if _, err := tx.Exec(ctx, `UPDATE accounts SET balance = $2 WHERE account_id = $1;`, receiverID, receiverBalance); err != nil {
		return nil, nil, fmt.Errorf("failed to credit receiver %d: %w", receiverID, mapLockError(err))
	}

	now := time.Now().UTC()
	send := domain.Transaction{
		SenderAccountID:   senderID,
		ReceiverAccountID: &receiverID,
		Type:              domain.Send,
		Amount:            amount,
		RunningBalance:    senderBalance,
		Timestamp:         now,
	}
	receive := domain.Transaction{
		SenderAccountID:   receiverID,
		ReceiverAccountID: &senderID,
		Type:              domain.Receive,
		Amount:            amount,
		RunningBalance:    receiverBalance,
		Timestamp:         now,
	}

	err = tx.QueryRow(ctx, insertTransactionQuery,
		send.SenderAccountID, send.ReceiverAccountID, send.Type, send.Amount, send.RunningBalance, send.Timestamp,
	).Scan(&send.TransactionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to append send record for transfer %d->%d: %w", senderID, receiverID, err)
	}
	err = tx.QueryRow(ctx, insertTransactionQuery,
		receive.SenderAccountID, receive.ReceiverAccountID, receive.Type, receive.Amount, receive.RunningBalance, receive.Timestamp,
	).Scan(&receive.TransactionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to append receive record for transfer %d->%d: %w", senderID, receiverID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}
	return &send, &receive, nil
}

// DeleteAccount removes an account, cascading deletion of every transaction
// the account owns (rows where it is the sender).
func (r *PgxLedgerRepository) DeleteAccount(ctx context.Context, accountID int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM transactions WHERE sender_account_id = $1;`, accountID); err != nil {
		return fmt.Errorf("failed to cascade transactions for account %d: %w", accountID, err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1;`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete account %d: %w", accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}
