package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/hamisi/atm-backend/internal/apperrors"
	"github.com/hamisi/atm-backend/internal/core/domain"
	portsrepo "github.com/hamisi/atm-backend/internal/core/ports/repositories"
)

// pgLockNotAvailable is the SQLSTATE raised when lock_timeout expires.
const pgLockNotAvailable = "55P03"

// PgxLedgerRepository implements the ledger protocol over Postgres. Every
// operation runs in one transaction: the touched account rows are locked
// with SELECT ... FOR UPDATE before the balance check, so the check and
// the write form a single isolated unit and concurrent debits against the
// same account serialize instead of racing.
type PgxLedgerRepository struct {
	BaseRepository
	lockTimeout time.Duration
}

// NewLedgerRepository creates a ledger repository. lockTimeout bounds how
// long a statement may wait on a row lock before the operation fails with
// apperrors.ErrTimeout.
func NewLedgerRepository(pool *pgxpool.Pool, lockTimeout time.Duration) portsrepo.LedgerRepository {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		lockTimeout:    lockTimeout,
	}
}

var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

// beginBounded starts a transaction with the configured lock_timeout
// applied for its duration.
func (r *PgxLedgerRepository) beginBounded(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())); err != nil {
		r.Rollback(ctx, tx)
		return nil, fmt.Errorf("failed to set lock timeout: %w", err)
	}
	return tx, nil
}

// mapLockError translates lock-wait expiry into the timeout sentinel.
func mapLockError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgLockNotAvailable {
		return fmt.Errorf("%w: lock wait exceeded", apperrors.ErrTimeout)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", apperrors.ErrTimeout, err)
	}
	return err
}

// lockBalance reads and locks one account's balance inside tx.
func lockBalance(ctx context.Context, tx pgx.Tx, accountID string) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := tx.QueryRow(ctx,
		`SELECT balance FROM accounts WHERE account_id = $1 FOR UPDATE;`,
		accountID,
	).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, apperrors.ErrNotFound
		}
		return decimal.Zero, mapLockError(fmt.Errorf("failed to lock account %s: %w", accountID, err))
	}
	return balance, nil
}

// insertLogEntry appends the transaction log row inside tx. The timestamp
// comes from the database so all entries share one clock.
func insertLogEntry(ctx context.Context, tx pgx.Tx, accountID string, txnType domain.TransactionType, amount decimal.Decimal) (*domain.Transaction, error) {
	txnID := uuid.NewString()
	var createdAt time.Time
	err := tx.QueryRow(ctx,
		`INSERT INTO transactions (transaction_id, account_id, type, amount)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at;`,
		txnID, accountID, string(txnType), amount,
	).Scan(&createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert %s log entry for account %s: %w", txnType, accountID, err)
	}
	return &domain.Transaction{
		TransactionID: txnID,
		AccountID:     accountID,
		Type:          txnType,
		Amount:        amount,
		CreatedAt:     createdAt,
	}, nil
}

// Withdraw debits the account and logs the movement as one atomic unit.
func (r *PgxLedgerRepository) Withdraw(ctx context.Context, accountID string, amount decimal.Decimal) (*domain.Transaction, error) {
	tx, err := r.beginBounded(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	balance, err := lockBalance(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}
	if balance.LessThan(amount) {
		return nil, apperrors.ErrInsufficientFunds
	}

	if _, err := tx.Exec(ctx,
		`UPDATE accounts SET balance = balance - $1 WHERE account_id = $2;`,
		amount, accountID,
	); err != nil {
		return nil, mapLockError(fmt.Errorf("failed to debit account %s: %w", accountID, err))
	}

	txn, err := insertLogEntry(ctx, tx, accountID, domain.Withdraw, amount)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return txn, nil
}

// Deposit credits the account and logs the movement as one atomic unit.
func (r *PgxLedgerRepository) Deposit(ctx context.Context, accountID string, amount decimal.Decimal) (*domain.Transaction, error) {
	tx, err := r.beginBounded(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if _, err := lockBalance(ctx, tx, accountID); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE accounts SET balance = balance + $1 WHERE account_id = $2;`,
		amount, accountID,
	); err != nil {
		return nil, mapLockError(fmt.Errorf("failed to credit account %s: %w", accountID, err))
	}

	txn, err := insertLogEntry(ctx, tx, accountID, domain.Deposit, amount)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return txn, nil
}

// Transfer moves amount between two accounts. Both rows are locked in one
// statement, ordered by account_id so two opposing transfers cannot
// deadlock. The single log entry is attributed to the sender.
func (r *PgxLedgerRepository) Transfer(ctx context.Context, fromAccountID, toAccountID string, amount decimal.Decimal) (*domain.Transaction, error) {
	tx, err := r.beginBounded(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	rows, err := tx.Query(ctx,
		`SELECT account_id, balance FROM accounts
		 WHERE account_id = ANY($1)
		 ORDER BY account_id
		 FOR UPDATE;`,
		[]string{fromAccountID, toAccountID},
	)
	if err != nil {
		return nil, mapLockError(fmt.Errorf("failed to lock transfer accounts: %w", err))
	}

	balances := make(map[string]decimal.Decimal, 2)
	for rows.Next() {
		var id string
		var balance decimal.Decimal
		if err := rows.Scan(&id, &balance); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan locked account row: %w", err)
		}
		balances[id] = balance
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, mapLockError(fmt.Errorf("error iterating locked account rows: %w", err))
	}

	senderBalance, ok := balances[fromAccountID]
	if !ok {
		return nil, fmt.Errorf("%w: sender account %s", apperrors.ErrNotFound, fromAccountID)
	}
	if _, ok := balances[toAccountID]; !ok {
		return nil, fmt.Errorf("%w: recipient account %s", apperrors.ErrNotFound, toAccountID)
	}
	if senderBalance.LessThan(amount) {
		return nil, apperrors.ErrInsufficientFunds
	}

	if _, err := tx.Exec(ctx,
		`UPDATE accounts SET balance = balance - $1 WHERE account_id = $2;`,
		amount, fromAccountID,
	); err != nil {
		return nil, mapLockError(fmt.Errorf("failed to debit sender %s: %w", fromAccountID, err))
	}
	if _, err := tx.Exec(ctx,
		`UPDATE accounts SET balance = balance + $1 WHERE account_id = $2;`,
		amount, toAccountID,
	); err != nil {
		return nil, mapLockError(fmt.Errorf("failed to credit recipient %s: %w", toAccountID, err))
	}

	txn, err := insertLogEntry(ctx, tx, fromAccountID, domain.Transfer, amount)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return txn, nil
}

// FindTransactionsByAccountID returns the account's most recent log
// entries, newest first.
func (r *PgxLedgerRepository) FindTransactionsByAccountID(ctx context.Context, accountID string, limit int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.Pool.Query(ctx,
		`SELECT transaction_id, account_id, type, amount, created_at
		 FROM transactions
		 WHERE account_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2;`,
		accountID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for account %s: %w", accountID, err)
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		var t domain.Transaction
		var txnType string
		if err := rows.Scan(&t.TransactionID, &t.AccountID, &txnType, &t.Amount, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction row for account %s: %w", accountID, err)
		}
		t.Type = domain.TransactionType(txnType)
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows for account %s: %w", accountID, err)
	}

	return transactions, nil
}
