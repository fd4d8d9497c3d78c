package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/corebank/backend/internal/config"
	"github.com/corebank/backend/internal/metrics"
	"github.com/corebank/backend/internal/models"
)

// errVersionConflict marks an optimistic-lock failure on a balance update.
// The whole transaction is retried a bounded number of times before the
// failure surfaces.
var errVersionConflict = errors.New("account version conflict")

// LedgerService is the sole writer of balances and the append-only
// transaction log. Every mutation runs as one SQL transaction: row locks are
// taken FOR UPDATE, two-account operations lock in ascending account-number
// order, and balance updates are version-checked.
type LedgerService struct {
	db      *sql.DB
	cfg     *config.LedgerConfig
	metrics *metrics.Collector
}

func NewLedgerService(db *sql.DB, collector *metrics.Collector) *LedgerService {
	return &LedgerService{
		db:      db,
		cfg:     config.LoadLedgerConfig(),
		metrics: collector,
	}
}

// Deposit credits amount to the account and appends a Deposit record. The
// balance change and the record are visible together or not at all.
func (s *LedgerService) Deposit(ctx context.Context, accountNumber, amount int64, description string) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if description == "" {
		description = "Deposit"
	}

	err := s.withRetry(ctx, "deposit", func(tx *sql.Tx) error {
		acc, err := s.lockAccount(ctx, tx, accountNumber)
		if err != nil {
			return err
		}
		if err := s.appendEntry(ctx, tx, accountNumber, models.TxDeposit, amount, description); err != nil {
			return err
		}
		return s.updateBalance(ctx, tx, accountNumber, acc.Balance+amount, acc.Version)
	})
	if err == nil {
		log.Printf("[LEDGER] Deposit of %d to account #%d", amount, accountNumber)
	}
	return err
}

// Withdraw debits amount from the account if the balance covers it. The
// check and the decrement share one locked transaction, so concurrent
// withdrawals cannot both pass against a stale balance.
func (s *LedgerService) Withdraw(ctx context.Context, accountNumber, amount int64, description string) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if description == "" {
		description = "Withdrawal"
	}

	err := s.withRetry(ctx, "withdraw", func(tx *sql.Tx) error {
		acc, err := s.lockAccount(ctx, tx, accountNumber)
		if err != nil {
			return err
		}
		if acc.Balance < amount {
			return ErrInsufficientFunds
		}
		if err := s.appendEntry(ctx, tx, accountNumber, models.TxWithdrawal, amount, description); err != nil {
			return err
		}
		return s.updateBalance(ctx, tx, accountNumber, acc.Balance-amount, acc.Version)
	})
	if err == nil {
		log.Printf("[LEDGER] Withdrawal of %d from account #%d", amount, accountNumber)
	}
	return err
}

// Transfer moves amount between two accounts as a single unit: one
// TransferOut on the source, one TransferIn on the destination, both
// committed together. Locks are acquired in ascending account-number order
// regardless of direction so opposing concurrent transfers cannot deadlock.
func (s *LedgerService) Transfer(ctx context.Context, fromAccount, toAccount, amount int64, description string) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if fromAccount == toAccount {
		return ErrSameAccountTransfer
	}
	if description == "" {
		description = "Transfer"
	}

	err := s.withRetry(ctx, "transfer", func(tx *sql.Tx) error {
		firstLock, secondLock := fromAccount, toAccount
		if fromAccount > toAccount {
			firstLock, secondLock = toAccount, fromAccount
		}

		first, err := s.lockAccount(ctx, tx, firstLock)
		if err != nil {
			return err
		}
		second, err := s.lockAccount(ctx, tx, secondLock)
		if err != nil {
			return err
		}

		sender, recipient := first, second
		if firstLock != fromAccount {
			sender, recipient = second, first
		}

		if sender.Balance < amount {
			return ErrInsufficientFunds
		}

		outDesc := fmt.Sprintf("To #%d: %s", toAccount, description)
		inDesc := fmt.Sprintf("From #%d: %s", fromAccount, description)

		if err := s.appendEntry(ctx, tx, fromAccount, models.TxTransferOut, amount, outDesc); err != nil {
			return err
		}
		if err := s.appendEntry(ctx, tx, toAccount, models.TxTransferIn, amount, inDesc); err != nil {
			return err
		}
		if err := s.updateBalance(ctx, tx, fromAccount, sender.Balance-amount, sender.Version); err != nil {
			return err
		}
		return s.updateBalance(ctx, tx, toAccount, recipient.Balance+amount, recipient.Version)
	})
	if err == nil {
		log.Printf("[LEDGER] Transfer of %d from account #%d to account #%d", amount, fromAccount, toAccount)
	}
	return err
}

// Balance returns the current balance in cents.
func (s *LedgerService) Balance(ctx context.Context, accountNumber int64) (int64, error) {
	var balance int64
	err := s.db.QueryRowContext(ctx,
		"SELECT balance FROM accounts WHERE account_number = $1",
		accountNumber).Scan(&balance)
	if err == sql.ErrNoRows {
		return 0, ErrAccountNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("balance query failed: %w", err)
	}
	return balance, nil
}

// History returns the account's transactions newest first, bounded by limit.
// A non-positive limit falls back to the configured default.
func (s *LedgerService) History(ctx context.Context, accountNumber int64, limit int) ([]models.Transaction, error) {
	if _, err := s.Balance(ctx, accountNumber); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = s.cfg.DefaultHistoryLimit
	}
	if limit > s.cfg.MaxHistoryLimit {
		limit = s.cfg.MaxHistoryLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT transaction_id, account_number, type, amount, description, timestamp
		 FROM transactions
		 WHERE account_number = $1
		 ORDER BY transaction_id DESC
		 LIMIT $2`,
		accountNumber, limit)
	if err != nil {
		return nil, fmt.Errorf("history query failed: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// TransactionFilter narrows AllTransactions for administrative review.
type TransactionFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

// AllTransactions returns transactions across all accounts, newest first.
func (s *LedgerService) AllTransactions(ctx context.Context, filter TransactionFilter) ([]models.Transaction, error) {
	query := `SELECT transaction_id, account_number, type, amount, description, timestamp
		 FROM transactions`
	args := []any{}
	where := ""

	if filter.From != nil {
		args = append(args, *filter.From)
		where = fmt.Sprintf(" WHERE timestamp >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		if where == "" {
			where = fmt.Sprintf(" WHERE timestamp <= $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND timestamp <= $%d", len(args))
		}
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = s.cfg.DefaultHistoryLimit
	}
	if limit > s.cfg.MaxHistoryLimit {
		limit = s.cfg.MaxHistoryLimit
	}
	args = append(args, limit)

	query += where + fmt.Sprintf(" ORDER BY timestamp DESC LIMIT $%d", len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("transaction query failed: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// withRetry runs op inside a fresh SQL transaction, retrying on optimistic
// lock conflicts up to the configured bound. Domain errors roll back and
// surface unchanged; storage errors are wrapped.
func (s *LedgerService) withRetry(ctx context.Context, operation string, op func(tx *sql.Tx) error) error {
	start := time.Now()
	var err error
	for attempt := 0; attempt <= s.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(s.cfg.RetryBackoff):
			case <-ctx.Done():
				err = ctx.Err()
				s.metrics.RecordOperation(operation, time.Since(start), err)
				return err
			}
		}

		err = s.runInTx(ctx, op)
		if !errors.Is(err, errVersionConflict) {
			break
		}
		log.Printf("[LEDGER] Retrying %s after version conflict (attempt %d)", operation, attempt+1)
	}

	if errors.Is(err, errVersionConflict) {
		err = fmt.Errorf("%s failed after %d retries: %w", operation, s.cfg.MaxRetries, err)
	}
	s.metrics.RecordOperation(operation, time.Since(start), err)
	return err
}

func (s *LedgerService) runInTx(ctx context.Context, op func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin failed: %w", err)
	}
	defer tx.Rollback()

	if err := op(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit failed: %w", err)
	}
	return nil
}

// lockAccount reads an account row FOR UPDATE, serializing every mutation
// that touches it for the rest of the transaction.
func (s *LedgerService) lockAccount(ctx context.Context, tx *sql.Tx, accountNumber int64) (*models.Account, error) {
	var acc models.Account
	err := tx.QueryRowContext(ctx,
		`SELECT account_number, balance, version
		 FROM accounts
		 WHERE account_number = $1
		 FOR UPDATE`,
		accountNumber).Scan(&acc.AccountNumber, &acc.Balance, &acc.Version)
	if err == sql.ErrNoRows {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("account lock failed: %w", err)
	}
	return &acc, nil
}

func (s *LedgerService) appendEntry(ctx context.Context, tx *sql.Tx, accountNumber int64, txType models.TransactionType, amount int64, description string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO transactions (account_number, type, amount, description, timestamp)
		 VALUES ($1, $2, $3, $4, NOW())`,
		accountNumber, string(txType), amount, description)
	if err != nil {
		return fmt.Errorf("transaction append failed: %w", err)
	}
	return nil
}

func (s *LedgerService) updateBalance(ctx context.Context, tx *sql.Tx, accountNumber, newBalance int64, version int) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE accounts
		 SET balance = $1, version = version + 1, updated_at = NOW()
		 WHERE account_number = $2 AND version = $3`,
		newBalance, accountNumber, version)
	if err != nil {
		return fmt.Errorf("balance update failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("balance update failed: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("account #%d: %w", accountNumber, errVersionConflict)
	}
	return nil
}

func scanTransactions(rows *sql.Rows) ([]models.Transaction, error) {
	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		var txType string
		if err := rows.Scan(&t.TransactionID, &t.AccountNumber, &txType, &t.Amount, &t.Description, &t.Timestamp); err != nil {
			return nil, fmt.Errorf("transaction scan failed: %w", err)
		}
		parsed, err := models.ParseTransactionType(txType)
		if err != nil {
			return nil, fmt.Errorf("corrupt transaction row: %w", err)
		}
		t.Type = parsed
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}
