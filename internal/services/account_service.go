package services

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/corebank/backend/internal/credentials"
	"github.com/corebank/backend/internal/models"
)

// AccountService owns account records: identity, display name, credentials
// and lifecycle. Balance mutation belongs to the LedgerService alone.
type AccountService struct {
	db *sql.DB
}

func NewAccountService(db *sql.DB) *AccountService {
	return &AccountService{db: db}
}

// Create opens a new account with a zero balance and returns its account
// number. Numbers come from the database sequence and are never reused.
func (s *AccountService) Create(ctx context.Context, name, password string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, ErrNameRequired
	}

	hash, err := credentials.Hash(password)
	if err != nil {
		return 0, err
	}

	var accountNumber int64
	err = s.db.QueryRowContext(ctx,
		"INSERT INTO accounts (name, password_hash, balance, version) VALUES ($1, $2, 0, 1) RETURNING account_number",
		name, hash).Scan(&accountNumber)
	if err != nil {
		log.Printf("[ACCOUNTS] Account creation failed for %q: %v", name, err)
		return 0, fmt.Errorf("account creation failed: %w", err)
	}

	log.Printf("[ACCOUNTS] Account created: #%d", accountNumber)
	return accountNumber, nil
}

// Get returns the account record or ErrAccountNotFound.
func (s *AccountService) Get(ctx context.Context, accountNumber int64) (*models.Account, error) {
	var acc models.Account
	err := s.db.QueryRowContext(ctx,
		"SELECT account_number, name, balance, version, totp_secret, created_at, updated_at FROM accounts WHERE account_number = $1",
		accountNumber).Scan(&acc.AccountNumber, &acc.Name, &acc.Balance, &acc.Version,
		&acc.TOTPSecret, &acc.CreatedAt, &acc.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("account lookup failed: %w", err)
	}
	return &acc, nil
}

// Authenticate verifies the password for an account. Unknown account and
// wrong password are indistinguishable to the caller so account numbers
// cannot be enumerated.
func (s *AccountService) Authenticate(ctx context.Context, accountNumber int64, password string) bool {
	var hash string
	err := s.db.QueryRowContext(ctx,
		"SELECT password_hash FROM accounts WHERE account_number = $1",
		accountNumber).Scan(&hash)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Printf("[ACCOUNTS] Authentication lookup error for #%d: %v", accountNumber, err)
		}
		return false
	}
	return credentials.Verify(password, hash)
}

// Delete removes the account and, through the FK cascade, every transaction
// it owns. Both disappear in one commit or not at all.
func (s *AccountService) Delete(ctx context.Context, accountNumber int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin failed: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"DELETE FROM accounts WHERE account_number = $1", accountNumber)
	if err != nil {
		log.Printf("[ACCOUNTS] Account deletion failed for #%d: %v", accountNumber, err)
		return fmt.Errorf("account deletion failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("account deletion failed: %w", err)
	}
	if rows == 0 {
		return ErrAccountNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("account deletion commit failed: %w", err)
	}

	log.Printf("[ACCOUNTS] Account deleted: #%d", accountNumber)
	return nil
}

// ListAll returns every account ordered by account number, optionally
// filtered by a case-insensitive substring match on name or number.
func (s *AccountService) ListAll(ctx context.Context, search string) ([]models.Account, error) {
	query := "SELECT account_number, name, balance, created_at FROM accounts"
	args := []any{}
	if search = strings.TrimSpace(search); search != "" {
		query += " WHERE LOWER(name) LIKE $1 OR CAST(account_number AS TEXT) LIKE $1"
		args = append(args, "%"+strings.ToLower(search)+"%")
	}
	query += " ORDER BY account_number ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("account list failed: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var acc models.Account
		if err := rows.Scan(&acc.AccountNumber, &acc.Name, &acc.Balance, &acc.CreatedAt); err != nil {
			return nil, fmt.Errorf("account scan failed: %w", err)
		}
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}

// SetTOTPSecret stores the 2FA secret for an account.
func (s *AccountService) SetTOTPSecret(ctx context.Context, accountNumber int64, secret string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE accounts SET totp_secret = $1, updated_at = NOW() WHERE account_number = $2",
		secret, accountNumber)
	if err != nil {
		return fmt.Errorf("totp secret update failed: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("totp secret update failed: %w", err)
	}
	if rows == 0 {
		return ErrAccountNotFound
	}
	return nil
}
