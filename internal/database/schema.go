package database

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/spf13/viper"

	"github.com/corebank/backend/internal/credentials"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		account_number BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		balance BIGINT NOT NULL DEFAULT 0,
		version INT NOT NULL DEFAULT 1,
		totp_secret TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT balance_non_negative CHECK (balance >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		transaction_id BIGSERIAL PRIMARY KEY,
		account_number BIGINT NOT NULL REFERENCES accounts(account_number) ON DELETE CASCADE,
		type TEXT NOT NULL,
		amount BIGINT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_account
		ON transactions (account_number, transaction_id DESC)`,
	`CREATE TABLE IF NOT EXISTS admin (
		username TEXT PRIMARY KEY,
		password_hash TEXT NOT NULL,
		full_name TEXT NOT NULL,
		last_login TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS loan_applications (
		application_id BIGSERIAL PRIMARY KEY,
		account_number BIGINT NOT NULL REFERENCES accounts(account_number) ON DELETE CASCADE,
		income BIGINT NOT NULL,
		credit_score INT NOT NULL,
		loan_amount BIGINT NOT NULL,
		loan_term INT NOT NULL,
		status TEXT NOT NULL DEFAULT 'Pending',
		decision_date TIMESTAMPTZ
	)`,
}

// InitSchema creates the tables if they do not exist and seeds the bootstrap
// administrator when the admin table is empty.
func InitSchema(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("schema init failed: %w", err)
		}
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM admin").Scan(&count); err != nil {
		return fmt.Errorf("admin count failed: %w", err)
	}
	if count > 0 {
		return nil
	}

	viper.SetDefault("admin.bootstrap_username", "admin")
	viper.SetDefault("admin.bootstrap_password", "admin123")

	hash, err := credentials.Hash(viper.GetString("admin.bootstrap_password"))
	if err != nil {
		return fmt.Errorf("bootstrap admin hash failed: %w", err)
	}
	_, err = db.Exec(
		"INSERT INTO admin (username, password_hash, full_name) VALUES ($1, $2, $3)",
		viper.GetString("admin.bootstrap_username"), hash, "System Administrator",
	)
	if err != nil {
		return fmt.Errorf("bootstrap admin insert failed: %w", err)
	}

	log.Println("Bootstrap administrator created - change the default password")
	return nil
}
