package services

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"

	"github.com/corebank/backend/internal/credentials"
	"github.com/corebank/backend/internal/metrics"
	"github.com/corebank/backend/internal/models"
)

// Roles carried in the JWT role claim.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// BankingService composes the account repository, ledger and loan register
// into the externally consumed use cases: authentication, money movement and
// reporting. It holds no state of its own.
type BankingService struct {
	db       *sql.DB
	accounts *AccountService
	ledger   *LedgerService
	loans    *LoanService
	metrics  *metrics.Collector
}

func NewBankingService(db *sql.DB, accounts *AccountService, ledger *LedgerService, loans *LoanService, collector *metrics.Collector) *BankingService {
	return &BankingService{
		db:       db,
		accounts: accounts,
		ledger:   ledger,
		loans:    loans,
		metrics:  collector,
	}
}

func (s *BankingService) Accounts() *AccountService { return s.accounts }
func (s *BankingService) Ledger() *LedgerService    { return s.ledger }
func (s *BankingService) Loans() *LoanService       { return s.loans }

// LoginAccount authenticates an account holder and mints a session token.
// Unknown account and wrong password both fail with ErrInvalidCredentials.
func (s *BankingService) LoginAccount(ctx context.Context, accountNumber int64, password string) (string, error) {
	if !s.accounts.Authenticate(ctx, accountNumber, password) {
		return "", ErrInvalidCredentials
	}
	return GenerateJWT(fmt.Sprintf("%d", accountNumber), RoleUser)
}

// LoginAdmin authenticates an administrator, stamps last_login and mints a
// session token with the admin role.
func (s *BankingService) LoginAdmin(ctx context.Context, username, password string) (string, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	var hash string
	err := s.db.QueryRowContext(ctx,
		"SELECT password_hash FROM admin WHERE username = $1", username).Scan(&hash)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Printf("[AUTH] Admin lookup error for %q: %v", username, err)
		}
		return "", ErrInvalidCredentials
	}

	if !credentials.Verify(password, hash) {
		return "", ErrInvalidCredentials
	}

	if _, err := s.db.ExecContext(ctx,
		"UPDATE admin SET last_login = NOW() WHERE username = $1", username); err != nil {
		log.Printf("[AUTH] Failed to update last_login for %q: %v", username, err)
	}

	return GenerateJWT(username, RoleAdmin)
}

// CreateAdmin registers a new administrator. Usernames are unique
// case-insensitively.
func (s *BankingService) CreateAdmin(ctx context.Context, username, fullName, password string) error {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || strings.TrimSpace(fullName) == "" {
		return ErrNameRequired
	}

	hash, err := credentials.Hash(password)
	if err != nil {
		return err
	}

	var exists bool
	if err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM admin WHERE username = $1)", username).Scan(&exists); err != nil {
		return fmt.Errorf("admin check failed: %w", err)
	}
	if exists {
		return ErrAdminExists
	}

	if _, err := s.db.ExecContext(ctx,
		"INSERT INTO admin (username, password_hash, full_name) VALUES ($1, $2, $3)",
		username, hash, fullName); err != nil {
		return fmt.Errorf("admin creation failed: %w", err)
	}

	log.Printf("[AUTH] Administrator created: %s", username)
	return nil
}

// ListAdmins returns all administrators, never exposing credential hashes.
func (s *BankingService) ListAdmins(ctx context.Context) ([]models.AdminUser, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT username, full_name, last_login FROM admin ORDER BY username")
	if err != nil {
		return nil, fmt.Errorf("admin list failed: %w", err)
	}
	defer rows.Close()

	var admins []models.AdminUser
	for rows.Next() {
		var a models.AdminUser
		if err := rows.Scan(&a.Username, &a.FullName, &a.LastLogin); err != nil {
			return nil, fmt.Errorf("admin scan failed: %w", err)
		}
		admins = append(admins, a)
	}
	return admins, rows.Err()
}

// DashboardStats is the read-only aggregation used by admin dashboards,
// derived entirely from ledger and repository reads.
type DashboardStats struct {
	TotalAccounts      int64 `json:"total_accounts"`
	TotalBalance       int64 `json:"total_balance"`
	TotalDeposited     int64 `json:"total_deposited"`
	PendingLoans       int64 `json:"pending_loans"`
	RecentTransactions int64 `json:"recent_transactions"` // last 24h
}

func (s *BankingService) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(balance), 0) FROM accounts").
		Scan(&stats.TotalAccounts, &stats.TotalBalance)
	if err != nil {
		return nil, fmt.Errorf("account stats failed: %w", err)
	}

	err = s.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE type = $1",
		string(models.TxDeposit)).Scan(&stats.TotalDeposited)
	if err != nil {
		return nil, fmt.Errorf("deposit stats failed: %w", err)
	}

	err = s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM loan_applications WHERE status = $1",
		string(models.LoanPending)).Scan(&stats.PendingLoans)
	if err != nil {
		return nil, fmt.Errorf("loan stats failed: %w", err)
	}

	err = s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM transactions WHERE timestamp >= NOW() - INTERVAL '24 hours'").
		Scan(&stats.RecentTransactions)
	if err != nil {
		return nil, fmt.Errorf("recent transaction stats failed: %w", err)
	}

	s.metrics.SetBalanceTotal(stats.TotalBalance)
	return stats, nil
}

// GenerateJWT mints a session token for a subject with the given role.
func GenerateJWT(subject, role string) (string, error) {
	viper.SetDefault("jwt.expiry_hours", 24)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"exp":  time.Now().Add(time.Duration(viper.GetInt("jwt.expiry_hours")) * time.Hour).Unix(),
	})
	return token.SignedString([]byte(viper.GetString("jwt.secret_key")))
}
