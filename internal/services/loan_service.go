package services

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/corebank/backend/internal/metrics"
	"github.com/corebank/backend/internal/models"
)

// Credit scores outside this range are rejected before touching storage.
const (
	MinCreditScore = 300
	MaxCreditScore = 850
)

// LoanService tracks loan applications and their decision state. It
// references accounts but never touches balances; approval does not move
// money.
type LoanService struct {
	db      *sql.DB
	metrics *metrics.Collector
}

func NewLoanService(db *sql.DB, collector *metrics.Collector) *LoanService {
	return &LoanService{db: db, metrics: collector}
}

// Submit records a loan application. A decided status comes from the
// automated evaluation and stamps the decision date; otherwise the
// application is Pending with no decision date until an administrator acts.
func (s *LoanService) Submit(ctx context.Context, accountNumber, income int64, creditScore int, amount int64, termMonths int, decided models.LoanStatus) (int64, error) {
	if income <= 0 || amount <= 0 || termMonths <= 0 {
		return 0, ErrInvalidLoanInput
	}
	if creditScore < MinCreditScore || creditScore > MaxCreditScore {
		return 0, fmt.Errorf("credit score must be between %d and %d: %w", MinCreditScore, MaxCreditScore, ErrInvalidLoanInput)
	}

	status := models.LoanPending
	if decided != "" {
		if !decided.Decided() {
			return 0, fmt.Errorf("status %q is not a decision: %w", decided, ErrInvalidLoanInput)
		}
		status = decided
	}

	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM accounts WHERE account_number = $1)",
		accountNumber).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("account check failed: %w", err)
	}
	if !exists {
		return 0, ErrAccountNotFound
	}

	var applicationID int64
	if status == models.LoanPending {
		err = s.db.QueryRowContext(ctx,
			`INSERT INTO loan_applications (account_number, income, credit_score, loan_amount, loan_term, status)
			 VALUES ($1, $2, $3, $4, $5, $6) RETURNING application_id`,
			accountNumber, income, creditScore, amount, termMonths, string(status)).Scan(&applicationID)
	} else {
		err = s.db.QueryRowContext(ctx,
			`INSERT INTO loan_applications (account_number, income, credit_score, loan_amount, loan_term, status, decision_date)
			 VALUES ($1, $2, $3, $4, $5, $6, NOW()) RETURNING application_id`,
			accountNumber, income, creditScore, amount, termMonths, string(status)).Scan(&applicationID)
	}
	if err != nil {
		log.Printf("[LOANS] Application submit failed for account #%d: %v", accountNumber, err)
		return 0, fmt.Errorf("loan application submit failed: %w", err)
	}

	s.metrics.RecordLoanApplication(string(status))
	log.Printf("[LOANS] Application %d submitted for account #%d with status %s", applicationID, accountNumber, status)
	return applicationID, nil
}

// Decide applies an administrator decision. Decisions are terminal:
// re-deciding an already decided application fails with ErrAlreadyDecided.
func (s *LoanService) Decide(ctx context.Context, applicationID int64, approve bool) error {
	status := models.LoanRejected
	if approve {
		status = models.LoanApproved
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE loan_applications
		 SET status = $1, decision_date = NOW()
		 WHERE application_id = $2 AND status = $3`,
		string(status), applicationID, string(models.LoanPending))
	if err != nil {
		return fmt.Errorf("loan decision failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("loan decision failed: %w", err)
	}
	if rows == 0 {
		var current string
		err := s.db.QueryRowContext(ctx,
			"SELECT status FROM loan_applications WHERE application_id = $1",
			applicationID).Scan(&current)
		if err == sql.ErrNoRows {
			return ErrLoanNotFound
		}
		if err != nil {
			return fmt.Errorf("loan lookup failed: %w", err)
		}
		return ErrAlreadyDecided
	}

	s.metrics.RecordLoanApplication(string(status))
	log.Printf("[LOANS] Application %d decided: %s", applicationID, status)
	return nil
}

// List returns applications newest first, optionally scoped to one account
// and/or one status. accountNumber 0 means all accounts.
func (s *LoanService) List(ctx context.Context, accountNumber int64, status models.LoanStatus) ([]models.LoanApplication, error) {
	query := `SELECT application_id, account_number, income, credit_score, loan_amount, loan_term, status, decision_date
		 FROM loan_applications`
	args := []any{}
	where := ""

	if accountNumber != 0 {
		args = append(args, accountNumber)
		where = fmt.Sprintf(" WHERE account_number = $%d", len(args))
	}
	if status != "" {
		args = append(args, string(status))
		if where == "" {
			where = fmt.Sprintf(" WHERE status = $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND status = $%d", len(args))
		}
	}

	rows, err := s.db.QueryContext(ctx, query+where+" ORDER BY application_id DESC", args...)
	if err != nil {
		return nil, fmt.Errorf("loan list failed: %w", err)
	}
	defer rows.Close()

	var applications []models.LoanApplication
	for rows.Next() {
		var app models.LoanApplication
		var st string
		if err := rows.Scan(&app.ApplicationID, &app.AccountNumber, &app.Income, &app.CreditScore,
			&app.LoanAmount, &app.LoanTerm, &st, &app.DecisionDate); err != nil {
			return nil, fmt.Errorf("loan scan failed: %w", err)
		}
		app.Status = models.LoanStatus(st)
		if !app.Status.Valid() {
			return nil, fmt.Errorf("corrupt loan row: unknown status %q", st)
		}
		applications = append(applications, app)
	}
	return applications, rows.Err()
}
