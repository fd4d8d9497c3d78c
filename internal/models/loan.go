package models

import "time"

// LoanStatus is the decision state of a loan application. Decisions are
// terminal: once Approved or Rejected an application never transitions again.
type LoanStatus string

const (
	LoanPending  LoanStatus = "Pending"
	LoanApproved LoanStatus = "Approved"
	LoanRejected LoanStatus = "Rejected"
)

func (s LoanStatus) Valid() bool {
	switch s {
	case LoanPending, LoanApproved, LoanRejected:
		return true
	}
	return false
}

// Decided reports whether the application has reached a terminal state.
func (s LoanStatus) Decided() bool {
	return s == LoanApproved || s == LoanRejected
}

// LoanApplication tracks a loan request for an account. Income and
// LoanAmount are in cents; CreditScore is bounded 300-850.
type LoanApplication struct {
	ApplicationID int64      `json:"application_id" db:"application_id"`
	AccountNumber int64      `json:"account_number" db:"account_number"`
	Income        int64      `json:"income" db:"income"`
	CreditScore   int        `json:"credit_score" db:"credit_score"`
	LoanAmount    int64      `json:"loan_amount" db:"loan_amount"`
	LoanTerm      int        `json:"loan_term" db:"loan_term"` // months
	Status        LoanStatus `json:"status" db:"status"`
	DecisionDate  *time.Time `json:"decision_date,omitempty" db:"decision_date"`
}
