package services

import "errors"

// Domain errors surfaced to callers as typed failures. Handlers map these to
// HTTP statuses; anything else is treated as a storage fault, logged, and
// reported as a generic failure.
var (
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrAccountNotFound     = errors.New("account not found")
	ErrSameAccountTransfer = errors.New("cannot transfer to the same account")
	ErrNameRequired        = errors.New("account name is required")
	ErrLoanNotFound        = errors.New("loan application not found")
	ErrInvalidLoanInput    = errors.New("invalid loan application fields")
	ErrAlreadyDecided      = errors.New("loan application already decided")
	ErrAdminExists         = errors.New("admin username already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
)
