package models

import "time"

// Account represents a customer bank account. Balance is held in minor
// currency units (cents) so arithmetic stays exact.
type Account struct {
	AccountNumber int64     `json:"account_number" db:"account_number"`
	Name          string    `json:"name" db:"name"`
	Balance       int64     `json:"balance" db:"balance"`
	Version       int       `json:"-" db:"version"` // for optimistic locking
	TOTPSecret    string    `json:"-" db:"totp_secret"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
