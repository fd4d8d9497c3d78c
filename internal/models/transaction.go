package models

import (
	"fmt"
	"time"
)

// TransactionType is the closed set of ledger entry kinds.
type TransactionType string

const (
	TxDeposit     TransactionType = "Deposit"
	TxWithdrawal  TransactionType = "Withdrawal"
	TxTransferOut TransactionType = "TransferOut"
	TxTransferIn  TransactionType = "TransferIn"
)

// Valid reports whether t is one of the four known kinds.
func (t TransactionType) Valid() bool {
	switch t {
	case TxDeposit, TxWithdrawal, TxTransferOut, TxTransferIn:
		return true
	}
	return false
}

// ParseTransactionType maps a stored string onto the enum, failing fast on
// anything outside the closed set.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
	return t, nil
}

// Transaction is an immutable ledger record. Amount is always positive; the
// Type carries the direction.
type Transaction struct {
	TransactionID int64           `json:"transaction_id" db:"transaction_id"`
	AccountNumber int64           `json:"account_number" db:"account_number"`
	Type          TransactionType `json:"type" db:"type"`
	Amount        int64           `json:"amount" db:"amount"` // in cents
	Description   string          `json:"description,omitempty" db:"description"`
	Timestamp     time.Time       `json:"timestamp" db:"timestamp"`
}
