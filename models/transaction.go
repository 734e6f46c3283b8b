package models

import (
	"fmt"
	"math"
	"strings"
	"time"
)

type TransactionType string

const (
	TypeCredit TransactionType = "credit"
	TypeDebit  TransactionType = "debit"
)

type Transaction struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Title     string    `json:"title"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateTransactionRequest is the typed input contract for creating a
// transaction. The caller supplies an unsigned magnitude plus a direction;
// the sign is applied at write time.
type CreateTransactionRequest struct {
	Title  string          `json:"title"`
	Amount float64         `json:"amount"`
	Type   TransactionType `json:"type"`
}

// Validate checks the request fields and returns an ErrValidation-wrapped
// error on the first violation.
func (r *CreateTransactionRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("%w: title must not be empty", ErrValidation)
	}
	if math.IsNaN(r.Amount) || math.IsInf(r.Amount, 0) {
		return fmt.Errorf("%w: amount must be a finite number", ErrValidation)
	}
	if r.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	switch r.Type {
	case TypeCredit, TypeDebit:
	default:
		return fmt.Errorf("%w: type must be %q or %q", ErrValidation, TypeCredit, TypeDebit)
	}
	return nil
}

// SignedAmount returns the amount to persist: the supplied magnitude,
// negated for debits.
func (r *CreateTransactionRequest) SignedAmount() float64 {
	if r.Type == TypeDebit {
		return -r.Amount
	}
	return r.Amount
}

// Summary is the derived net balance of one session's ledger.
type Summary struct {
	Amount float64 `json:"amount"`
}
