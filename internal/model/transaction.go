// Package model defines the core financial records consumed and produced by
// the analysis engine.
package model

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// TransactionType distinguishes money coming in from money going out.
// Amounts are always non-negative; the sign of a transaction is carried here.
type TransactionType string

// Supported transaction types.
const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// TransactionStatus marks whether a transaction has settled.
type TransactionStatus string

// Supported transaction statuses.
const (
	StatusPending TransactionStatus = "pending"
	StatusSettled TransactionStatus = "settled"
)

// Transaction represents a single financial transaction from any source.
// Records are immutable once created; the engine never mutates them.
type Transaction struct {
	Date          time.Time
	ID            string
	Type          TransactionType
	Currency      string
	Category      string
	Description   string
	PaymentMethod string
	CustomerID    *string
	Status        *TransactionStatus
	Amount        float64
}

// Validate reports why a transaction cannot be used for analysis.
// A nil result means the record is safe to aggregate.
func (t *Transaction) Validate() error {
	if t.Date.IsZero() {
		return fmt.Errorf("transaction %s: missing date", t.ID)
	}
	if t.Type != TypeIncome && t.Type != TypeExpense {
		return fmt.Errorf("transaction %s: invalid type %q", t.ID, t.Type)
	}
	if t.Amount < 0 {
		return fmt.Errorf("transaction %s: negative amount %.2f", t.ID, t.Amount)
	}
	if math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) {
		return fmt.Errorf("transaction %s: non-finite amount", t.ID)
	}
	return nil
}

// YearMonth returns the bucketing key for this transaction, e.g. "2024-03".
func (t *Transaction) YearMonth() string {
	return t.Date.Format("2006-01")
}

// MatchesMarker reports whether the transaction's description or category
// contains any of the given markers, case-insensitively.
func (t *Transaction) MatchesMarker(markers []string) bool {
	desc := strings.ToLower(t.Description)
	cat := strings.ToLower(t.Category)
	for _, m := range markers {
		m = strings.ToLower(m)
		if m == "" {
			continue
		}
		if strings.Contains(desc, m) || strings.Contains(cat, m) {
			return true
		}
	}
	return false
}
