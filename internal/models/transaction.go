package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionDirection mirrors domain.TransactionDirection at the persistence layer.
type TransactionDirection string

const (
	Debit  TransactionDirection = "DEBIT"
	Credit TransactionDirection = "CREDIT"
)

// Transaction represents a row in the transactions table.
// Amount is stored positive; direction carries the sign semantics.
type Transaction struct {
	TransactionID string               `db:"transaction_id"`
	AccountID     string               `db:"account_id"`
	Amount        decimal.Decimal      `db:"amount"`
	Direction     TransactionDirection `db:"direction"`
	OccurredAt    time.Time            `db:"occurred_at"`
	Source        string               `db:"source"`
	Notes         string               `db:"notes"`
	AuditFields
}
