package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionDirection indicates whether a transaction is a Debit or a Credit.
// Its effect on a balance depends on the account type; see the accounting
// package for the sign conventions.
type TransactionDirection string

const (
	Debit  TransactionDirection = "DEBIT"
	Credit TransactionDirection = "CREDIT"
)

// IsValid reports whether d is DEBIT or CREDIT.
func (d TransactionDirection) IsValid() bool {
	return d == Debit || d == Credit
}

// TransactionSource tags where a transaction came from. Informational only:
// aggregation never branches on it, but reports may filter by it.
type TransactionSource string

const (
	SourceManual  TransactionSource = "MANUAL"
	SourceInvoice TransactionSource = "INVOICE"
	SourcePayment TransactionSource = "PAYMENT"
)

// IsValid reports whether s is one of the recognized provenance tags.
func (s TransactionSource) IsValid() bool {
	switch s {
	case SourceManual, SourceInvoice, SourcePayment:
		return true
	}
	return false
}

// Transaction represents a single posted monetary movement against one account.
// Amounts are always positive; the direction carries the sign semantics.
// Transactions are never edited in place: an amendment is modeled as a delete
// followed by a repost by the surrounding system.
type Transaction struct {
	TransactionID string               `json:"transactionID"` // Primary Key (UUID)
	AccountID     string               `json:"accountID"`     // FK -> Account.accountID (Not Null)
	Amount        decimal.Decimal      `json:"amount"`        // Positive value; precise decimal type
	Direction     TransactionDirection `json:"direction"`     // DEBIT or CREDIT (Not Null)
	OccurredAt    time.Time            `json:"occurredAt"`    // When posted; used for date-range filtering
	Source        TransactionSource    `json:"source"`        // Provenance tag
	Notes         string               `json:"notes"`         // Nullable
	AuditFields
}
