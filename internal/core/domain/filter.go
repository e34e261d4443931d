package domain

import (
	"fmt"
	"time"

	"github.com/bizledger/bizledger_backend/internal/apperrors"
)

// LedgerFilter narrows which transactions participate in a query or summary.
// It is a pure value object: identical (ledger state, filter) pairs must
// always produce identical results.
type LedgerFilter struct {
	// From/To bound OccurredAt as [From, To). Nil means unbounded.
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
	// AccountTypes restricts to the given types when non-empty.
	AccountTypes []AccountType `json:"accountTypes,omitempty"`
	// Sources restricts to the given provenance tags when non-empty.
	Sources []TransactionSource `json:"sources,omitempty"`
	// AccountID restricts to a single account when non-empty.
	AccountID string `json:"accountID,omitempty"`
}

// Validate rejects malformed filters before any aggregation work begins.
func (f LedgerFilter) Validate() error {
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return fmt.Errorf("%w: to date %s is before from date %s",
			apperrors.ErrValidation, f.To.Format(time.RFC3339), f.From.Format(time.RFC3339))
	}
	for _, t := range f.AccountTypes {
		if !t.IsValid() {
			return fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, t)
		}
	}
	for _, s := range f.Sources {
		if !s.IsValid() {
			return fmt.Errorf("%w: unknown source %q", apperrors.ErrValidation, s)
		}
	}
	return nil
}

// IncludesType reports whether accounts of type t participate under the
// filter. An empty type set means every type participates.
func (f LedgerFilter) IncludesType(t AccountType) bool {
	if len(f.AccountTypes) == 0 {
		return true
	}
	for _, ft := range f.AccountTypes {
		if ft == t {
			return true
		}
	}
	return false
}
