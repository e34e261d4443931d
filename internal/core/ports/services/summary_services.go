package services

import (
	"context"

	"github.com/bizledger/bizledger_backend/internal/core/domain"
)

// SummarizerSvc is the ledger aggregation engine. Summarize is a pure
// function of the current ledger state and the filter: it holds no state of
// its own, re-resolves account types from the catalog on every call, and may
// be invoked concurrently without coordination.
//
// Callers needing a consistent view across several metrics must take them all
// from a single returned Summary rather than from separate calls.
type SummarizerSvc interface {
	// Summarize folds the filtered transaction stream into flow metrics and
	// per-account balances. An empty filtered range yields a zero-valued
	// Summary; a transaction referencing an unknown account fails the whole
	// call with apperrors.ErrAccountResolution.
	Summarize(ctx context.Context, filter domain.LedgerFilter) (*domain.Summary, error)
}
