package repositories

import (
	"context"

	"github.com/bizledger/bizledger_backend/internal/core/domain"
)

// TransactionReader defines read operations over the posted-transaction ledger
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a page of transactions matching the filter,
	// ordered by (occurred_at, created_at, transaction_id) for reproducible
	// reports, with cursor-based pagination.
	ListTransactions(ctx context.Context, filter domain.LedgerFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// StreamTransactions invokes fn for every transaction matching the filter,
	// in stable order, without materializing the full set. Iteration stops at
	// the first error, which is returned to the caller.
	StreamTransactions(ctx context.Context, filter domain.LedgerFilter, fn func(domain.Transaction) error) error
}

// TransactionWriter defines write operations on the ledger. The ledger is
// append-only apart from explicit deletion; amendments are modeled as a
// delete followed by a repost.
type TransactionWriter interface {
	// SaveTransaction persists a new posted transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteTransaction removes a transaction. The removal must be visible to
	// the very next aggregation over the same ledger.
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// TransactionRepositoryFacade combines all ledger repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
