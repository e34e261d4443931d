package services

import (
	"context"

	"github.com/bizledger/bizledger_backend/internal/core/domain"
	"github.com/bizledger/bizledger_backend/internal/dto"
)

// LedgerReaderSvc defines read operations over the transaction ledger
type LedgerReaderSvc interface {
	// GetTransactionByID retrieves a specific transaction.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a page of transactions matching the params.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// LedgerWriterSvc defines write operations on the transaction ledger
type LedgerWriterSvc interface {
	// PostTransaction appends a transaction to the ledger.
	PostTransaction(ctx context.Context, req dto.PostTransactionRequest, userID string) (*domain.Transaction, error)

	// DeleteTransaction removes a transaction from the ledger. Amendment is
	// modeled as delete followed by repost.
	DeleteTransaction(ctx context.Context, transactionID string, userID string) error
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
