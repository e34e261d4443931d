package services

import (
	"context"

	"github.com/bizledger/bizledger_backend/internal/core/domain"
	"github.com/bizledger/bizledger_backend/internal/dto"
)

// AccountReaderSvc defines read operations for the account catalog
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts by their IDs.
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts, optionally
	// restricted to the given account types.
	ListAccounts(ctx context.Context, accountTypes []domain.AccountType, limit int, offset int) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for the account catalog
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
