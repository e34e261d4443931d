package repositories

import (
	"context"
	"time"

	"github.com/bizledger/bizledger_backend/internal/core/domain"
)

// AccountReader defines read operations for the account catalog
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	// Returns apperrors.ErrNotFound when the id is unknown.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs. IDs absent
	// from the catalog are simply missing from the returned map.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts, optionally
	// restricted to the given account types.
	ListAccounts(ctx context.Context, accountTypes []domain.AccountType, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for the account catalog
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
// This is a facade for clients that need access to all operations
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
