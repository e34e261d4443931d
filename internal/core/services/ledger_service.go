package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bizledger/bizledger_backend/internal/apperrors"
	"github.com/bizledger/bizledger_backend/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_backend/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_backend/internal/core/ports/services"
	"github.com/bizledger/bizledger_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ledgerService implements the LedgerSvcFacade interface. It owns posting and
// deletion; amendments are a delete followed by a repost, never an in-place
// amount edit.
type ledgerService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	ledgerRepo  portsrepo.TransactionRepositoryFacade
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(accountRepo portsrepo.AccountReader, ledgerRepo portsrepo.TransactionRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
	}
}

// Ensure ledgerService implements the LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// PostTransaction appends a transaction to the ledger.
func (s *ledgerService) PostTransaction(ctx context.Context, req dto.PostTransactionRequest, userID string) (*domain.Transaction, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: transaction amount must be positive, got %s", apperrors.ErrValidation, req.Amount.String())
	}
	if !req.Direction.IsValid() {
		return nil, fmt.Errorf("%w: direction must be DEBIT or CREDIT", apperrors.ErrValidation)
	}

	// The referenced account must exist before the transaction is accepted;
	// otherwise every later aggregation over it would fail.
	account, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, req.AccountID)
		}
		s.LogError(ctx, err, "Failed to resolve account for new transaction", slog.String("account_id", req.AccountID))
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, req.AccountID)
	}

	now := time.Now()
	occurredAt := now
	if req.OccurredAt != nil {
		occurredAt = *req.OccurredAt
	}
	source := req.Source
	if source == "" {
		source = domain.SourceManual
	}

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     req.AccountID,
		Amount:        req.Amount,
		Direction:     req.Direction,
		OccurredAt:    occurredAt,
		Source:        source,
		Notes:         req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.ledgerRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction in repository", slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction posted successfully",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("account_id", txn.AccountID),
		slog.String("direction", string(txn.Direction)),
		slog.String("amount", txn.Amount.String()))
	return &txn, nil
}

// GetTransactionByID retrieves a specific transaction.
func (s *ledgerService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.ledgerRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction by ID in repository", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	return txn, nil
}

// ListTransactions retrieves a page of transactions matching the params.
func (s *ledgerService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	filter, err := filterFromListParams(params)
	if err != nil {
		return nil, err
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	txns, nextToken, err := s.ledgerRepo.ListTransactions(ctx, filter, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions from repository")
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToListTransactionResponse(txns),
		NextToken:    nextToken,
	}, nil
}

// DeleteTransaction removes a transaction from the ledger. The removal is
// visible to the very next summary computation.
func (s *ledgerService) DeleteTransaction(ctx context.Context, transactionID string, userID string) error {
	err := s.ledgerRepo.DeleteTransaction(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete transaction in repository", slog.String("transaction_id", transactionID))
		}
		return err
	}

	s.LogInfo(ctx, "Transaction deleted",
		slog.String("transaction_id", transactionID),
		slog.String("deleted_by", userID))
	return nil
}

// filterFromListParams converts query params into a domain filter.
func filterFromListParams(params dto.ListTransactionsParams) (domain.LedgerFilter, error) {
	filter := domain.LedgerFilter{AccountID: params.AccountID}

	if params.From != nil {
		from, err := dto.ParseDate(*params.From)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid from date %q, use YYYY-MM-DD", apperrors.ErrValidation, *params.From)
		}
		filter.From = &from
	}
	if params.To != nil {
		to, err := dto.ParseDate(*params.To)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid to date %q, use YYYY-MM-DD", apperrors.ErrValidation, *params.To)
		}
		filter.To = &to
	}
	for _, t := range params.AccountTypes {
		filter.AccountTypes = append(filter.AccountTypes, domain.AccountType(t))
	}
	for _, src := range params.Sources {
		filter.Sources = append(filter.Sources, domain.TransactionSource(src))
	}
	return filter, nil
}
