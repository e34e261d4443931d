package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/bizledger/bizledger_backend/internal/apperrors"
	"github.com/bizledger/bizledger_backend/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_backend/internal/core/ports/repositories"
	"github.com/bizledger/bizledger_backend/internal/models"
	"github.com/bizledger/bizledger_backend/internal/utils/mapping"
	"github.com/bizledger/bizledger_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxTransactionRepository is a PostgreSQL implementation of the ledger.
type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new ledger repository backed by pgx.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxTransactionRepository implements the facade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = "t.transaction_id, t.account_id, t.amount, t.direction, t.occurred_at, t.source, t.notes, t.created_at, t.created_by, t.last_updated_at, t.last_updated_by"

// SaveTransaction persists a new posted transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	modelTxn := mapping.ToModelTransaction(txn)

	query := `
		INSERT INTO transactions (transaction_id, account_id, amount, direction, occurred_at, source, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelTxn.TransactionID,
		modelTxn.AccountID,
		modelTxn.Amount,
		modelTxn.Direction,
		modelTxn.OccurredAt,
		modelTxn.Source,
		modelTxn.Notes,
		modelTxn.CreatedAt,
		modelTxn.CreatedBy,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // Unique violation
				return fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrDuplicate, modelTxn.TransactionID)
			case "23503": // Foreign key violation
				return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, modelTxn.AccountID)
			}
		}
		return fmt.Errorf("failed to save transaction %s: %w", modelTxn.TransactionID, err)
	}
	return nil
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions t WHERE t.transaction_id = $1;`

	modelTxn, err := scanTransactionRow(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	domainTxn := mapping.ToDomainTransaction(*modelTxn)
	return &domainTxn, nil
}

// DeleteTransaction removes a transaction from the ledger. There is no soft
// delete: once removed, the next aggregation no longer sees it.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListTransactions retrieves a page of transactions matching the filter with
// cursor-based pagination.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter domain.LedgerFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	query, args := buildFilterQuery(filter)

	if nextToken != nil && *nextToken != "" {
		occurredAt, createdAt, transactionID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, occurredAt, createdAt, transactionID)
		query += fmt.Sprintf(" AND (t.occurred_at, t.created_at, t.transaction_id) > ($%d, $%d, $%d)", len(args)-2, len(args)-1, len(args))
	}

	query += " ORDER BY t.occurred_at, t.created_at, t.transaction_id"
	args = append(args, limit+1) // Fetch one extra row to detect the next page
	query += fmt.Sprintf(" LIMIT $%d", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var modelTxns []models.Transaction
	for rows.Next() {
		modelTxn, err := scanTransactionRow(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		modelTxns = append(modelTxns, *modelTxn)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	var returnedNextToken *string
	if len(modelTxns) > limit {
		modelTxns = modelTxns[:limit]
		last := modelTxns[len(modelTxns)-1]
		token := pagination.EncodeToken(last.OccurredAt, last.CreatedAt, last.TransactionID)
		returnedNextToken = &token
	}

	return mapping.ToDomainTransactionSlice(modelTxns), returnedNextToken, nil
}

// StreamTransactions invokes fn for every matching transaction in stable
// order without materializing the full set.
func (r *PgxTransactionRepository) StreamTransactions(ctx context.Context, filter domain.LedgerFilter, fn func(domain.Transaction) error) error {
	query, args := buildFilterQuery(filter)
	query += " ORDER BY t.occurred_at, t.created_at, t.transaction_id"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to stream transactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		modelTxn, err := scanTransactionRow(rows)
		if err != nil {
			return fmt.Errorf("failed to scan transaction row: %w", err)
		}
		if err := fn(mapping.ToDomainTransaction(*modelTxn)); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return nil
}

// buildFilterQuery translates a LedgerFilter into SQL. The type restriction
// joins the catalog so the account type in effect is always the current one.
func buildFilterQuery(filter domain.LedgerFilter) (string, []any) {
	query := `SELECT ` + transactionColumns + ` FROM transactions t`
	args := []any{}

	if len(filter.AccountTypes) > 0 {
		query += ` JOIN accounts a ON t.account_id = a.account_id`
	}
	query += ` WHERE 1=1`

	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND t.occurred_at >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND t.occurred_at < $%d", len(args))
	}
	if filter.AccountID != "" {
		args = append(args, filter.AccountID)
		query += fmt.Sprintf(" AND t.account_id = $%d", len(args))
	}
	if len(filter.AccountTypes) > 0 {
		types := make([]string, len(filter.AccountTypes))
		for i, t := range filter.AccountTypes {
			types[i] = string(t)
		}
		args = append(args, types)
		query += fmt.Sprintf(" AND a.account_type = ANY($%d)", len(args))
	}
	if len(filter.Sources) > 0 {
		sources := make([]string, len(filter.Sources))
		for i, s := range filter.Sources {
			sources[i] = string(s)
		}
		args = append(args, sources)
		query += fmt.Sprintf(" AND t.source = ANY($%d)", len(args))
	}

	return query, args
}

// scanTransactionRow scans a single transaction row into a model.
func scanTransactionRow(row pgx.Row) (*models.Transaction, error) {
	var modelTxn models.Transaction
	err := row.Scan(
		&modelTxn.TransactionID,
		&modelTxn.AccountID,
		&modelTxn.Amount,
		&modelTxn.Direction,
		&modelTxn.OccurredAt,
		&modelTxn.Source,
		&modelTxn.Notes,
		&modelTxn.CreatedAt,
		&modelTxn.CreatedBy,
		&modelTxn.LastUpdatedAt,
		&modelTxn.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &modelTxn, nil
}
