package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bizledger/bizledger_backend/internal/apperrors"
	"github.com/bizledger/bizledger_backend/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_backend/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_backend/internal/core/ports/services"
	"github.com/bizledger/bizledger_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// summarizerService implements the SummarizerSvc interface. It is stateless:
// every call re-reads the ledger and the catalog, so a deletion is visible to
// the very next Summarize over the same store.
type summarizerService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	ledgerRepo  portsrepo.TransactionReader
}

// NewSummarizerService creates the ledger aggregation engine.
func NewSummarizerService(accountRepo portsrepo.AccountReader, ledgerRepo portsrepo.TransactionReader) portssvc.SummarizerSvc {
	return &summarizerService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
	}
}

// Ensure summarizerService implements the SummarizerSvc interface
var _ portssvc.SummarizerSvc = (*summarizerService)(nil)

// Summarize folds the filtered transaction stream into per-account balances
// and per-type totals, then derives the flow metrics. Transactions stream one
// at a time; only the accumulators are held in memory.
func (s *summarizerService) Summarize(ctx context.Context, filter domain.LedgerFilter) (*domain.Summary, error) {
	if err := filter.Validate(); err != nil {
		s.LogError(ctx, err, "Rejected summary request with invalid filter")
		return nil, err
	}

	summary := domain.ZeroSummary()
	typeTotals := make(map[domain.AccountType]decimal.Decimal, len(domain.AccountTypes))

	// Account types are memoized for this call only. The catalog stays the
	// source of truth across calls; nothing is cached between them.
	resolvedTypes := make(map[string]domain.AccountType)

	err := s.ledgerRepo.StreamTransactions(ctx, filter, func(txn domain.Transaction) error {
		accountType, ok := resolvedTypes[txn.AccountID]
		if !ok {
			account, err := s.accountRepo.FindAccountByID(ctx, txn.AccountID)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return fmt.Errorf("%w: transaction %s references account %s",
						apperrors.ErrAccountResolution, txn.TransactionID, txn.AccountID)
				}
				return fmt.Errorf("failed to resolve account %s: %w", txn.AccountID, err)
			}
			accountType = account.AccountType
			resolvedTypes[txn.AccountID] = accountType
		}

		// Excluded types drop out here, before any derivation, so a filtered
		// net flow covers only the selected Cash/Bank subset.
		if !filter.IncludesType(accountType) {
			return nil
		}

		signedAmount, err := accounting.CalculateSignedAmount(txn, accountType)
		if err != nil {
			return err
		}

		summary.PerAccountBalances[txn.AccountID] = summary.PerAccountBalances[txn.AccountID].Add(signedAmount)
		typeTotals[accountType] = typeTotals[accountType].Add(signedAmount)
		summary.TransactionCount++
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate ledger transactions")
		return nil, err
	}

	summary.CashFlow = zeroIfUnset(typeTotals[domain.Cash])
	summary.BankFlow = zeroIfUnset(typeTotals[domain.Bank])
	// Net flow is cash flow plus bank flow and nothing else. Income, expense,
	// liability and equity movements must never leak into it.
	summary.NetFlow = summary.CashFlow.Add(summary.BankFlow)
	summary.TotalIncome = zeroIfUnset(typeTotals[domain.Income])
	summary.TotalExpense = zeroIfUnset(typeTotals[domain.Expense])
	summary.NetProfit = summary.TotalIncome.Sub(summary.TotalExpense)

	s.LogDebug(ctx, "Ledger summary computed",
		slog.Int("transaction_count", summary.TransactionCount),
		slog.String("net_flow", summary.NetFlow.String()))
	return &summary, nil
}

// zeroIfUnset normalizes the uninitialized decimal zero value so summaries
// serialize consistently.
func zeroIfUnset(d decimal.Decimal) decimal.Decimal {
	if d.IsZero() {
		return decimal.Zero
	}
	return d
}
