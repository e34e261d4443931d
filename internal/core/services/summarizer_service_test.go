package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bizledger/bizledger_backend/internal/apperrors"
	"github.com/bizledger/bizledger_backend/internal/core/domain"
	portssvc "github.com/bizledger/bizledger_backend/internal/core/ports/services"
	"github.com/bizledger/bizledger_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// fakeAccountReader backs the engine with an in-memory catalog. It counts
// lookups so memoization within a single Summarize call can be asserted.
type fakeAccountReader struct {
	accounts map[string]domain.Account
	lookups  int
}

func (f *fakeAccountReader) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	f.lookups++
	account, ok := f.accounts[accountID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &account, nil
}

func (f *fakeAccountReader) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	result := make(map[string]domain.Account)
	for _, id := range accountIDs {
		if account, ok := f.accounts[id]; ok {
			result[id] = account
		}
	}
	return result, nil
}

func (f *fakeAccountReader) ListAccounts(ctx context.Context, accountTypes []domain.AccountType, limit int, offset int) ([]domain.Account, error) {
	accounts := make([]domain.Account, 0, len(f.accounts))
	for _, account := range f.accounts {
		accounts = append(accounts, account)
	}
	return accounts, nil
}

// fakeLedgerReader streams in-memory transactions, applying the same
// date/account/source narrowing the SQL layer would. Type narrowing is left
// to the engine, which resolves types through the catalog.
type fakeLedgerReader struct {
	txns []domain.Transaction
}

func (f *fakeLedgerReader) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	for _, txn := range f.txns {
		if txn.TransactionID == transactionID {
			return &txn, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeLedgerReader) ListTransactions(ctx context.Context, filter domain.LedgerFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	return f.txns, nil, nil
}

func (f *fakeLedgerReader) StreamTransactions(ctx context.Context, filter domain.LedgerFilter, fn func(domain.Transaction) error) error {
	for _, txn := range f.txns {
		if !matchesFilter(filter, txn) {
			continue
		}
		if err := fn(txn); err != nil {
			return err
		}
	}
	return nil
}

func matchesFilter(filter domain.LedgerFilter, txn domain.Transaction) bool {
	if filter.From != nil && txn.OccurredAt.Before(*filter.From) {
		return false
	}
	if filter.To != nil && !txn.OccurredAt.Before(*filter.To) {
		return false
	}
	if filter.AccountID != "" && txn.AccountID != filter.AccountID {
		return false
	}
	if len(filter.Sources) > 0 {
		found := false
		for _, src := range filter.Sources {
			if src == txn.Source {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// --- Test Suite Setup ---

type SummarizerServiceTestSuite struct {
	suite.Suite
	accountRepo *fakeAccountReader
	ledgerRepo  *fakeLedgerReader
	service     portssvc.SummarizerSvc

	cashID      string
	bankID      string
	incomeID    string
	expenseID   string
	liabilityID string
}

func (suite *SummarizerServiceTestSuite) SetupTest() {
	suite.cashID = uuid.NewString()
	suite.bankID = uuid.NewString()
	suite.incomeID = uuid.NewString()
	suite.expenseID = uuid.NewString()
	suite.liabilityID = uuid.NewString()

	suite.accountRepo = &fakeAccountReader{accounts: map[string]domain.Account{
		suite.cashID:      {AccountID: suite.cashID, Name: "Till", AccountType: domain.Cash, IsActive: true},
		suite.bankID:      {AccountID: suite.bankID, Name: "Checking", AccountType: domain.Bank, IsActive: true},
		suite.incomeID:    {AccountID: suite.incomeID, Name: "Sales", AccountType: domain.Income, IsActive: true},
		suite.expenseID:   {AccountID: suite.expenseID, Name: "Rent", AccountType: domain.Expense, IsActive: true},
		suite.liabilityID: {AccountID: suite.liabilityID, Name: "Loan", AccountType: domain.Liability, IsActive: true},
	}}
	suite.ledgerRepo = &fakeLedgerReader{}
	suite.service = services.NewSummarizerService(suite.accountRepo, suite.ledgerRepo)
}

func (suite *SummarizerServiceTestSuite) addTxn(accountID string, direction domain.TransactionDirection, amount int64, occurredAt time.Time) string {
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     accountID,
		Amount:        decimal.NewFromInt(amount),
		Direction:     direction,
		OccurredAt:    occurredAt,
		Source:        domain.SourceManual,
	}
	suite.ledgerRepo.txns = append(suite.ledgerRepo.txns, txn)
	return txn.TransactionID
}

func (suite *SummarizerServiceTestSuite) assertEqualDecimal(expected int64, actual decimal.Decimal, msgAndArgs ...interface{}) {
	suite.True(decimal.NewFromInt(expected).Equal(actual),
		fmt.Sprintf("expected %d, got %s", expected, actual.String()))
}

// --- Test Cases ---

// A sale of 500 received in cash and rent of 200 paid from cash. The income
// and expense postings must stay out of the flow metrics: net flow is the
// cash movement of 300, not the 600 a naive sum across all types would give.
func (suite *SummarizerServiceTestSuite) TestSummarize_CashSaleAndExpense() {
	now := time.Now()
	suite.addTxn(suite.cashID, domain.Credit, 500, now)
	suite.addTxn(suite.incomeID, domain.Credit, 500, now)
	suite.addTxn(suite.cashID, domain.Debit, 200, now)
	suite.addTxn(suite.expenseID, domain.Credit, 200, now)

	summary, err := suite.service.Summarize(context.Background(), domain.LedgerFilter{})

	suite.Require().NoError(err)
	suite.Require().NotNil(summary)
	suite.assertEqualDecimal(300, summary.CashFlow)
	suite.assertEqualDecimal(0, summary.BankFlow)
	suite.assertEqualDecimal(300, summary.NetFlow)
	suite.assertEqualDecimal(500, summary.TotalIncome)
	suite.assertEqualDecimal(200, summary.TotalExpense)
	suite.assertEqualDecimal(300, summary.NetProfit)
	suite.Equal(4, summary.TransactionCount)
	suite.False(summary.NetFlow.Equal(decimal.NewFromInt(600)),
		"net flow must not absorb income and expense movements")
}

func (suite *SummarizerServiceTestSuite) TestSummarize_BankContributesToNetFlow() {
	now := time.Now()
	suite.addTxn(suite.cashID, domain.Credit, 500, now)
	suite.addTxn(suite.cashID, domain.Debit, 200, now)
	suite.addTxn(suite.bankID, domain.Credit, 100, now)

	summary, err := suite.service.Summarize(context.Background(), domain.LedgerFilter{})

	suite.Require().NoError(err)
	suite.assertEqualDecimal(300, summary.CashFlow)
	suite.assertEqualDecimal(100, summary.BankFlow)
	suite.assertEqualDecimal(400, summary.NetFlow)
}

func (suite *SummarizerServiceTestSuite) TestSummarize_LiabilityStaysOutOfNetFlow() {
	now := time.Now()
	suite.addTxn(suite.cashID, domain.Credit, 500, now)
	suite.addTxn(suite.liabilityID, domain.Credit, 1000, now)

	summary, err := suite.service.Summarize(context.Background(), domain.LedgerFilter{})

	suite.Require().NoError(err)
	suite.assertEqualDecimal(500, summary.NetFlow)
	// The liability movement still shows up in per-account balances.
	suite.assertEqualDecimal(1000, summary.PerAccountBalances[suite.liabilityID])
}

func (suite *SummarizerServiceTestSuite) TestSummarize_EmptyRangeYieldsZeroSummary() {
	now := time.Now()
	suite.addTxn(suite.cashID, domain.Credit, 500, now)

	from := now.AddDate(0, -2, 0)
	to := now.AddDate(0, -1, 0)
	summary, err := suite.service.Summarize(context.Background(), domain.LedgerFilter{From: &from, To: &to})

	suite.Require().NoError(err)
	suite.Require().NotNil(summary)
	suite.assertEqualDecimal(0, summary.CashFlow)
	suite.assertEqualDecimal(0, summary.BankFlow)
	suite.assertEqualDecimal(0, summary.NetFlow)
	suite.assertEqualDecimal(0, summary.TotalIncome)
	suite.assertEqualDecimal(0, summary.TotalExpense)
	suite.assertEqualDecimal(0, summary.NetProfit)
	suite.Equal(0, summary.TransactionCount)
	suite.Empty(summary.PerAccountBalances)
}

func (suite *SummarizerServiceTestSuite) TestSummarize_DateRangeIsHalfOpen() {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	suite.addTxn(suite.cashID, domain.Credit, 100, from)                 // At From: included
	suite.addTxn(suite.cashID, domain.Credit, 50, to)                    // At To: excluded
	suite.addTxn(suite.cashID, domain.Credit, 25, to.Add(-time.Second))  // Just inside
	suite.addTxn(suite.cashID, domain.Credit, 10, from.Add(-time.Hour))  // Before From: excluded

	summary, err := suite.service.Summarize(context.Background(), domain.LedgerFilter{From: &from, To: &to})

	suite.Require().NoError(err)
	suite.assertEqualDecimal(125, summary.CashFlow)
	suite.Equal(2, summary.TransactionCount)
}

func (suite *SummarizerServiceTestSuite) TestSummarize_InvalidFilterRejected() {
	from := time.Now()
	to := from.AddDate(0, 0, -1)

	summary, err := suite.service.Summarize(context.Background(), domain.LedgerFilter{From: &from, To: &to})

	suite.Require().Error(err)
	suite.Nil(summary)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SummarizerServiceTestSuite) TestSummarize_UnknownFilterTypeRejected() {
	summary, err := suite.service.Summarize(context.Background(), domain.LedgerFilter{
		AccountTypes: []domain.AccountType{"REVENUE"},
	})

	suite.Require().Error(err)
	suite.Nil(summary)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// A typoed source tag must be rejected, not honored into an all-zero summary
// the caller would mistake for a quiet period.
func (suite *SummarizerServiceTestSuite) TestSummarize_UnknownFilterSourceRejected() {
	suite.addTxn(suite.cashID, domain.Credit, 500, time.Now())

	summary, err := suite.service.Summarize(context.Background(), domain.LedgerFilter{
		Sources: []domain.TransactionSource{"BOGUS"},
	})

	suite.Require().Error(err)
	suite.Nil(summary)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "BOGUS")
}

func (suite *SummarizerServiceTestSuite) TestSummarize_TypeFilterRestrictsNetFlow() {
	now := time.Now()
	suite.addTxn(suite.cashID, domain.Credit, 300, now)
	suite.addTxn(suite.bankID, domain.Credit, 100, now)
	suite.addTxn(suite.incomeID, domain.Credit, 400, now)

	summary, err := suite.service.Summarize(context.Background(), domain.LedgerFilter{
		AccountTypes: []domain.AccountType{domain.Cash},
	})

	suite.Require().NoError(err)
	suite.assertEqualDecimal(300, summary.CashFlow)
	suite.assertEqualDecimal(0, summary.BankFlow)
	suite.assertEqualDecimal(300, summary.NetFlow)
	suite.assertEqualDecimal(0, summary.TotalIncome)
	suite.Equal(1, summary.TransactionCount)
	suite.NotContains(summary.PerAccountBalances, suite.bankID)
	suite.NotContains(summary.PerAccountBalances, suite.incomeID)
}

func (suite *SummarizerServiceTestSuite) TestSummarize_UnknownAccountFailsTheCall() {
	now := time.Now()
	suite.addTxn(suite.cashID, domain.Credit, 500, now)
	orphanID := uuid.NewString()
	suite.addTxn(orphanID, domain.Credit, 100, now)

	summary, err := suite.service.Summarize(context.Background(), domain.LedgerFilter{})

	suite.Require().Error(err)
	suite.Nil(summary)
	suite.ErrorIs(err, apperrors.ErrAccountResolution)
	suite.Contains(err.Error(), orphanID)
}

func (suite *SummarizerServiceTestSuite) TestSummarize_DeletionVisibleImmediately() {
	now := time.Now()
	suite.addTxn(suite.cashID, domain.Credit, 500, now)
	deletedID := suite.addTxn(suite.cashID, domain.Credit, 200, now)

	before, err := suite.service.Summarize(context.Background(), domain.LedgerFilter{})
	suite.Require().NoError(err)
	suite.assertEqualDecimal(700, before.NetFlow)

	kept := suite.ledgerRepo.txns[:0]
	for _, txn := range suite.ledgerRepo.txns {
		if txn.TransactionID != deletedID {
			kept = append(kept, txn)
		}
	}
	suite.ledgerRepo.txns = kept

	after, err := suite.service.Summarize(context.Background(), domain.LedgerFilter{})
	suite.Require().NoError(err)
	suite.assertEqualDecimal(500, after.NetFlow)
	suite.Equal(1, after.TransactionCount)
}

func (suite *SummarizerServiceTestSuite) TestSummarize_Deterministic() {
	now := time.Now()
	suite.addTxn(suite.cashID, domain.Credit, 500, now)
	suite.addTxn(suite.bankID, domain.Debit, 120, now)
	suite.addTxn(suite.incomeID, domain.Credit, 500, now)

	first, err := suite.service.Summarize(context.Background(), domain.LedgerFilter{})
	suite.Require().NoError(err)
	second, err := suite.service.Summarize(context.Background(), domain.LedgerFilter{})
	suite.Require().NoError(err)

	suite.Equal(first, second)
}

func (suite *SummarizerServiceTestSuite) TestSummarize_NetFlowMatchesCashAndBankBalances() {
	now := time.Now()
	suite.addTxn(suite.cashID, domain.Credit, 500, now)
	suite.addTxn(suite.cashID, domain.Debit, 175, now)
	suite.addTxn(suite.bankID, domain.Credit, 320, now)
	suite.addTxn(suite.bankID, domain.Debit, 45, now)
	suite.addTxn(suite.incomeID, domain.Credit, 500, now)

	summary, err := suite.service.Summarize(context.Background(), domain.LedgerFilter{})
	suite.Require().NoError(err)

	cashAndBank := summary.PerAccountBalances[suite.cashID].Add(summary.PerAccountBalances[suite.bankID])
	suite.True(summary.NetFlow.Equal(cashAndBank),
		"net flow %s must equal the sum of cash and bank balances %s",
		summary.NetFlow.String(), cashAndBank.String())
}

func (suite *SummarizerServiceTestSuite) TestSummarize_AccountTypesResolvedOncePerCall() {
	now := time.Now()
	for i := 0; i < 5; i++ {
		suite.addTxn(suite.cashID, domain.Credit, 10, now)
		suite.addTxn(suite.bankID, domain.Credit, 10, now)
	}

	_, err := suite.service.Summarize(context.Background(), domain.LedgerFilter{})
	suite.Require().NoError(err)
	suite.Equal(2, suite.accountRepo.lookups, "one catalog lookup per distinct account")

	// A second call re-resolves from the catalog; nothing is cached between calls.
	_, err = suite.service.Summarize(context.Background(), domain.LedgerFilter{})
	suite.Require().NoError(err)
	suite.Equal(4, suite.accountRepo.lookups)
}

// --- Run Test Suite ---

func TestSummarizerService(t *testing.T) {
	suite.Run(t, new(SummarizerServiceTestSuite))
}
