package accounting_test

import (
	"testing"

	"github.com/bizledger/bizledger_backend/internal/core/domain"
	"github.com/bizledger/bizledger_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateSignedAmount(t *testing.T) {
	amount := decimal.NewFromInt(100)

	testCases := []struct {
		name        string
		accountType domain.AccountType
		direction   domain.TransactionDirection
		expected    decimal.Decimal
	}{
		{"Cash credit is money received", domain.Cash, domain.Credit, amount},
		{"Cash debit is money paid out", domain.Cash, domain.Debit, amount.Neg()},
		{"Bank credit is money received", domain.Bank, domain.Credit, amount},
		{"Bank debit is money paid out", domain.Bank, domain.Debit, amount.Neg()},
		{"Other asset credit increases", domain.OtherAsset, domain.Credit, amount},
		{"Other asset debit decreases", domain.OtherAsset, domain.Debit, amount.Neg()},
		{"Income credit increases recognized income", domain.Income, domain.Credit, amount},
		{"Income debit decreases recognized income", domain.Income, domain.Debit, amount.Neg()},
		{"Expense credit increases recognized expense", domain.Expense, domain.Credit, amount},
		{"Expense debit decreases recognized expense", domain.Expense, domain.Debit, amount.Neg()},
		{"Liability credit increases", domain.Liability, domain.Credit, amount},
		{"Liability debit decreases", domain.Liability, domain.Debit, amount.Neg()},
		{"Equity credit increases", domain.Equity, domain.Credit, amount},
		{"Equity debit decreases", domain.Equity, domain.Debit, amount.Neg()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			txn := domain.Transaction{
				TransactionID: "txn-1",
				AccountID:     "acc-1",
				Amount:        amount,
				Direction:     tc.direction,
			}

			signed, err := accounting.CalculateSignedAmount(txn, tc.accountType)

			require.NoError(t, err)
			assert.True(t, tc.expected.Equal(signed),
				"expected %s, got %s", tc.expected.String(), signed.String())
		})
	}
}

func TestCalculateSignedAmount_UnknownType(t *testing.T) {
	txn := domain.Transaction{
		TransactionID: "txn-1",
		AccountID:     "acc-1",
		Amount:        decimal.NewFromInt(42),
		Direction:     domain.Credit,
	}

	signed, err := accounting.CalculateSignedAmount(txn, domain.AccountType("REVENUE"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown account type")
	assert.True(t, signed.IsZero())
}

func TestValidateTrialBalance_Balanced(t *testing.T) {
	rows := []domain.TrialBalanceRow{
		{AccountID: "a", Debit: decimal.NewFromInt(300), Credit: decimal.NewFromInt(100)},
		{AccountID: "b", Debit: decimal.NewFromInt(50), Credit: decimal.NewFromInt(250)},
	}

	assert.NoError(t, accounting.ValidateTrialBalance(rows))
}

func TestValidateTrialBalance_Unbalanced(t *testing.T) {
	rows := []domain.TrialBalanceRow{
		{AccountID: "a", Debit: decimal.NewFromInt(300), Credit: decimal.NewFromInt(100)},
	}

	err := accounting.ValidateTrialBalance(rows)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not net to zero")
}

func TestValidateTrialBalance_Empty(t *testing.T) {
	assert.NoError(t, accounting.ValidateTrialBalance(nil))
}
