package domain

import (
	"github.com/shopspring/decimal"
)

// Summary is the output of the ledger aggregation engine for one filter.
//
// NetFlow is defined as CashFlow + BankFlow and nothing else. Income,
// Expense, Liability and Equity movements never contribute to it; they are
// reported through the separate income/expense/profit metrics. Consumers must
// display NetFlow as returned and must not recompute it across account types.
type Summary struct {
	CashFlow     decimal.Decimal `json:"cashFlow"`     // Net movement across CASH accounts
	BankFlow     decimal.Decimal `json:"bankFlow"`     // Net movement across BANK accounts
	NetFlow      decimal.Decimal `json:"netFlow"`      // CashFlow + BankFlow, nothing else
	TotalIncome  decimal.Decimal `json:"totalIncome"`  // Net movement across INCOME accounts
	TotalExpense decimal.Decimal `json:"totalExpense"` // Net movement across EXPENSE accounts
	NetProfit    decimal.Decimal `json:"netProfit"`    // TotalIncome - TotalExpense

	// PerAccountBalances maps account id to its signed balance under the
	// filter, covering every account type including Liability and Equity.
	PerAccountBalances map[string]decimal.Decimal `json:"perAccountBalances"`

	// TransactionCount is the number of transactions folded into the summary.
	TransactionCount int `json:"transactionCount"`
}

// ZeroSummary returns a Summary with every metric at zero. An empty filtered
// range is a normal outcome, not an error.
func ZeroSummary() Summary {
	return Summary{
		CashFlow:           decimal.Zero,
		BankFlow:           decimal.Zero,
		NetFlow:            decimal.Zero,
		TotalIncome:        decimal.Zero,
		TotalExpense:       decimal.Zero,
		NetProfit:          decimal.Zero,
		PerAccountBalances: map[string]decimal.Decimal{},
	}
}
