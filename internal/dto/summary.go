package dto

import (
	"time"

	"github.com/bizledger/bizledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SummaryParams defines query parameters accepted by the summary endpoints.
type SummaryParams struct {
	From         *string  `form:"from"` // YYYY-MM-DD, inclusive
	To           *string  `form:"to"`   // YYYY-MM-DD, exclusive
	AccountTypes []string `form:"accountType"`
	Sources      []string `form:"source"`
}

// SummaryResponse is the flat numeric payload served to the dashboard and the
// reporting consumers. NetFlow is exactly CashFlow + BankFlow; consumers must
// render it as returned and never recompute it across account types.
type SummaryResponse struct {
	From               *string                    `json:"from,omitempty"`
	To                 *string                    `json:"to,omitempty"`
	CashFlow           decimal.Decimal            `json:"cashFlow"`
	BankFlow           decimal.Decimal            `json:"bankFlow"`
	NetFlow            decimal.Decimal            `json:"netFlow"`
	TotalIncome        decimal.Decimal            `json:"totalIncome"`
	TotalExpense       decimal.Decimal            `json:"totalExpense"`
	NetProfit          decimal.Decimal            `json:"netProfit"`
	PerAccountBalances map[string]decimal.Decimal `json:"perAccountBalances"`
	TransactionCount   int                        `json:"transactionCount"`
}

// ToSummaryResponse converts a domain.Summary to the response payload,
// echoing the filter's date bounds.
func ToSummaryResponse(summary *domain.Summary, filter domain.LedgerFilter) SummaryResponse {
	resp := SummaryResponse{
		CashFlow:           summary.CashFlow,
		BankFlow:           summary.BankFlow,
		NetFlow:            summary.NetFlow,
		TotalIncome:        summary.TotalIncome,
		TotalExpense:       summary.TotalExpense,
		NetProfit:          summary.NetProfit,
		PerAccountBalances: summary.PerAccountBalances,
		TransactionCount:   summary.TransactionCount,
	}
	if filter.From != nil {
		from := filter.From.Format("2006-01-02")
		resp.From = &from
	}
	if filter.To != nil {
		to := filter.To.Format("2006-01-02")
		resp.To = &to
	}
	if resp.PerAccountBalances == nil {
		resp.PerAccountBalances = map[string]decimal.Decimal{}
	}
	return resp
}

// ParseDate parses a YYYY-MM-DD query value into a UTC midnight time.
func ParseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}
