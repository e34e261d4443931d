package dto

import (
	"time"

	"github.com/bizledger/bizledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostTransactionRequest defines the data needed to post a transaction to the
// ledger. Amounts are positive; the direction carries the sign semantics.
type PostTransactionRequest struct {
	AccountID  string                      `json:"accountID" binding:"required,uuid"`
	Amount     decimal.Decimal             `json:"amount" binding:"required,decimalgt0"`
	Direction  domain.TransactionDirection `json:"direction" binding:"required,oneof=DEBIT CREDIT"`
	OccurredAt *time.Time                  `json:"occurredAt"` // Defaults to now when omitted
	Source     domain.TransactionSource    `json:"source" binding:"omitempty,oneof=MANUAL INVOICE PAYMENT"`
	Notes      string                      `json:"notes"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string                      `json:"transactionID"`
	AccountID     string                      `json:"accountID"`
	Amount        decimal.Decimal             `json:"amount"`
	Direction     domain.TransactionDirection `json:"direction"`
	OccurredAt    time.Time                   `json:"occurredAt"`
	Source        domain.TransactionSource    `json:"source"`
	Notes         string                      `json:"notes"`
	CreatedAt     time.Time                   `json:"createdAt"`
	CreatedBy     string                      `json:"createdBy"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		AccountID:     txn.AccountID,
		Amount:        txn.Amount,
		Direction:     txn.Direction,
		OccurredAt:    txn.OccurredAt,
		Source:        txn.Source,
		Notes:         txn.Notes,
		CreatedAt:     txn.CreatedAt,
		CreatedBy:     txn.CreatedBy,
	}
}

// ToListTransactionResponse converts a slice of domain.Transaction to DTOs
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		res[i] = ToTransactionResponse(&txn)
	}
	return res
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	From         *string  `form:"from"` // YYYY-MM-DD, inclusive
	To           *string  `form:"to"`   // YYYY-MM-DD, exclusive
	AccountID    string   `form:"accountID"`
	AccountTypes []string `form:"accountType"`
	Sources      []string `form:"source"`
	Limit        int      `form:"limit,default=50"`
	NextToken    *string  `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of transactions with the cursor for
// the next page.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}
