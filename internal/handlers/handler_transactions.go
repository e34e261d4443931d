package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/bizledger/bizledger_backend/internal/apperrors"
	"github.com/bizledger/bizledger_backend/internal/core/domain"
	portssvc "github.com/bizledger/bizledger_backend/internal/core/ports/services"
	"github.com/bizledger/bizledger_backend/internal/dto"
	"github.com/bizledger/bizledger_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests for the transaction ledger and the
// inline summary endpoint backed by the aggregation engine.
type transactionHandler struct {
	ledgerService     portssvc.LedgerSvcFacade
	summarizerService portssvc.SummarizerSvc
}

// newTransactionHandler creates a new transactionHandler
func newTransactionHandler(ls portssvc.LedgerSvcFacade, ss portssvc.SummarizerSvc) *transactionHandler {
	return &transactionHandler{ledgerService: ls, summarizerService: ss}
}

// RegisterTransactionRoutes registers routes related to the ledger
func RegisterTransactionRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, summarizerService portssvc.SummarizerSvc) {
	h := newTransactionHandler(ledgerService, summarizerService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.postTransaction)
		transactions.GET("", h.listTransactions)
		transactions.GET("/summary", h.getSummary)
		transactions.GET("/:transactionID", h.getTransaction)
		transactions.DELETE("/:transactionID", h.deleteTransaction)
	}
}

// postTransaction godoc
// @Summary Post a transaction
// @Description Appends a credit or debit transaction to the ledger
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.PostTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) postTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.PostTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	txn, err := h.ledgerService.PostTransaction(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to post transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to post transaction"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// getTransaction godoc
// @Summary Get a transaction
// @Description Retrieves a transaction by its ID
// @Tags transactions
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	txn, err := h.ledgerService.GetTransactionByID(c.Request.Context(), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Transaction not found"})
		} else {
			logger.Error("Failed to get transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get transaction"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists ledger transactions matching the filter, newest page first by occurrence
// @Tags transactions
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD, inclusive)"
// @Param to query string false "End date (YYYY-MM-DD, exclusive)"
// @Param accountID query string false "Account ID filter"
// @Param accountType query []string false "Account type filter" collectionFormat(multi)
// @Param source query []string false "Source filter" collectionFormat(multi)
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.ledgerService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to list transactions", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list transactions"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getSummary godoc
// @Summary Summarize the ledger
// @Description Aggregates the filtered transactions into cash flow, bank flow, net flow, income, expense and per-account balances
// @Tags transactions
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD, inclusive)"
// @Param to query string false "End date (YYYY-MM-DD, exclusive)"
// @Param accountType query []string false "Account type filter" collectionFormat(multi)
// @Param source query []string false "Source filter" collectionFormat(multi)
// @Success 200 {object} dto.SummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/summary [get]
func (h *transactionHandler) getSummary(c *gin.Context) {
	summarize(c, h.summarizerService)
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Removes a transaction from the ledger. Subsequent summaries no longer include it.
// @Tags transactions
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	err := h.ledgerService.DeleteTransaction(c.Request.Context(), transactionID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Transaction not found"})
		} else {
			logger.Error("Failed to delete transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete transaction"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// buildSummaryFilter converts summary query params into a domain filter.
// Validation of the assembled filter happens inside the engine.
func buildSummaryFilter(params dto.SummaryParams) (domain.LedgerFilter, error) {
	var filter domain.LedgerFilter

	if params.From != nil && *params.From != "" {
		from, err := dto.ParseDate(*params.From)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid from date %q", apperrors.ErrValidation, *params.From)
		}
		filter.From = &from
	}
	if params.To != nil && *params.To != "" {
		to, err := dto.ParseDate(*params.To)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid to date %q", apperrors.ErrValidation, *params.To)
		}
		filter.To = &to
	}
	for _, t := range params.AccountTypes {
		filter.AccountTypes = append(filter.AccountTypes, domain.AccountType(t))
	}
	for _, s := range params.Sources {
		filter.Sources = append(filter.Sources, domain.TransactionSource(s))
	}
	return filter, nil
}

// summarize runs the aggregation engine against the request's filter and
// writes the summary payload. Shared by the transactions and reports routes.
func summarize(c *gin.Context, summarizerService portssvc.SummarizerSvc) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.SummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	filter, err := buildSummaryFilter(params)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	summary, err := summarizerService.Summarize(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else if errors.Is(err, apperrors.ErrAccountResolution) {
			// Ledger integrity problem, not a caller mistake.
			logger.Error("Summary aborted on unresolved account", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to summarize ledger", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to summarize ledger"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSummaryResponse(summary, filter))
}
