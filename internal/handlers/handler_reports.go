package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/bizledger/bizledger_backend/internal/core/ports/services"
	"github.com/bizledger/bizledger_backend/internal/dto"
	"github.com/bizledger/bizledger_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler serves the report endpoints consumed by dashboards and
// exports.
type reportingHandler struct {
	summarizerService portssvc.SummarizerSvc
	reportingService  portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(ss portssvc.SummarizerSvc, rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{summarizerService: ss, reportingService: rs}
}

// RegisterReportingRoutes registers routes related to reports
func RegisterReportingRoutes(rg *gin.RouterGroup, summarizerService portssvc.SummarizerSvc, reportingService portssvc.ReportingService) {
	h := newReportingHandler(summarizerService, reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/financial-summary", h.getFinancialSummary)
		reports.GET("/trial-balance", h.getTrialBalance)
	}
}

// getFinancialSummary godoc
// @Summary Financial summary report
// @Description Aggregated cash flow, bank flow, net flow, income and expense figures for the filtered period
// @Tags reports
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD, inclusive)"
// @Param to query string false "End date (YYYY-MM-DD, exclusive)"
// @Param accountType query []string false "Account type filter" collectionFormat(multi)
// @Param source query []string false "Source filter" collectionFormat(multi)
// @Success 200 {object} dto.SummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/financial-summary [get]
func (h *reportingHandler) getFinancialSummary(c *gin.Context) {
	summarize(c, h.summarizerService)
}

// getTrialBalance godoc
// @Summary Trial balance report
// @Description Per-account debit and credit totals as of a date, with a balance check
// @Tags reports
// @Produce json
// @Param asOf query string false "As-of date (YYYY-MM-DD, exclusive); defaults to tomorrow"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	// Default includes everything posted up to now.
	asOf := time.Now().UTC().AddDate(0, 0, 1).Truncate(24 * time.Hour)
	if raw := c.Query("asOf"); raw != "" {
		parsed, err := dto.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid asOf date: " + raw})
			return
		}
		asOf = parsed
	}

	rows, err := h.reportingService.TrialBalance(c.Request.Context(), asOf)
	if err != nil {
		logger.Error("Failed to generate trial balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate trial balance"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(rows, asOf))
}
