package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bizledger/bizledger_backend/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_backend/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_backend/internal/core/ports/services"
	"github.com/bizledger/bizledger_backend/internal/utils/accounting"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service
func NewReportingService(repo portsrepo.ReportingRepository) portssvc.ReportingService {
	return &reportingService{reportingRepo: repo}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// TrialBalance generates a trial balance report as of a specific date
func (s *reportingService) TrialBalance(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve trial balance data",
			slog.String("asOf", asOf.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	// An unbalanced ledger is served anyway so operators can inspect it, but
	// it warrants a warning in the logs.
	if err := accounting.ValidateTrialBalance(rows); err != nil {
		s.GetLogger(ctx).Warn("Trial balance does not net to zero",
			slog.String("asOf", asOf.Format(time.RFC3339)),
			slog.String("detail", err.Error()))
	}

	s.LogInfo(ctx, "Trial balance report generated successfully",
		slog.String("asOf", asOf.Format(time.RFC3339)),
		slog.Int("row_count", len(rows)))
	return rows, nil
}
