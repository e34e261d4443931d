package services

import (
	portsrepo "github.com/bizledger/bizledger_backend/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Ledger = NewLedgerService(repos.AccountRepo, repos.TransactionRepo)
	container.Summarizer = NewSummarizerService(repos.AccountRepo, repos.TransactionRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo)

	return container
}
