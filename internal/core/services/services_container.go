package services

import (
	portsrepo "github.com/indeko/indeko_backend/internal/core/ports/repositories"
	portssvc "github.com/indeko/indeko_backend/internal/core/ports/services"
)

// NewServiceContainer wires the request-facing services. The reconciliation
// service is deliberately absent: it sees soft-deleted rows and is
// constructed only by the admin entrypoint, via NewReconcileService.
func NewServiceContainer(repos portsrepo.RepositoryProvider, store portsrepo.LedgerStore) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Company = NewCompanyService(repos.CompanyRepo)
	container.Mission = NewMissionService(repos.MissionRepo, repos.CompanyRepo)

	linkingSvc := NewLinkingService(repos.LinkRepo)
	totalsSvc := NewTotalsService(repos.EntryRepo, repos.ReportRepo)

	container.Report = NewReportService(repos.ReportRepo, repos.EntryRepo, repos.TxManager)
	container.Entry = NewEntryService(repos.ReportRepo, repos.EntryRepo, repos.MissionRepo, linkingSvc, totalsSvc, repos.TxManager)
	container.Ledger = NewLedgerService(repos.ReportRepo, repos.EntryRepo, repos.LedgerCommitRepo, store, repos.TxManager)
	container.Export = NewExportService(container.Report)

	return container
}
