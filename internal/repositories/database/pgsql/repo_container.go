package pgsql

import (
	portsrepo "github.com/indeko/indeko_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	reportRepo := NewPgxReportRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:         NewPgxUserRepository(dbPool),
		CompanyRepo:      NewPgxCompanyRepository(dbPool),
		MissionRepo:      NewPgxMissionRepository(dbPool),
		ReportRepo:       reportRepo,
		ReportAdminRepo:  reportRepo,
		EntryRepo:        NewPgxEntryRepository(dbPool),
		LinkRepo:         NewPgxLinkRepository(dbPool),
		LedgerCommitRepo: NewPgxLedgerCommitRepository(dbPool),
		TxManager:        reportRepo,
	}
}
