package services

import (
	"context"
	"time"

	"github.com/indeko/indeko_backend/internal/core/domain"
	"github.com/indeko/indeko_backend/internal/dto"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// LedgerSvcFacade drives the lock transition and exposes the audit trail.
type LedgerSvcFacade interface {
	// LockReport moves a SUBMITTED report to LOCKED, committing its
	// canonical payload to the ledger store and recording a LedgerCommit
	// row in the same database transaction. Returns the locked report and
	// the ledger revision id.
	LockReport(ctx context.Context, ownerID, reportID string) (*domain.Report, string, error)
	ListCommits(ctx context.Context, ownerID, reportID string) ([]domain.LedgerCommit, error)
}

// ReconcileSvcFacade is the offline reconciliation pass over the ledger
// store. It is wired into admin tooling only, never into request handlers.
type ReconcileSvcFacade interface {
	ReconcileLedger(ctx context.Context) (*dto.ReconcileReport, error)
}

// LinkingSvcFacade ensures report↔mission relation rows exist. EnsureLink is
// idempotent: a concurrent insert of the same pair is treated as success and
// the existing row is returned.
type LinkingSvcFacade interface {
	EnsureLinkInTx(ctx context.Context, tx pgx.Tx, reportID, missionID, actorID string) (*domain.ReportMissionLink, error)
}

// TotalsSvcFacade recomputes a report's aggregate totals from its live
// entries. It is invoked explicitly by every entry mutation, inside the same
// transaction, so a reader can never observe entries without matching totals.
type TotalsSvcFacade interface {
	RecalculateInTx(ctx context.Context, tx pgx.Tx, reportID, actorID string, at time.Time) (decimal.Decimal, int64, error)
}
