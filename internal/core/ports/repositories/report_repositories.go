package repositories

import (
	"context"
	"time"

	"github.com/indeko/indeko_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ReportRepositoryFacade defines the persistence operations for reports.
// All queries exclude soft-deleted rows.
type ReportRepositoryFacade interface {
	// SaveReport inserts a new report. A unique violation on
	// (owner, month, year) is returned as apperrors.ErrDuplicate.
	SaveReport(ctx context.Context, report domain.Report) error
	FindReportByID(ctx context.Context, reportID string) (*domain.Report, error)
	ListReportsByOwner(ctx context.Context, ownerID string, limit int, nextToken *string) ([]domain.Report, *string, error)

	// FindReportForUpdate loads the report row with a pessimistic row lock.
	// Every mutating operation on a report or its entries takes this lock
	// first, which serializes concurrent writers on the same report.
	FindReportForUpdate(ctx context.Context, tx pgx.Tx, reportID string) (*domain.Report, error)
	UpdateReportTotalsInTx(ctx context.Context, tx pgx.Tx, reportID string, totalDays decimal.Decimal, totalAmount int64, updatedBy string, at time.Time) error
	UpdateReportStatusInTx(ctx context.Context, tx pgx.Tx, reportID string, status domain.ReportStatus, lockedAt *time.Time, updatedBy string, at time.Time) error
	SoftDeleteReportInTx(ctx context.Context, tx pgx.Tx, reportID string, deletedBy string, at time.Time) error
}

// ReportAdminRepositoryFacade exposes queries that can see soft-deleted rows.
// It is constructed only for the ledger reconciliation service; handlers
// never receive it.
type ReportAdminRepositoryFacade interface {
	ListReportIDs(ctx context.Context, visibility Visibility) ([]string, error)
}
