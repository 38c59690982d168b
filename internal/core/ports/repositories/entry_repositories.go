package repositories

import (
	"context"
	"time"

	"github.com/indeko/indeko_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// EntryRepositoryFacade defines the persistence operations for entries and
// their relation rows. All queries exclude soft-deleted rows; there is no
// include-deleted variant on this facade.
type EntryRepositoryFacade interface {
	// SaveEntryInTx inserts the entry plus its entry→report and
	// entry→mission relation rows. A unique violation on either link is
	// returned as apperrors.ErrConflict.
	SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.Entry, reportID string) error
	// FindEntryByIDInTx returns the entry and the id of the report it is
	// linked to.
	FindEntryByIDInTx(ctx context.Context, tx pgx.Tx, entryID string) (*domain.Entry, string, error)
	// FindEntryReportID resolves the report an entry belongs to without a
	// transaction, so callers can take the report lock before re-reading.
	FindEntryReportID(ctx context.Context, entryID string) (string, error)
	UpdateEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.Entry) error
	// SoftDeleteEntryInTx marks the entry and its relation rows deleted.
	SoftDeleteEntryInTx(ctx context.Context, tx pgx.Tx, entryID string, deletedBy string, at time.Time) error
	FindEntriesByReportInTx(ctx context.Context, tx pgx.Tx, reportID string) ([]domain.Entry, error)
	FindEntriesByReport(ctx context.Context, reportID string) ([]domain.Entry, error)
	CountEntriesByReportInTx(ctx context.Context, tx pgx.Tx, reportID string) (int, error)
	// ExistsForReportMissionDateInTx reports whether a live entry already
	// occupies (report, mission, date). excludeEntryID skips the entry being
	// updated; pass "" on create. Callers hold the report row lock, so the
	// check cannot race with another writer on the same report.
	ExistsForReportMissionDateInTx(ctx context.Context, tx pgx.Tx, reportID, missionID string, date time.Time, excludeEntryID string) (bool, error)
}

// LinkRepositoryFacade defines persistence operations for report↔mission
// relation rows.
type LinkRepositoryFacade interface {
	// SaveReportMissionLinkInTx inserts a relation row. A unique violation
	// on (report, mission) is returned as apperrors.ErrDuplicate so the
	// linking service can treat a concurrent insert as success.
	SaveReportMissionLinkInTx(ctx context.Context, tx pgx.Tx, link domain.ReportMissionLink) error
	FindReportMissionLinkInTx(ctx context.Context, tx pgx.Tx, reportID, missionID string) (*domain.ReportMissionLink, error)
	FindMissionIDsByReportInTx(ctx context.Context, tx pgx.Tx, reportID string) ([]string, error)
}
