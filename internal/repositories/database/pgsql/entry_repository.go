package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/indeko/indeko_backend/internal/apperrors"
	"github.com/indeko/indeko_backend/internal/core/domain"
	portsrepo "github.com/indeko/indeko_backend/internal/core/ports/repositories"
	"github.com/indeko/indeko_backend/internal/models"
	"github.com/indeko/indeko_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// entrySelect joins the relation tables so every read carries the mission
// reference and name. All three sources filter soft-deleted rows.
const entrySelect = `
	SELECT e.entry_id, e.entry_date, e.quantity, e.unit_price, e.description,
	       eml.mission_id, m.title,
	       e.created_at, e.created_by, e.last_updated_at, e.last_updated_by, e.deleted_at
	FROM entries e
	JOIN entry_report_links erl ON erl.entry_id = e.entry_id AND erl.deleted_at IS NULL
	JOIN entry_mission_links eml ON eml.entry_id = e.entry_id AND eml.deleted_at IS NULL
	JOIN missions m ON m.mission_id = eml.mission_id
`

type PgxEntryRepository struct {
	BaseRepository
}

// NewPgxEntryRepository creates a new repository for entry data and its
// relation rows.
func NewPgxEntryRepository(pool *pgxpool.Pool) *PgxEntryRepository {
	return &PgxEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.EntryRepositoryFacade = (*PgxEntryRepository)(nil)

func scanEntry(row pgx.Row) (*models.Entry, error) {
	var m models.Entry
	err := row.Scan(
		&m.EntryID,
		&m.Date,
		&m.Quantity,
		&m.UnitPrice,
		&m.Description,
		&m.MissionID,
		&m.MissionName,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveEntryInTx inserts the entry plus its two relation rows. The caller
// holds the report row lock.
func (r *PgxEntryRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.Entry, reportID string) error {
	m := mapping.ToModelEntry(entry)

	entryQuery := `
		INSERT INTO entries (entry_id, entry_date, quantity, unit_price, description,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	if _, err := tx.Exec(ctx, entryQuery,
		m.EntryID, m.Date, m.Quantity, m.UnitPrice, m.Description,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: entry %s already exists", apperrors.ErrConflict, m.EntryID)
		}
		return apperrors.NewAppError(500, "failed to insert entry "+m.EntryID, err)
	}

	linkQueries := []struct {
		query string
		args  []any
	}{
		{
			query: `INSERT INTO entry_report_links (link_id, entry_id, report_id, created_at, created_by, last_updated_at, last_updated_by)
				VALUES ($1, $2, $3, $4, $5, $6, $7);`,
			args: []any{uuid.NewString(), m.EntryID, reportID, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy},
		},
		{
			query: `INSERT INTO entry_mission_links (link_id, entry_id, mission_id, created_at, created_by, last_updated_at, last_updated_by)
				VALUES ($1, $2, $3, $4, $5, $6, $7);`,
			args: []any{uuid.NewString(), m.EntryID, m.MissionID, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy},
		},
	}
	for _, lq := range linkQueries {
		if _, err := tx.Exec(ctx, lq.query, lq.args...); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: entry %s is already linked", apperrors.ErrConflict, m.EntryID)
			}
			return apperrors.NewAppError(500, "failed to link entry "+m.EntryID, err)
		}
	}
	return nil
}

// FindEntryByIDInTx returns the live entry and the id of its report.
func (r *PgxEntryRepository) FindEntryByIDInTx(ctx context.Context, tx pgx.Tx, entryID string) (*domain.Entry, string, error) {
	query := `
		SELECT e.entry_id, e.entry_date, e.quantity, e.unit_price, e.description,
		       eml.mission_id, m.title, erl.report_id,
		       e.created_at, e.created_by, e.last_updated_at, e.last_updated_by, e.deleted_at
		FROM entries e
		JOIN entry_report_links erl ON erl.entry_id = e.entry_id AND erl.deleted_at IS NULL
		JOIN entry_mission_links eml ON eml.entry_id = e.entry_id AND eml.deleted_at IS NULL
		JOIN missions m ON m.mission_id = eml.mission_id
		WHERE e.entry_id = $1 AND e.deleted_at IS NULL;
	`
	var m models.Entry
	var reportID string
	err := tx.QueryRow(ctx, query, entryID).Scan(
		&m.EntryID, &m.Date, &m.Quantity, &m.UnitPrice, &m.Description,
		&m.MissionID, &m.MissionName, &reportID,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", apperrors.ErrNotFound
		}
		return nil, "", apperrors.NewAppError(500, "failed to find entry "+entryID, err)
	}
	d := mapping.ToDomainEntry(m)
	return &d, reportID, nil
}

// FindEntryReportID resolves which report a live entry belongs to, without a
// transaction, so the caller can take the report lock before mutating.
func (r *PgxEntryRepository) FindEntryReportID(ctx context.Context, entryID string) (string, error) {
	query := `
		SELECT erl.report_id
		FROM entry_report_links erl
		JOIN entries e ON e.entry_id = erl.entry_id AND e.deleted_at IS NULL
		WHERE erl.entry_id = $1 AND erl.deleted_at IS NULL;
	`
	var reportID string
	err := r.Pool.QueryRow(ctx, query, entryID).Scan(&reportID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", apperrors.NewAppError(500, "failed to resolve report for entry "+entryID, err)
	}
	return reportID, nil
}

// UpdateEntryInTx persists updated entry fields.
func (r *PgxEntryRepository) UpdateEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.Entry) error {
	m := mapping.ToModelEntry(entry)
	query := `
		UPDATE entries
		SET entry_date = $2, quantity = $3, unit_price = $4, description = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE entry_id = $1 AND deleted_at IS NULL;
	`
	tag, err := tx.Exec(ctx, query, m.EntryID, m.Date, m.Quantity, m.UnitPrice, m.Description, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update entry "+m.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SoftDeleteEntryInTx marks the entry and its relation rows deleted.
func (r *PgxEntryRepository) SoftDeleteEntryInTx(ctx context.Context, tx pgx.Tx, entryID string, deletedBy string, at time.Time) error {
	tag, err := tx.Exec(ctx, `
		UPDATE entries SET deleted_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE entry_id = $1 AND deleted_at IS NULL;
	`, entryID, at, deletedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to soft delete entry "+entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	for _, table := range []string{"entry_report_links", "entry_mission_links"} {
		query := `UPDATE ` + table + ` SET deleted_at = $2, last_updated_at = $2, last_updated_by = $3
			WHERE entry_id = $1 AND deleted_at IS NULL;`
		if _, err := tx.Exec(ctx, query, entryID, at, deletedBy); err != nil {
			return apperrors.NewAppError(500, "failed to soft delete links for entry "+entryID, err)
		}
	}
	return nil
}

func (r *PgxEntryRepository) findEntriesByReport(ctx context.Context, q interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}, reportID string) ([]domain.Entry, error) {
	query := entrySelect + `
		WHERE erl.report_id = $1 AND e.deleted_at IS NULL
		ORDER BY e.entry_date, eml.mission_id, e.entry_id;
	`
	rows, err := q.Query(ctx, query, reportID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries for report "+reportID, err)
	}
	defer rows.Close()

	var entries []models.Entry
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry row", err)
		}
		entries = append(entries, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate entry rows", err)
	}
	return mapping.ToDomainEntrySlice(entries), nil
}

// FindEntriesByReportInTx lists the report's live entries inside the
// caller's transaction.
func (r *PgxEntryRepository) FindEntriesByReportInTx(ctx context.Context, tx pgx.Tx, reportID string) ([]domain.Entry, error) {
	return r.findEntriesByReport(ctx, tx, reportID)
}

// FindEntriesByReport lists the report's live entries.
func (r *PgxEntryRepository) FindEntriesByReport(ctx context.Context, reportID string) ([]domain.Entry, error) {
	return r.findEntriesByReport(ctx, r.Pool, reportID)
}

// CountEntriesByReportInTx counts the report's live entries.
func (r *PgxEntryRepository) CountEntriesByReportInTx(ctx context.Context, tx pgx.Tx, reportID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM entries e
		JOIN entry_report_links erl ON erl.entry_id = e.entry_id AND erl.deleted_at IS NULL
		WHERE erl.report_id = $1 AND e.deleted_at IS NULL;
	`
	var count int
	if err := tx.QueryRow(ctx, query, reportID).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count entries for report "+reportID, err)
	}
	return count, nil
}

// ExistsForReportMissionDateInTx reports whether a live entry already
// occupies (report, mission, date). The caller holds the report row lock, so
// the check is race-free for writers on the same report.
func (r *PgxEntryRepository) ExistsForReportMissionDateInTx(ctx context.Context, tx pgx.Tx, reportID, missionID string, date time.Time, excludeEntryID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM entries e
			JOIN entry_report_links erl ON erl.entry_id = e.entry_id AND erl.deleted_at IS NULL
			JOIN entry_mission_links eml ON eml.entry_id = e.entry_id AND eml.deleted_at IS NULL
			WHERE erl.report_id = $1 AND eml.mission_id = $2 AND e.entry_date = $3
			  AND e.deleted_at IS NULL AND e.entry_id <> $4
		);
	`
	var exists bool
	if err := tx.QueryRow(ctx, query, reportID, missionID, date, excludeEntryID).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check entry uniqueness", err)
	}
	return exists, nil
}
