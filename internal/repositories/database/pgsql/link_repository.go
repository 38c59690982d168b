package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/indeko/indeko_backend/internal/apperrors"
	"github.com/indeko/indeko_backend/internal/core/domain"
	portsrepo "github.com/indeko/indeko_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLinkRepository struct {
	BaseRepository
}

// NewPgxLinkRepository creates a new repository for report-to-mission
// relation rows.
func NewPgxLinkRepository(pool *pgxpool.Pool) *PgxLinkRepository {
	return &PgxLinkRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LinkRepositoryFacade = (*PgxLinkRepository)(nil)

// SaveReportMissionLinkInTx inserts a relation row. A duplicate
// (report, mission) pair maps to apperrors.ErrDuplicate so the linking
// service can treat a concurrent insert as success.
func (r *PgxLinkRepository) SaveReportMissionLinkInTx(ctx context.Context, tx pgx.Tx, link domain.ReportMissionLink) error {
	query := `
		INSERT INTO report_mission_links (link_id, report_id, mission_id,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := tx.Exec(ctx, query,
		link.LinkID, link.ReportID, link.MissionID,
		link.CreatedAt, link.CreatedBy, link.LastUpdatedAt, link.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: report %s is already linked to mission %s", apperrors.ErrDuplicate, link.ReportID, link.MissionID)
		}
		return apperrors.NewAppError(500, "failed to insert report mission link", err)
	}
	return nil
}

// FindReportMissionLinkInTx returns the live relation row for the pair.
func (r *PgxLinkRepository) FindReportMissionLinkInTx(ctx context.Context, tx pgx.Tx, reportID, missionID string) (*domain.ReportMissionLink, error) {
	query := `
		SELECT link_id, report_id, mission_id, created_at, created_by, last_updated_at, last_updated_by, deleted_at
		FROM report_mission_links
		WHERE report_id = $1 AND mission_id = $2 AND deleted_at IS NULL;
	`
	var link domain.ReportMissionLink
	err := tx.QueryRow(ctx, query, reportID, missionID).Scan(
		&link.LinkID, &link.ReportID, &link.MissionID,
		&link.CreatedAt, &link.CreatedBy, &link.LastUpdatedAt, &link.LastUpdatedBy, &link.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find report mission link", err)
	}
	return &link, nil
}

// FindMissionIDsByReportInTx lists the missions linked to the report.
func (r *PgxLinkRepository) FindMissionIDsByReportInTx(ctx context.Context, tx pgx.Tx, reportID string) ([]string, error) {
	query := `
		SELECT mission_id FROM report_mission_links
		WHERE report_id = $1 AND deleted_at IS NULL
		ORDER BY mission_id;
	`
	rows, err := tx.Query(ctx, query, reportID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query mission links for report "+reportID, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan mission link row", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate mission link rows", err)
	}
	return ids, nil
}
