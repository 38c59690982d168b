package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/indeko/indeko_backend/internal/apperrors"
	"github.com/indeko/indeko_backend/internal/core/domain"
	portsrepo "github.com/indeko/indeko_backend/internal/core/ports/repositories"
	"github.com/indeko/indeko_backend/internal/models"
	"github.com/indeko/indeko_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const missionColumns = `mission_id, owner_id, company_id, title, daily_rate, currency_code, is_active, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

type PgxMissionRepository struct {
	BaseRepository
}

// NewPgxMissionRepository creates a new repository for mission data.
func NewPgxMissionRepository(pool *pgxpool.Pool) *PgxMissionRepository {
	return &PgxMissionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MissionRepositoryFacade = (*PgxMissionRepository)(nil)

func scanMission(row pgx.Row) (*models.Mission, error) {
	var m models.Mission
	err := row.Scan(
		&m.MissionID, &m.OwnerID, &m.CompanyID, &m.Title, &m.DailyRate, &m.CurrencyCode, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxMissionRepository) SaveMission(ctx context.Context, mission domain.Mission) error {
	m := mapping.ToModelMission(mission)
	query := `
		INSERT INTO missions (mission_id, owner_id, company_id, title, daily_rate, currency_code, is_active,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.MissionID, m.OwnerID, m.CompanyID, m.Title, m.DailyRate, m.CurrencyCode, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert mission "+m.MissionID, err)
	}
	return nil
}

func (r *PgxMissionRepository) FindMissionByID(ctx context.Context, missionID string) (*domain.Mission, error) {
	query := `SELECT ` + missionColumns + ` FROM missions WHERE mission_id = $1 AND deleted_at IS NULL;`
	m, err := scanMission(r.Pool.QueryRow(ctx, query, missionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find mission "+missionID, err)
	}
	d := mapping.ToDomainMission(*m)
	return &d, nil
}

func (r *PgxMissionRepository) ListMissionsByOwner(ctx context.Context, ownerID string) ([]domain.Mission, error) {
	query := `SELECT ` + missionColumns + ` FROM missions WHERE owner_id = $1 AND deleted_at IS NULL ORDER BY title;`
	rows, err := r.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query missions for owner "+ownerID, err)
	}
	defer rows.Close()

	var missions []domain.Mission
	for rows.Next() {
		m, err := scanMission(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan mission row", err)
		}
		missions = append(missions, mapping.ToDomainMission(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate mission rows", err)
	}
	return missions, nil
}

func (r *PgxMissionRepository) UpdateMission(ctx context.Context, mission domain.Mission) error {
	m := mapping.ToModelMission(mission)
	query := `
		UPDATE missions
		SET title = $2, daily_rate = $3, currency_code = $4, is_active = $5, last_updated_at = $6, last_updated_by = $7
		WHERE mission_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, m.MissionID, m.Title, m.DailyRate, m.CurrencyCode, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update mission "+m.MissionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxMissionRepository) MarkMissionDeleted(ctx context.Context, missionID string, deletedBy string, at time.Time) error {
	query := `
		UPDATE missions SET deleted_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE mission_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, missionID, at, deletedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark mission deleted "+missionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
