package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/indeko/indeko_backend/internal/apperrors"
	"github.com/indeko/indeko_backend/internal/core/domain"
	portsrepo "github.com/indeko/indeko_backend/internal/core/ports/repositories"
	"github.com/indeko/indeko_backend/internal/models"
	"github.com/indeko/indeko_backend/internal/utils/mapping"
	"github.com/indeko/indeko_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const reportColumns = `report_id, owner_id, month, year, status, currency_code,
	total_days, total_amount, locked_at,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at`

type PgxReportRepository struct {
	BaseRepository
}

// NewPgxReportRepository creates a new repository for report data.
func NewPgxReportRepository(pool *pgxpool.Pool) *PgxReportRepository {
	return &PgxReportRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportRepositoryFacade = (*PgxReportRepository)(nil)
var _ portsrepo.ReportAdminRepositoryFacade = (*PgxReportRepository)(nil)
var _ portsrepo.TxManager = (*PgxReportRepository)(nil)

func scanReport(row pgx.Row) (*models.Report, error) {
	var m models.Report
	err := row.Scan(
		&m.ReportID,
		&m.OwnerID,
		&m.Month,
		&m.Year,
		&m.Status,
		&m.CurrencyCode,
		&m.TotalDays,
		&m.TotalAmount,
		&m.LockedAt,
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

// SaveReport inserts a new report row. A duplicate period for the owner
// surfaces as apperrors.ErrDuplicate.
func (r *PgxReportRepository) SaveReport(ctx context.Context, report domain.Report) error {
	m := mapping.ToModelReport(report)
	query := `
		INSERT INTO reports (` + reportColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ReportID, m.OwnerID, m.Month, m.Year, m.Status, m.CurrencyCode,
		m.TotalDays, m.TotalAmount, m.LockedAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy, m.DeletedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: report for period %02d/%04d already exists", apperrors.ErrDuplicate, m.Month, m.Year)
		}
		return apperrors.NewAppError(500, "failed to insert report "+m.ReportID, err)
	}
	return nil
}

// FindReportByID retrieves a live report by its ID.
func (r *PgxReportRepository) FindReportByID(ctx context.Context, reportID string) (*domain.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE report_id = $1 AND deleted_at IS NULL;`
	m, err := scanReport(r.Pool.QueryRow(ctx, query, reportID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find report by ID "+reportID, err)
	}
	d := mapping.ToDomainReport(*m)
	return &d, nil
}

// ListReportsByOwner returns the owner's live reports newest-first with
// keyset pagination.
func (r *PgxReportRepository) ListReportsByOwner(ctx context.Context, ownerID string, limit int, nextToken *string) ([]domain.Report, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + reportColumns + ` FROM reports WHERE owner_id = $1 AND deleted_at IS NULL`
	args := []any{ownerID}
	if nextToken != nil && *nextToken != "" {
		createdAt, reportID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (created_at, report_id) < ($2, $3)`
		args = append(args, createdAt, reportID)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, report_id DESC LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list reports", err)
	}
	defer rows.Close()

	var reports []domain.Report
	for rows.Next() {
		m, err := scanReport(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan report row", err)
		}
		reports = append(reports, mapping.ToDomainReport(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to iterate report rows", err)
	}

	var token *string
	if len(reports) > limit {
		reports = reports[:limit]
		last := reports[len(reports)-1]
		t := pagination.EncodeToken(last.CreatedAt, last.ReportID)
		token = &t
	}
	return reports, token, nil
}

// FindReportForUpdate loads the live report row with a FOR UPDATE lock,
// serializing concurrent mutations of the same report.
func (r *PgxReportRepository) FindReportForUpdate(ctx context.Context, tx pgx.Tx, reportID string) (*domain.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE report_id = $1 AND deleted_at IS NULL FOR UPDATE;`
	m, err := scanReport(tx.QueryRow(ctx, query, reportID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock report "+reportID, err)
	}
	d := mapping.ToDomainReport(*m)
	return &d, nil
}

// UpdateReportTotalsInTx persists recomputed aggregate totals.
func (r *PgxReportRepository) UpdateReportTotalsInTx(ctx context.Context, tx pgx.Tx, reportID string, totalDays decimal.Decimal, totalAmount int64, updatedBy string, at time.Time) error {
	query := `
		UPDATE reports
		SET total_days = $2, total_amount = $3, last_updated_at = $4, last_updated_by = $5
		WHERE report_id = $1 AND deleted_at IS NULL;
	`
	tag, err := tx.Exec(ctx, query, reportID, totalDays, totalAmount, at, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update totals for report "+reportID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateReportStatusInTx persists a lifecycle transition. The caller has
// already validated the transition against the state machine.
func (r *PgxReportRepository) UpdateReportStatusInTx(ctx context.Context, tx pgx.Tx, reportID string, status domain.ReportStatus, lockedAt *time.Time, updatedBy string, at time.Time) error {
	query := `
		UPDATE reports
		SET status = $2, locked_at = COALESCE($3, locked_at), last_updated_at = $4, last_updated_by = $5
		WHERE report_id = $1 AND deleted_at IS NULL;
	`
	tag, err := tx.Exec(ctx, query, reportID, string(status), lockedAt, at, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for report "+reportID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SoftDeleteReportInTx marks the report deleted. Entries stay in place but
// become unreachable through report-scoped queries.
func (r *PgxReportRepository) SoftDeleteReportInTx(ctx context.Context, tx pgx.Tx, reportID string, deletedBy string, at time.Time) error {
	query := `
		UPDATE reports
		SET deleted_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE report_id = $1 AND deleted_at IS NULL;
	`
	tag, err := tx.Exec(ctx, query, reportID, at, deletedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to soft delete report "+reportID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListReportIDs returns report ids for the reconciliation pass. With
// AllIncludingDeleted it also returns soft-deleted reports, whose ledger
// history must still verify.
func (r *PgxReportRepository) ListReportIDs(ctx context.Context, visibility portsrepo.Visibility) ([]string, error) {
	query := `SELECT report_id FROM reports`
	if visibility == portsrepo.Visible {
		query += ` WHERE deleted_at IS NULL`
	}
	query += ` ORDER BY report_id;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list report ids", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan report id", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
