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

const ledgerCommitColumns = `commit_id, report_id, sequence, payload_hash, revision_id, created_at, created_by`

// PgxLedgerCommitRepository persists ledger commit records. The table is
// append-only; this repository has no update or delete methods.
type PgxLedgerCommitRepository struct {
	BaseRepository
}

func NewPgxLedgerCommitRepository(pool *pgxpool.Pool) *PgxLedgerCommitRepository {
	return &PgxLedgerCommitRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerCommitRepositoryFacade = (*PgxLedgerCommitRepository)(nil)

func scanLedgerCommit(row pgx.Row) (*domain.LedgerCommit, error) {
	var c domain.LedgerCommit
	err := row.Scan(&c.CommitID, &c.ReportID, &c.Sequence, &c.PayloadHash, &c.RevisionID, &c.CreatedAt, &c.CreatedBy)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PgxLedgerCommitRepository) SaveLedgerCommitInTx(ctx context.Context, tx pgx.Tx, commit domain.LedgerCommit) error {
	query := `
		INSERT INTO ledger_commits (` + ledgerCommitColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := tx.Exec(ctx, query,
		commit.CommitID, commit.ReportID, commit.Sequence, commit.PayloadHash, commit.RevisionID, commit.CreatedAt, commit.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ledger sequence %d already recorded for report %s", apperrors.ErrConflict, commit.Sequence, commit.ReportID)
		}
		return apperrors.NewAppError(500, "failed to insert ledger commit for report "+commit.ReportID, err)
	}
	return nil
}

func (r *PgxLedgerCommitRepository) findLatestCommit(ctx context.Context, row pgx.Row, reportID string) (*domain.LedgerCommit, error) {
	c, err := scanLedgerCommit(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find latest ledger commit for report "+reportID, err)
	}
	return c, nil
}

const latestCommitQuery = `
	SELECT ` + ledgerCommitColumns + ` FROM ledger_commits
	WHERE report_id = $1
	ORDER BY sequence DESC
	LIMIT 1;
`

// FindLatestCommitInTx returns the highest-sequence commit for the report, or
// apperrors.ErrNotFound when the report was never locked.
func (r *PgxLedgerCommitRepository) FindLatestCommitInTx(ctx context.Context, tx pgx.Tx, reportID string) (*domain.LedgerCommit, error) {
	return r.findLatestCommit(ctx, tx.QueryRow(ctx, latestCommitQuery, reportID), reportID)
}

func (r *PgxLedgerCommitRepository) FindLatestCommit(ctx context.Context, reportID string) (*domain.LedgerCommit, error) {
	return r.findLatestCommit(ctx, r.Pool.QueryRow(ctx, latestCommitQuery, reportID), reportID)
}

// NextSequenceInTx computes the next monotonic sequence for the report. The
// caller holds the report row lock, so two lockers cannot read the same value.
func (r *PgxLedgerCommitRepository) NextSequenceInTx(ctx context.Context, tx pgx.Tx, reportID string) (int64, error) {
	query := `SELECT COALESCE(MAX(sequence), 0) + 1 FROM ledger_commits WHERE report_id = $1;`
	var next int64
	if err := tx.QueryRow(ctx, query, reportID).Scan(&next); err != nil {
		return 0, apperrors.NewAppError(500, "failed to compute next ledger sequence for report "+reportID, err)
	}
	return next, nil
}

func (r *PgxLedgerCommitRepository) ListCommitsByReport(ctx context.Context, reportID string) ([]domain.LedgerCommit, error) {
	query := `
		SELECT ` + ledgerCommitColumns + ` FROM ledger_commits
		WHERE report_id = $1
		ORDER BY sequence;
	`
	rows, err := r.Pool.Query(ctx, query, reportID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger commits for report "+reportID, err)
	}
	defer rows.Close()

	var commits []domain.LedgerCommit
	for rows.Next() {
		c, err := scanLedgerCommit(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger commit row", err)
		}
		commits = append(commits, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate ledger commit rows", err)
	}
	return commits, nil
}
