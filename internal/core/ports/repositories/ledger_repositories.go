package repositories

import (
	"context"

	"github.com/indeko/indeko_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// LedgerCommitRepositoryFacade defines the persistence operations for the
// append-only ledger_commits table. There are deliberately no update or
// delete methods.
type LedgerCommitRepositoryFacade interface {
	SaveLedgerCommitInTx(ctx context.Context, tx pgx.Tx, commit domain.LedgerCommit) error
	// FindLatestCommitInTx returns the highest-sequence commit for the
	// report, or apperrors.ErrNotFound when the report was never locked.
	FindLatestCommitInTx(ctx context.Context, tx pgx.Tx, reportID string) (*domain.LedgerCommit, error)
	FindLatestCommit(ctx context.Context, reportID string) (*domain.LedgerCommit, error)
	NextSequenceInTx(ctx context.Context, tx pgx.Tx, reportID string) (int64, error)
	ListCommitsByReport(ctx context.Context, reportID string) ([]domain.LedgerCommit, error)
}

// LedgerStore is the append-only, version-controlled store the ledger
// service commits canonical payloads to. Implementations must pass payloads
// and messages as process arguments or file content, never interpolated into
// a shell command line.
type LedgerStore interface {
	// Init creates the store if it does not exist yet. Idempotent.
	Init(ctx context.Context) error
	// Head returns the current head revision id for the report's payload
	// path, or "" when the report has no revision yet.
	Head(ctx context.Context, reportID string) (string, error)
	// Message returns the commit message of the given revision.
	Message(ctx context.Context, revisionID string) (string, error)
	// Commit writes the payload as a new revision and returns its id.
	Commit(ctx context.Context, reportID string, payload []byte, message string) (string, error)
}
