package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Visibility selects whether soft-deleted rows are visible to a query.
// Request-facing code only ever receives repositories operating with Visible;
// AllIncludingDeleted exists for offline reconciliation and admin tooling and
// is never reachable from handlers.
type Visibility int

const (
	Visible Visibility = iota
	AllIncludingDeleted
)

// TxManager begins a database transaction, runs fn inside it, and commits on
// success or rolls back on error. Repository methods suffixed InTx expect the
// pgx.Tx handed to fn.
type TxManager interface {
	WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}
