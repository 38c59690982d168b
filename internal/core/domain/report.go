package domain

import (
	"fmt"
	"time"

	"github.com/indeko/indeko_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ReportStatus indicates where a report is in its lifecycle.
type ReportStatus string

const (
	ReportDraft     ReportStatus = "DRAFT"
	ReportSubmitted ReportStatus = "SUBMITTED"
	ReportLocked    ReportStatus = "LOCKED"
)

// Report is a monthly activity report (CRA): the aggregate of all entries a
// freelancer declares for one period. Totals are derived fields, recomputed by
// the totals service on every entry mutation; they are never set directly by
// request handlers.
type Report struct {
	ReportID     string          `json:"reportID"`
	OwnerID      string          `json:"ownerID"`
	Month        int             `json:"month"` // 1..12
	Year         int             `json:"year"`
	Status       ReportStatus    `json:"status"`
	CurrencyCode string          `json:"currencyCode"`
	TotalDays    decimal.Decimal `json:"totalDays"`
	TotalAmount  int64           `json:"totalAmount"` // minor currency units
	LockedAt     *time.Time      `json:"lockedAt,omitempty"`
	Entries      []Entry         `json:"entries,omitempty"` // loaded separately
	AuditFields
	DeletedAt *time.Time `json:"-"`
}

// reportTransitions is the full transition table. Absent pairs are invalid:
// no skips (draft→locked) and no reversals.
var reportTransitions = map[ReportStatus]ReportStatus{
	ReportDraft:     ReportSubmitted,
	ReportSubmitted: ReportLocked,
}

// CanTransition reports whether moving from the report's current status to
// the target status is a legal lifecycle step.
func (r *Report) CanTransition(target ReportStatus) bool {
	next, ok := reportTransitions[r.Status]
	return ok && next == target
}

// EnsureModifiable returns ErrConflict unless the report is still a draft.
// Every entry-mutation and report-mutation call site delegates here instead of
// re-implementing the status check.
func (r *Report) EnsureModifiable() error {
	if r.Status != ReportDraft {
		return fmt.Errorf("%w: report is not modifiable", apperrors.ErrConflict)
	}
	return nil
}

// PeriodContains reports whether the given date falls inside the report's
// month and year.
func (r *Report) PeriodContains(date time.Time) bool {
	return int(date.Month()) == r.Month && date.Year() == r.Year
}

// PeriodString renders the period as YYYY-MM, the form used in ledger payloads.
func (r *Report) PeriodString() string {
	return fmt.Sprintf("%04d-%02d", r.Year, r.Month)
}
