package dto

import (
	"time"

	"github.com/indeko/indeko_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateReportRequest is the payload for creating a draft report.
type CreateReportRequest struct {
	Month        int    `json:"month" binding:"required,min=1,max=12"`
	Year         int    `json:"year" binding:"required,min=2000,max=2200"`
	CurrencyCode string `json:"currencyCode" binding:"required,len=3"`
}

// ReportResponse defines the data returned for a report.
type ReportResponse struct {
	ReportID     string          `json:"reportID"`
	Month        int             `json:"month"`
	Year         int             `json:"year"`
	Status       string          `json:"status"`
	CurrencyCode string          `json:"currencyCode"`
	TotalDays    decimal.Decimal `json:"totalDays"`
	TotalAmount  int64           `json:"totalAmount"`
	LockedAt     *time.Time      `json:"lockedAt,omitempty"`
	Entries      []EntryResponse `json:"entries,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ListReportsParams holds parameters for listing reports.
type ListReportsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListReportsResponse is the paginated report list.
type ListReportsResponse struct {
	Reports   []ReportResponse `json:"reports"`
	NextToken *string          `json:"nextToken,omitempty"`
}

// LockReportResponse is returned by a successful lock transition.
type LockReportResponse struct {
	Report     ReportResponse `json:"report"`
	RevisionID string         `json:"revisionID"`
}

// LedgerCommitResponse defines the data returned for one ledger commit.
type LedgerCommitResponse struct {
	ReportID    string    `json:"reportID"`
	Sequence    int64     `json:"sequence"`
	PayloadHash string    `json:"payloadHash"`
	RevisionID  string    `json:"revisionID"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToReportResponse converts a domain.Report to ReportResponse.
func ToReportResponse(r *domain.Report) ReportResponse {
	resp := ReportResponse{
		ReportID:     r.ReportID,
		Month:        r.Month,
		Year:         r.Year,
		Status:       string(r.Status),
		CurrencyCode: r.CurrencyCode,
		TotalDays:    r.TotalDays,
		TotalAmount:  r.TotalAmount,
		LockedAt:     r.LockedAt,
		CreatedAt:    r.CreatedAt,
	}
	if len(r.Entries) > 0 {
		resp.Entries = ToEntryResponses(r.Entries)
	}
	return resp
}

// ToLedgerCommitResponses converts domain ledger commits to response DTOs.
func ToLedgerCommitResponses(commits []domain.LedgerCommit) []LedgerCommitResponse {
	responses := make([]LedgerCommitResponse, len(commits))
	for i, c := range commits {
		responses[i] = LedgerCommitResponse{
			ReportID:    c.ReportID,
			Sequence:    c.Sequence,
			PayloadHash: c.PayloadHash,
			RevisionID:  c.RevisionID,
			CreatedAt:   c.CreatedAt,
		}
	}
	return responses
}

// ReconcileReport summarizes one reconciliation pass over the ledger store.
type ReconcileReport struct {
	CheckedReports int                `json:"checkedReports"`
	Consistent     int                `json:"consistent"`
	Relinked       []string           `json:"relinked,omitempty"`
	Orphans        []OrphanedRevision `json:"orphans,omitempty"`
}

// OrphanedRevision describes a ledger revision with no matching
// ledger_commits row, left for operator action.
type OrphanedRevision struct {
	ReportID   string `json:"reportID"`
	RevisionID string `json:"revisionID"`
	Reason     string `json:"reason"`
}
