package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportStatus indicates the state of a report row.
type ReportStatus string

const (
	ReportDraft     ReportStatus = "DRAFT"
	ReportSubmitted ReportStatus = "SUBMITTED"
	ReportLocked    ReportStatus = "LOCKED"
)

// Report is the persistence shape of a monthly activity report.
type Report struct {
	ReportID     string          `json:"reportID"`
	OwnerID      string          `json:"ownerID"`
	Month        int             `json:"month"`
	Year         int             `json:"year"`
	Status       ReportStatus    `json:"status"`
	CurrencyCode string          `json:"currencyCode"`
	TotalDays    decimal.Decimal `json:"totalDays"`
	TotalAmount  int64           `json:"totalAmount"`
	LockedAt     *time.Time      `json:"lockedAt,omitempty"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
