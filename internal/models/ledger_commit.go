package models

import "time"

// LedgerCommit is the persistence shape of one lock event in the audit
// ledger. Rows are insert-only; no update or delete statement is ever issued
// against this table by application code.
type LedgerCommit struct {
	CommitID    string    `json:"commitID"`
	ReportID    string    `json:"reportID"`
	Sequence    int64     `json:"sequence"`
	PayloadHash string    `json:"payloadHash"`
	RevisionID  string    `json:"revisionID"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedBy   string    `json:"createdBy"`
}
