package domain

import "time"

// LedgerCommit records one successful lock of a report in the append-only
// audit ledger. Application code inserts these rows and never updates or
// deletes them; Sequence is monotonic per report.
type LedgerCommit struct {
	CommitID    string    `json:"commitID"`
	ReportID    string    `json:"reportID"`
	Sequence    int64     `json:"sequence"`
	PayloadHash string    `json:"payloadHash"` // blake3 of the canonical payload content
	RevisionID  string    `json:"revisionID"`  // revision in the ledger store
	CreatedAt   time.Time `json:"createdAt"`
	CreatedBy   string    `json:"createdBy"`
}
