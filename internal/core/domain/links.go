package domain

import "time"

// Relation rows between aggregates are first-class entities with their own id
// and lifecycle. No aggregate table carries a foreign key to another
// aggregate; these rows are the only place the relationships exist.

// ReportMissionLink records that a report has at least one entry attributed
// to a mission. Created idempotently by the linking service.
type ReportMissionLink struct {
	LinkID    string `json:"linkID"`
	ReportID  string `json:"reportID"`
	MissionID string `json:"missionID"`
	AuditFields
	DeletedAt *time.Time `json:"-"`
}

// EntryReportLink attaches an entry to exactly one report.
type EntryReportLink struct {
	LinkID   string `json:"linkID"`
	EntryID  string `json:"entryID"`
	ReportID string `json:"reportID"`
	AuditFields
	DeletedAt *time.Time `json:"-"`
}

// EntryMissionLink attributes an entry to exactly one mission.
type EntryMissionLink struct {
	LinkID    string `json:"linkID"`
	EntryID   string `json:"entryID"`
	MissionID string `json:"missionID"`
	AuditFields
	DeletedAt *time.Time `json:"-"`
}
