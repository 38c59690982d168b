package models

import "time"

// ReportMissionLink is a relation row between a report and a mission.
type ReportMissionLink struct {
	LinkID    string `json:"linkID"`
	ReportID  string `json:"reportID"`
	MissionID string `json:"missionID"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// EntryReportLink is a relation row between an entry and its report.
type EntryReportLink struct {
	LinkID   string `json:"linkID"`
	EntryID  string `json:"entryID"`
	ReportID string `json:"reportID"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// EntryMissionLink is a relation row between an entry and its mission.
type EntryMissionLink struct {
	LinkID    string `json:"linkID"`
	EntryID   string `json:"entryID"`
	MissionID string `json:"missionID"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
