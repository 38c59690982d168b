package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is the persistence shape of an activity entry. The report and mission
// references live in the link tables; the read queries join them in.
type Entry struct {
	EntryID     string          `json:"entryID"`
	Date        time.Time       `json:"date"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   int64           `json:"unitPrice"`
	Description string          `json:"description"`
	MissionID   string          `json:"missionID,omitempty"`   // joined from entry_mission_links
	MissionName string          `json:"missionName,omitempty"` // joined from missions
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
