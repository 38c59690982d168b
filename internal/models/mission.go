package models

import "time"

// Mission is the persistence shape of a mission.
type Mission struct {
	MissionID    string `json:"missionID"`
	OwnerID      string `json:"ownerID"`
	CompanyID    string `json:"companyID"`
	Title        string `json:"title"`
	DailyRate    int64  `json:"dailyRate"`
	CurrencyCode string `json:"currencyCode"`
	IsActive     bool   `json:"isActive"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
