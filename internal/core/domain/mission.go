package domain

import "time"

// Mission is a unit of work entries can be attributed to. It belongs to a
// client company and to the freelancer who created it.
type Mission struct {
	MissionID    string `json:"missionID"`
	OwnerID      string `json:"ownerID"`
	CompanyID    string `json:"companyID"`
	Title        string `json:"title"`
	DailyRate    int64  `json:"dailyRate"` // minor currency units
	CurrencyCode string `json:"currencyCode"`
	IsActive     bool   `json:"isActive"`
	AuditFields
	DeletedAt *time.Time `json:"-"`
}
