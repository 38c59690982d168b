package dto

import (
	"time"

	"github.com/indeko/indeko_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryRequest is the payload for adding an entry to a report.
type CreateEntryRequest struct {
	MissionID   string          `json:"missionID" binding:"required"`
	Date        time.Time       `json:"date" binding:"required" time_format:"2006-01-02"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   int64           `json:"unitPrice" binding:"required,min=0"`
	Description string          `json:"description"`
}

// UpdateEntryRequest is the payload for updating an entry. The mission an
// entry is attributed to is immutable; delete and recreate to move it.
type UpdateEntryRequest struct {
	Date        *time.Time       `json:"date,omitempty" time_format:"2006-01-02"`
	Quantity    *decimal.Decimal `json:"quantity,omitempty"`
	UnitPrice   *int64           `json:"unitPrice,omitempty"`
	Description *string          `json:"description,omitempty"`
}

// EntryResponse defines the data returned for an entry.
type EntryResponse struct {
	EntryID     string          `json:"entryID"`
	Date        time.Time       `json:"date"`
	MissionID   string          `json:"missionID"`
	MissionName string          `json:"missionName,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   int64           `json:"unitPrice"`
	LineTotal   int64           `json:"lineTotal"`
	Description string          `json:"description"`
}

// ToEntryResponse converts a domain.Entry to EntryResponse.
func ToEntryResponse(e *domain.Entry) EntryResponse {
	return EntryResponse{
		EntryID:     e.EntryID,
		Date:        e.Date,
		MissionID:   e.MissionID,
		MissionName: e.MissionName,
		Quantity:    e.Quantity,
		UnitPrice:   e.UnitPrice,
		LineTotal:   e.LineTotal(),
		Description: e.Description,
	}
}

// ToEntryResponses converts a slice of domain.Entry to []EntryResponse.
func ToEntryResponses(entries []domain.Entry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToEntryResponse(&entries[i])
	}
	return responses
}
