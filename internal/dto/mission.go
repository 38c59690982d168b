package dto

import "github.com/indeko/indeko_backend/internal/core/domain"

// CreateMissionRequest is the payload for creating a mission.
type CreateMissionRequest struct {
	CompanyID    string `json:"companyID" binding:"required"`
	Title        string `json:"title" binding:"required"`
	DailyRate    int64  `json:"dailyRate" binding:"required,min=0"`
	CurrencyCode string `json:"currencyCode" binding:"required,len=3"`
}

// UpdateMissionRequest is the payload for updating a mission.
type UpdateMissionRequest struct {
	Title     *string `json:"title,omitempty"`
	DailyRate *int64  `json:"dailyRate,omitempty"`
	IsActive  *bool   `json:"isActive,omitempty"`
}

// MissionResponse defines the data returned for a mission.
type MissionResponse struct {
	MissionID    string `json:"missionID"`
	CompanyID    string `json:"companyID"`
	Title        string `json:"title"`
	DailyRate    int64  `json:"dailyRate"`
	CurrencyCode string `json:"currencyCode"`
	IsActive     bool   `json:"isActive"`
}

// ToMissionResponse converts a domain.Mission to MissionResponse.
func ToMissionResponse(m *domain.Mission) MissionResponse {
	return MissionResponse{
		MissionID:    m.MissionID,
		CompanyID:    m.CompanyID,
		Title:        m.Title,
		DailyRate:    m.DailyRate,
		CurrencyCode: m.CurrencyCode,
		IsActive:     m.IsActive,
	}
}

// ToMissionResponses converts a slice of domain.Mission to []MissionResponse.
func ToMissionResponses(missions []domain.Mission) []MissionResponse {
	responses := make([]MissionResponse, len(missions))
	for i := range missions {
		responses[i] = ToMissionResponse(&missions[i])
	}
	return responses
}
