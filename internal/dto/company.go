package dto

import "github.com/indeko/indeko_backend/internal/core/domain"

// CreateCompanyRequest is the payload for creating a client company.
type CreateCompanyRequest struct {
	Name               string `json:"name" binding:"required"`
	RegistrationNumber string `json:"registrationNumber"`
	ContactEmail       string `json:"contactEmail" binding:"omitempty,email"`
}

// UpdateCompanyRequest is the payload for updating a company.
type UpdateCompanyRequest struct {
	Name               *string `json:"name,omitempty"`
	RegistrationNumber *string `json:"registrationNumber,omitempty"`
	ContactEmail       *string `json:"contactEmail,omitempty" binding:"omitempty,email"`
}

// CompanyResponse defines the data returned for a company.
type CompanyResponse struct {
	CompanyID          string `json:"companyID"`
	Name               string `json:"name"`
	RegistrationNumber string `json:"registrationNumber,omitempty"`
	ContactEmail       string `json:"contactEmail,omitempty"`
}

// ToCompanyResponse converts a domain.Company to CompanyResponse.
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID:          c.CompanyID,
		Name:               c.Name,
		RegistrationNumber: c.RegistrationNumber,
		ContactEmail:       c.ContactEmail,
	}
}

// ToCompanyResponses converts a slice of domain.Company to []CompanyResponse.
func ToCompanyResponses(companies []domain.Company) []CompanyResponse {
	responses := make([]CompanyResponse, len(companies))
	for i := range companies {
		responses[i] = ToCompanyResponse(&companies[i])
	}
	return responses
}
