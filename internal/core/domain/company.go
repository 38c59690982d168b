package domain

import "time"

// Company is a client company a freelancer runs missions for.
type Company struct {
	CompanyID          string `json:"companyID"`
	OwnerID            string `json:"ownerID"`
	Name               string `json:"name"`
	RegistrationNumber string `json:"registrationNumber,omitempty"`
	ContactEmail       string `json:"contactEmail,omitempty"`
	AuditFields
	DeletedAt *time.Time `json:"-"`
}
