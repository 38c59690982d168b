package models

import "time"

// Company is the persistence shape of a client company.
type Company struct {
	CompanyID          string `json:"companyID"`
	OwnerID            string `json:"ownerID"`
	Name               string `json:"name"`
	RegistrationNumber string `json:"registrationNumber,omitempty"`
	ContactEmail       string `json:"contactEmail,omitempty"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
