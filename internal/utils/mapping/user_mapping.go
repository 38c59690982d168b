package mapping

import (
	"github.com/indeko/indeko_backend/internal/core/domain"
	"github.com/indeko/indeko_backend/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:       d.UserID,
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		AuditFields:  ToModelAuditFields(d.AuditFields),
		DeletedAt:    d.DeletedAt,
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:       m.UserID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
		DeletedAt:    m.DeletedAt,
	}
}

// ToModelCompany converts a domain Company to a model Company
func ToModelCompany(d domain.Company) models.Company {
	return models.Company{
		CompanyID:          d.CompanyID,
		OwnerID:            d.OwnerID,
		Name:               d.Name,
		RegistrationNumber: d.RegistrationNumber,
		ContactEmail:       d.ContactEmail,
		AuditFields:        ToModelAuditFields(d.AuditFields),
		DeletedAt:          d.DeletedAt,
	}
}

// ToDomainCompany converts a model Company to a domain Company
func ToDomainCompany(m models.Company) domain.Company {
	return domain.Company{
		CompanyID:          m.CompanyID,
		OwnerID:            m.OwnerID,
		Name:               m.Name,
		RegistrationNumber: m.RegistrationNumber,
		ContactEmail:       m.ContactEmail,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
		DeletedAt:          m.DeletedAt,
	}
}

// ToModelMission converts a domain Mission to a model Mission
func ToModelMission(d domain.Mission) models.Mission {
	return models.Mission{
		MissionID:    d.MissionID,
		OwnerID:      d.OwnerID,
		CompanyID:    d.CompanyID,
		Title:        d.Title,
		DailyRate:    d.DailyRate,
		CurrencyCode: d.CurrencyCode,
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
		DeletedAt:    d.DeletedAt,
	}
}

// ToDomainMission converts a model Mission to a domain Mission
func ToDomainMission(m models.Mission) domain.Mission {
	return domain.Mission{
		MissionID:    m.MissionID,
		OwnerID:      m.OwnerID,
		CompanyID:    m.CompanyID,
		Title:        m.Title,
		DailyRate:    m.DailyRate,
		CurrencyCode: m.CurrencyCode,
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
		DeletedAt:    m.DeletedAt,
	}
}
