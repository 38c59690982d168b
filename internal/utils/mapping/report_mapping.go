package mapping

import (
	"github.com/indeko/indeko_backend/internal/core/domain"
	"github.com/indeko/indeko_backend/internal/models"
)

// ToModelReport converts a domain Report to a model Report
func ToModelReport(d domain.Report) models.Report {
	return models.Report{
		ReportID:     d.ReportID,
		OwnerID:      d.OwnerID,
		Month:        d.Month,
		Year:         d.Year,
		Status:       models.ReportStatus(d.Status),
		CurrencyCode: d.CurrencyCode,
		TotalDays:    d.TotalDays,
		TotalAmount:  d.TotalAmount,
		LockedAt:     d.LockedAt,
		AuditFields:  ToModelAuditFields(d.AuditFields),
		DeletedAt:    d.DeletedAt,
	}
}

// ToDomainReport converts a model Report to a domain Report
func ToDomainReport(m models.Report) domain.Report {
	return domain.Report{
		ReportID:     m.ReportID,
		OwnerID:      m.OwnerID,
		Month:        m.Month,
		Year:         m.Year,
		Status:       domain.ReportStatus(m.Status),
		CurrencyCode: m.CurrencyCode,
		TotalDays:    m.TotalDays,
		TotalAmount:  m.TotalAmount,
		LockedAt:     m.LockedAt,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
		DeletedAt:    m.DeletedAt,
	}
}

// ToModelEntry converts a domain Entry to a model Entry
func ToModelEntry(d domain.Entry) models.Entry {
	return models.Entry{
		EntryID:     d.EntryID,
		Date:        d.Date,
		Quantity:    d.Quantity,
		UnitPrice:   d.UnitPrice,
		Description: d.Description,
		MissionID:   d.MissionID,
		MissionName: d.MissionName,
		AuditFields: ToModelAuditFields(d.AuditFields),
		DeletedAt:   d.DeletedAt,
	}
}

// ToDomainEntry converts a model Entry to a domain Entry
func ToDomainEntry(m models.Entry) domain.Entry {
	return domain.Entry{
		EntryID:     m.EntryID,
		Date:        m.Date,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Description: m.Description,
		MissionID:   m.MissionID,
		MissionName: m.MissionName,
		AuditFields: ToDomainAuditFields(m.AuditFields),
		DeletedAt:   m.DeletedAt,
	}
}

// ToDomainEntrySlice converts a slice of model Entries to domain Entries
func ToDomainEntrySlice(ms []models.Entry) []domain.Entry {
	ds := make([]domain.Entry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntry(m)
	}
	return ds
}

// ToDomainLedgerCommit converts a model LedgerCommit to a domain LedgerCommit
func ToDomainLedgerCommit(m models.LedgerCommit) domain.LedgerCommit {
	return domain.LedgerCommit{
		CommitID:    m.CommitID,
		ReportID:    m.ReportID,
		Sequence:    m.Sequence,
		PayloadHash: m.PayloadHash,
		RevisionID:  m.RevisionID,
		CreatedAt:   m.CreatedAt,
		CreatedBy:   m.CreatedBy,
	}
}
