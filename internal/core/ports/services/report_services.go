package services

import (
	"context"

	"github.com/indeko/indeko_backend/internal/core/domain"
	"github.com/indeko/indeko_backend/internal/dto"
)

// ReportSvcFacade exposes report lifecycle operations to the request layer.
// Every method is scoped to the authenticated owner; other owners' reports
// surface apperrors.ErrNotFound.
type ReportSvcFacade interface {
	CreateReport(ctx context.Context, ownerID string, req dto.CreateReportRequest) (*domain.Report, error)
	GetReportByID(ctx context.Context, ownerID, reportID string, includeEntries bool) (*domain.Report, error)
	ListReports(ctx context.Context, ownerID string, params dto.ListReportsParams) (*dto.ListReportsResponse, error)
	DeleteReport(ctx context.Context, ownerID, reportID string) error
	// SubmitReport moves a draft with at least one live entry to SUBMITTED.
	SubmitReport(ctx context.Context, ownerID, reportID string) (*domain.Report, error)
}

// EntrySvcFacade exposes entry mutations to the request layer.
type EntrySvcFacade interface {
	CreateEntry(ctx context.Context, ownerID, reportID string, req dto.CreateEntryRequest) (*domain.Entry, error)
	UpdateEntry(ctx context.Context, ownerID, entryID string, req dto.UpdateEntryRequest) (*domain.Entry, error)
	DeleteEntry(ctx context.Context, ownerID, entryID string) error
}

// ExportSvcFacade renders a report for download.
type ExportSvcFacade interface {
	// ExportReport returns the rendered bytes and their content type.
	ExportReport(ctx context.Context, ownerID, reportID, format string, includeEntries bool) ([]byte, string, error)
}
