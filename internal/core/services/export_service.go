package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/indeko/indeko_backend/internal/apperrors"
	"github.com/indeko/indeko_backend/internal/core/domain"
	portssvc "github.com/indeko/indeko_backend/internal/core/ports/services"
)

var exportHeader = []string{"date", "assignment_name", "quantity", "unit_price", "line_total", "description"}

// exportService renders a report for download. CSV is the only format.
type exportService struct {
	reportSvc portssvc.ReportSvcFacade
}

// NewExportService creates a new export service.
func NewExportService(reportSvc portssvc.ReportSvcFacade) portssvc.ExportSvcFacade {
	return &exportService{reportSvc: reportSvc}
}

var _ portssvc.ExportSvcFacade = (*exportService)(nil)

// majorUnits renders a minor-unit amount with two decimal places.
func majorUnits(amount int64) string {
	return decimal.NewFromInt(amount).Div(decimal.NewFromInt(100)).StringFixed(2)
}

// ExportReport renders the report as CSV: one row per entry when
// includeEntries is set, always followed by a trailing TOTAL row. Amounts are
// in major currency units with two decimals.
func (s *exportService) ExportReport(ctx context.Context, ownerID, reportID, format string, includeEntries bool) ([]byte, string, error) {
	if format != "csv" {
		return nil, "", fmt.Errorf("%w: unsupported export format %q", apperrors.ErrValidation, format)
	}

	report, err := s.reportSvc.GetReportByID(ctx, ownerID, reportID, includeEntries)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, "", fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	if includeEntries {
		for i := range report.Entries {
			if err := w.Write(entryRow(&report.Entries[i])); err != nil {
				return nil, "", fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
			}
		}
	}

	totalRow := []string{"TOTAL", "", report.TotalDays.StringFixed(2), "", majorUnits(report.TotalAmount), ""}
	if err := w.Write(totalRow); err != nil {
		return nil, "", fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}
	return buf.Bytes(), "text/csv", nil
}

func entryRow(e *domain.Entry) []string {
	return []string{
		e.Date.Format("2006-01-02"),
		e.MissionName,
		e.Quantity.StringFixed(2),
		majorUnits(e.UnitPrice),
		majorUnits(e.LineTotal()),
		e.Description,
	}
}
