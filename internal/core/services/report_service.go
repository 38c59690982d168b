package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/indeko/indeko_backend/internal/apperrors"
	"github.com/indeko/indeko_backend/internal/core/domain"
	portsrepo "github.com/indeko/indeko_backend/internal/core/ports/repositories"
	portssvc "github.com/indeko/indeko_backend/internal/core/ports/services"
	"github.com/indeko/indeko_backend/internal/dto"
	"github.com/indeko/indeko_backend/internal/middleware"
)

const (
	defaultReportPageSize = 20
	maxReportPageSize     = 100
)

// reportService provides report lifecycle operations other than locking,
// which lives in the ledger service.
type reportService struct {
	reportRepo portsrepo.ReportRepositoryFacade
	entryRepo  portsrepo.EntryRepositoryFacade
	txManager  portsrepo.TxManager
}

// NewReportService creates a new report service.
func NewReportService(reportRepo portsrepo.ReportRepositoryFacade, entryRepo portsrepo.EntryRepositoryFacade, txManager portsrepo.TxManager) portssvc.ReportSvcFacade {
	return &reportService{
		reportRepo: reportRepo,
		entryRepo:  entryRepo,
		txManager:  txManager,
	}
}

var _ portssvc.ReportSvcFacade = (*reportService)(nil)

func (s *reportService) CreateReport(ctx context.Context, ownerID string, req dto.CreateReportRequest) (*domain.Report, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	report := domain.Report{
		ReportID:     uuid.NewString(),
		OwnerID:      ownerID,
		Month:        req.Month,
		Year:         req.Year,
		Status:       domain.ReportDraft,
		CurrencyCode: req.CurrencyCode,
		TotalDays:    decimal.Zero,
		TotalAmount:  0,
		AuditFields:  domain.NewAuditFields(ownerID, time.Now()),
	}

	if err := s.reportRepo.SaveReport(ctx, report); err != nil {
		return nil, err
	}

	logger.Info("report created",
		slog.String("report_id", report.ReportID),
		slog.String("period", report.PeriodString()))
	return &report, nil
}

func (s *reportService) GetReportByID(ctx context.Context, ownerID, reportID string, includeEntries bool) (*domain.Report, error) {
	report, err := s.reportRepo.FindReportByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report.OwnerID != ownerID {
		return nil, apperrors.ErrNotFound
	}

	if includeEntries {
		entries, err := s.entryRepo.FindEntriesByReport(ctx, reportID)
		if err != nil {
			return nil, err
		}
		report.Entries = entries
	}
	return report, nil
}

func (s *reportService) ListReports(ctx context.Context, ownerID string, params dto.ListReportsParams) (*dto.ListReportsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultReportPageSize
	}
	if limit > maxReportPageSize {
		limit = maxReportPageSize
	}

	reports, nextToken, err := s.reportRepo.ListReportsByOwner(ctx, ownerID, limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ReportResponse, len(reports))
	for i := range reports {
		responses[i] = dto.ToReportResponse(&reports[i])
	}
	return &dto.ListReportsResponse{Reports: responses, NextToken: nextToken}, nil
}

// lockOwnedReport loads the report under the row lock and hides other owners'
// reports behind ErrNotFound.
func lockOwnedReport(ctx context.Context, tx pgx.Tx, reportRepo portsrepo.ReportRepositoryFacade, ownerID, reportID string) (*domain.Report, error) {
	report, err := reportRepo.FindReportForUpdate(ctx, tx, reportID)
	if err != nil {
		return nil, err
	}
	if report.OwnerID != ownerID {
		return nil, apperrors.ErrNotFound
	}
	return report, nil
}

func (s *reportService) DeleteReport(ctx context.Context, ownerID, reportID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	err := s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		report, err := lockOwnedReport(ctx, tx, s.reportRepo, ownerID, reportID)
		if err != nil {
			return err
		}
		if err := report.EnsureModifiable(); err != nil {
			return err
		}
		return s.reportRepo.SoftDeleteReportInTx(ctx, tx, reportID, ownerID, time.Now())
	})
	if err != nil {
		return err
	}

	logger.Info("report deleted", slog.String("report_id", reportID))
	return nil
}

// SubmitReport moves a draft with at least one live entry to SUBMITTED.
func (s *reportService) SubmitReport(ctx context.Context, ownerID, reportID string) (*domain.Report, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var submitted *domain.Report
	err := s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		report, err := lockOwnedReport(ctx, tx, s.reportRepo, ownerID, reportID)
		if err != nil {
			return err
		}
		if !report.CanTransition(domain.ReportSubmitted) {
			return fmt.Errorf("%w: cannot submit a %s report", apperrors.ErrConflict, report.Status)
		}

		count, err := s.entryRepo.CountEntriesByReportInTx(ctx, tx, reportID)
		if err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("%w: report has no entries", apperrors.ErrValidation)
		}

		now := time.Now()
		if err := s.reportRepo.UpdateReportStatusInTx(ctx, tx, reportID, domain.ReportSubmitted, nil, ownerID, now); err != nil {
			return err
		}

		report.Status = domain.ReportSubmitted
		report.Touch(ownerID, now)
		submitted = report
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("report submitted", slog.String("report_id", reportID))
	return submitted, nil
}
