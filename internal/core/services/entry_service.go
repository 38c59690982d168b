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

// entryService provides entry mutations. Every mutation runs in one
// transaction: it takes the report row lock first, validates against the
// locked report, applies the change, and recomputes totals before commit.
type entryService struct {
	reportRepo  portsrepo.ReportRepositoryFacade
	entryRepo   portsrepo.EntryRepositoryFacade
	missionRepo portsrepo.MissionRepositoryFacade
	linkingSvc  portssvc.LinkingSvcFacade
	totalsSvc   portssvc.TotalsSvcFacade
	txManager   portsrepo.TxManager
}

// NewEntryService creates a new entry service.
func NewEntryService(
	reportRepo portsrepo.ReportRepositoryFacade,
	entryRepo portsrepo.EntryRepositoryFacade,
	missionRepo portsrepo.MissionRepositoryFacade,
	linkingSvc portssvc.LinkingSvcFacade,
	totalsSvc portssvc.TotalsSvcFacade,
	txManager portsrepo.TxManager,
) portssvc.EntrySvcFacade {
	return &entryService{
		reportRepo:  reportRepo,
		entryRepo:   entryRepo,
		missionRepo: missionRepo,
		linkingSvc:  linkingSvc,
		totalsSvc:   totalsSvc,
		txManager:   txManager,
	}
}

var _ portssvc.EntrySvcFacade = (*entryService)(nil)

func validateQuantity(q decimal.Decimal) error {
	if q.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: quantity must be positive", apperrors.ErrValidation)
	}
	return nil
}

func (s *entryService) CreateEntry(ctx context.Context, ownerID, reportID string, req dto.CreateEntryRequest) (*domain.Entry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateQuantity(req.Quantity); err != nil {
		return nil, err
	}

	mission, err := s.missionRepo.FindMissionByID(ctx, req.MissionID)
	if err != nil || mission.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: mission %s", apperrors.ErrValidation, req.MissionID)
	}

	var created *domain.Entry
	err = s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		report, err := lockOwnedReport(ctx, tx, s.reportRepo, ownerID, reportID)
		if err != nil {
			return err
		}
		if err := report.EnsureModifiable(); err != nil {
			return err
		}
		if !report.PeriodContains(req.Date) {
			return fmt.Errorf("%w: date %s is outside period %s", apperrors.ErrValidation, req.Date.Format("2006-01-02"), report.PeriodString())
		}

		exists, err := s.entryRepo.ExistsForReportMissionDateInTx(ctx, tx, reportID, req.MissionID, req.Date, "")
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: an entry for mission %s on %s already exists", apperrors.ErrConflict, req.MissionID, req.Date.Format("2006-01-02"))
		}

		now := time.Now()
		entry := domain.Entry{
			EntryID:     uuid.NewString(),
			Date:        req.Date,
			Quantity:    req.Quantity,
			UnitPrice:   req.UnitPrice,
			Description: req.Description,
			MissionID:   mission.MissionID,
			MissionName: mission.Title,
			AuditFields: domain.NewAuditFields(ownerID, now),
		}
		if err := s.entryRepo.SaveEntryInTx(ctx, tx, entry, reportID); err != nil {
			return err
		}
		if _, err := s.linkingSvc.EnsureLinkInTx(ctx, tx, reportID, mission.MissionID, ownerID); err != nil {
			return err
		}
		if _, _, err := s.totalsSvc.RecalculateInTx(ctx, tx, reportID, ownerID, now); err != nil {
			return err
		}

		created = &entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("entry created",
		slog.String("entry_id", created.EntryID),
		slog.String("report_id", reportID),
		slog.String("mission_id", created.MissionID))
	return created, nil
}

func (s *entryService) UpdateEntry(ctx context.Context, ownerID, entryID string, req dto.UpdateEntryRequest) (*domain.Entry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Quantity != nil {
		if err := validateQuantity(*req.Quantity); err != nil {
			return nil, err
		}
	}

	reportID, err := s.entryRepo.FindEntryReportID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	var updated *domain.Entry
	err = s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		report, err := lockOwnedReport(ctx, tx, s.reportRepo, ownerID, reportID)
		if err != nil {
			return err
		}
		if err := report.EnsureModifiable(); err != nil {
			return err
		}

		// Re-read under the lock; the entry may have moved or vanished
		// between the unlocked lookup and here.
		entry, currentReportID, err := s.entryRepo.FindEntryByIDInTx(ctx, tx, entryID)
		if err != nil {
			return err
		}
		if currentReportID != reportID {
			return apperrors.ErrNotFound
		}

		if req.Date != nil {
			if !report.PeriodContains(*req.Date) {
				return fmt.Errorf("%w: date %s is outside period %s", apperrors.ErrValidation, req.Date.Format("2006-01-02"), report.PeriodString())
			}
			entry.Date = *req.Date
		}
		if req.Quantity != nil {
			entry.Quantity = *req.Quantity
		}
		if req.UnitPrice != nil {
			entry.UnitPrice = *req.UnitPrice
		}
		if req.Description != nil {
			entry.Description = *req.Description
		}

		exists, err := s.entryRepo.ExistsForReportMissionDateInTx(ctx, tx, reportID, entry.MissionID, entry.Date, entryID)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: an entry for mission %s on %s already exists", apperrors.ErrConflict, entry.MissionID, entry.Date.Format("2006-01-02"))
		}

		now := time.Now()
		entry.Touch(ownerID, now)
		if err := s.entryRepo.UpdateEntryInTx(ctx, tx, *entry); err != nil {
			return err
		}
		if _, _, err := s.totalsSvc.RecalculateInTx(ctx, tx, reportID, ownerID, now); err != nil {
			return err
		}

		updated = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("entry updated", slog.String("entry_id", entryID), slog.String("report_id", reportID))
	return updated, nil
}

func (s *entryService) DeleteEntry(ctx context.Context, ownerID, entryID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	reportID, err := s.entryRepo.FindEntryReportID(ctx, entryID)
	if err != nil {
		return err
	}

	err = s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		report, err := lockOwnedReport(ctx, tx, s.reportRepo, ownerID, reportID)
		if err != nil {
			return err
		}
		if err := report.EnsureModifiable(); err != nil {
			return err
		}

		now := time.Now()
		if err := s.entryRepo.SoftDeleteEntryInTx(ctx, tx, entryID, ownerID, now); err != nil {
			return err
		}
		if _, _, err := s.totalsSvc.RecalculateInTx(ctx, tx, reportID, ownerID, now); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("entry deleted", slog.String("entry_id", entryID), slog.String("report_id", reportID))
	return nil
}
