package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/indeko/indeko_backend/internal/apperrors"
	"github.com/indeko/indeko_backend/internal/core/domain"
	portsrepo "github.com/indeko/indeko_backend/internal/core/ports/repositories"
	portssvc "github.com/indeko/indeko_backend/internal/core/ports/services"
	"github.com/indeko/indeko_backend/internal/dto"
	"github.com/indeko/indeko_backend/internal/ledger"
	"github.com/indeko/indeko_backend/internal/middleware"
)

// reconcileActor is recorded as the author of commits and status changes the
// reconciliation pass writes.
const reconcileActor = "reconcile"

// reconcileService is the offline pass that compares the ledger store against
// the recorded commits for every report, including soft-deleted ones. It
// repairs the one known benign divergence, an orphaned head revision left by
// a lock whose database transaction failed, and reports everything else as an
// orphan for operator action.
type reconcileService struct {
	reportRepo      portsrepo.ReportRepositoryFacade
	reportAdminRepo portsrepo.ReportAdminRepositoryFacade
	entryRepo       portsrepo.EntryRepositoryFacade
	ledgerRepo      portsrepo.LedgerCommitRepositoryFacade
	store           portsrepo.LedgerStore
	txManager       portsrepo.TxManager
}

// NewReconcileService creates a new reconciliation service.
func NewReconcileService(
	reportRepo portsrepo.ReportRepositoryFacade,
	reportAdminRepo portsrepo.ReportAdminRepositoryFacade,
	entryRepo portsrepo.EntryRepositoryFacade,
	ledgerRepo portsrepo.LedgerCommitRepositoryFacade,
	store portsrepo.LedgerStore,
	txManager portsrepo.TxManager,
) portssvc.ReconcileSvcFacade {
	return &reconcileService{
		reportRepo:      reportRepo,
		reportAdminRepo: reportAdminRepo,
		entryRepo:       entryRepo,
		ledgerRepo:      ledgerRepo,
		store:           store,
		txManager:       txManager,
	}
}

var _ portssvc.ReconcileSvcFacade = (*reconcileService)(nil)

func (s *reconcileService) ReconcileLedger(ctx context.Context) (*dto.ReconcileReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	reportIDs, err := s.reportAdminRepo.ListReportIDs(ctx, portsrepo.AllIncludingDeleted)
	if err != nil {
		return nil, err
	}

	result := &dto.ReconcileReport{CheckedReports: len(reportIDs)}
	for _, reportID := range reportIDs {
		outcome, err := s.reconcileReport(ctx, reportID)
		if err != nil {
			return nil, err
		}
		switch {
		case outcome == nil:
			result.Consistent++
		case outcome.Reason == "":
			result.Relinked = append(result.Relinked, reportID)
		default:
			logger.Error("ledger divergence detected",
				slog.String("report_id", reportID),
				slog.String("revision_id", outcome.RevisionID),
				slog.String("reason", outcome.Reason))
			result.Orphans = append(result.Orphans, *outcome)
		}
	}

	logger.Info("ledger reconciliation finished",
		slog.Int("checked", result.CheckedReports),
		slog.Int("consistent", result.Consistent),
		slog.Int("relinked", len(result.Relinked)),
		slog.Int("orphans", len(result.Orphans)))
	return result, nil
}

// reconcileReport checks one report. It returns nil when store and database
// agree, an outcome with an empty Reason when an orphaned revision was
// adopted, and an outcome with a Reason when the divergence needs an
// operator.
func (s *reconcileService) reconcileReport(ctx context.Context, reportID string) (*dto.OrphanedRevision, error) {
	head, err := s.store.Head(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("%w: ledger store head: %v", apperrors.ErrRetryable, err)
	}

	latest, err := s.ledgerRepo.FindLatestCommit(ctx, reportID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	switch {
	case latest == nil && head == "":
		return nil, nil
	case latest != nil && head == latest.RevisionID:
		return nil, nil
	case latest != nil && head == "":
		return &dto.OrphanedRevision{
			ReportID:   reportID,
			RevisionID: latest.RevisionID,
			Reason:     "recorded revision missing from store",
		}, nil
	}

	msg, err := s.store.Message(ctx, head)
	if err != nil {
		return nil, fmt.Errorf("%w: ledger store message: %v", apperrors.ErrRetryable, err)
	}
	msgReportID, msgSeq, msgHash, ok := ledger.ParseCommitMessage(msg)
	if !ok || msgReportID != reportID {
		return &dto.OrphanedRevision{
			ReportID:   reportID,
			RevisionID: head,
			Reason:     "unrecognized head revision",
		}, nil
	}

	var outcome *dto.OrphanedRevision
	err = s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		report, err := s.reportRepo.FindReportForUpdate(ctx, tx, reportID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				// Soft-deleted report with store history; nothing to repair.
				outcome = &dto.OrphanedRevision{
					ReportID:   reportID,
					RevisionID: head,
					Reason:     "head revision for a deleted report",
				}
				return nil
			}
			return err
		}

		seq, err := s.ledgerRepo.NextSequenceInTx(ctx, tx, reportID)
		if err != nil {
			return err
		}
		if msgSeq != seq {
			outcome = &dto.OrphanedRevision{
				ReportID:   reportID,
				RevisionID: head,
				Reason:     fmt.Sprintf("head revision sequence %d, expected %d", msgSeq, seq),
			}
			return nil
		}

		entries, err := s.entryRepo.FindEntriesByReportInTx(ctx, tx, reportID)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		payload, err := ledger.BuildPayload(*report, entries, now)
		if err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
		}
		if msgHash != payload.ContentHash {
			outcome = &dto.OrphanedRevision{
				ReportID:   reportID,
				RevisionID: head,
				Reason:     "head revision content does not match report state",
			}
			return nil
		}

		// The head is this report's own interrupted lock. Record it and
		// finish the transition it started.
		commit := domain.LedgerCommit{
			CommitID:    uuid.NewString(),
			ReportID:    reportID,
			Sequence:    seq,
			PayloadHash: msgHash,
			RevisionID:  head,
			CreatedAt:   now,
			CreatedBy:   reconcileActor,
		}
		if err := s.ledgerRepo.SaveLedgerCommitInTx(ctx, tx, commit); err != nil {
			return err
		}
		if report.Status == domain.ReportSubmitted {
			if err := s.reportRepo.UpdateReportStatusInTx(ctx, tx, reportID, domain.ReportLocked, &now, reconcileActor, now); err != nil {
				return err
			}
		}
		outcome = &dto.OrphanedRevision{ReportID: reportID, RevisionID: head}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}
