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
	"github.com/indeko/indeko_backend/internal/ledger"
	"github.com/indeko/indeko_backend/internal/middleware"
)

// ledgerService drives the lock transition. Locking commits the report's
// canonical payload to the ledger store and records a LedgerCommit row in the
// same database transaction that flips the status, so a locked report always
// has a matching revision.
type ledgerService struct {
	reportRepo portsrepo.ReportRepositoryFacade
	entryRepo  portsrepo.EntryRepositoryFacade
	ledgerRepo portsrepo.LedgerCommitRepositoryFacade
	store      portsrepo.LedgerStore
	txManager  portsrepo.TxManager
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(
	reportRepo portsrepo.ReportRepositoryFacade,
	entryRepo portsrepo.EntryRepositoryFacade,
	ledgerRepo portsrepo.LedgerCommitRepositoryFacade,
	store portsrepo.LedgerStore,
	txManager portsrepo.TxManager,
) portssvc.LedgerSvcFacade {
	return &ledgerService{
		reportRepo: reportRepo,
		entryRepo:  entryRepo,
		ledgerRepo: ledgerRepo,
		store:      store,
		txManager:  txManager,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// LockReport moves a SUBMITTED report to LOCKED.
//
// A store commit that succeeded on an earlier attempt whose database
// transaction then failed leaves an orphaned head revision. The orphan is
// recognized by the content hash recorded in its commit message: if it
// matches the payload being locked now, the revision is adopted instead of
// committing a second one. Any other divergence between the store head and
// the recorded commits is a rewrite and fails with ErrIntegrity.
func (s *ledgerService) LockReport(ctx context.Context, ownerID, reportID string) (*domain.Report, string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var locked *domain.Report
	var revisionID string

	err := s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		report, err := lockOwnedReport(ctx, tx, s.reportRepo, ownerID, reportID)
		if err != nil {
			return err
		}
		if !report.CanTransition(domain.ReportLocked) {
			return fmt.Errorf("%w: cannot lock a %s report", apperrors.ErrConflict, report.Status)
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

		seq, err := s.ledgerRepo.NextSequenceInTx(ctx, tx, reportID)
		if err != nil {
			return err
		}

		head, err := s.store.Head(ctx, reportID)
		if err != nil {
			return fmt.Errorf("%w: ledger store head: %v", apperrors.ErrRetryable, err)
		}

		latest, err := s.ledgerRepo.FindLatestCommitInTx(ctx, tx, reportID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		switch {
		case latest == nil && head == "",
			latest != nil && head == latest.RevisionID:
			// Store and database agree; commit a new revision.
			msg := ledger.CommitMessage(reportID, seq, payload.ContentHash)
			revisionID, err = s.store.Commit(ctx, reportID, payload.Bytes, msg)
			if err != nil {
				return fmt.Errorf("%w: ledger store commit: %v", apperrors.ErrRetryable, err)
			}

		case latest != nil && head == "":
			logger.Error("ledger history rewritten",
				slog.String("report_id", reportID),
				slog.String("recorded_revision", latest.RevisionID))
			return fmt.Errorf("%w: recorded revision %s missing from store", apperrors.ErrIntegrity, latest.RevisionID)

		default:
			// Head is a revision the database does not know about.
			adopted, err := s.adoptOrphan(ctx, reportID, head, seq, payload.ContentHash)
			if err != nil {
				return err
			}
			revisionID = adopted
			logger.Warn("adopted orphaned ledger revision",
				slog.String("report_id", reportID),
				slog.String("revision_id", revisionID))
		}

		commit := domain.LedgerCommit{
			CommitID:    uuid.NewString(),
			ReportID:    reportID,
			Sequence:    seq,
			PayloadHash: payload.ContentHash,
			RevisionID:  revisionID,
			CreatedAt:   now,
			CreatedBy:   ownerID,
		}
		if err := s.ledgerRepo.SaveLedgerCommitInTx(ctx, tx, commit); err != nil {
			return err
		}
		if err := s.reportRepo.UpdateReportStatusInTx(ctx, tx, reportID, domain.ReportLocked, &now, ownerID, now); err != nil {
			return err
		}

		report.Status = domain.ReportLocked
		report.LockedAt = &now
		report.Touch(ownerID, now)
		report.Entries = entries
		locked = report
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	logger.Info("report locked",
		slog.String("report_id", reportID),
		slog.String("revision_id", revisionID))
	return locked, revisionID, nil
}

// adoptOrphan decides whether the unrecorded head revision belongs to this
// lock. It does only if its message was written by this system, names this
// report and sequence, and carries the content hash of the payload being
// locked now.
func (s *ledgerService) adoptOrphan(ctx context.Context, reportID, head string, seq int64, contentHash string) (string, error) {
	msg, err := s.store.Message(ctx, head)
	if err != nil {
		return "", fmt.Errorf("%w: ledger store message: %v", apperrors.ErrRetryable, err)
	}

	msgReportID, msgSeq, msgHash, ok := ledger.ParseCommitMessage(msg)
	if !ok || msgReportID != reportID {
		return "", fmt.Errorf("%w: unrecognized head revision %s", apperrors.ErrIntegrity, head)
	}
	if msgSeq != seq || msgHash != contentHash {
		return "", fmt.Errorf("%w: head revision %s does not match the payload being locked", apperrors.ErrIntegrity, head)
	}
	return head, nil
}

func (s *ledgerService) ListCommits(ctx context.Context, ownerID, reportID string) ([]domain.LedgerCommit, error) {
	report, err := s.reportRepo.FindReportByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report.OwnerID != ownerID {
		return nil, apperrors.ErrNotFound
	}
	return s.ledgerRepo.ListCommitsByReport(ctx, reportID)
}
