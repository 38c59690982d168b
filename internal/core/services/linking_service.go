package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/indeko/indeko_backend/internal/apperrors"
	"github.com/indeko/indeko_backend/internal/core/domain"
	portsrepo "github.com/indeko/indeko_backend/internal/core/ports/repositories"
	portssvc "github.com/indeko/indeko_backend/internal/core/ports/services"
)

// linkingService maintains report to mission relation rows. Entry creation
// calls EnsureLinkInTx inside its transaction so the relation always exists
// by the time the entry is visible.
type linkingService struct {
	linkRepo portsrepo.LinkRepositoryFacade
}

// NewLinkingService creates a new linking service.
func NewLinkingService(linkRepo portsrepo.LinkRepositoryFacade) portssvc.LinkingSvcFacade {
	return &linkingService{linkRepo: linkRepo}
}

var _ portssvc.LinkingSvcFacade = (*linkingService)(nil)

// EnsureLinkInTx returns the relation row for (report, mission), creating it
// if absent. A duplicate insert from a concurrent transaction is treated as
// success and the existing row is returned.
func (s *linkingService) EnsureLinkInTx(ctx context.Context, tx pgx.Tx, reportID, missionID, actorID string) (*domain.ReportMissionLink, error) {
	existing, err := s.linkRepo.FindReportMissionLinkInTx(ctx, tx, reportID, missionID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	link := domain.ReportMissionLink{
		LinkID:      uuid.NewString(),
		ReportID:    reportID,
		MissionID:   missionID,
		AuditFields: domain.NewAuditFields(actorID, time.Now()),
	}
	if err := s.linkRepo.SaveReportMissionLinkInTx(ctx, tx, link); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return s.linkRepo.FindReportMissionLinkInTx(ctx, tx, reportID, missionID)
		}
		return nil, err
	}
	return &link, nil
}
