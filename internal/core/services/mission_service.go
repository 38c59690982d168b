package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/indeko/indeko_backend/internal/apperrors"
	"github.com/indeko/indeko_backend/internal/core/domain"
	portsrepo "github.com/indeko/indeko_backend/internal/core/ports/repositories"
	portssvc "github.com/indeko/indeko_backend/internal/core/ports/services"
	"github.com/indeko/indeko_backend/internal/dto"
	"github.com/indeko/indeko_backend/internal/middleware"
)

// missionService provides mission CRUD scoped to the owner. A mission must
// reference a live company belonging to the same owner.
type missionService struct {
	missionRepo portsrepo.MissionRepositoryFacade
	companyRepo portsrepo.CompanyRepositoryFacade
}

// NewMissionService creates a new mission service.
func NewMissionService(missionRepo portsrepo.MissionRepositoryFacade, companyRepo portsrepo.CompanyRepositoryFacade) portssvc.MissionSvcFacade {
	return &missionService{missionRepo: missionRepo, companyRepo: companyRepo}
}

var _ portssvc.MissionSvcFacade = (*missionService)(nil)

func (s *missionService) findOwned(ctx context.Context, ownerID, missionID string) (*domain.Mission, error) {
	mission, err := s.missionRepo.FindMissionByID(ctx, missionID)
	if err != nil {
		return nil, err
	}
	if mission.OwnerID != ownerID {
		return nil, apperrors.ErrNotFound
	}
	return mission, nil
}

func (s *missionService) CreateMission(ctx context.Context, ownerID string, req dto.CreateMissionRequest) (*domain.Mission, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	company, err := s.companyRepo.FindCompanyByID(ctx, req.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("%w: company %s", apperrors.ErrValidation, req.CompanyID)
	}
	if company.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: company %s", apperrors.ErrValidation, req.CompanyID)
	}

	mission := domain.Mission{
		MissionID:    uuid.NewString(),
		OwnerID:      ownerID,
		CompanyID:    req.CompanyID,
		Title:        req.Title,
		DailyRate:    req.DailyRate,
		CurrencyCode: req.CurrencyCode,
		IsActive:     true,
		AuditFields:  domain.NewAuditFields(ownerID, time.Now()),
	}

	if err := s.missionRepo.SaveMission(ctx, mission); err != nil {
		return nil, err
	}

	logger.Info("mission created", slog.String("mission_id", mission.MissionID), slog.String("company_id", mission.CompanyID))
	return &mission, nil
}

func (s *missionService) GetMissionByID(ctx context.Context, ownerID, missionID string) (*domain.Mission, error) {
	return s.findOwned(ctx, ownerID, missionID)
}

func (s *missionService) ListMissions(ctx context.Context, ownerID string) ([]domain.Mission, error) {
	return s.missionRepo.ListMissionsByOwner(ctx, ownerID)
}

func (s *missionService) UpdateMission(ctx context.Context, ownerID, missionID string, req dto.UpdateMissionRequest) (*domain.Mission, error) {
	mission, err := s.findOwned(ctx, ownerID, missionID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		mission.Title = *req.Title
	}
	if req.DailyRate != nil {
		mission.DailyRate = *req.DailyRate
	}
	if req.IsActive != nil {
		mission.IsActive = *req.IsActive
	}
	mission.Touch(ownerID, time.Now())

	if err := s.missionRepo.UpdateMission(ctx, *mission); err != nil {
		return nil, err
	}
	return mission, nil
}

func (s *missionService) DeleteMission(ctx context.Context, ownerID, missionID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.findOwned(ctx, ownerID, missionID); err != nil {
		return err
	}
	if err := s.missionRepo.MarkMissionDeleted(ctx, missionID, ownerID, time.Now()); err != nil {
		return err
	}
	logger.Info("mission deleted", slog.String("mission_id", missionID))
	return nil
}
