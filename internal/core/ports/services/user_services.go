package services

import (
	"context"

	"github.com/indeko/indeko_backend/internal/core/domain"
	"github.com/indeko/indeko_backend/internal/dto"
)

// UserSvcFacade exposes user account operations.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error)
	DeleteUser(ctx context.Context, userID string) error
	// Authenticate verifies email+password and returns the user on success.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
}

// CompanySvcFacade exposes client-company CRUD, scoped to the owner.
type CompanySvcFacade interface {
	CreateCompany(ctx context.Context, ownerID string, req dto.CreateCompanyRequest) (*domain.Company, error)
	GetCompanyByID(ctx context.Context, ownerID, companyID string) (*domain.Company, error)
	ListCompanies(ctx context.Context, ownerID string) ([]domain.Company, error)
	UpdateCompany(ctx context.Context, ownerID, companyID string, req dto.UpdateCompanyRequest) (*domain.Company, error)
	DeleteCompany(ctx context.Context, ownerID, companyID string) error
}

// MissionSvcFacade exposes mission CRUD, scoped to the owner.
type MissionSvcFacade interface {
	CreateMission(ctx context.Context, ownerID string, req dto.CreateMissionRequest) (*domain.Mission, error)
	GetMissionByID(ctx context.Context, ownerID, missionID string) (*domain.Mission, error)
	ListMissions(ctx context.Context, ownerID string) ([]domain.Mission, error)
	UpdateMission(ctx context.Context, ownerID, missionID string, req dto.UpdateMissionRequest) (*domain.Mission, error)
	DeleteMission(ctx context.Context, ownerID, missionID string) error
}
