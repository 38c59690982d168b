package repositories

import (
	"context"
	"time"

	"github.com/indeko/indeko_backend/internal/core/domain"
)

// UserRepositoryFacade defines the persistence operations for users.
type UserRepositoryFacade interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, user domain.User) error
	MarkUserDeleted(ctx context.Context, userID string, deletedBy string, at time.Time) error
}

// CompanyRepositoryFacade defines the persistence operations for companies.
type CompanyRepositoryFacade interface {
	SaveCompany(ctx context.Context, company domain.Company) error
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)
	ListCompaniesByOwner(ctx context.Context, ownerID string) ([]domain.Company, error)
	UpdateCompany(ctx context.Context, company domain.Company) error
	MarkCompanyDeleted(ctx context.Context, companyID string, deletedBy string, at time.Time) error
}

// MissionRepositoryFacade defines the persistence operations for missions.
type MissionRepositoryFacade interface {
	SaveMission(ctx context.Context, mission domain.Mission) error
	FindMissionByID(ctx context.Context, missionID string) (*domain.Mission, error)
	ListMissionsByOwner(ctx context.Context, ownerID string) ([]domain.Mission, error)
	UpdateMission(ctx context.Context, mission domain.Mission) error
	MarkMissionDeleted(ctx context.Context, missionID string, deletedBy string, at time.Time) error
}
