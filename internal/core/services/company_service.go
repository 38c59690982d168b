package services

import (
	"context"
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

// companyService provides client-company CRUD scoped to the owner.
type companyService struct {
	companyRepo portsrepo.CompanyRepositoryFacade
}

// NewCompanyService creates a new company service.
func NewCompanyService(companyRepo portsrepo.CompanyRepositoryFacade) portssvc.CompanySvcFacade {
	return &companyService{companyRepo: companyRepo}
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

// findOwned loads the company and hides other owners' companies behind
// ErrNotFound.
func (s *companyService) findOwned(ctx context.Context, ownerID, companyID string) (*domain.Company, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company.OwnerID != ownerID {
		return nil, apperrors.ErrNotFound
	}
	return company, nil
}

func (s *companyService) CreateCompany(ctx context.Context, ownerID string, req dto.CreateCompanyRequest) (*domain.Company, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	company := domain.Company{
		CompanyID:          uuid.NewString(),
		OwnerID:            ownerID,
		Name:               req.Name,
		RegistrationNumber: req.RegistrationNumber,
		ContactEmail:       req.ContactEmail,
		AuditFields:        domain.NewAuditFields(ownerID, time.Now()),
	}

	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		return nil, err
	}

	logger.Info("company created", slog.String("company_id", company.CompanyID))
	return &company, nil
}

func (s *companyService) GetCompanyByID(ctx context.Context, ownerID, companyID string) (*domain.Company, error) {
	return s.findOwned(ctx, ownerID, companyID)
}

func (s *companyService) ListCompanies(ctx context.Context, ownerID string) ([]domain.Company, error) {
	return s.companyRepo.ListCompaniesByOwner(ctx, ownerID)
}

func (s *companyService) UpdateCompany(ctx context.Context, ownerID, companyID string, req dto.UpdateCompanyRequest) (*domain.Company, error) {
	company, err := s.findOwned(ctx, ownerID, companyID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.RegistrationNumber != nil {
		company.RegistrationNumber = *req.RegistrationNumber
	}
	if req.ContactEmail != nil {
		company.ContactEmail = *req.ContactEmail
	}
	company.Touch(ownerID, time.Now())

	if err := s.companyRepo.UpdateCompany(ctx, *company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *companyService) DeleteCompany(ctx context.Context, ownerID, companyID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.findOwned(ctx, ownerID, companyID); err != nil {
		return err
	}
	if err := s.companyRepo.MarkCompanyDeleted(ctx, companyID, ownerID, time.Now()); err != nil {
		return err
	}
	logger.Info("company deleted", slog.String("company_id", companyID))
	return nil
}
