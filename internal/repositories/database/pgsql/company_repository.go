package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/indeko/indeko_backend/internal/apperrors"
	"github.com/indeko/indeko_backend/internal/core/domain"
	portsrepo "github.com/indeko/indeko_backend/internal/core/ports/repositories"
	"github.com/indeko/indeko_backend/internal/models"
	"github.com/indeko/indeko_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const companyColumns = `company_id, owner_id, name, registration_number, contact_email, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

type PgxCompanyRepository struct {
	BaseRepository
}

// NewPgxCompanyRepository creates a new repository for company data.
func NewPgxCompanyRepository(pool *pgxpool.Pool) *PgxCompanyRepository {
	return &PgxCompanyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

func scanCompany(row pgx.Row) (*models.Company, error) {
	var m models.Company
	err := row.Scan(
		&m.CompanyID, &m.OwnerID, &m.Name, &m.RegistrationNumber, &m.ContactEmail,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	m := mapping.ToModelCompany(company)
	query := `
		INSERT INTO companies (company_id, owner_id, name, registration_number, contact_email,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CompanyID, m.OwnerID, m.Name, m.RegistrationNumber, m.ContactEmail,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert company "+m.CompanyID, err)
	}
	return nil
}

func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE company_id = $1 AND deleted_at IS NULL;`
	m, err := scanCompany(r.Pool.QueryRow(ctx, query, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find company "+companyID, err)
	}
	d := mapping.ToDomainCompany(*m)
	return &d, nil
}

func (r *PgxCompanyRepository) ListCompaniesByOwner(ctx context.Context, ownerID string) ([]domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE owner_id = $1 AND deleted_at IS NULL ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query companies for owner "+ownerID, err)
	}
	defer rows.Close()

	var companies []domain.Company
	for rows.Next() {
		m, err := scanCompany(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan company row", err)
		}
		companies = append(companies, mapping.ToDomainCompany(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate company rows", err)
	}
	return companies, nil
}

func (r *PgxCompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) error {
	m := mapping.ToModelCompany(company)
	query := `
		UPDATE companies
		SET name = $2, registration_number = $3, contact_email = $4, last_updated_at = $5, last_updated_by = $6
		WHERE company_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, m.CompanyID, m.Name, m.RegistrationNumber, m.ContactEmail, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update company "+m.CompanyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCompanyRepository) MarkCompanyDeleted(ctx context.Context, companyID string, deletedBy string, at time.Time) error {
	query := `
		UPDATE companies SET deleted_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE company_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, companyID, at, deletedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark company deleted "+companyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
