package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/indeko/indeko_backend/internal/core/domain"
	portsrepo "github.com/indeko/indeko_backend/internal/core/ports/repositories"
)

// --- Mock TxManager ---

// MockTxManager runs the transactional closure directly with a nil pgx.Tx;
// the repository mocks never touch the tx handle.
type MockTxManager struct{}

func (m *MockTxManager) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

// --- Mock ReportRepository ---

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) SaveReport(ctx context.Context, report domain.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) FindReportByID(ctx context.Context, reportID string) (*domain.Report, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *MockReportRepository) ListReportsByOwner(ctx context.Context, ownerID string, limit int, nextToken *string) ([]domain.Report, *string, error) {
	args := m.Called(ctx, ownerID, limit, nextToken)
	var reports []domain.Report
	if args.Get(0) != nil {
		reports = args.Get(0).([]domain.Report)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return reports, token, args.Error(2)
}

func (m *MockReportRepository) FindReportForUpdate(ctx context.Context, tx pgx.Tx, reportID string) (*domain.Report, error) {
	args := m.Called(ctx, tx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *MockReportRepository) UpdateReportTotalsInTx(ctx context.Context, tx pgx.Tx, reportID string, totalDays decimal.Decimal, totalAmount int64, updatedBy string, at time.Time) error {
	args := m.Called(ctx, tx, reportID, totalDays, totalAmount, updatedBy, at)
	return args.Error(0)
}

func (m *MockReportRepository) UpdateReportStatusInTx(ctx context.Context, tx pgx.Tx, reportID string, status domain.ReportStatus, lockedAt *time.Time, updatedBy string, at time.Time) error {
	args := m.Called(ctx, tx, reportID, status, lockedAt, updatedBy, at)
	return args.Error(0)
}

func (m *MockReportRepository) SoftDeleteReportInTx(ctx context.Context, tx pgx.Tx, reportID string, deletedBy string, at time.Time) error {
	args := m.Called(ctx, tx, reportID, deletedBy, at)
	return args.Error(0)
}

// --- Mock ReportAdminRepository ---

type MockReportAdminRepository struct {
	mock.Mock
}

func (m *MockReportAdminRepository) ListReportIDs(ctx context.Context, visibility portsrepo.Visibility) ([]string, error) {
	args := m.Called(ctx, visibility)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- Mock EntryRepository ---

type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.Entry, reportID string) error {
	args := m.Called(ctx, tx, entry, reportID)
	return args.Error(0)
}

func (m *MockEntryRepository) FindEntryByIDInTx(ctx context.Context, tx pgx.Tx, entryID string) (*domain.Entry, string, error) {
	args := m.Called(ctx, tx, entryID)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.Entry), args.String(1), args.Error(2)
}

func (m *MockEntryRepository) FindEntryReportID(ctx context.Context, entryID string) (string, error) {
	args := m.Called(ctx, entryID)
	return args.String(0), args.Error(1)
}

func (m *MockEntryRepository) UpdateEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.Entry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) SoftDeleteEntryInTx(ctx context.Context, tx pgx.Tx, entryID string, deletedBy string, at time.Time) error {
	args := m.Called(ctx, tx, entryID, deletedBy, at)
	return args.Error(0)
}

func (m *MockEntryRepository) FindEntriesByReportInTx(ctx context.Context, tx pgx.Tx, reportID string) ([]domain.Entry, error) {
	args := m.Called(ctx, tx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) FindEntriesByReport(ctx context.Context, reportID string) ([]domain.Entry, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) CountEntriesByReportInTx(ctx context.Context, tx pgx.Tx, reportID string) (int, error) {
	args := m.Called(ctx, tx, reportID)
	return args.Int(0), args.Error(1)
}

func (m *MockEntryRepository) ExistsForReportMissionDateInTx(ctx context.Context, tx pgx.Tx, reportID, missionID string, date time.Time, excludeEntryID string) (bool, error) {
	args := m.Called(ctx, tx, reportID, missionID, date, excludeEntryID)
	return args.Bool(0), args.Error(1)
}

// --- Mock LinkRepository ---

type MockLinkRepository struct {
	mock.Mock
}

func (m *MockLinkRepository) SaveReportMissionLinkInTx(ctx context.Context, tx pgx.Tx, link domain.ReportMissionLink) error {
	args := m.Called(ctx, tx, link)
	return args.Error(0)
}

func (m *MockLinkRepository) FindReportMissionLinkInTx(ctx context.Context, tx pgx.Tx, reportID, missionID string) (*domain.ReportMissionLink, error) {
	args := m.Called(ctx, tx, reportID, missionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportMissionLink), args.Error(1)
}

func (m *MockLinkRepository) FindMissionIDsByReportInTx(ctx context.Context, tx pgx.Tx, reportID string) ([]string, error) {
	args := m.Called(ctx, tx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- Mock LedgerCommitRepository ---

type MockLedgerCommitRepository struct {
	mock.Mock
}

func (m *MockLedgerCommitRepository) SaveLedgerCommitInTx(ctx context.Context, tx pgx.Tx, commit domain.LedgerCommit) error {
	args := m.Called(ctx, tx, commit)
	return args.Error(0)
}

func (m *MockLedgerCommitRepository) FindLatestCommitInTx(ctx context.Context, tx pgx.Tx, reportID string) (*domain.LedgerCommit, error) {
	args := m.Called(ctx, tx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerCommit), args.Error(1)
}

func (m *MockLedgerCommitRepository) FindLatestCommit(ctx context.Context, reportID string) (*domain.LedgerCommit, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerCommit), args.Error(1)
}

func (m *MockLedgerCommitRepository) NextSequenceInTx(ctx context.Context, tx pgx.Tx, reportID string) (int64, error) {
	args := m.Called(ctx, tx, reportID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerCommitRepository) ListCommitsByReport(ctx context.Context, reportID string) ([]domain.LedgerCommit, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerCommit), args.Error(1)
}

// --- Mock LedgerStore ---

type MockLedgerStore struct {
	mock.Mock
}

func (m *MockLedgerStore) Init(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLedgerStore) Head(ctx context.Context, reportID string) (string, error) {
	args := m.Called(ctx, reportID)
	return args.String(0), args.Error(1)
}

func (m *MockLedgerStore) Message(ctx context.Context, revisionID string) (string, error) {
	args := m.Called(ctx, revisionID)
	return args.String(0), args.Error(1)
}

func (m *MockLedgerStore) Commit(ctx context.Context, reportID string, payload []byte, message string) (string, error) {
	args := m.Called(ctx, reportID, payload, message)
	return args.String(0), args.Error(1)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedBy string, at time.Time) error {
	args := m.Called(ctx, userID, deletedBy, at)
	return args.Error(0)
}

// --- Mock MissionRepository ---

type MockMissionRepository struct {
	mock.Mock
}

func (m *MockMissionRepository) SaveMission(ctx context.Context, mission domain.Mission) error {
	args := m.Called(ctx, mission)
	return args.Error(0)
}

func (m *MockMissionRepository) FindMissionByID(ctx context.Context, missionID string) (*domain.Mission, error) {
	args := m.Called(ctx, missionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Mission), args.Error(1)
}

func (m *MockMissionRepository) ListMissionsByOwner(ctx context.Context, ownerID string) ([]domain.Mission, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Mission), args.Error(1)
}

func (m *MockMissionRepository) UpdateMission(ctx context.Context, mission domain.Mission) error {
	args := m.Called(ctx, mission)
	return args.Error(0)
}

func (m *MockMissionRepository) MarkMissionDeleted(ctx context.Context, missionID string, deletedBy string, at time.Time) error {
	args := m.Called(ctx, missionID, deletedBy, at)
	return args.Error(0)
}

// --- Mock CompanyRepository ---

type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) ListCompaniesByOwner(ctx context.Context, ownerID string) ([]domain.Company, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) MarkCompanyDeleted(ctx context.Context, companyID string, deletedBy string, at time.Time) error {
	args := m.Called(ctx, companyID, deletedBy, at)
	return args.Error(0)
}
