package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/indeko/indeko_backend/internal/apperrors"
	"github.com/indeko/indeko_backend/internal/core/domain"
	portssvc "github.com/indeko/indeko_backend/internal/core/ports/services"
	"github.com/indeko/indeko_backend/internal/core/services"
	"github.com/indeko/indeko_backend/internal/dto"
)

// --- Mock ReportSvc ---
type MockReportSvc struct {
	mock.Mock
}

func (m *MockReportSvc) CreateReport(ctx context.Context, ownerID string, req dto.CreateReportRequest) (*domain.Report, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *MockReportSvc) GetReportByID(ctx context.Context, ownerID, reportID string, includeEntries bool) (*domain.Report, error) {
	args := m.Called(ctx, ownerID, reportID, includeEntries)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *MockReportSvc) ListReports(ctx context.Context, ownerID string, params dto.ListReportsParams) (*dto.ListReportsResponse, error) {
	args := m.Called(ctx, ownerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListReportsResponse), args.Error(1)
}

func (m *MockReportSvc) DeleteReport(ctx context.Context, ownerID, reportID string) error {
	args := m.Called(ctx, ownerID, reportID)
	return args.Error(0)
}

func (m *MockReportSvc) SubmitReport(ctx context.Context, ownerID, reportID string) (*domain.Report, error) {
	args := m.Called(ctx, ownerID, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

type ExportServiceTestSuite struct {
	suite.Suite
	mockReportSvc *MockReportSvc
	service       portssvc.ExportSvcFacade
	ownerID       string
	reportID      string
}

func (suite *ExportServiceTestSuite) SetupTest() {
	suite.mockReportSvc = new(MockReportSvc)
	suite.service = services.NewExportService(suite.mockReportSvc)
	suite.ownerID = uuid.NewString()
	suite.reportID = uuid.NewString()
}

func (suite *ExportServiceTestSuite) TestExportReport_CSVWithEntries() {
	ctx := context.Background()
	report := &domain.Report{
		ReportID:     suite.reportID,
		OwnerID:      suite.ownerID,
		Month:        1,
		Year:         2026,
		Status:       domain.ReportLocked,
		CurrencyCode: "EUR",
		TotalDays:    decimal.RequireFromString("1.5"),
		TotalAmount:  75000,
		Entries: []domain.Entry{
			{
				Date:        time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
				MissionName: "Platform build",
				Quantity:    decimal.NewFromInt(1),
				UnitPrice:   50000,
				Description: "feature work",
			},
			{
				Date:        time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC),
				MissionName: "Platform build",
				Quantity:    decimal.RequireFromString("0.5"),
				UnitPrice:   50000,
			},
		},
	}

	suite.mockReportSvc.On("GetReportByID", ctx, suite.ownerID, suite.reportID, true).Return(report, nil).Once()

	data, contentType, err := suite.service.ExportReport(ctx, suite.ownerID, suite.reportID, "csv", true)

	suite.Require().NoError(err)
	suite.Equal("text/csv", contentType)

	expected := "date,assignment_name,quantity,unit_price,line_total,description\n" +
		"2026-01-10,Platform build,1.00,500.00,500.00,feature work\n" +
		"2026-01-11,Platform build,0.50,500.00,250.00,\n" +
		"TOTAL,,1.50,,750.00,\n"
	suite.Equal(expected, string(data))
}

func (suite *ExportServiceTestSuite) TestExportReport_TotalsOnly() {
	ctx := context.Background()
	report := &domain.Report{
		ReportID:    suite.reportID,
		OwnerID:     suite.ownerID,
		TotalDays:   decimal.NewFromInt(3),
		TotalAmount: 150000,
	}

	suite.mockReportSvc.On("GetReportByID", ctx, suite.ownerID, suite.reportID, false).Return(report, nil).Once()

	data, _, err := suite.service.ExportReport(ctx, suite.ownerID, suite.reportID, "csv", false)

	suite.Require().NoError(err)
	expected := "date,assignment_name,quantity,unit_price,line_total,description\n" +
		"TOTAL,,3.00,,1500.00,\n"
	suite.Equal(expected, string(data))
}

func (suite *ExportServiceTestSuite) TestExportReport_UnsupportedFormat() {
	ctx := context.Background()

	data, _, err := suite.service.ExportReport(ctx, suite.ownerID, suite.reportID, "xlsx", true)

	suite.Require().Error(err)
	suite.Nil(data)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockReportSvc.AssertNotCalled(suite.T(), "GetReportByID", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExportService(t *testing.T) {
	suite.Run(t, new(ExportServiceTestSuite))
}
