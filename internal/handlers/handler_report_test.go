package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/indeko/indeko_backend/internal/apperrors"
	"github.com/indeko/indeko_backend/internal/core/domain"
	portssvc "github.com/indeko/indeko_backend/internal/core/ports/services"
	"github.com/indeko/indeko_backend/internal/dto"
	"github.com/indeko/indeko_backend/internal/handlers"
	"github.com/indeko/indeko_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ReportService ---
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) CreateReport(ctx context.Context, ownerID string, req dto.CreateReportRequest) (*domain.Report, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}
func (m *MockReportService) GetReportByID(ctx context.Context, ownerID, reportID string, includeEntries bool) (*domain.Report, error) {
	args := m.Called(ctx, ownerID, reportID, includeEntries)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}
func (m *MockReportService) ListReports(ctx context.Context, ownerID string, params dto.ListReportsParams) (*dto.ListReportsResponse, error) {
	args := m.Called(ctx, ownerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListReportsResponse), args.Error(1)
}
func (m *MockReportService) DeleteReport(ctx context.Context, ownerID, reportID string) error {
	args := m.Called(ctx, ownerID, reportID)
	return args.Error(0)
}
func (m *MockReportService) SubmitReport(ctx context.Context, ownerID, reportID string) (*domain.Report, error) {
	args := m.Called(ctx, ownerID, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

var _ portssvc.ReportSvcFacade = (*MockReportService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) LockReport(ctx context.Context, ownerID, reportID string) (*domain.Report, string, error) {
	args := m.Called(ctx, ownerID, reportID)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*domain.Report), args.String(1), args.Error(2)
}
func (m *MockLedgerService) ListCommits(ctx context.Context, ownerID, reportID string) ([]domain.LedgerCommit, error) {
	args := m.Called(ctx, ownerID, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerCommit), args.Error(1)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock ExportService ---
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) ExportReport(ctx context.Context, ownerID, reportID, format string, includeEntries bool) ([]byte, string, error) {
	args := m.Called(ctx, ownerID, reportID, format, includeEntries)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

var _ portssvc.ExportSvcFacade = (*MockExportService)(nil)

// --- Test Suite ---
type ReportHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockReportService *MockReportService
	mockLedgerService *MockLedgerService
	mockExportService *MockExportService
	jwtSecret         string
}

// generateTestToken creates a signed JWT for testing.
func (suite *ReportHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "indeko-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *ReportHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockReportService = new(MockReportService)
	suite.mockLedgerService = new(MockLedgerService)
	suite.mockExportService = new(MockExportService)

	cfg := &config.Config{
		JWTSecret:      suite.jwtSecret,
		JWTIssuer:      "indeko-test",
		LoginRateLimit: "5-M",
		IsProduction:   true, // skip swagger routes
	}
	services := &portssvc.ServiceContainer{
		Report: suite.mockReportService,
		Ledger: suite.mockLedgerService,
		Export: suite.mockExportService,
	}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *ReportHandlerTestSuite) doRequest(method, url, userID string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *ReportHandlerTestSuite) TestCreateReport_Success() {
	ownerID := uuid.NewString()
	reportID := uuid.NewString()

	expected := &domain.Report{
		ReportID:     reportID,
		OwnerID:      ownerID,
		Month:        1,
		Year:         2026,
		Status:       domain.ReportDraft,
		CurrencyCode: "EUR",
		TotalDays:    decimal.Zero,
	}
	suite.mockReportService.On("CreateReport",
		mock.Anything,
		ownerID,
		mock.MatchedBy(func(r dto.CreateReportRequest) bool {
			return r.Month == 1 && r.Year == 2026 && r.CurrencyCode == "EUR"
		}),
	).Return(expected, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/reports", ownerID, dto.CreateReportRequest{
		Month:        1,
		Year:         2026,
		CurrencyCode: "EUR",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ReportResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(reportID, resp.ReportID)
	suite.Equal("DRAFT", resp.Status)
	suite.mockReportService.AssertExpectations(suite.T())
}

func (suite *ReportHandlerTestSuite) TestCreateReport_DuplicatePeriodConflict() {
	ownerID := uuid.NewString()

	suite.mockReportService.On("CreateReport", mock.Anything, ownerID, mock.Anything).
		Return(nil, fmt.Errorf("%w: a report already exists for 2026-01", apperrors.ErrConflict)).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/reports", ownerID, dto.CreateReportRequest{
		Month:        1,
		Year:         2026,
		CurrencyCode: "EUR",
	})

	suite.Equal(http.StatusConflict, w.Code)
	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("conflict", resp.Code)
}

func (suite *ReportHandlerTestSuite) TestGetReport_NotFound() {
	ownerID := uuid.NewString()
	reportID := uuid.NewString()

	suite.mockReportService.On("GetReportByID", mock.Anything, ownerID, reportID, false).
		Return(nil, fmt.Errorf("%w: report %s", apperrors.ErrNotFound, reportID)).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/reports/"+reportID, ownerID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *ReportHandlerTestSuite) TestGetReport_RequiresToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/reports/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockReportService.AssertNotCalled(suite.T(), "GetReportByID")
}

func (suite *ReportHandlerTestSuite) TestSubmitReport_NoEntriesIsBadRequest() {
	ownerID := uuid.NewString()
	reportID := uuid.NewString()

	suite.mockReportService.On("SubmitReport", mock.Anything, ownerID, reportID).
		Return(nil, fmt.Errorf("%w: report has no entries", apperrors.ErrValidation)).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/reports/"+reportID+"/submit", ownerID, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("validation_error", resp.Code)
}

func (suite *ReportHandlerTestSuite) TestLockReport_ReturnsRevision() {
	ownerID := uuid.NewString()
	reportID := uuid.NewString()
	revisionID := "3b7a1d4f9c0e8b2a6d5f4e3c2b1a0f9e8d7c6b5a"
	now := time.Now().UTC()

	locked := &domain.Report{
		ReportID:     reportID,
		OwnerID:      ownerID,
		Month:        1,
		Year:         2026,
		Status:       domain.ReportLocked,
		CurrencyCode: "EUR",
		TotalDays:    decimal.NewFromFloat(1.5),
		TotalAmount:  75000,
		LockedAt:     &now,
	}
	suite.mockLedgerService.On("LockReport", mock.Anything, ownerID, reportID).
		Return(locked, revisionID, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/reports/"+reportID+"/lock", ownerID, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.LockReportResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(revisionID, resp.RevisionID)
	suite.Equal("LOCKED", resp.Report.Status)
	suite.NotNil(resp.Report.LockedAt)
}

func (suite *ReportHandlerTestSuite) TestLockReport_StoreUnavailable() {
	ownerID := uuid.NewString()
	reportID := uuid.NewString()

	suite.mockLedgerService.On("LockReport", mock.Anything, ownerID, reportID).
		Return(nil, "", fmt.Errorf("%w: ledger store commit failed", apperrors.ErrRetryable)).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/reports/"+reportID+"/lock", ownerID, nil)

	suite.Equal(http.StatusServiceUnavailable, w.Code)
	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("retryable", resp.Code)
}

func (suite *ReportHandlerTestSuite) TestListCommits_Success() {
	ownerID := uuid.NewString()
	reportID := uuid.NewString()

	commits := []domain.LedgerCommit{
		{ReportID: reportID, Sequence: 1, PayloadHash: "aa", RevisionID: "r1", CreatedAt: time.Now().UTC()},
		{ReportID: reportID, Sequence: 2, PayloadHash: "bb", RevisionID: "r2", CreatedAt: time.Now().UTC()},
	}
	suite.mockLedgerService.On("ListCommits", mock.Anything, ownerID, reportID).
		Return(commits, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/reports/"+reportID+"/commits", ownerID, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.LedgerCommitResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 2)
	suite.Equal(int64(1), resp[0].Sequence)
	suite.Equal("r2", resp[1].RevisionID)
}

func (suite *ReportHandlerTestSuite) TestExportReport_CSV() {
	ownerID := uuid.NewString()
	reportID := uuid.NewString()
	csvBody := "date,assignment_name,quantity,unit_price,line_total,description\nTOTAL,,0.00,,0.00,\n"

	suite.mockExportService.On("ExportReport", mock.Anything, ownerID, reportID, "csv", true).
		Return([]byte(csvBody), "text/csv", nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/reports/"+reportID+"/export", ownerID, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("text/csv", w.Header().Get("Content-Type"))
	suite.Contains(w.Header().Get("Content-Disposition"), reportID)
	suite.Equal(csvBody, w.Body.String())
}

func (suite *ReportHandlerTestSuite) TestExportReport_UnsupportedFormat() {
	ownerID := uuid.NewString()
	reportID := uuid.NewString()

	suite.mockExportService.On("ExportReport", mock.Anything, ownerID, reportID, "xlsx", true).
		Return(nil, "", fmt.Errorf("%w: unsupported export format xlsx", apperrors.ErrValidation)).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/reports/"+reportID+"/export?format=xlsx", ownerID, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *ReportHandlerTestSuite) TestDeleteReport_Success() {
	ownerID := uuid.NewString()
	reportID := uuid.NewString()

	suite.mockReportService.On("DeleteReport", mock.Anything, ownerID, reportID).
		Return(nil).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/reports/"+reportID, ownerID, nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockReportService.AssertExpectations(suite.T())
}

func TestReportHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ReportHandlerTestSuite))
}
