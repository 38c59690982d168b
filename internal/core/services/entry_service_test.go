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

type EntryServiceTestSuite struct {
	suite.Suite
	mockReportRepo  *MockReportRepository
	mockEntryRepo   *MockEntryRepository
	mockMissionRepo *MockMissionRepository
	mockLinkRepo    *MockLinkRepository
	service         portssvc.EntrySvcFacade
	ownerID         string
	reportID        string
	missionID       string
}

func (suite *EntryServiceTestSuite) SetupTest() {
	suite.mockReportRepo = new(MockReportRepository)
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.mockMissionRepo = new(MockMissionRepository)
	suite.mockLinkRepo = new(MockLinkRepository)

	linkingSvc := services.NewLinkingService(suite.mockLinkRepo)
	totalsSvc := services.NewTotalsService(suite.mockEntryRepo, suite.mockReportRepo)
	suite.service = services.NewEntryService(
		suite.mockReportRepo,
		suite.mockEntryRepo,
		suite.mockMissionRepo,
		linkingSvc,
		totalsSvc,
		&MockTxManager{},
	)

	suite.ownerID = uuid.NewString()
	suite.reportID = uuid.NewString()
	suite.missionID = uuid.NewString()
}

func (suite *EntryServiceTestSuite) draftReport() *domain.Report {
	return &domain.Report{
		ReportID: suite.reportID,
		OwnerID:  suite.ownerID,
		Month:    1,
		Year:     2026,
		Status:   domain.ReportDraft,
	}
}

func (suite *EntryServiceTestSuite) mission() *domain.Mission {
	return &domain.Mission{
		MissionID: suite.missionID,
		OwnerID:   suite.ownerID,
		Title:     "Platform build",
		IsActive:  true,
	}
}

func (suite *EntryServiceTestSuite) createRequest() dto.CreateEntryRequest {
	return dto.CreateEntryRequest{
		MissionID: suite.missionID,
		Date:      time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		Quantity:  decimal.NewFromInt(1),
		UnitPrice: 50000,
	}
}

// expectRecalculate sets up the totals pass an entry mutation triggers.
func (suite *EntryServiceTestSuite) expectRecalculate(entries []domain.Entry, wantDays decimal.Decimal, wantAmount int64) {
	suite.mockEntryRepo.On("FindEntriesByReportInTx", mock.Anything, mock.Anything, suite.reportID).Return(entries, nil).Once()
	suite.mockReportRepo.On("UpdateReportTotalsInTx", mock.Anything, mock.Anything, suite.reportID,
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(wantDays) }),
		wantAmount, suite.ownerID, mock.AnythingOfType("time.Time")).Return(nil).Once()
}

func (suite *EntryServiceTestSuite) TestCreateEntry_Success() {
	ctx := context.Background()
	req := suite.createRequest()

	suite.mockMissionRepo.On("FindMissionByID", ctx, suite.missionID).Return(suite.mission(), nil).Once()
	suite.mockReportRepo.On("FindReportForUpdate", ctx, mock.Anything, suite.reportID).Return(suite.draftReport(), nil).Once()
	suite.mockEntryRepo.On("ExistsForReportMissionDateInTx", ctx, mock.Anything, suite.reportID, suite.missionID, req.Date, "").Return(false, nil).Once()
	suite.mockEntryRepo.On("SaveEntryInTx", ctx, mock.Anything, mock.MatchedBy(func(e domain.Entry) bool {
		return e.MissionID == suite.missionID && e.MissionName == "Platform build" && e.UnitPrice == 50000
	}), suite.reportID).Return(nil).Once()
	suite.mockLinkRepo.On("FindReportMissionLinkInTx", ctx, mock.Anything, suite.reportID, suite.missionID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockLinkRepo.On("SaveReportMissionLinkInTx", ctx, mock.Anything, mock.AnythingOfType("domain.ReportMissionLink")).Return(nil).Once()

	saved := []domain.Entry{{Quantity: decimal.NewFromInt(1), UnitPrice: 50000}}
	suite.expectRecalculate(saved, decimal.NewFromInt(1), 50000)

	entry, err := suite.service.CreateEntry(ctx, suite.ownerID, suite.reportID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(int64(50000), entry.LineTotal())
	suite.mockEntryRepo.AssertExpectations(suite.T())
	suite.mockLinkRepo.AssertExpectations(suite.T())
	suite.mockReportRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestCreateEntry_DuplicateMissionDate() {
	ctx := context.Background()
	req := suite.createRequest()

	suite.mockMissionRepo.On("FindMissionByID", ctx, suite.missionID).Return(suite.mission(), nil).Once()
	suite.mockReportRepo.On("FindReportForUpdate", ctx, mock.Anything, suite.reportID).Return(suite.draftReport(), nil).Once()
	suite.mockEntryRepo.On("ExistsForReportMissionDateInTx", ctx, mock.Anything, suite.reportID, suite.missionID, req.Date, "").Return(true, nil).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.ownerID, suite.reportID, req)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntryInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) TestCreateEntry_DateOutsidePeriod() {
	ctx := context.Background()
	req := suite.createRequest()
	req.Date = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	suite.mockMissionRepo.On("FindMissionByID", ctx, suite.missionID).Return(suite.mission(), nil).Once()
	suite.mockReportRepo.On("FindReportForUpdate", ctx, mock.Anything, suite.reportID).Return(suite.draftReport(), nil).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.ownerID, suite.reportID, req)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *EntryServiceTestSuite) TestCreateEntry_NonDraftReport() {
	ctx := context.Background()
	req := suite.createRequest()
	report := suite.draftReport()
	report.Status = domain.ReportSubmitted

	suite.mockMissionRepo.On("FindMissionByID", ctx, suite.missionID).Return(suite.mission(), nil).Once()
	suite.mockReportRepo.On("FindReportForUpdate", ctx, mock.Anything, suite.reportID).Return(report, nil).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.ownerID, suite.reportID, req)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *EntryServiceTestSuite) TestCreateEntry_NonPositiveQuantity() {
	ctx := context.Background()
	req := suite.createRequest()
	req.Quantity = decimal.Zero

	entry, err := suite.service.CreateEntry(ctx, suite.ownerID, suite.reportID, req)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockMissionRepo.AssertNotCalled(suite.T(), "FindMissionByID", mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) TestCreateEntry_ForeignMission() {
	ctx := context.Background()
	req := suite.createRequest()
	mission := suite.mission()
	mission.OwnerID = uuid.NewString()

	suite.mockMissionRepo.On("FindMissionByID", ctx, suite.missionID).Return(mission, nil).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.ownerID, suite.reportID, req)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *EntryServiceTestSuite) TestUpdateEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	existing := &domain.Entry{
		EntryID:   entryID,
		Date:      time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		Quantity:  decimal.NewFromInt(1),
		UnitPrice: 50000,
		MissionID: suite.missionID,
	}
	newQuantity := decimal.RequireFromString("0.5")

	suite.mockEntryRepo.On("FindEntryReportID", ctx, entryID).Return(suite.reportID, nil).Once()
	suite.mockReportRepo.On("FindReportForUpdate", ctx, mock.Anything, suite.reportID).Return(suite.draftReport(), nil).Once()
	suite.mockEntryRepo.On("FindEntryByIDInTx", ctx, mock.Anything, entryID).Return(existing, suite.reportID, nil).Once()
	suite.mockEntryRepo.On("ExistsForReportMissionDateInTx", ctx, mock.Anything, suite.reportID, suite.missionID, existing.Date, entryID).Return(false, nil).Once()
	suite.mockEntryRepo.On("UpdateEntryInTx", ctx, mock.Anything, mock.MatchedBy(func(e domain.Entry) bool {
		return e.EntryID == entryID && e.Quantity.Equal(newQuantity)
	})).Return(nil).Once()

	updated := []domain.Entry{{Quantity: newQuantity, UnitPrice: 50000}}
	suite.expectRecalculate(updated, newQuantity, 25000)

	entry, err := suite.service.UpdateEntry(ctx, suite.ownerID, entryID, dto.UpdateEntryRequest{Quantity: &newQuantity})

	suite.Require().NoError(err)
	suite.True(entry.Quantity.Equal(newQuantity))
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestUpdateEntry_LockedReport() {
	ctx := context.Background()
	entryID := uuid.NewString()
	report := suite.draftReport()
	report.Status = domain.ReportLocked
	newQuantity := decimal.NewFromInt(2)

	suite.mockEntryRepo.On("FindEntryReportID", ctx, entryID).Return(suite.reportID, nil).Once()
	suite.mockReportRepo.On("FindReportForUpdate", ctx, mock.Anything, suite.reportID).Return(report, nil).Once()

	entry, err := suite.service.UpdateEntry(ctx, suite.ownerID, entryID, dto.UpdateEntryRequest{Quantity: &newQuantity})

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "UpdateEntryInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) TestDeleteEntry_RecalculatesTotals() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockEntryRepo.On("FindEntryReportID", ctx, entryID).Return(suite.reportID, nil).Once()
	suite.mockReportRepo.On("FindReportForUpdate", ctx, mock.Anything, suite.reportID).Return(suite.draftReport(), nil).Once()
	suite.mockEntryRepo.On("SoftDeleteEntryInTx", ctx, mock.Anything, entryID, suite.ownerID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.expectRecalculate(nil, decimal.Zero, 0)

	err := suite.service.DeleteEntry(ctx, suite.ownerID, entryID)

	suite.Require().NoError(err)
	suite.mockEntryRepo.AssertExpectations(suite.T())
	suite.mockReportRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestDeleteEntry_OtherOwnerHidden() {
	ctx := context.Background()
	entryID := uuid.NewString()
	report := suite.draftReport()
	report.OwnerID = uuid.NewString()

	suite.mockEntryRepo.On("FindEntryReportID", ctx, entryID).Return(suite.reportID, nil).Once()
	suite.mockReportRepo.On("FindReportForUpdate", ctx, mock.Anything, suite.reportID).Return(report, nil).Once()

	err := suite.service.DeleteEntry(ctx, suite.ownerID, entryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestEntryService(t *testing.T) {
	suite.Run(t, new(EntryServiceTestSuite))
}
