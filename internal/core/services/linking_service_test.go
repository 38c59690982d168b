package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/indeko/indeko_backend/internal/apperrors"
	"github.com/indeko/indeko_backend/internal/core/domain"
	portssvc "github.com/indeko/indeko_backend/internal/core/ports/services"
	"github.com/indeko/indeko_backend/internal/core/services"
)

type LinkingServiceTestSuite struct {
	suite.Suite
	mockLinkRepo *MockLinkRepository
	service      portssvc.LinkingSvcFacade
	reportID     string
	missionID    string
	actorID      string
}

func (suite *LinkingServiceTestSuite) SetupTest() {
	suite.mockLinkRepo = new(MockLinkRepository)
	suite.service = services.NewLinkingService(suite.mockLinkRepo)
	suite.reportID = uuid.NewString()
	suite.missionID = uuid.NewString()
	suite.actorID = uuid.NewString()
}

func (suite *LinkingServiceTestSuite) TestEnsureLink_CreatesWhenAbsent() {
	ctx := context.Background()

	suite.mockLinkRepo.On("FindReportMissionLinkInTx", ctx, mock.Anything, suite.reportID, suite.missionID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockLinkRepo.On("SaveReportMissionLinkInTx", ctx, mock.Anything, mock.MatchedBy(func(l domain.ReportMissionLink) bool {
		return l.ReportID == suite.reportID && l.MissionID == suite.missionID && l.LinkID != ""
	})).Return(nil).Once()

	link, err := suite.service.EnsureLinkInTx(ctx, nil, suite.reportID, suite.missionID, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(suite.reportID, link.ReportID)
	suite.mockLinkRepo.AssertExpectations(suite.T())
}

func (suite *LinkingServiceTestSuite) TestEnsureLink_ReturnsExisting() {
	ctx := context.Background()
	existing := &domain.ReportMissionLink{
		LinkID:    uuid.NewString(),
		ReportID:  suite.reportID,
		MissionID: suite.missionID,
	}

	suite.mockLinkRepo.On("FindReportMissionLinkInTx", ctx, mock.Anything, suite.reportID, suite.missionID).Return(existing, nil).Once()

	link, err := suite.service.EnsureLinkInTx(ctx, nil, suite.reportID, suite.missionID, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(existing.LinkID, link.LinkID)
	suite.mockLinkRepo.AssertNotCalled(suite.T(), "SaveReportMissionLinkInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LinkingServiceTestSuite) TestEnsureLink_ConcurrentInsertIsSuccess() {
	ctx := context.Background()
	existing := &domain.ReportMissionLink{
		LinkID:    uuid.NewString(),
		ReportID:  suite.reportID,
		MissionID: suite.missionID,
	}

	suite.mockLinkRepo.On("FindReportMissionLinkInTx", ctx, mock.Anything, suite.reportID, suite.missionID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockLinkRepo.On("SaveReportMissionLinkInTx", ctx, mock.Anything, mock.AnythingOfType("domain.ReportMissionLink")).Return(apperrors.ErrDuplicate).Once()
	suite.mockLinkRepo.On("FindReportMissionLinkInTx", ctx, mock.Anything, suite.reportID, suite.missionID).Return(existing, nil).Once()

	link, err := suite.service.EnsureLinkInTx(ctx, nil, suite.reportID, suite.missionID, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(existing.LinkID, link.LinkID)
	suite.mockLinkRepo.AssertExpectations(suite.T())
}

func TestLinkingService(t *testing.T) {
	suite.Run(t, new(LinkingServiceTestSuite))
}
