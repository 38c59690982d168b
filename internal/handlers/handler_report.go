package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	portssvc "github.com/indeko/indeko_backend/internal/core/ports/services"
	"github.com/indeko/indeko_backend/internal/dto"
	"github.com/indeko/indeko_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// reportHandler handles HTTP requests for activity reports.
type reportHandler struct {
	reportService portssvc.ReportSvcFacade
	ledgerService portssvc.LedgerSvcFacade
	exportService portssvc.ExportSvcFacade
}

func newReportHandler(rs portssvc.ReportSvcFacade, ls portssvc.LedgerSvcFacade, es portssvc.ExportSvcFacade) *reportHandler {
	return &reportHandler{
		reportService: rs,
		ledgerService: ls,
		exportService: es,
	}
}

// registerReportRoutes registers report lifecycle, ledger and export routes.
func registerReportRoutes(rg *gin.RouterGroup, reportService portssvc.ReportSvcFacade, ledgerService portssvc.LedgerSvcFacade, exportService portssvc.ExportSvcFacade) {
	h := newReportHandler(reportService, ledgerService, exportService)

	reports := rg.Group("/reports")
	{
		reports.POST("", h.createReport)
		reports.GET("", h.listReports)
		reports.GET("/:id", h.getReport)
		reports.DELETE("/:id", h.deleteReport)
		reports.POST("/:id/submit", h.submitReport)
		reports.POST("/:id/lock", h.lockReport)
		reports.GET("/:id/commits", h.listCommits)
		reports.GET("/:id/export", h.exportReport)
	}
}

// createReport godoc
// @Summary Create a draft report
// @Description Creates a draft activity report for a month/year period
// @Tags reports
// @Accept json
// @Produce json
// @Param report body dto.CreateReportRequest true "Report period"
// @Success 201 {object} dto.ReportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "A report already exists for this period"
// @Security BearerAuth
// @Router /reports [post]
func (h *reportHandler) createReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var req dto.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error(), Code: "validation_error"})
		return
	}

	report, err := h.reportService.CreateReport(c.Request.Context(), ownerID, req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	logger.Info("Report created", slog.String("report_id", report.ReportID), slog.Int("month", report.Month), slog.Int("year", report.Year))
	c.JSON(http.StatusCreated, dto.ToReportResponse(report))
}

// listReports godoc
// @Summary List reports
// @Description Lists the authenticated user's reports, newest period first
// @Tags reports
// @Produce json
// @Param limit query int false "Page size (max 100)"
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListReportsResponse
// @Security BearerAuth
// @Router /reports [get]
func (h *reportHandler) listReports(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var params dto.ListReportsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error(), Code: "validation_error"})
		return
	}

	resp, err := h.reportService.ListReports(c.Request.Context(), ownerID, params)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getReport godoc
// @Summary Get a report
// @Description Retrieves a report, optionally with its entries
// @Tags reports
// @Produce json
// @Param id path string true "Report ID"
// @Param includeEntries query bool false "Include entries"
// @Success 200 {object} dto.ReportResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/{id} [get]
func (h *reportHandler) getReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	includeEntries := c.Query("includeEntries") == "true"
	report, err := h.reportService.GetReportByID(c.Request.Context(), ownerID, c.Param("id"), includeEntries)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToReportResponse(report))
}

// deleteReport godoc
// @Summary Delete a draft report
// @Description Soft deletes a report. Only drafts can be deleted.
// @Tags reports
// @Param id path string true "Report ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Report is not a draft"
// @Security BearerAuth
// @Router /reports/{id} [delete]
func (h *reportHandler) deleteReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.reportService.DeleteReport(c.Request.Context(), ownerID, c.Param("id")); err != nil {
		respondError(c, logger, err)
		return
	}
	logger.Info("Report deleted", slog.String("report_id", c.Param("id")))
	c.Status(http.StatusNoContent)
}

// submitReport godoc
// @Summary Submit a report
// @Description Moves a draft report with at least one entry to SUBMITTED
// @Tags reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} dto.ReportResponse
// @Failure 400 {object} ErrorResponse "Report has no entries"
// @Failure 409 {object} ErrorResponse "Invalid status transition"
// @Security BearerAuth
// @Router /reports/{id}/submit [post]
func (h *reportHandler) submitReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	report, err := h.reportService.SubmitReport(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	logger.Info("Report submitted", slog.String("report_id", report.ReportID))
	c.JSON(http.StatusOK, dto.ToReportResponse(report))
}

// lockReport godoc
// @Summary Lock a report
// @Description Moves a submitted report to LOCKED and commits its canonical payload to the ledger
// @Tags reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} dto.LockReportResponse
// @Failure 409 {object} ErrorResponse "Invalid status transition"
// @Failure 503 {object} ErrorResponse "Ledger store temporarily unavailable"
// @Security BearerAuth
// @Router /reports/{id}/lock [post]
func (h *reportHandler) lockReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	report, revisionID, err := h.ledgerService.LockReport(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	logger.Info("Report locked", slog.String("report_id", report.ReportID), slog.String("revision_id", revisionID))
	c.JSON(http.StatusOK, dto.LockReportResponse{
		Report:     dto.ToReportResponse(report),
		RevisionID: revisionID,
	})
}

// listCommits godoc
// @Summary List ledger commits
// @Description Lists the ledger commits recorded for a report, oldest first
// @Tags reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {array} dto.LedgerCommitResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/{id}/commits [get]
func (h *reportHandler) listCommits(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	commits, err := h.ledgerService.ListCommits(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerCommitResponses(commits))
}

// exportReport godoc
// @Summary Export a report
// @Description Renders a report as a downloadable file. Only csv is supported.
// @Tags reports
// @Produce text/csv
// @Param id path string true "Report ID"
// @Param format query string false "Export format" default(csv)
// @Param includeEntries query bool false "Include per-entry rows" default(true)
// @Success 200 {string} string "CSV content"
// @Failure 400 {object} ErrorResponse "Unsupported format"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/{id}/export [get]
func (h *reportHandler) exportReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	format := c.DefaultQuery("format", "csv")
	includeEntries := c.DefaultQuery("includeEntries", "true") == "true"

	reportID := c.Param("id")
	data, contentType, err := h.exportService.ExportReport(c.Request.Context(), ownerID, reportID, format, includeEntries)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=report-%s.%s", reportID, format))
	c.Data(http.StatusOK, contentType, data)
}
