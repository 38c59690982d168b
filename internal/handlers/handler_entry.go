package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/indeko/indeko_backend/internal/core/ports/services"
	"github.com/indeko/indeko_backend/internal/dto"
	"github.com/indeko/indeko_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// entryHandler handles HTTP requests for report entries.
type entryHandler struct {
	entryService portssvc.EntrySvcFacade
}

func newEntryHandler(es portssvc.EntrySvcFacade) *entryHandler {
	return &entryHandler{entryService: es}
}

// registerEntryRoutes registers entry mutation routes. Creation is nested
// under the report; update and delete address the entry directly.
func registerEntryRoutes(rg *gin.RouterGroup, entryService portssvc.EntrySvcFacade) {
	h := newEntryHandler(entryService)

	rg.POST("/reports/:id/entries", h.createEntry)
	entries := rg.Group("/entries")
	{
		entries.PUT("/:id", h.updateEntry)
		entries.DELETE("/:id", h.deleteEntry)
	}
}

// createEntry godoc
// @Summary Add an entry to a report
// @Description Adds a dated entry to a draft report and recalculates its totals
// @Tags entries
// @Accept json
// @Produce json
// @Param id path string true "Report ID"
// @Param entry body dto.CreateEntryRequest true "Entry details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} ErrorResponse "Invalid quantity, date outside period, or foreign mission"
// @Failure 409 {object} ErrorResponse "Duplicate mission/date or report not modifiable"
// @Security BearerAuth
// @Router /reports/{id}/entries [post]
func (h *entryHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error(), Code: "validation_error"})
		return
	}

	entry, err := h.entryService.CreateEntry(c.Request.Context(), ownerID, c.Param("id"), req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	logger.Info("Entry created", slog.String("entry_id", entry.EntryID), slog.String("report_id", c.Param("id")))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// updateEntry godoc
// @Summary Update an entry
// @Description Updates an entry on a draft report and recalculates its totals
// @Tags entries
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Param entry body dto.UpdateEntryRequest true "Fields to update"
// @Success 200 {object} dto.EntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Report not modifiable"
// @Security BearerAuth
// @Router /entries/{id} [put]
func (h *entryHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error(), Code: "validation_error"})
		return
	}

	entry, err := h.entryService.UpdateEntry(c.Request.Context(), ownerID, c.Param("id"), req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// deleteEntry godoc
// @Summary Delete an entry
// @Description Soft deletes an entry from a draft report and recalculates its totals
// @Tags entries
// @Param id path string true "Entry ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Report not modifiable"
// @Security BearerAuth
// @Router /entries/{id} [delete]
func (h *entryHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.entryService.DeleteEntry(c.Request.Context(), ownerID, c.Param("id")); err != nil {
		respondError(c, logger, err)
		return
	}
	logger.Info("Entry deleted", slog.String("entry_id", c.Param("id")))
	c.Status(http.StatusNoContent)
}
