package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/indeko/indeko_backend/internal/core/ports/services"
	"github.com/indeko/indeko_backend/internal/dto"
	"github.com/indeko/indeko_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// missionHandler handles HTTP requests for missions.
type missionHandler struct {
	missionService portssvc.MissionSvcFacade
}

func newMissionHandler(ms portssvc.MissionSvcFacade) *missionHandler {
	return &missionHandler{missionService: ms}
}

// registerMissionRoutes registers all mission-related routes.
func registerMissionRoutes(rg *gin.RouterGroup, missionService portssvc.MissionSvcFacade) {
	h := newMissionHandler(missionService)

	missions := rg.Group("/missions")
	{
		missions.POST("", h.createMission)
		missions.GET("", h.listMissions)
		missions.GET("/:id", h.getMission)
		missions.PUT("/:id", h.updateMission)
		missions.DELETE("/:id", h.deleteMission)
	}
}

// createMission godoc
// @Summary Create a mission
// @Description Creates a mission attached to one of the user's companies
// @Tags missions
// @Accept json
// @Produce json
// @Param mission body dto.CreateMissionRequest true "Mission details"
// @Success 201 {object} dto.MissionResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /missions [post]
func (h *missionHandler) createMission(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var req dto.CreateMissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error(), Code: "validation_error"})
		return
	}

	mission, err := h.missionService.CreateMission(c.Request.Context(), ownerID, req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	logger.Info("Mission created", slog.String("mission_id", mission.MissionID))
	c.JSON(http.StatusCreated, dto.ToMissionResponse(mission))
}

// listMissions godoc
// @Summary List missions
// @Tags missions
// @Produce json
// @Success 200 {array} dto.MissionResponse
// @Security BearerAuth
// @Router /missions [get]
func (h *missionHandler) listMissions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	missions, err := h.missionService.ListMissions(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToMissionResponses(missions))
}

// getMission godoc
// @Summary Get a mission
// @Tags missions
// @Produce json
// @Param id path string true "Mission ID"
// @Success 200 {object} dto.MissionResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /missions/{id} [get]
func (h *missionHandler) getMission(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	mission, err := h.missionService.GetMissionByID(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToMissionResponse(mission))
}

// updateMission godoc
// @Summary Update a mission
// @Tags missions
// @Accept json
// @Produce json
// @Param id path string true "Mission ID"
// @Param mission body dto.UpdateMissionRequest true "Fields to update"
// @Success 200 {object} dto.MissionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /missions/{id} [put]
func (h *missionHandler) updateMission(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var req dto.UpdateMissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error(), Code: "validation_error"})
		return
	}

	mission, err := h.missionService.UpdateMission(c.Request.Context(), ownerID, c.Param("id"), req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToMissionResponse(mission))
}

// deleteMission godoc
// @Summary Delete a mission
// @Tags missions
// @Param id path string true "Mission ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /missions/{id} [delete]
func (h *missionHandler) deleteMission(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.missionService.DeleteMission(c.Request.Context(), ownerID, c.Param("id")); err != nil {
		respondError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
