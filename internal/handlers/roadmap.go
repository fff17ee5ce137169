package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/roadmap-planner-api/internal/dto"
	apierrors "github.com/yukikurage/roadmap-planner-api/internal/errors"
	"github.com/yukikurage/roadmap-planner-api/internal/middleware"
	"github.com/yukikurage/roadmap-planner-api/internal/models"
	"github.com/yukikurage/roadmap-planner-api/internal/services"
	"github.com/yukikurage/roadmap-planner-api/internal/utils"
)

// RoadmapHandler coordinates roadmap HTTP handlers.
type RoadmapHandler struct {
	roadmapService *services.RoadmapService
}

// NewRoadmapHandler creates a new RoadmapHandler.
func NewRoadmapHandler(roadmapService *services.RoadmapService) *RoadmapHandler {
	return &RoadmapHandler{
		roadmapService: roadmapService,
	}
}

// List returns the current user's roadmaps.
func (h *RoadmapHandler) List(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)

	roadmaps, total, err := h.roadmapService.ListRoadmaps(userID, params)
	if err != nil {
		apierrors.InternalError(c, "Failed to list roadmaps")
		return
	}

	dtos := make([]dto.RoadmapDTO, len(roadmaps))
	for i, roadmap := range roadmaps {
		dtos[i] = dto.ToRoadmapDTO(roadmap, true)
	}

	c.JSON(http.StatusOK, gin.H{
		"roadmaps": dtos,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// Create creates a new roadmap owned by the current user.
func (h *RoadmapHandler) Create(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateRequest struct {
		Title       string  `json:"title" binding:"required,max=255"`
		Description *string `json:"description"`
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	roadmap, err := h.roadmapService.CreateRoadmap(services.CreateRoadmapInput{
		Title:       req.Title,
		Description: req.Description,
		OwnerID:     userID,
	})
	if err != nil {
		respondRoadmapError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToRoadmapDTO(*roadmap, true))
}

// Get returns a roadmap with all of its groupings and items.
func (h *RoadmapHandler) Get(c *gin.Context) {
	roadmap, ok := middleware.GetRoadmap(c)
	if !ok {
		apierrors.NotFound(c, "Roadmap not found")
		return
	}

	full, err := h.roadmapService.GetRoadmapWithData(roadmap.ID)
	if err != nil {
		respondRoadmapError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.toRoadmapWithData(c, *full))
}

// GetShared resolves a share link without authentication.
func (h *RoadmapHandler) GetShared(c *gin.Context) {
	token := c.Param("token")

	roadmap, err := h.roadmapService.GetRoadmapByShareToken(token)
	if err != nil {
		respondRoadmapError(c, err)
		return
	}
	if !roadmap.IsPublic {
		apierrors.NotFound(c, "Roadmap not found")
		return
	}

	full, err := h.roadmapService.GetRoadmapWithData(roadmap.ID)
	if err != nil {
		respondRoadmapError(c, err)
		return
	}

	payload := h.toRoadmapWithData(c, *full)
	payload.Roadmap.ShareToken = nil
	c.JSON(http.StatusOK, payload)
}

// Update applies a partial update to a roadmap.
func (h *RoadmapHandler) Update(c *gin.Context) {
	roadmap, ok := middleware.GetRoadmap(c)
	if !ok {
		apierrors.NotFound(c, "Roadmap not found")
		return
	}

	type UpdateRequest struct {
		Title            *string `json:"title"`
		Description      *string `json:"description"`
		ClearDescription bool    `json:"clear_description"`
		IsPublic         *bool   `json:"is_public"`
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.roadmapService.UpdateRoadmap(roadmap.ID, services.UpdateRoadmapInput{
		Title:            req.Title,
		Description:      req.Description,
		ClearDescription: req.ClearDescription,
		IsPublic:         req.IsPublic,
	})
	if err != nil {
		respondRoadmapError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRoadmapDTO(*updated, true))
}

// Share enables link sharing and returns the share token.
func (h *RoadmapHandler) Share(c *gin.Context) {
	roadmap, ok := middleware.GetRoadmap(c)
	if !ok {
		apierrors.NotFound(c, "Roadmap not found")
		return
	}

	updated, err := h.roadmapService.EnableSharing(roadmap.ID)
	if err != nil {
		respondRoadmapError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRoadmapDTO(*updated, true))
}

// Unshare disables link sharing and revokes the token.
func (h *RoadmapHandler) Unshare(c *gin.Context) {
	roadmap, ok := middleware.GetRoadmap(c)
	if !ok {
		apierrors.NotFound(c, "Roadmap not found")
		return
	}

	updated, err := h.roadmapService.DisableSharing(roadmap.ID)
	if err != nil {
		respondRoadmapError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRoadmapDTO(*updated, true))
}

// Delete removes a roadmap and everything under it.
func (h *RoadmapHandler) Delete(c *gin.Context) {
	roadmap, ok := middleware.GetRoadmap(c)
	if !ok {
		apierrors.NotFound(c, "Roadmap not found")
		return
	}

	if err := h.roadmapService.DeleteRoadmap(roadmap.ID); err != nil {
		respondRoadmapError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Roadmap deleted successfully",
	})
}

func (h *RoadmapHandler) toRoadmapWithData(c *gin.Context, roadmap models.Roadmap) dto.RoadmapWithDataDTO {
	return dto.RoadmapWithDataDTO{
		Roadmap:    dto.ToRoadmapDTO(roadmap, middleware.IsRoadmapOwner(c)),
		Objectives: dto.ToObjectiveGroupings(roadmap.Objectives),
		Modules:    dto.ToModuleGroupings(roadmap.Modules),
		Teams:      dto.ToTeamGroupings(roadmap.Teams),
		Items:      dto.ToItemDTOs(roadmap.Items),
	}
}

func respondRoadmapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrRoadmapNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
