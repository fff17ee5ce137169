package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/roadmap-planner-api/internal/errors"
	"github.com/yukikurage/roadmap-planner-api/internal/middleware"
	"github.com/yukikurage/roadmap-planner-api/internal/repository"
	"github.com/yukikurage/roadmap-planner-api/internal/services"
)

// GroupingHandler serves the objective, module and team routes. Each
// route binds a fixed kind; the handlers themselves are shared.
type GroupingHandler struct {
	groupingService *services.GroupingService
}

// NewGroupingHandler creates a new GroupingHandler.
func NewGroupingHandler(groupingService *services.GroupingService) *GroupingHandler {
	return &GroupingHandler{
		groupingService: groupingService,
	}
}

// List returns a roadmap's groupings of one kind.
func (h *GroupingHandler) List(kind repository.GroupingKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		roadmap, ok := middleware.GetRoadmap(c)
		if !ok {
			apierrors.NotFound(c, "Roadmap not found")
			return
		}

		groupings, err := h.groupingService.ListGroupings(kind, roadmap.ID)
		if err != nil {
			respondGroupingError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{string(kind) + "s": groupings})
	}
}

// Create adds a grouping to a roadmap.
func (h *GroupingHandler) Create(kind repository.GroupingKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		roadmap, ok := middleware.GetRoadmap(c)
		if !ok {
			apierrors.NotFound(c, "Roadmap not found")
			return
		}

		type CreateRequest struct {
			Title       string  `json:"title" binding:"required,max=255"`
			Color       string  `json:"color"`
			Description *string `json:"description"`
		}

		var req CreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.BadRequest(c, "Invalid request body")
			return
		}

		grouping, err := h.groupingService.CreateGrouping(kind, services.CreateGroupingInput{
			RoadmapID:   roadmap.ID,
			Title:       req.Title,
			Color:       req.Color,
			Description: req.Description,
		})
		if err != nil {
			respondGroupingError(c, err)
			return
		}

		c.JSON(http.StatusCreated, grouping)
	}
}

// Update applies a partial update to a grouping.
func (h *GroupingHandler) Update(kind repository.GroupingKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		roadmap, ok := middleware.GetRoadmap(c)
		if !ok {
			apierrors.NotFound(c, "Roadmap not found")
			return
		}

		type UpdateRequest struct {
			Title       *string `json:"title"`
			Color       *string `json:"color"`
			Description *string `json:"description"`
			OrderIndex  *int    `json:"order_index"`
		}

		var req UpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.BadRequest(c, "Invalid request body")
			return
		}

		grouping, err := h.fetchInRoadmap(c, kind, roadmap.ID)
		if err != nil {
			return
		}

		updated, err := h.groupingService.UpdateGrouping(kind, grouping.ID, services.UpdateGroupingInput{
			Title:       req.Title,
			Color:       req.Color,
			Description: req.Description,
			OrderIndex:  req.OrderIndex,
		})
		if err != nil {
			respondGroupingError(c, err)
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

// Delete removes a grouping. Its items move to Unassigned.
func (h *GroupingHandler) Delete(kind repository.GroupingKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		roadmap, ok := middleware.GetRoadmap(c)
		if !ok {
			apierrors.NotFound(c, "Roadmap not found")
			return
		}

		grouping, err := h.fetchInRoadmap(c, kind, roadmap.ID)
		if err != nil {
			return
		}

		if err := h.groupingService.DeleteGrouping(kind, grouping.ID); err != nil {
			respondGroupingError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Deleted successfully",
		})
	}
}

// fetchInRoadmap loads the :grouping_id grouping and hides groupings
// that belong to other roadmaps. It writes the error response itself.
func (h *GroupingHandler) fetchInRoadmap(c *gin.Context, kind repository.GroupingKind, roadmapID string) (*repository.Grouping, error) {
	grouping, err := h.groupingService.GetGrouping(kind, c.Param("grouping_id"))
	if err != nil {
		respondGroupingError(c, err)
		return nil, err
	}
	if grouping.RoadmapID != roadmapID {
		apierrors.NotFound(c, "Not found")
		return nil, services.ErrGroupingNotFound
	}
	return grouping, nil
}

func respondGroupingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrInvalidGroupingKind):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrGroupingNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
