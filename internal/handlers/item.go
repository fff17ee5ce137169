package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/roadmap-planner-api/internal/board"
	"github.com/yukikurage/roadmap-planner-api/internal/dto"
	apierrors "github.com/yukikurage/roadmap-planner-api/internal/errors"
	"github.com/yukikurage/roadmap-planner-api/internal/middleware"
	"github.com/yukikurage/roadmap-planner-api/internal/models"
	"github.com/yukikurage/roadmap-planner-api/internal/services"
)

// ItemHandler coordinates roadmap item HTTP handlers.
type ItemHandler struct {
	itemService  *services.ItemService
	boardService *services.BoardService
	aiService    *services.AIService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(itemService *services.ItemService, boardService *services.BoardService, aiService *services.AIService) *ItemHandler {
	return &ItemHandler{
		itemService:  itemService,
		boardService: boardService,
		aiService:    aiService,
	}
}

// List returns a roadmap's items in board order.
func (h *ItemHandler) List(c *gin.Context) {
	roadmap, ok := middleware.GetRoadmap(c)
	if !ok {
		apierrors.NotFound(c, "Roadmap not found")
		return
	}

	items, err := h.itemService.ListItems(roadmap.ID)
	if err != nil {
		respondItemError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": dto.ToItemDTOs(items)})
}

// Create adds an item to a roadmap, optionally creating a new
// objective for it in the same request.
func (h *ItemHandler) Create(c *gin.Context) {
	roadmap, ok := middleware.GetRoadmap(c)
	if !ok {
		apierrors.NotFound(c, "Roadmap not found")
		return
	}

	type CreateRequest struct {
		Title             string   `json:"title" binding:"required,max=255"`
		Description       *string  `json:"description"`
		Status            string   `json:"status"`
		Category          string   `json:"category"`
		Tags              []string `json:"tags"`
		ObjectiveID       *string  `json:"objective_id"`
		ModuleID          *string  `json:"module_id"`
		TeamID            *string  `json:"team_id"`
		NewObjectiveTitle *string  `json:"new_objective_title"`
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.itemService.CreateItem(services.CreateItemInput{
		RoadmapID:         roadmap.ID,
		Title:             req.Title,
		Description:       req.Description,
		Status:            models.ItemStatus(req.Status),
		Category:          models.ItemCategory(req.Category),
		Tags:              req.Tags,
		ObjectiveID:       req.ObjectiveID,
		ModuleID:          req.ModuleID,
		TeamID:            req.TeamID,
		NewObjectiveTitle: req.NewObjectiveTitle,
	})
	if err != nil {
		respondItemError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToItemDTO(*item))
}

// Get returns one item.
func (h *ItemHandler) Get(c *gin.Context) {
	item, ok := middleware.GetItem(c)
	if !ok {
		apierrors.NotFound(c, "Item not found")
		return
	}

	c.JSON(http.StatusOK, dto.ToItemDTO(item))
}

// Update applies a partial update to an item.
func (h *ItemHandler) Update(c *gin.Context) {
	item, ok := middleware.GetItem(c)
	if !ok {
		apierrors.NotFound(c, "Item not found")
		return
	}

	type UpdateRequest struct {
		Title            *string   `json:"title"`
		Description      *string   `json:"description"`
		ClearDescription bool      `json:"clear_description"`
		Status           *string   `json:"status"`
		Category         *string   `json:"category"`
		Tags             *[]string `json:"tags"`
		ObjectiveID      *string   `json:"objective_id"`
		ClearObjective   bool      `json:"clear_objective"`
		ModuleID         *string   `json:"module_id"`
		ClearModule      bool      `json:"clear_module"`
		TeamID           *string   `json:"team_id"`
		ClearTeam        bool      `json:"clear_team"`
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateItemInput{
		Title:            req.Title,
		Description:      req.Description,
		ClearDescription: req.ClearDescription,
		Tags:             req.Tags,
		ObjectiveID:      req.ObjectiveID,
		ClearObjective:   req.ClearObjective,
		ModuleID:         req.ModuleID,
		ClearModule:      req.ClearModule,
		TeamID:           req.TeamID,
		ClearTeam:        req.ClearTeam,
	}
	if req.Status != nil {
		status := models.ItemStatus(*req.Status)
		input.Status = &status
	}
	if req.Category != nil {
		category := models.ItemCategory(*req.Category)
		input.Category = &category
	}

	updated, err := h.itemService.UpdateItem(item.ID, input)
	if err != nil {
		respondItemError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToItemDTO(*updated))
}

// UpdateStatus is the drag-and-drop fast path. The response already
// reflects the new status while the store write resolves in the
// background.
func (h *ItemHandler) UpdateStatus(c *gin.Context) {
	roadmap, ok := middleware.GetRoadmap(c)
	if !ok {
		apierrors.NotFound(c, "Roadmap not found")
		return
	}
	item, ok := middleware.GetItem(c)
	if !ok {
		apierrors.NotFound(c, "Item not found")
		return
	}

	type StatusRequest struct {
		Status string `json:"status" binding:"required"`
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.boardService.MoveItem(c.Request.Context(), roadmap.ID, item.ID, models.ItemStatus(req.Status))
	if err != nil {
		respondItemError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToItemDTO(updated))
}

// Move drops an item onto a board zone: "<groupingId>-<status>" in the
// given viewing dimension.
func (h *ItemHandler) Move(c *gin.Context) {
	roadmap, ok := middleware.GetRoadmap(c)
	if !ok {
		apierrors.NotFound(c, "Roadmap not found")
		return
	}
	item, ok := middleware.GetItem(c)
	if !ok {
		apierrors.NotFound(c, "Item not found")
		return
	}

	type MoveRequest struct {
		Dimension string `json:"dimension" binding:"required"`
		Target    string `json:"target" binding:"required"`
	}

	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	dim, err := board.ParseDimension(req.Dimension)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}
	target, ok := board.ParseDropTarget(req.Target)
	if !ok {
		apierrors.BadRequest(c, "Invalid drop target")
		return
	}

	updated, err := h.boardService.MoveItemToTarget(c.Request.Context(), roadmap.ID, item.ID, dim, target)
	if err != nil {
		respondItemError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToItemDTO(updated))
}

// Delete removes an item and its comments.
func (h *ItemHandler) Delete(c *gin.Context) {
	item, ok := middleware.GetItem(c)
	if !ok {
		apierrors.NotFound(c, "Item not found")
		return
	}

	if err := h.itemService.DeleteItem(item.ID); err != nil {
		respondItemError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item deleted successfully",
	})
}

// Generate drafts items from free text with the AI service. Nothing is
// persisted; clients create the drafts they keep.
func (h *ItemHandler) Generate(c *gin.Context) {
	if h.aiService == nil {
		apierrors.ServiceUnavailable(c, "AI features are not configured")
		return
	}

	type GenerateRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	items, err := h.aiService.GenerateItemsFromText(c.Request.Context(), req.Text)
	if err != nil {
		apierrors.ServiceUnavailable(c, "Failed to generate items")
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func respondItemError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidCategory),
		errors.Is(err, services.ErrInvalidDimension):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrItemNotFound),
		errors.Is(err, services.ErrRoadmapNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
