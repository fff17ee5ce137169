package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/roadmap-planner-api/internal/board"
	"github.com/yukikurage/roadmap-planner-api/internal/dto"
	apierrors "github.com/yukikurage/roadmap-planner-api/internal/errors"
	"github.com/yukikurage/roadmap-planner-api/internal/middleware"
	"github.com/yukikurage/roadmap-planner-api/internal/services"
)

// BoardHandler serves the projected board view.
type BoardHandler struct {
	boardService *services.BoardService
}

// NewBoardHandler creates a new BoardHandler.
func NewBoardHandler(boardService *services.BoardService) *BoardHandler {
	return &BoardHandler{
		boardService: boardService,
	}
}

// Get returns the board projected along the ?view= dimension
// (objective by default). Pending optimistic changes are folded in.
func (h *BoardHandler) Get(c *gin.Context) {
	roadmap, ok := middleware.GetRoadmap(c)
	if !ok {
		apierrors.NotFound(c, "Roadmap not found")
		return
	}

	dim, err := board.ParseDimension(c.DefaultQuery("view", string(board.DimensionObjective)))
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	rows, pending, err := h.boardService.ProjectView(roadmap.ID, dim)
	if err != nil {
		if errors.Is(err, services.ErrRoadmapNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to load board")
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardDTO(roadmap.ID, dim, rows, pending))
}
