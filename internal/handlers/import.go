package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/roadmap-planner-api/internal/csvimport"
	"github.com/yukikurage/roadmap-planner-api/internal/dto"
	apierrors "github.com/yukikurage/roadmap-planner-api/internal/errors"
	"github.com/yukikurage/roadmap-planner-api/internal/middleware"
	"github.com/yukikurage/roadmap-planner-api/internal/services"
)

// ImportHandler serves CSV import preview and commit.
type ImportHandler struct {
	importService *services.ImportService
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importService *services.ImportService) *ImportHandler {
	return &ImportHandler{
		importService: importService,
	}
}

type importRequest struct {
	Content    string `json:"content" binding:"required"`
	HasHeaders bool   `json:"has_headers"`
}

// importRowDTO is one parsed row in preview and commit responses.
type importRowDTO struct {
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Status      string   `json:"status"`
	Category    string   `json:"category"`
	ObjectiveID *string  `json:"objective_id"`
	ModuleID    *string  `json:"module_id"`
	TeamID      *string  `json:"team_id"`
	Tags        []string `json:"tags"`
	Issues      []string `json:"issues"`
}

func toImportRows(records []csvimport.Record) []importRowDTO {
	rows := make([]importRowDTO, len(records))
	for i, rec := range records {
		rows[i] = importRowDTO{
			Title:       rec.Title,
			Description: rec.Description,
			Status:      string(rec.Status),
			Category:    string(rec.Category),
			ObjectiveID: rec.ObjectiveID,
			ModuleID:    rec.ModuleID,
			TeamID:      rec.TeamID,
			Tags:        rec.Tags,
			Issues:      rec.Issues,
		}
	}
	return rows
}

// Preview parses the upload and returns the rows that a commit would
// create, with their advisory issues. Nothing is written.
func (h *ImportHandler) Preview(c *gin.Context) {
	roadmap, ok := middleware.GetRoadmap(c)
	if !ok {
		apierrors.NotFound(c, "Roadmap not found")
		return
	}

	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	records, err := h.importService.Preview(roadmap.ID, req.Content, req.HasHeaders)
	if err != nil {
		respondImportError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rows": toImportRows(records)})
}

// Commit parses the upload and creates its items.
func (h *ImportHandler) Commit(c *gin.Context) {
	roadmap, ok := middleware.GetRoadmap(c)
	if !ok {
		apierrors.NotFound(c, "Roadmap not found")
		return
	}

	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.importService.Commit(roadmap.ID, req.Content, req.HasHeaders)
	if err != nil {
		respondImportError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"items": dto.ToItemDTOs(result.Items),
		"rows":  toImportRows(result.Records),
	})
}

func respondImportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, csvimport.ErrEmptyFile),
		errors.Is(err, csvimport.ErrNoDataRows):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
