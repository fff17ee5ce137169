package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/roadmap-planner-api/internal/dto"
	apierrors "github.com/yukikurage/roadmap-planner-api/internal/errors"
	"github.com/yukikurage/roadmap-planner-api/internal/middleware"
	"github.com/yukikurage/roadmap-planner-api/internal/services"
)

// CommentHandler coordinates item comment HTTP handlers.
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// List returns an item's comments oldest first.
func (h *CommentHandler) List(c *gin.Context) {
	item, ok := middleware.GetItem(c)
	if !ok {
		apierrors.NotFound(c, "Item not found")
		return
	}

	comments, err := h.commentService.ListComments(item.ID)
	if err != nil {
		respondCommentError(c, err)
		return
	}

	dtos := make([]dto.CommentDTO, len(comments))
	for i, comment := range comments {
		dtos[i] = dto.ToCommentDTO(comment)
	}

	c.JSON(http.StatusOK, gin.H{"comments": dtos})
}

// Create adds a comment to an item.
func (h *CommentHandler) Create(c *gin.Context) {
	item, ok := middleware.GetItem(c)
	if !ok {
		apierrors.NotFound(c, "Item not found")
		return
	}
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateRequest struct {
		Content string `json:"content" binding:"required"`
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.commentService.CreateComment(item.ID, userID, req.Content)
	if err != nil {
		respondCommentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentDTO(*comment))
}

// Update edits a comment. Only the author may edit.
func (h *CommentHandler) Update(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type UpdateRequest struct {
		Content string `json:"content" binding:"required"`
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.commentService.UpdateComment(c.Param("comment_id"), userID, req.Content)
	if err != nil {
		respondCommentError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentDTO(*comment))
}

// Delete removes a comment. Only the author may delete.
func (h *CommentHandler) Delete(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.commentService.DeleteComment(c.Param("comment_id"), userID); err != nil {
		respondCommentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Comment deleted successfully",
	})
}

func respondCommentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrContentRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotCommentAuthor):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrCommentNotFound),
		errors.Is(err, services.ErrItemNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
