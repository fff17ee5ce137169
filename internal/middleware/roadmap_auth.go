package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/roadmap-planner-api/internal/database"
	apierrors "github.com/yukikurage/roadmap-planner-api/internal/errors"
	"github.com/yukikurage/roadmap-planner-api/internal/models"
)

// Context keys set by the roadmap middleware chain.
const (
	ContextKeyRoadmap      = "roadmap"
	ContextKeyRoadmapOwner = "roadmap_is_owner"
)

// RequireRoadmapAccess checks the user may see the roadmap in the :id
// parameter. Owners get full access; anyone authenticated can read a
// public roadmap. Missing roadmaps and denied access both return 404 so
// the response does not leak which roadmap ids exist.
func RequireRoadmapAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		roadmapID := c.Param("id")

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var roadmap models.Roadmap
		if err := database.GetDB().Where("id = ?", roadmapID).First(&roadmap).Error; err != nil {
			apierrors.NotFound(c, "Roadmap not found")
			c.Abort()
			return
		}

		isOwner := roadmap.OwnerID == userID
		if !isOwner {
			readOnly := c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead
			if !roadmap.IsPublic || !readOnly {
				apierrors.NotFound(c, "Roadmap not found")
				c.Abort()
				return
			}
		}

		c.Set(ContextKeyRoadmap, roadmap)
		c.Set(ContextKeyRoadmapOwner, isOwner)
		c.Next()
	}
}

// RequireRoadmapOwner restricts a route to the roadmap's owner. Must
// run after RequireRoadmapAccess.
func RequireRoadmapOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		isOwner, exists := c.Get(ContextKeyRoadmapOwner)
		if !exists {
			apierrors.Forbidden(c, "Roadmap access required")
			c.Abort()
			return
		}

		if owner, ok := isOwner.(bool); !ok || !owner {
			apierrors.Forbidden(c, "Only the roadmap owner can perform this action")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetRoadmap retrieves the roadmap loaded by RequireRoadmapAccess.
func GetRoadmap(c *gin.Context) (models.Roadmap, bool) {
	value, exists := c.Get(ContextKeyRoadmap)
	if !exists {
		return models.Roadmap{}, false
	}
	roadmap, ok := value.(models.Roadmap)
	return roadmap, ok
}

// IsRoadmapOwner reports whether the current user owns the roadmap
// loaded by RequireRoadmapAccess.
func IsRoadmapOwner(c *gin.Context) bool {
	value, exists := c.Get(ContextKeyRoadmapOwner)
	if !exists {
		return false
	}
	owner, ok := value.(bool)
	return ok && owner
}
