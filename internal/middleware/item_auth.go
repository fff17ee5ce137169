package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/roadmap-planner-api/internal/database"
	apierrors "github.com/yukikurage/roadmap-planner-api/internal/errors"
	"github.com/yukikurage/roadmap-planner-api/internal/models"
)

// ContextKeyItem is the context key for the item loaded by
// RequireItemInRoadmap.
const ContextKeyItem = "item"

// RequireItemInRoadmap checks that the :item_id parameter names an item
// belonging to the roadmap loaded by RequireRoadmapAccess. Items from
// other roadmaps return 404, never 403.
func RequireItemInRoadmap() gin.HandlerFunc {
	return func(c *gin.Context) {
		roadmap, ok := GetRoadmap(c)
		if !ok {
			apierrors.Forbidden(c, "Roadmap access required")
			c.Abort()
			return
		}

		itemID := c.Param("item_id")

		var item models.Item
		if err := database.GetDB().Where("id = ?", itemID).First(&item).Error; err != nil {
			apierrors.NotFound(c, "Item not found")
			c.Abort()
			return
		}

		if item.RoadmapID != roadmap.ID {
			apierrors.NotFound(c, "Item not found")
			c.Abort()
			return
		}

		c.Set(ContextKeyItem, item)
		c.Next()
	}
}

// GetItem retrieves the item loaded by RequireItemInRoadmap.
func GetItem(c *gin.Context) (models.Item, bool) {
	value, exists := c.Get(ContextKeyItem)
	if !exists {
		return models.Item{}, false
	}
	item, ok := value.(models.Item)
	return item, ok
}
