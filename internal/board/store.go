package board

import (
	"github.com/yukikurage/roadmap-planner-api/internal/models"
)

// Snapshot is the in-memory copy of one roadmap and all of its child
// entities, as returned by a fetch-all. It is treated as immutable by
// readers and replaced wholesale on every refresh.
type Snapshot struct {
	Roadmap    models.Roadmap
	Objectives []models.Objective
	Modules    []models.Module
	Teams      []models.Team
	Items      []models.Item
}

// FindItem returns the base record for an item id, or false if the
// snapshot does not contain it.
func (s Snapshot) FindItem(id string) (models.Item, bool) {
	for _, item := range s.Items {
		if item.ID == id {
			return item, true
		}
	}
	return models.Item{}, false
}

func (s Snapshot) cloneItems() []models.Item {
	items := make([]models.Item, len(s.Items))
	copy(items, s.Items)
	return items
}
