package repository

import (
	"time"

	"github.com/yukikurage/roadmap-planner-api/internal/models"
	"github.com/yukikurage/roadmap-planner-api/internal/utils"
)

// GroupingKind selects which grouping table an operation targets.
// Objectives, modules and teams share one shape and one access path;
// the kind decides the table and which item foreign key points at it.
type GroupingKind string

const (
	KindObjective GroupingKind = "objective"
	KindModule    GroupingKind = "module"
	KindTeam      GroupingKind = "team"
)

// ValidGroupingKind reports whether k names a known grouping table.
func ValidGroupingKind(k GroupingKind) bool {
	return k == KindObjective || k == KindModule || k == KindTeam
}

// Grouping is the kind-independent view of an objective, module or team
// row. Objectives have no description column; the field stays nil there.
type Grouping struct {
	ID          string    `json:"id"`
	RoadmapID   string    `json:"roadmap_id"`
	Title       string    `json:"title"`
	Color       string    `json:"color"`
	Description *string   `json:"description,omitempty"`
	OrderIndex  int       `json:"order_index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}

// RoadmapRepository defines the interface for roadmap data access
type RoadmapRepository interface {
	// Create creates a new roadmap
	Create(roadmap *models.Roadmap) error

	// FindByID finds a roadmap by ID with optional preloading
	FindByID(id string, preload ...string) (*models.Roadmap, error)

	// FindByShareToken finds a roadmap by its share token
	FindByShareToken(token string) (*models.Roadmap, error)

	// FindFull loads a roadmap with all of its groupings and items
	FindFull(id string) (*models.Roadmap, error)

	// ListByOwner lists a user's roadmaps with pagination
	ListByOwner(ownerID string, params utils.PaginationParams) ([]models.Roadmap, int64, error)

	// Update updates a roadmap
	Update(roadmap *models.Roadmap) error

	// Delete deletes a roadmap and all related data
	Delete(id string) error
}

// GroupingRepository defines the interface for objective, module and
// team data access, keyed by GroupingKind
type GroupingRepository interface {
	// Create creates a new grouping row and fills in its generated ID
	Create(kind GroupingKind, grouping *Grouping) error

	// FindByID finds a grouping by ID
	FindByID(kind GroupingKind, id string) (*Grouping, error)

	// ListByRoadmap lists a roadmap's groupings ordered by order index
	ListByRoadmap(kind GroupingKind, roadmapID string) ([]Grouping, error)

	// CountByRoadmap counts a roadmap's groupings
	CountByRoadmap(kind GroupingKind, roadmapID string) (int64, error)

	// Update updates a grouping
	Update(kind GroupingKind, grouping *Grouping) error

	// Delete deletes a grouping and detaches its items in one transaction
	Delete(kind GroupingKind, id string) error
}

// ItemRepository defines the interface for item data access
type ItemRepository interface {
	// Create creates a new item
	Create(item *models.Item) error

	// CreateBatch creates multiple items in one transaction
	CreateBatch(items []models.Item) error

	// FindByID finds an item by ID with optional preloading
	FindByID(id string, preload ...string) (*models.Item, error)

	// ListByRoadmap lists a roadmap's items
	ListByRoadmap(roadmapID string) ([]models.Item, error)

	// CountByRoadmap counts a roadmap's items
	CountByRoadmap(roadmapID string) (int64, error)

	// Update updates an item
	Update(item *models.Item) error

	// UpdateFields applies a partial column update to an item
	UpdateFields(id string, fields map[string]interface{}) error

	// Delete deletes an item and its comments
	Delete(id string) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// Create creates a new comment
	Create(comment *models.Comment) error

	// FindByID finds a comment by ID
	FindByID(id string) (*models.Comment, error)

	// ListByItem lists an item's comments oldest first
	ListByItem(itemID string) ([]models.Comment, error)

	// Update updates a comment
	Update(comment *models.Comment) error

	// Delete deletes a comment
	Delete(id string) error
}
