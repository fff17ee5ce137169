package dto

import (
	"time"

	"github.com/yukikurage/roadmap-planner-api/internal/models"
	"github.com/yukikurage/roadmap-planner-api/internal/repository"
)

// RoadmapDTO represents a roadmap in API responses. ShareToken is only
// populated for the owner.
type RoadmapDTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	OwnerID     string    `json:"owner_id"`
	IsPublic    bool      `json:"is_public"`
	ShareToken  *string   `json:"share_token,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ItemDTO represents a roadmap item in API responses
type ItemDTO struct {
	ID          string              `json:"id"`
	RoadmapID   string              `json:"roadmap_id"`
	ObjectiveID *string             `json:"objective_id"`
	ModuleID    *string             `json:"module_id"`
	TeamID      *string             `json:"team_id"`
	Title       string              `json:"title"`
	Description *string             `json:"description"`
	Status      models.ItemStatus   `json:"status"`
	Category    models.ItemCategory `json:"category"`
	Tags        []string            `json:"tags"`
	OrderIndex  int                 `json:"order_index"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// RoadmapWithDataDTO is the full flat payload clients hydrate a board
// from: the roadmap plus every grouping and item.
type RoadmapWithDataDTO struct {
	Roadmap    RoadmapDTO             `json:"roadmap"`
	Objectives []repository.Grouping  `json:"objectives"`
	Modules    []repository.Grouping  `json:"modules"`
	Teams      []repository.Grouping  `json:"teams"`
	Items      []ItemDTO              `json:"items"`
}

// CommentDTO represents a comment in API responses
type CommentDTO struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      *UserDTO  `json:"user,omitempty"`
}

// Conversion functions

// ToRoadmapDTO converts a Roadmap model to RoadmapDTO
func ToRoadmapDTO(roadmap models.Roadmap, includeShareToken bool) RoadmapDTO {
	dto := RoadmapDTO{
		ID:          roadmap.ID,
		Title:       roadmap.Title,
		Description: roadmap.Description,
		OwnerID:     roadmap.OwnerID,
		IsPublic:    roadmap.IsPublic,
		CreatedAt:   roadmap.CreatedAt,
		UpdatedAt:   roadmap.UpdatedAt,
	}
	if includeShareToken {
		dto.ShareToken = roadmap.ShareToken
	}
	return dto
}

// ToItemDTO converts an Item model to ItemDTO
func ToItemDTO(item models.Item) ItemDTO {
	return ItemDTO{
		ID:          item.ID,
		RoadmapID:   item.RoadmapID,
		ObjectiveID: item.ObjectiveID,
		ModuleID:    item.ModuleID,
		TeamID:      item.TeamID,
		Title:       item.Title,
		Description: item.Description,
		Status:      item.Status,
		Category:    item.Category,
		Tags:        item.Tags,
		OrderIndex:  item.OrderIndex,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

// ToItemDTOs converts a slice of Item models
func ToItemDTOs(items []models.Item) []ItemDTO {
	dtos := make([]ItemDTO, len(items))
	for i, item := range items {
		dtos[i] = ToItemDTO(item)
	}
	return dtos
}

// ToObjectiveGroupings converts objective rows to the grouping shape
func ToObjectiveGroupings(rows []models.Objective) []repository.Grouping {
	out := make([]repository.Grouping, len(rows))
	for i, row := range rows {
		out[i] = repository.Grouping{
			ID:         row.ID,
			RoadmapID:  row.RoadmapID,
			Title:      row.Title,
			Color:      row.Color,
			OrderIndex: row.OrderIndex,
			CreatedAt:  row.CreatedAt,
			UpdatedAt:  row.UpdatedAt,
		}
	}
	return out
}

// ToModuleGroupings converts module rows to the grouping shape
func ToModuleGroupings(rows []models.Module) []repository.Grouping {
	out := make([]repository.Grouping, len(rows))
	for i, row := range rows {
		out[i] = repository.Grouping{
			ID:          row.ID,
			RoadmapID:   row.RoadmapID,
			Title:       row.Title,
			Color:       row.Color,
			Description: row.Description,
			OrderIndex:  row.OrderIndex,
			CreatedAt:   row.CreatedAt,
			UpdatedAt:   row.UpdatedAt,
		}
	}
	return out
}

// ToTeamGroupings converts team rows to the grouping shape
func ToTeamGroupings(rows []models.Team) []repository.Grouping {
	out := make([]repository.Grouping, len(rows))
	for i, row := range rows {
		out[i] = repository.Grouping{
			ID:          row.ID,
			RoadmapID:   row.RoadmapID,
			Title:       row.Title,
			Color:       row.Color,
			Description: row.Description,
			OrderIndex:  row.OrderIndex,
			CreatedAt:   row.CreatedAt,
			UpdatedAt:   row.UpdatedAt,
		}
	}
	return out
}

// ToCommentDTO converts a Comment model to CommentDTO
func ToCommentDTO(comment models.Comment) CommentDTO {
	dto := CommentDTO{
		ID:        comment.ID,
		ItemID:    comment.ItemID,
		UserID:    comment.UserID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}

	// Include author if preloaded
	if comment.User.ID != "" {
		user := ToUserDTO(comment.User)
		dto.User = &user
	}

	return dto
}
