package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/roadmap-planner-api/internal/models"
	"github.com/yukikurage/roadmap-planner-api/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrInvalidCategory = errors.New("invalid category")

// ItemService handles roadmap item business logic
type ItemService struct {
	itemRepo     repository.ItemRepository
	groupingRepo repository.GroupingRepository
	boards       *BoardService
}

// NewItemService creates a new ItemService
func NewItemService(itemRepo repository.ItemRepository, groupingRepo repository.GroupingRepository, boards *BoardService) *ItemService {
	return &ItemService{
		itemRepo:     itemRepo,
		groupingRepo: groupingRepo,
		boards:       boards,
	}
}

// CreateItemInput represents input for creating an item. Setting
// NewObjectiveTitle creates a fresh objective and assigns the item to
// it, taking precedence over ObjectiveID.
type CreateItemInput struct {
	RoadmapID         string
	Title             string
	Description       *string
	Status            models.ItemStatus
	Category          models.ItemCategory
	Tags              []string
	ObjectiveID       *string
	ModuleID          *string
	TeamID            *string
	NewObjectiveTitle *string
}

// UpdateItemInput represents input for updating an item. Pointer fields
// are applied when non-nil; the Clear flags detach a grouping key.
type UpdateItemInput struct {
	Title            *string
	Description      *string
	ClearDescription bool
	Status           *models.ItemStatus
	Category         *models.ItemCategory
	Tags             *[]string
	ObjectiveID      *string
	ClearObjective   bool
	ModuleID         *string
	ClearModule      bool
	TeamID           *string
	ClearTeam        bool
}

// CreateItem creates a new item at the end of its roadmap's order
func (s *ItemService) CreateItem(input CreateItemInput) (*models.Item, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	status := input.Status
	if status == "" {
		status = models.StatusLater
	}
	if !models.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	category := input.Category
	if category == "" {
		category = models.CategoryBusiness
	}
	if !models.ValidCategory(category) {
		return nil, ErrInvalidCategory
	}

	objectiveID := input.ObjectiveID
	if input.NewObjectiveTitle != nil && strings.TrimSpace(*input.NewObjectiveTitle) != "" {
		objective, err := s.createObjectiveForItem(input.RoadmapID, *input.NewObjectiveTitle)
		if err != nil {
			return nil, err
		}
		objectiveID = &objective.ID
	}

	count, err := s.itemRepo.CountByRoadmap(input.RoadmapID)
	if err != nil {
		return nil, fmt.Errorf("failed to count items: %w", err)
	}

	item := &models.Item{
		RoadmapID:   input.RoadmapID,
		ObjectiveID: objectiveID,
		ModuleID:    input.ModuleID,
		TeamID:      input.TeamID,
		Title:       title,
		Description: input.Description,
		Status:      status,
		Category:    category,
		Tags:        datatypes.NewJSONSlice(input.Tags),
		OrderIndex:  int(count),
	}

	if err := s.itemRepo.Create(item); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	s.boards.Invalidate(input.RoadmapID)
	return item, nil
}

func (s *ItemService) createObjectiveForItem(roadmapID, title string) (*repository.Grouping, error) {
	count, err := s.groupingRepo.CountByRoadmap(repository.KindObjective, roadmapID)
	if err != nil {
		return nil, fmt.Errorf("failed to count objectives: %w", err)
	}

	objective := &repository.Grouping{
		RoadmapID:  roadmapID,
		Title:      strings.TrimSpace(title),
		Color:      defaultColors[repository.KindObjective],
		OrderIndex: int(count),
	}
	if err := s.groupingRepo.Create(repository.KindObjective, objective); err != nil {
		return nil, fmt.Errorf("failed to create objective: %w", err)
	}
	return objective, nil
}

// GetItem returns an item by id
func (s *ItemService) GetItem(id string) (*models.Item, error) {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to find item: %w", err)
	}
	return item, nil
}

// ListItems lists a roadmap's items in board order
func (s *ItemService) ListItems(roadmapID string) ([]models.Item, error) {
	items, err := s.itemRepo.ListByRoadmap(roadmapID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

// UpdateItem applies a partial update to an item
func (s *ItemService) UpdateItem(id string, input UpdateItemInput) (*models.Item, error) {
	item, err := s.GetItem(id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		item.Title = title
	}
	if input.ClearDescription {
		item.Description = nil
	} else if input.Description != nil {
		item.Description = input.Description
	}
	if input.Status != nil {
		if !models.ValidStatus(*input.Status) {
			return nil, ErrInvalidStatus
		}
		item.Status = *input.Status
	}
	if input.Category != nil {
		if !models.ValidCategory(*input.Category) {
			return nil, ErrInvalidCategory
		}
		item.Category = *input.Category
	}
	if input.Tags != nil {
		item.Tags = datatypes.NewJSONSlice(*input.Tags)
	}
	if input.ClearObjective {
		item.ObjectiveID = nil
	} else if input.ObjectiveID != nil {
		item.ObjectiveID = input.ObjectiveID
	}
	if input.ClearModule {
		item.ModuleID = nil
	} else if input.ModuleID != nil {
		item.ModuleID = input.ModuleID
	}
	if input.ClearTeam {
		item.TeamID = nil
	} else if input.TeamID != nil {
		item.TeamID = input.TeamID
	}

	if err := s.itemRepo.Update(item); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	if err := s.boards.Refresh(item.RoadmapID); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem deletes an item and its comments
func (s *ItemService) DeleteItem(id string) error {
	item, err := s.GetItem(id)
	if err != nil {
		return err
	}

	if err := s.itemRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	s.boards.Invalidate(item.RoadmapID)
	return nil
}
