package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/roadmap-planner-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrGroupingNotFound    = errors.New("grouping not found")
	ErrInvalidGroupingKind = errors.New("invalid grouping kind")
)

// defaultColors per grouping kind, used when a create omits one.
var defaultColors = map[repository.GroupingKind]string{
	repository.KindObjective: "#3b82f6",
	repository.KindModule:    "#8b5cf6",
	repository.KindTeam:      "#10b981",
}

// GroupingService handles objective, module and team business logic
type GroupingService struct {
	groupingRepo repository.GroupingRepository
	boards       *BoardService
}

// NewGroupingService creates a new GroupingService
func NewGroupingService(groupingRepo repository.GroupingRepository, boards *BoardService) *GroupingService {
	return &GroupingService{
		groupingRepo: groupingRepo,
		boards:       boards,
	}
}

// CreateGroupingInput represents input for creating a grouping
type CreateGroupingInput struct {
	RoadmapID   string
	Title       string
	Color       string
	Description *string
}

// UpdateGroupingInput represents input for updating a grouping
type UpdateGroupingInput struct {
	Title       *string
	Color       *string
	Description *string
	OrderIndex  *int
}

// CreateGrouping creates a grouping at the end of its roadmap's list
func (s *GroupingService) CreateGrouping(kind repository.GroupingKind, input CreateGroupingInput) (*repository.Grouping, error) {
	if !repository.ValidGroupingKind(kind) {
		return nil, ErrInvalidGroupingKind
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	color := strings.TrimSpace(input.Color)
	if color == "" {
		color = defaultColors[kind]
	}

	count, err := s.groupingRepo.CountByRoadmap(kind, input.RoadmapID)
	if err != nil {
		return nil, fmt.Errorf("failed to count groupings: %w", err)
	}

	grouping := &repository.Grouping{
		RoadmapID:   input.RoadmapID,
		Title:       title,
		Color:       color,
		Description: input.Description,
		OrderIndex:  int(count),
	}

	if err := s.groupingRepo.Create(kind, grouping); err != nil {
		return nil, fmt.Errorf("failed to create grouping: %w", err)
	}

	s.boards.Invalidate(input.RoadmapID)
	return grouping, nil
}

// GetGrouping returns a grouping by kind and id
func (s *GroupingService) GetGrouping(kind repository.GroupingKind, id string) (*repository.Grouping, error) {
	if !repository.ValidGroupingKind(kind) {
		return nil, ErrInvalidGroupingKind
	}
	grouping, err := s.groupingRepo.FindByID(kind, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupingNotFound
		}
		return nil, fmt.Errorf("failed to find grouping: %w", err)
	}
	return grouping, nil
}

// ListGroupings lists a roadmap's groupings of one kind
func (s *GroupingService) ListGroupings(kind repository.GroupingKind, roadmapID string) ([]repository.Grouping, error) {
	if !repository.ValidGroupingKind(kind) {
		return nil, ErrInvalidGroupingKind
	}
	groupings, err := s.groupingRepo.ListByRoadmap(kind, roadmapID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groupings: %w", err)
	}
	return groupings, nil
}

// UpdateGrouping applies a partial update to a grouping
func (s *GroupingService) UpdateGrouping(kind repository.GroupingKind, id string, input UpdateGroupingInput) (*repository.Grouping, error) {
	grouping, err := s.GetGrouping(kind, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		grouping.Title = title
	}
	if input.Color != nil {
		grouping.Color = *input.Color
	}
	if input.Description != nil {
		grouping.Description = input.Description
	}
	if input.OrderIndex != nil {
		grouping.OrderIndex = *input.OrderIndex
	}

	if err := s.groupingRepo.Update(kind, grouping); err != nil {
		return nil, fmt.Errorf("failed to update grouping: %w", err)
	}

	s.boards.Invalidate(grouping.RoadmapID)
	return grouping, nil
}

// DeleteGrouping removes a grouping. Its items are detached rather than
// deleted, so they reappear under the board's Unassigned row.
func (s *GroupingService) DeleteGrouping(kind repository.GroupingKind, id string) error {
	grouping, err := s.GetGrouping(kind, id)
	if err != nil {
		return err
	}

	if err := s.groupingRepo.Delete(kind, id); err != nil {
		return fmt.Errorf("failed to delete grouping: %w", err)
	}

	s.boards.Invalidate(grouping.RoadmapID)
	return nil
}
