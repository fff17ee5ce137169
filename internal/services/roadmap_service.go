package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/roadmap-planner-api/internal/models"
	"github.com/yukikurage/roadmap-planner-api/internal/repository"
	"github.com/yukikurage/roadmap-planner-api/internal/utils"
	"gorm.io/gorm"
)

var ErrTitleRequired = errors.New("title is required")

// RoadmapService handles roadmap business logic
type RoadmapService struct {
	roadmapRepo repository.RoadmapRepository
	boards      *BoardService
}

// NewRoadmapService creates a new RoadmapService
func NewRoadmapService(roadmapRepo repository.RoadmapRepository, boards *BoardService) *RoadmapService {
	return &RoadmapService{
		roadmapRepo: roadmapRepo,
		boards:      boards,
	}
}

// CreateRoadmapInput represents input for creating a roadmap
type CreateRoadmapInput struct {
	Title       string
	Description *string
	OwnerID     string
}

// UpdateRoadmapInput represents input for updating a roadmap
type UpdateRoadmapInput struct {
	Title            *string
	Description      *string
	ClearDescription bool
	IsPublic         *bool
}

// CreateRoadmap creates a new roadmap
func (s *RoadmapService) CreateRoadmap(input CreateRoadmapInput) (*models.Roadmap, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	roadmap := &models.Roadmap{
		Title:       title,
		Description: input.Description,
		OwnerID:     input.OwnerID,
	}

	if err := s.roadmapRepo.Create(roadmap); err != nil {
		return nil, fmt.Errorf("failed to create roadmap: %w", err)
	}

	return roadmap, nil
}

// GetRoadmap returns a roadmap by id
func (s *RoadmapService) GetRoadmap(id string) (*models.Roadmap, error) {
	roadmap, err := s.roadmapRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoadmapNotFound
		}
		return nil, fmt.Errorf("failed to find roadmap: %w", err)
	}
	return roadmap, nil
}

// GetRoadmapWithData returns a roadmap with all groupings and items
func (s *RoadmapService) GetRoadmapWithData(id string) (*models.Roadmap, error) {
	roadmap, err := s.roadmapRepo.FindFull(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoadmapNotFound
		}
		return nil, fmt.Errorf("failed to load roadmap: %w", err)
	}
	return roadmap, nil
}

// GetRoadmapByShareToken resolves a share link to its roadmap
func (s *RoadmapService) GetRoadmapByShareToken(token string) (*models.Roadmap, error) {
	roadmap, err := s.roadmapRepo.FindByShareToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoadmapNotFound
		}
		return nil, fmt.Errorf("failed to find roadmap: %w", err)
	}
	return roadmap, nil
}

// ListRoadmaps lists a user's roadmaps with pagination
func (s *RoadmapService) ListRoadmaps(ownerID string, params utils.PaginationParams) ([]models.Roadmap, int64, error) {
	roadmaps, total, err := s.roadmapRepo.ListByOwner(ownerID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list roadmaps: %w", err)
	}
	return roadmaps, total, nil
}

// UpdateRoadmap applies a partial update to a roadmap
func (s *RoadmapService) UpdateRoadmap(id string, input UpdateRoadmapInput) (*models.Roadmap, error) {
	roadmap, err := s.GetRoadmap(id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		roadmap.Title = title
	}
	if input.ClearDescription {
		roadmap.Description = nil
	} else if input.Description != nil {
		roadmap.Description = input.Description
	}
	if input.IsPublic != nil {
		roadmap.IsPublic = *input.IsPublic
	}

	if err := s.roadmapRepo.Update(roadmap); err != nil {
		return nil, fmt.Errorf("failed to update roadmap: %w", err)
	}

	return roadmap, nil
}

// EnableSharing turns on link sharing, generating a token on first use
func (s *RoadmapService) EnableSharing(id string) (*models.Roadmap, error) {
	roadmap, err := s.GetRoadmap(id)
	if err != nil {
		return nil, err
	}

	if roadmap.ShareToken == nil {
		token, err := utils.GenerateShareToken()
		if err != nil {
			return nil, fmt.Errorf("failed to generate share token: %w", err)
		}
		roadmap.ShareToken = &token
	}
	roadmap.IsPublic = true

	if err := s.roadmapRepo.Update(roadmap); err != nil {
		return nil, fmt.Errorf("failed to update roadmap: %w", err)
	}

	return roadmap, nil
}

// DisableSharing turns off link sharing and revokes the token
func (s *RoadmapService) DisableSharing(id string) (*models.Roadmap, error) {
	roadmap, err := s.GetRoadmap(id)
	if err != nil {
		return nil, err
	}

	roadmap.ShareToken = nil
	roadmap.IsPublic = false

	if err := s.roadmapRepo.Update(roadmap); err != nil {
		return nil, fmt.Errorf("failed to update roadmap: %w", err)
	}

	return roadmap, nil
}

// DeleteRoadmap deletes a roadmap and everything under it
func (s *RoadmapService) DeleteRoadmap(id string) error {
	if _, err := s.GetRoadmap(id); err != nil {
		return err
	}

	if err := s.roadmapRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete roadmap: %w", err)
	}

	s.boards.Invalidate(id)
	return nil
}
