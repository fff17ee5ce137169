package services

import (
	"fmt"

	"github.com/yukikurage/roadmap-planner-api/internal/csvimport"
	"github.com/yukikurage/roadmap-planner-api/internal/models"
	"github.com/yukikurage/roadmap-planner-api/internal/repository"
	"gorm.io/datatypes"
)

// ImportService handles CSV import of roadmap items
type ImportService struct {
	itemRepo     repository.ItemRepository
	groupingRepo repository.GroupingRepository
	boards       *BoardService
}

// NewImportService creates a new ImportService
func NewImportService(itemRepo repository.ItemRepository, groupingRepo repository.GroupingRepository, boards *BoardService) *ImportService {
	return &ImportService{
		itemRepo:     itemRepo,
		groupingRepo: groupingRepo,
		boards:       boards,
	}
}

// ImportResult holds the outcome of a committed import: the created
// items, paired with the advisory issues of the rows they came from.
type ImportResult struct {
	Items   []models.Item
	Records []csvimport.Record
}

// Preview parses the upload and returns the validated rows without
// writing anything. Issues are advisory; no row blocks the import.
func (s *ImportService) Preview(roadmapID, content string, hasHeaders bool) ([]csvimport.Record, error) {
	lookup, err := s.buildLookup(roadmapID)
	if err != nil {
		return nil, err
	}
	return csvimport.Parse(content, hasHeaders, lookup)
}

// Commit parses the upload and creates one item per row in a single
// transaction, appended after the roadmap's existing items.
func (s *ImportService) Commit(roadmapID, content string, hasHeaders bool) (*ImportResult, error) {
	lookup, err := s.buildLookup(roadmapID)
	if err != nil {
		return nil, err
	}

	records, err := csvimport.Parse(content, hasHeaders, lookup)
	if err != nil {
		return nil, err
	}

	count, err := s.itemRepo.CountByRoadmap(roadmapID)
	if err != nil {
		return nil, fmt.Errorf("failed to count items: %w", err)
	}

	items := make([]models.Item, len(records))
	for i, rec := range records {
		items[i] = models.Item{
			RoadmapID:   roadmapID,
			ObjectiveID: rec.ObjectiveID,
			ModuleID:    rec.ModuleID,
			TeamID:      rec.TeamID,
			Title:       rec.Title,
			Description: rec.Description,
			Status:      rec.Status,
			Category:    rec.Category,
			Tags:        datatypes.NewJSONSlice(rec.Tags),
			OrderIndex:  int(count) + i,
		}
	}

	if err := s.itemRepo.CreateBatch(items); err != nil {
		return nil, fmt.Errorf("failed to create items: %w", err)
	}

	s.boards.Invalidate(roadmapID)
	return &ImportResult{Items: items, Records: records}, nil
}

func (s *ImportService) buildLookup(roadmapID string) (csvimport.Lookup, error) {
	var lookup csvimport.Lookup

	objectives, err := s.groupingRepo.ListByRoadmap(repository.KindObjective, roadmapID)
	if err != nil {
		return lookup, fmt.Errorf("failed to list objectives: %w", err)
	}
	modules, err := s.groupingRepo.ListByRoadmap(repository.KindModule, roadmapID)
	if err != nil {
		return lookup, fmt.Errorf("failed to list modules: %w", err)
	}
	teams, err := s.groupingRepo.ListByRoadmap(repository.KindTeam, roadmapID)
	if err != nil {
		return lookup, fmt.Errorf("failed to list teams: %w", err)
	}

	lookup.Objectives = toEntityRefs(objectives)
	lookup.Modules = toEntityRefs(modules)
	lookup.Teams = toEntityRefs(teams)
	return lookup, nil
}

func toEntityRefs(groupings []repository.Grouping) []csvimport.EntityRef {
	refs := make([]csvimport.EntityRef, len(groupings))
	for i, g := range groupings {
		refs[i] = csvimport.EntityRef{ID: g.ID, Title: g.Title}
	}
	return refs
}
