package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/yukikurage/roadmap-planner-api/internal/board"
	"github.com/yukikurage/roadmap-planner-api/internal/models"
	"github.com/yukikurage/roadmap-planner-api/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrRoadmapNotFound = errors.New("roadmap not found")
	ErrItemNotFound    = errors.New("item not found")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidDimension = errors.New("invalid board dimension")
)

// BoardService maintains one optimistic board per roadmap and bridges
// it to the item store. Boards are created lazily from a full roadmap
// load and dropped whenever a structural change (new item, deleted
// grouping) makes the cached snapshot stale.
type BoardService struct {
	roadmapRepo repository.RoadmapRepository
	itemRepo    repository.ItemRepository

	mu     sync.Mutex
	boards map[string]*board.Board
}

// NewBoardService creates a new BoardService
func NewBoardService(roadmapRepo repository.RoadmapRepository, itemRepo repository.ItemRepository) *BoardService {
	return &BoardService{
		roadmapRepo: roadmapRepo,
		itemRepo:    itemRepo,
		boards:      make(map[string]*board.Board),
	}
}

// ProjectView returns the projected board for a roadmap and dimension,
// plus the number of unresolved optimistic patches.
func (s *BoardService) ProjectView(roadmapID string, dim board.Dimension) ([]board.Row, int, error) {
	b, err := s.boardFor(roadmapID)
	if err != nil {
		return nil, 0, err
	}

	rows, err := board.Project(b.Effective(), nil, dim)
	if err != nil {
		return nil, 0, err
	}
	return rows, b.PendingCount(), nil
}

// MoveItem is the drag-and-drop fast path: the status change lands on
// the board's overlay immediately and the returned item already shows
// it, while the store write resolves in the background.
func (s *BoardService) MoveItem(ctx context.Context, roadmapID, itemID string, status models.ItemStatus) (models.Item, error) {
	if !models.ValidStatus(status) {
		return models.Item{}, ErrInvalidStatus
	}

	b, err := s.boardFor(roadmapID)
	if err != nil {
		return models.Item{}, err
	}

	if err := b.ApplyOptimistic(ctx, itemID, board.StatusPatch(status)); err != nil {
		if errors.Is(err, board.ErrUnknownItem) {
			return models.Item{}, ErrItemNotFound
		}
		return models.Item{}, err
	}

	item, ok := b.EffectiveItem(itemID)
	if !ok {
		return models.Item{}, ErrItemNotFound
	}
	return item, nil
}

// MoveItemToTarget applies a drop onto a "<groupingId>-<status>" zone:
// status plus the viewing dimension's grouping key in one patch.
func (s *BoardService) MoveItemToTarget(ctx context.Context, roadmapID, itemID string, dim board.Dimension, target board.DropTarget) (models.Item, error) {
	b, err := s.boardFor(roadmapID)
	if err != nil {
		return models.Item{}, err
	}

	patch := board.StatusPatch(target.Status)
	ref := board.ClearRef()
	if target.GroupingID != board.UnassignedID {
		ref = board.SetRef(target.GroupingID)
	}
	switch dim {
	case board.DimensionObjective:
		patch.ObjectiveID = ref
	case board.DimensionModule:
		patch.ModuleID = ref
	case board.DimensionTeam:
		patch.TeamID = ref
	default:
		return models.Item{}, ErrInvalidDimension
	}

	if err := b.ApplyOptimistic(ctx, itemID, patch); err != nil {
		if errors.Is(err, board.ErrUnknownItem) {
			return models.Item{}, ErrItemNotFound
		}
		return models.Item{}, err
	}

	item, ok := b.EffectiveItem(itemID)
	if !ok {
		return models.Item{}, ErrItemNotFound
	}
	return item, nil
}

// Invalidate drops a roadmap's cached board. The next read rebuilds it
// from the store.
func (s *BoardService) Invalidate(roadmapID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.boards, roadmapID)
}

// Refresh reloads a cached board's snapshot in place, keeping pending
// patches. A roadmap without a cached board is left alone.
func (s *BoardService) Refresh(roadmapID string) error {
	s.mu.Lock()
	b, ok := s.boards[roadmapID]
	s.mu.Unlock()
	if !ok {
		return nil
	}

	snapshot, err := s.loadSnapshot(roadmapID)
	if err != nil {
		return err
	}
	b.Replace(snapshot)
	return nil
}

// Wait blocks until a roadmap's in-flight updates have resolved.
func (s *BoardService) Wait(roadmapID string) {
	s.mu.Lock()
	b, ok := s.boards[roadmapID]
	s.mu.Unlock()
	if ok {
		b.Wait()
	}
}

func (s *BoardService) boardFor(roadmapID string) (*board.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b, ok := s.boards[roadmapID]; ok {
		return b, nil
	}

	snapshot, err := s.loadSnapshot(roadmapID)
	if err != nil {
		return nil, err
	}

	b := board.New(snapshot, s.updaterFor(), func(itemID string, err error) {
		log.Printf("board: rolled back update for item %s: %v", itemID, err)
	})
	s.boards[roadmapID] = b
	return b, nil
}

func (s *BoardService) loadSnapshot(roadmapID string) (board.Snapshot, error) {
	roadmap, err := s.roadmapRepo.FindFull(roadmapID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return board.Snapshot{}, ErrRoadmapNotFound
		}
		return board.Snapshot{}, fmt.Errorf("failed to load roadmap: %w", err)
	}

	return board.Snapshot{
		Roadmap:    *roadmap,
		Objectives: roadmap.Objectives,
		Modules:    roadmap.Modules,
		Teams:      roadmap.Teams,
		Items:      roadmap.Items,
	}, nil
}

func (s *BoardService) updaterFor() board.RemoteUpdater {
	return board.RemoteUpdaterFunc(func(ctx context.Context, itemID string, patch board.Patch) error {
		return s.itemRepo.UpdateFields(itemID, patchFields(patch))
	})
}

// patchFields maps a board patch onto item columns.
func patchFields(p board.Patch) map[string]interface{} {
	fields := make(map[string]interface{})
	if p.Title != nil {
		fields["title"] = *p.Title
	}
	if p.Description != nil {
		fields["description"] = p.Description
	}
	if p.Status != nil {
		fields["status"] = *p.Status
	}
	if p.Category != nil {
		fields["category"] = *p.Category
	}
	if p.Tags != nil {
		fields["tags"] = datatypes.NewJSONSlice(*p.Tags)
	}
	if p.ObjectiveID.Set {
		fields["objective_id"] = p.ObjectiveID.ID
	}
	if p.ModuleID.Set {
		fields["module_id"] = p.ModuleID.ID
	}
	if p.TeamID.Set {
		fields["team_id"] = p.TeamID.ID
	}
	return fields
}
