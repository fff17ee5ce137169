package board

import (
	"math"
	"regexp"

	"github.com/yukikurage/roadmap-planner-api/internal/models"
)

// ActivationDistance is the pointer travel required before a press on
// an item becomes a drag rather than a click.
const ActivationDistance = 8.0

// dropTargetPattern matches a drop-zone id of the form
// "<groupingId>-<status>". Grouping ids may themselves contain dashes,
// so the status token anchors the match from the right.
var dropTargetPattern = regexp.MustCompile(`^(.+)-(now|next|later)$`)

// DropTarget is the resolved (grouping, status) pair of a drop zone.
type DropTarget struct {
	GroupingID string
	Status     models.ItemStatus
}

// ParseDropTarget resolves a drop-zone id. ok is false when the id does
// not name a valid target.
func ParseDropTarget(id string) (DropTarget, bool) {
	m := dropTargetPattern.FindStringSubmatch(id)
	if m == nil {
		return DropTarget{}, false
	}
	return DropTarget{GroupingID: m[1], Status: models.ItemStatus(m[2])}, true
}

// DragSession tracks one pointer gesture over the board:
// idle -> (press, then movement past ActivationDistance) -> dragging -> idle.
type DragSession struct {
	pressed  bool
	dragging bool
	itemID   string
	originX  float64
	originY  float64
}

// Drop is the outcome of releasing a drag over a valid target.
type Drop struct {
	ItemID string
	Target DropTarget
}

// Press records a pointer-down on a draggable item. The session stays
// idle until the pointer moves past the activation threshold.
func (s *DragSession) Press(itemID string, x, y float64) {
	s.pressed = true
	s.dragging = false
	s.itemID = itemID
	s.originX = x
	s.originY = y
}

// Move feeds pointer movement into the session and reports whether the
// session is now dragging.
func (s *DragSession) Move(x, y float64) bool {
	if !s.pressed {
		return false
	}
	if !s.dragging && math.Hypot(x-s.originX, y-s.originY) >= ActivationDistance {
		s.dragging = true
	}
	return s.dragging
}

// Dragging reports whether a drag is in progress.
func (s *DragSession) Dragging() bool {
	return s.dragging
}

// ActiveItem returns the id of the item being dragged, for callers that
// render a pointer-tracking representation of it.
func (s *DragSession) ActiveItem() (string, bool) {
	if !s.dragging {
		return "", false
	}
	return s.itemID, true
}

// Release ends the gesture. It returns a Drop only when a drag was in
// progress and the pointer was over a valid drop zone; a plain click or
// a release outside any zone is discarded with no effect.
func (s *DragSession) Release(dropZoneID string) (Drop, bool) {
	wasDragging := s.dragging
	itemID := s.itemID
	s.pressed = false
	s.dragging = false
	s.itemID = ""

	if !wasDragging {
		return Drop{}, false
	}
	target, ok := ParseDropTarget(dropZoneID)
	if !ok {
		return Drop{}, false
	}
	return Drop{ItemID: itemID, Target: target}, true
}
