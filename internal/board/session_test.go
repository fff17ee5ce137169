package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/roadmap-planner-api/internal/models"
)

func TestDragRequiresActivationDistance(t *testing.T) {
	var s DragSession

	s.Press("item-1", 100, 100)
	assert.False(t, s.Dragging())

	// Small jitter stays a click.
	assert.False(t, s.Move(103, 104))
	assert.False(t, s.Dragging())

	// Crossing the threshold activates the drag.
	assert.True(t, s.Move(100, 109))
	assert.True(t, s.Dragging())

	itemID, ok := s.ActiveItem()
	require.True(t, ok)
	assert.Equal(t, "item-1", itemID)
}

func TestClickReleaseProducesNoDrop(t *testing.T) {
	var s DragSession

	s.Press("item-1", 10, 10)
	s.Move(11, 11)

	_, ok := s.Release("obj-1-now")
	assert.False(t, ok)
	assert.False(t, s.Dragging())
}

func TestReleaseOnValidZoneProducesDrop(t *testing.T) {
	var s DragSession

	s.Press("item-1", 10, 10)
	require.True(t, s.Move(30, 30))

	drop, ok := s.Release("obj-1-next")
	require.True(t, ok)
	assert.Equal(t, "item-1", drop.ItemID)
	assert.Equal(t, "obj-1", drop.Target.GroupingID)
	assert.Equal(t, models.StatusNext, drop.Target.Status)

	// Session is idle again.
	assert.False(t, s.Dragging())
	_, ok = s.ActiveItem()
	assert.False(t, ok)
}

func TestReleaseOutsideZoneDiscardsDrag(t *testing.T) {
	var s DragSession

	s.Press("item-1", 10, 10)
	require.True(t, s.Move(30, 30))

	_, ok := s.Release("")
	assert.False(t, ok)
	assert.False(t, s.Dragging())
}

func TestMoveWithoutPressIsIgnored(t *testing.T) {
	var s DragSession
	assert.False(t, s.Move(500, 500))
}

func TestParseDropTarget(t *testing.T) {
	target, ok := ParseDropTarget("obj-1-later")
	require.True(t, ok)
	assert.Equal(t, "obj-1", target.GroupingID)
	assert.Equal(t, models.StatusLater, target.Status)

	// Grouping ids may contain dashes; the status anchors the match.
	target, ok = ParseDropTarget("team-alpha-now")
	require.True(t, ok)
	assert.Equal(t, "team-alpha", target.GroupingID)
	assert.Equal(t, models.StatusNow, target.Status)

	// The synthetic Unassigned row is a valid target.
	target, ok = ParseDropTarget("unassigned-next")
	require.True(t, ok)
	assert.Equal(t, UnassignedID, target.GroupingID)

	for _, id := range []string{"", "now", "-now", "obj-1-done", "obj-1"} {
		_, ok := ParseDropTarget(id)
		assert.False(t, ok, "id %q should not parse", id)
	}
}
