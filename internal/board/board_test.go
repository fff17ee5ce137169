package board

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/roadmap-planner-api/internal/models"
)

func testSnapshot() Snapshot {
	objID := "obj-1"
	return Snapshot{
		Roadmap: models.Roadmap{ID: "rm-1", Title: "Q3 plan"},
		Objectives: []models.Objective{
			{ID: "obj-1", RoadmapID: "rm-1", Title: "Growth", OrderIndex: 0},
		},
		Items: []models.Item{
			{ID: "item-1", RoadmapID: "rm-1", ObjectiveID: &objID, Title: "Ship v2", Status: models.StatusNext, OrderIndex: 0},
			{ID: "item-2", RoadmapID: "rm-1", Title: "Write docs", Status: models.StatusLater, OrderIndex: 1},
		},
	}
}

// recordingUpdater remembers every patch it was asked to persist and
// returns a scripted error.
type recordingUpdater struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (u *recordingUpdater) UpdateItem(_ context.Context, itemID string, _ Patch) error {
	u.mu.Lock()
	u.calls = append(u.calls, itemID)
	u.mu.Unlock()
	return u.err
}

func (u *recordingUpdater) callCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.calls)
}

func TestApplyOptimisticRejectsEmptyPatch(t *testing.T) {
	b := New(testSnapshot(), &recordingUpdater{}, nil)

	err := b.ApplyOptimistic(context.Background(), "item-1", Patch{})
	assert.ErrorIs(t, err, ErrEmptyPatch)
}

func TestApplyOptimisticRejectsUnknownItem(t *testing.T) {
	b := New(testSnapshot(), &recordingUpdater{}, nil)

	err := b.ApplyOptimistic(context.Background(), "nope", StatusPatch(models.StatusNow))
	assert.ErrorIs(t, err, ErrUnknownItem)
}

func TestApplyOptimisticSkipsNoOpPatch(t *testing.T) {
	updater := &recordingUpdater{}
	b := New(testSnapshot(), updater, nil)

	// item-1 is already in next; dropping it back onto next changes
	// nothing and must not issue a request.
	err := b.ApplyOptimistic(context.Background(), "item-1", StatusPatch(models.StatusNext))
	require.NoError(t, err)
	b.Wait()

	assert.Zero(t, updater.callCount())
	assert.Zero(t, b.PendingCount())
}

func TestApplyOptimisticIsVisibleBeforeResolution(t *testing.T) {
	release := make(chan struct{})
	updater := RemoteUpdaterFunc(func(context.Context, string, Patch) error {
		<-release
		return nil
	})
	b := New(testSnapshot(), updater, nil)

	require.NoError(t, b.ApplyOptimistic(context.Background(), "item-1", StatusPatch(models.StatusNow)))

	item, ok := b.EffectiveItem("item-1")
	require.True(t, ok)
	assert.Equal(t, models.StatusNow, item.Status)
	assert.Equal(t, 1, b.PendingCount())

	close(release)
	b.Wait()
}

func TestResolutionSuccessFoldsPatchIntoBase(t *testing.T) {
	updater := &recordingUpdater{}
	b := New(testSnapshot(), updater, nil)

	require.NoError(t, b.ApplyOptimistic(context.Background(), "item-1", StatusPatch(models.StatusNow)))
	b.Wait()

	// Overlay entry is gone but the rendered value is unchanged.
	assert.Zero(t, b.PendingCount())
	item, ok := b.EffectiveItem("item-1")
	require.True(t, ok)
	assert.Equal(t, models.StatusNow, item.Status)
}

func TestResolutionFailureRollsBackAndNotifies(t *testing.T) {
	updater := &recordingUpdater{err: assert.AnError}

	var mu sync.Mutex
	var notified []string
	notify := func(itemID string, err error) {
		mu.Lock()
		notified = append(notified, itemID)
		mu.Unlock()
	}

	b := New(testSnapshot(), updater, notify)

	require.NoError(t, b.ApplyOptimistic(context.Background(), "item-1", StatusPatch(models.StatusNow)))
	b.Wait()

	item, ok := b.EffectiveItem("item-1")
	require.True(t, ok)
	assert.Equal(t, models.StatusNext, item.Status)
	assert.Zero(t, b.PendingCount())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"item-1"}, notified)
}

// Issuing patch A then patch B and resolving A after B must leave B's
// intent in place: last intent wins regardless of completion order.
func TestOutOfOrderResolutionKeepsLastIntent(t *testing.T) {
	releaseFirst := make(chan struct{})
	updater := RemoteUpdaterFunc(func(_ context.Context, _ string, p Patch) error {
		// Hold patch A (the move to now) until patch B has resolved.
		if p.Status != nil && *p.Status == models.StatusNow {
			<-releaseFirst
		}
		return nil
	})
	b := New(testSnapshot(), updater, nil)

	require.NoError(t, b.ApplyOptimistic(context.Background(), "item-1", StatusPatch(models.StatusNow)))
	require.NoError(t, b.ApplyOptimistic(context.Background(), "item-1", StatusPatch(models.StatusLater)))

	// Wait for the second request to resolve while the first is held.
	require.Eventually(t, func() bool {
		return b.PendingCount() == 0
	}, time.Second, time.Millisecond)

	close(releaseFirst)
	b.Wait()

	item, ok := b.EffectiveItem("item-1")
	require.True(t, ok)
	assert.Equal(t, models.StatusLater, item.Status)
	assert.Zero(t, b.PendingCount())
}

func TestReplaceKeepsPendingPatches(t *testing.T) {
	release := make(chan struct{})
	updater := RemoteUpdaterFunc(func(context.Context, string, Patch) error {
		<-release
		return nil
	})
	b := New(testSnapshot(), updater, nil)

	require.NoError(t, b.ApplyOptimistic(context.Background(), "item-1", StatusPatch(models.StatusNow)))

	// A refetch lands while the update is still in flight.
	b.Replace(testSnapshot())

	item, ok := b.EffectiveItem("item-1")
	require.True(t, ok)
	assert.Equal(t, models.StatusNow, item.Status)

	close(release)
	b.Wait()
}

func TestPatchRefClearsGroupingKey(t *testing.T) {
	b := New(testSnapshot(), &recordingUpdater{}, nil)

	patch := Patch{ObjectiveID: ClearRef()}
	require.NoError(t, b.ApplyOptimistic(context.Background(), "item-1", patch))
	b.Wait()

	item, ok := b.EffectiveItem("item-1")
	require.True(t, ok)
	assert.Nil(t, item.ObjectiveID)
}
