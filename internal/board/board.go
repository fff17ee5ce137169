package board

import (
	"context"
	"errors"
	"sync"

	"github.com/yukikurage/roadmap-planner-api/internal/models"
)

var (
	ErrUnknownItem = errors.New("item does not exist on this board")
	ErrEmptyPatch  = errors.New("patch contains no fields")
)

// RemoteUpdater persists an item patch to the authoritative store.
type RemoteUpdater interface {
	UpdateItem(ctx context.Context, itemID string, patch Patch) error
}

// RemoteUpdaterFunc adapts a function to the RemoteUpdater interface.
type RemoteUpdaterFunc func(ctx context.Context, itemID string, patch Patch) error

func (f RemoteUpdaterFunc) UpdateItem(ctx context.Context, itemID string, patch Patch) error {
	return f(ctx, itemID, patch)
}

// Notifier receives passive notifications about failed remote updates.
// It must not block.
type Notifier func(itemID string, err error)

// Board holds one roadmap's snapshot plus the overlay of pending
// optimistic patches, and reconciles the two as remote updates resolve.
//
// Mutations are applied to the overlay synchronously, so the effective
// view reflects a change before ApplyOptimistic returns; the remote
// write happens on its own goroutine. A per-item generation counter
// identifies each in-flight request so that a late-arriving resolution
// can never clear a newer pending patch (last intent wins).
type Board struct {
	mu       sync.Mutex
	snapshot Snapshot
	overlay  map[string]pendingPatch
	gens     map[string]uint64
	updater  RemoteUpdater
	notify   Notifier
	inflight sync.WaitGroup
}

type pendingPatch struct {
	patch      Patch
	generation uint64
}

// New creates a Board over an initial snapshot. notify may be nil.
func New(snapshot Snapshot, updater RemoteUpdater, notify Notifier) *Board {
	return &Board{
		snapshot: snapshot,
		overlay:  make(map[string]pendingPatch),
		gens:     make(map[string]uint64),
		updater:  updater,
		notify:   notify,
	}
}

// Replace swaps in a freshly fetched snapshot. Pending patches stay in
// place: they represent intent the remote store has not confirmed yet.
func (b *Board) Replace(snapshot Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.snapshot = snapshot
}

// ApplyOptimistic installs patch as the pending state for itemID and
// kicks off the matching remote update. The overlay change is visible
// to Effective and Overlay before this function returns.
//
// If the patch would not change the item's effective value, nothing is
// installed and no request is issued.
func (b *Board) ApplyOptimistic(ctx context.Context, itemID string, patch Patch) error {
	if patch.IsEmpty() {
		return ErrEmptyPatch
	}

	b.mu.Lock()
	base, ok := b.snapshot.FindItem(itemID)
	if !ok {
		b.mu.Unlock()
		return ErrUnknownItem
	}

	effective := base
	if pending, exists := b.overlay[itemID]; exists {
		effective = pending.patch.Apply(base)
	}
	if !patch.Changes(effective) {
		b.mu.Unlock()
		return nil
	}

	b.gens[itemID]++
	gen := b.gens[itemID]
	b.overlay[itemID] = pendingPatch{patch: patch, generation: gen}
	b.mu.Unlock()

	b.inflight.Add(1)
	go func() {
		defer b.inflight.Done()
		err := b.updater.UpdateItem(ctx, itemID, patch)
		b.resolve(itemID, gen, patch, err)
	}()

	return nil
}

// resolve is invoked once per remote update. It only acts when the
// overlay entry still belongs to this request's generation; a stale
// resolution (superseded by a newer patch) is ignored entirely.
func (b *Board) resolve(itemID string, gen uint64, patch Patch, err error) {
	b.mu.Lock()
	pending, ok := b.overlay[itemID]
	if ok && pending.generation == gen {
		delete(b.overlay, itemID)
		if err == nil {
			// Fold the confirmed patch into the base record so the
			// rendered value is identical before and after the overlay
			// entry disappears.
			for i := range b.snapshot.Items {
				if b.snapshot.Items[i].ID == itemID {
					b.snapshot.Items[i] = patch.Apply(b.snapshot.Items[i])
					break
				}
			}
		}
	}
	b.mu.Unlock()

	if err != nil && b.notify != nil {
		b.notify(itemID, err)
	}
}

// Effective returns the snapshot with all pending patches applied.
func (b *Board) Effective() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	snap := b.snapshot
	snap.Items = b.snapshot.cloneItems()
	for i, item := range snap.Items {
		if pending, ok := b.overlay[item.ID]; ok {
			snap.Items[i] = pending.patch.Apply(item)
		}
	}
	return snap
}

// EffectiveItem returns the post-overlay state of a single item.
func (b *Board) EffectiveItem(itemID string) (models.Item, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	base, ok := b.snapshot.FindItem(itemID)
	if !ok {
		return models.Item{}, false
	}
	if pending, exists := b.overlay[itemID]; exists {
		return pending.patch.Apply(base), true
	}
	return base, true
}

// Overlay returns a copy of the current pending patches.
func (b *Board) Overlay() Overlay {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make(Overlay, len(b.overlay))
	for id, pending := range b.overlay {
		out[id] = pending.patch
	}
	return out
}

// PendingCount reports the number of items with unresolved patches.
func (b *Board) PendingCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.overlay)
}

// Wait blocks until every in-flight remote update has resolved.
func (b *Board) Wait() {
	b.inflight.Wait()
}
