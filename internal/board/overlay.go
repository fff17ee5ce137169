package board

import (
	"github.com/yukikurage/roadmap-planner-api/internal/models"
)

// Patch is a partial set of item fields. Nil fields are untouched.
// Grouping foreign keys use Ref so that clearing a key (setting it to
// nothing) is distinguishable from leaving it alone.
type Patch struct {
	Title       *string
	Description *string
	Status      *models.ItemStatus
	Category    *models.ItemCategory
	Tags        *[]string
	ObjectiveID Ref
	ModuleID    Ref
	TeamID      Ref
}

// Ref is an optional update to a nullable foreign key. Set=false means
// the patch does not touch the key; Set=true with ID=nil clears it.
type Ref struct {
	Set bool
	ID  *string
}

// SetRef builds a Ref that assigns the given id.
func SetRef(id string) Ref {
	return Ref{Set: true, ID: &id}
}

// ClearRef builds a Ref that clears the foreign key.
func ClearRef() Ref {
	return Ref{Set: true}
}

// StatusPatch is the drag-and-drop fast path: a patch touching only the
// status field.
func StatusPatch(status models.ItemStatus) Patch {
	return Patch{Status: &status}
}

// IsEmpty reports whether the patch touches no fields at all.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Category == nil && p.Tags == nil &&
		!p.ObjectiveID.Set && !p.ModuleID.Set && !p.TeamID.Set
}

// Apply returns a copy of item with the patch folded in.
func (p Patch) Apply(item models.Item) models.Item {
	if p.Title != nil {
		item.Title = *p.Title
	}
	if p.Description != nil {
		item.Description = p.Description
	}
	if p.Status != nil {
		item.Status = *p.Status
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.Tags != nil {
		item.Tags = *p.Tags
	}
	if p.ObjectiveID.Set {
		item.ObjectiveID = p.ObjectiveID.ID
	}
	if p.ModuleID.Set {
		item.ModuleID = p.ModuleID.ID
	}
	if p.TeamID.Set {
		item.TeamID = p.TeamID.ID
	}
	return item
}

// Changes reports whether applying the patch to item would alter any of
// its effective field values. Dropping an item onto the column it
// already occupies is the canonical no-change case.
func (p Patch) Changes(item models.Item) bool {
	if p.Title != nil && *p.Title != item.Title {
		return true
	}
	if p.Description != nil && !equalStringPtr(p.Description, item.Description) {
		return true
	}
	if p.Status != nil && *p.Status != item.Status {
		return true
	}
	if p.Category != nil && *p.Category != item.Category {
		return true
	}
	if p.Tags != nil && !equalStrings(*p.Tags, item.Tags) {
		return true
	}
	if p.ObjectiveID.Set && !equalStringPtr(p.ObjectiveID.ID, item.ObjectiveID) {
		return true
	}
	if p.ModuleID.Set && !equalStringPtr(p.ModuleID.ID, item.ModuleID) {
		return true
	}
	if p.TeamID.Set && !equalStringPtr(p.TeamID.ID, item.TeamID) {
		return true
	}
	return false
}

func equalStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Overlay maps item ids to their pending optimistic patch. It is a
// plain value type; the Board owns synchronization.
type Overlay map[string]Patch

// ApplyTo returns item with its pending patch (if any) folded in.
func (o Overlay) ApplyTo(item models.Item) models.Item {
	if patch, ok := o[item.ID]; ok {
		return patch.Apply(item)
	}
	return item
}
