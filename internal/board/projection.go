package board

import (
	"errors"
	"sort"

	"github.com/yukikurage/roadmap-planner-api/internal/models"
)

// Dimension selects which grouping foreign key a projection partitions
// the item set by.
type Dimension string

const (
	DimensionObjective Dimension = "objective"
	DimensionModule    Dimension = "module"
	DimensionTeam      Dimension = "team"
)

var ErrUnknownDimension = errors.New("unknown grouping dimension")

// ParseDimension validates a user-supplied dimension name.
func ParseDimension(s string) (Dimension, error) {
	switch Dimension(s) {
	case DimensionObjective, DimensionModule, DimensionTeam:
		return Dimension(s), nil
	}
	return "", ErrUnknownDimension
}

// UnassignedID is the reserved grouping id for items that lack the
// selected dimension's foreign key.
const UnassignedID = "unassigned"

// unassignedOrder sorts the synthetic grouping after every real one,
// whatever order_index values the roadmap uses.
const unassignedOrder = 1 << 30

// Grouping is the dimension-neutral header of one board row.
type Grouping struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Color       string  `json:"color"`
	Description *string `json:"description,omitempty"`
	OrderIndex  int     `json:"order_index"`
}

// Row is one grouping's slice of the board: the ordered items for each
// of the three status columns.
type Row struct {
	Grouping Grouping                          `json:"grouping"`
	Columns  map[models.ItemStatus][]models.Item `json:"columns"`
}

// Statuses is the fixed column order of the board.
var Statuses = []models.ItemStatus{models.StatusNow, models.StatusNext, models.StatusLater}

// Project partitions the effective item set (snapshot plus overlay)
// into rows for the selected dimension. It is a pure function of its
// three inputs; callers re-invoke it whenever any of them changes.
//
// Rows are ordered by the grouping's order_index, with the synthetic
// Unassigned row (present only when some item lacks the dimension's
// key) always last. Items within a column are ordered by order_index,
// ties broken by creation time then id so the result is deterministic
// regardless of input order.
func Project(snapshot Snapshot, overlay Overlay, dim Dimension) ([]Row, error) {
	groupings, err := dimensionGroupings(snapshot, dim)
	if err != nil {
		return nil, err
	}

	items := make([]models.Item, len(snapshot.Items))
	for i, item := range snapshot.Items {
		items[i] = overlay.ApplyTo(item)
	}
	sort.Slice(items, func(a, b int) bool {
		if items[a].OrderIndex != items[b].OrderIndex {
			return items[a].OrderIndex < items[b].OrderIndex
		}
		if !items[a].CreatedAt.Equal(items[b].CreatedAt) {
			return items[a].CreatedAt.Before(items[b].CreatedAt)
		}
		return items[a].ID < items[b].ID
	})

	byGroup := make(map[string]map[models.ItemStatus][]models.Item)
	hasUnassigned := false
	for _, item := range items {
		gid := UnassignedID
		if key := groupingKey(item, dim); key != nil {
			gid = *key
		} else {
			hasUnassigned = true
		}
		if byGroup[gid] == nil {
			byGroup[gid] = make(map[models.ItemStatus][]models.Item)
		}
		byGroup[gid][item.Status] = append(byGroup[gid][item.Status], item)
	}

	if hasUnassigned {
		groupings = append(groupings, Grouping{
			ID:         UnassignedID,
			Title:      "Unassigned",
			Color:      "#94a3b8",
			OrderIndex: unassignedOrder,
		})
	}
	sort.SliceStable(groupings, func(a, b int) bool {
		return groupings[a].OrderIndex < groupings[b].OrderIndex
	})

	rows := make([]Row, 0, len(groupings))
	for _, g := range groupings {
		columns := make(map[models.ItemStatus][]models.Item, len(Statuses))
		for _, status := range Statuses {
			columns[status] = byGroup[g.ID][status]
		}
		rows = append(rows, Row{Grouping: g, Columns: columns})
	}
	return rows, nil
}

func groupingKey(item models.Item, dim Dimension) *string {
	switch dim {
	case DimensionObjective:
		return item.ObjectiveID
	case DimensionModule:
		return item.ModuleID
	case DimensionTeam:
		return item.TeamID
	}
	return nil
}

func dimensionGroupings(snapshot Snapshot, dim Dimension) ([]Grouping, error) {
	switch dim {
	case DimensionObjective:
		out := make([]Grouping, len(snapshot.Objectives))
		for i, o := range snapshot.Objectives {
			out[i] = Grouping{ID: o.ID, Title: o.Title, Color: o.Color, OrderIndex: o.OrderIndex}
		}
		return out, nil
	case DimensionModule:
		out := make([]Grouping, len(snapshot.Modules))
		for i, m := range snapshot.Modules {
			out[i] = Grouping{ID: m.ID, Title: m.Title, Color: m.Color, Description: m.Description, OrderIndex: m.OrderIndex}
		}
		return out, nil
	case DimensionTeam:
		out := make([]Grouping, len(snapshot.Teams))
		for i, t := range snapshot.Teams {
			out[i] = Grouping{ID: t.ID, Title: t.Title, Color: t.Color, Description: t.Description, OrderIndex: t.OrderIndex}
		}
		return out, nil
	}
	return nil, ErrUnknownDimension
}
