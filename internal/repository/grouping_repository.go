package repository

import (
	"fmt"

	"github.com/yukikurage/roadmap-planner-api/internal/models"
	"gorm.io/gorm"
)

// GormGroupingRepository is a GORM implementation of GroupingRepository
type GormGroupingRepository struct {
	db *gorm.DB
}

// NewGroupingRepository creates a new GroupingRepository
func NewGroupingRepository(db *gorm.DB) GroupingRepository {
	return &GormGroupingRepository{db: db}
}

// itemColumn maps a kind to the items foreign key column it owns.
func itemColumn(kind GroupingKind) string {
	switch kind {
	case KindObjective:
		return "objective_id"
	case KindModule:
		return "module_id"
	default:
		return "team_id"
	}
}

// Create creates a new grouping row and fills in its generated ID
func (r *GormGroupingRepository) Create(kind GroupingKind, grouping *Grouping) error {
	switch kind {
	case KindObjective:
		row := models.Objective{
			RoadmapID:  grouping.RoadmapID,
			Title:      grouping.Title,
			Color:      grouping.Color,
			OrderIndex: grouping.OrderIndex,
		}
		if err := r.db.Create(&row).Error; err != nil {
			return err
		}
		*grouping = fromObjective(row)
		return nil
	case KindModule:
		row := models.Module{
			RoadmapID:   grouping.RoadmapID,
			Title:       grouping.Title,
			Color:       grouping.Color,
			Description: grouping.Description,
			OrderIndex:  grouping.OrderIndex,
		}
		if err := r.db.Create(&row).Error; err != nil {
			return err
		}
		*grouping = fromModule(row)
		return nil
	case KindTeam:
		row := models.Team{
			RoadmapID:   grouping.RoadmapID,
			Title:       grouping.Title,
			Color:       grouping.Color,
			Description: grouping.Description,
			OrderIndex:  grouping.OrderIndex,
		}
		if err := r.db.Create(&row).Error; err != nil {
			return err
		}
		*grouping = fromTeam(row)
		return nil
	}
	return fmt.Errorf("unknown grouping kind %q", kind)
}

// FindByID finds a grouping by ID
func (r *GormGroupingRepository) FindByID(kind GroupingKind, id string) (*Grouping, error) {
	switch kind {
	case KindObjective:
		var row models.Objective
		if err := r.db.Where("id = ?", id).First(&row).Error; err != nil {
			return nil, err
		}
		g := fromObjective(row)
		return &g, nil
	case KindModule:
		var row models.Module
		if err := r.db.Where("id = ?", id).First(&row).Error; err != nil {
			return nil, err
		}
		g := fromModule(row)
		return &g, nil
	case KindTeam:
		var row models.Team
		if err := r.db.Where("id = ?", id).First(&row).Error; err != nil {
			return nil, err
		}
		g := fromTeam(row)
		return &g, nil
	}
	return nil, fmt.Errorf("unknown grouping kind %q", kind)
}

// ListByRoadmap lists a roadmap's groupings ordered by order index
func (r *GormGroupingRepository) ListByRoadmap(kind GroupingKind, roadmapID string) ([]Grouping, error) {
	query := r.db.Scopes(orderByPosition).Where("roadmap_id = ?", roadmapID)

	switch kind {
	case KindObjective:
		var rows []models.Objective
		if err := query.Find(&rows).Error; err != nil {
			return nil, err
		}
		groupings := make([]Grouping, len(rows))
		for i, row := range rows {
			groupings[i] = fromObjective(row)
		}
		return groupings, nil
	case KindModule:
		var rows []models.Module
		if err := query.Find(&rows).Error; err != nil {
			return nil, err
		}
		groupings := make([]Grouping, len(rows))
		for i, row := range rows {
			groupings[i] = fromModule(row)
		}
		return groupings, nil
	case KindTeam:
		var rows []models.Team
		if err := query.Find(&rows).Error; err != nil {
			return nil, err
		}
		groupings := make([]Grouping, len(rows))
		for i, row := range rows {
			groupings[i] = fromTeam(row)
		}
		return groupings, nil
	}
	return nil, fmt.Errorf("unknown grouping kind %q", kind)
}

// CountByRoadmap counts a roadmap's groupings
func (r *GormGroupingRepository) CountByRoadmap(kind GroupingKind, roadmapID string) (int64, error) {
	var count int64
	query := r.db.Model(groupingModel(kind)).Where("roadmap_id = ?", roadmapID)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Update updates a grouping's editable columns
func (r *GormGroupingRepository) Update(kind GroupingKind, grouping *Grouping) error {
	fields := map[string]interface{}{
		"title":       grouping.Title,
		"color":       grouping.Color,
		"order_index": grouping.OrderIndex,
	}
	if kind != KindObjective {
		fields["description"] = grouping.Description
	}
	return r.db.Model(groupingModel(kind)).Where("id = ?", grouping.ID).Updates(fields).Error
}

// Delete deletes a grouping and detaches its items in one transaction.
// Items survive the delete; clearing the foreign key is what moves them
// into the board's Unassigned row.
func (r *GormGroupingRepository) Delete(kind GroupingKind, id string) error {
	column := itemColumn(kind)
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Item{}).
			Where(column+" = ?", id).
			Update(column, nil).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).Delete(groupingModel(kind)).Error
	})
}

func groupingModel(kind GroupingKind) interface{} {
	switch kind {
	case KindObjective:
		return &models.Objective{}
	case KindModule:
		return &models.Module{}
	default:
		return &models.Team{}
	}
}

func fromObjective(row models.Objective) Grouping {
	return Grouping{
		ID:         row.ID,
		RoadmapID:  row.RoadmapID,
		Title:      row.Title,
		Color:      row.Color,
		OrderIndex: row.OrderIndex,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

func fromModule(row models.Module) Grouping {
	return Grouping{
		ID:          row.ID,
		RoadmapID:   row.RoadmapID,
		Title:       row.Title,
		Color:       row.Color,
		Description: row.Description,
		OrderIndex:  row.OrderIndex,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func fromTeam(row models.Team) Grouping {
	return Grouping{
		ID:          row.ID,
		RoadmapID:   row.RoadmapID,
		Title:       row.Title,
		Color:       row.Color,
		Description: row.Description,
		OrderIndex:  row.OrderIndex,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
