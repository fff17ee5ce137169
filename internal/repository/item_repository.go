package repository

import (
	"github.com/yukikurage/roadmap-planner-api/internal/models"
	"gorm.io/gorm"
)

// GormItemRepository is a GORM implementation of ItemRepository
type GormItemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new ItemRepository
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &GormItemRepository{db: db}
}

// Create creates a new item
func (r *GormItemRepository) Create(item *models.Item) error {
	return r.db.Create(item).Error
}

// CreateBatch creates multiple items in one transaction
func (r *GormItemRepository) CreateBatch(items []models.Item) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i := range items {
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID finds an item by ID with optional preloading
func (r *GormItemRepository) FindByID(id string, preload ...string) (*models.Item, error) {
	var item models.Item
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}

	return &item, nil
}

// ListByRoadmap lists a roadmap's items in board order
func (r *GormItemRepository) ListByRoadmap(roadmapID string) ([]models.Item, error) {
	var items []models.Item
	if err := r.db.Scopes(orderByPosition).
		Where("roadmap_id = ?", roadmapID).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CountByRoadmap counts a roadmap's items
func (r *GormItemRepository) CountByRoadmap(roadmapID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Item{}).
		Where("roadmap_id = ?", roadmapID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Update updates an item
func (r *GormItemRepository) Update(item *models.Item) error {
	return r.db.Save(item).Error
}

// UpdateFields applies a partial column update to an item
func (r *GormItemRepository) UpdateFields(id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	result := r.db.Model(&models.Item{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete soft deletes an item and its comments
func (r *GormItemRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).Delete(&models.Item{}).Error
	})
}
