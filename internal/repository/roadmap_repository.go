package repository

import (
	"github.com/yukikurage/roadmap-planner-api/internal/database"
	"github.com/yukikurage/roadmap-planner-api/internal/models"
	"github.com/yukikurage/roadmap-planner-api/internal/utils"
	"gorm.io/gorm"
)

// GormRoadmapRepository is a GORM implementation of RoadmapRepository
type GormRoadmapRepository struct {
	db *gorm.DB
}

// NewRoadmapRepository creates a new RoadmapRepository
func NewRoadmapRepository(db *gorm.DB) RoadmapRepository {
	return &GormRoadmapRepository{db: db}
}

// Create creates a new roadmap
func (r *GormRoadmapRepository) Create(roadmap *models.Roadmap) error {
	return r.db.Create(roadmap).Error
}

// FindByID finds a roadmap by ID with optional preloading
func (r *GormRoadmapRepository) FindByID(id string, preload ...string) (*models.Roadmap, error) {
	var roadmap models.Roadmap
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.Where("id = ?", id).First(&roadmap).Error; err != nil {
		return nil, err
	}

	return &roadmap, nil
}

// FindByShareToken finds a roadmap by its share token
func (r *GormRoadmapRepository) FindByShareToken(token string) (*models.Roadmap, error) {
	var roadmap models.Roadmap
	if err := r.db.Where("share_token = ?", token).First(&roadmap).Error; err != nil {
		return nil, err
	}
	return &roadmap, nil
}

// FindFull loads a roadmap with all of its groupings and items, each
// collection ordered the way the board consumes it
func (r *GormRoadmapRepository) FindFull(id string) (*models.Roadmap, error) {
	var roadmap models.Roadmap
	err := r.db.
		Preload("Objectives", orderByPosition).
		Preload("Modules", orderByPosition).
		Preload("Teams", orderByPosition).
		Preload("Items", orderByPosition).
		Where("id = ?", id).
		First(&roadmap).Error
	if err != nil {
		return nil, err
	}
	return &roadmap, nil
}

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("order_index ASC, created_at ASC, id ASC")
}

// ListByOwner lists a user's roadmaps with pagination
func (r *GormRoadmapRepository) ListByOwner(ownerID string, params utils.PaginationParams) ([]models.Roadmap, int64, error) {
	var roadmaps []models.Roadmap

	query := r.db.Model(&models.Roadmap{}).Where("owner_id = ?", ownerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").
		Scopes(database.Paginate(params)).
		Find(&roadmaps).Error; err != nil {
		return nil, 0, err
	}

	return roadmaps, total, nil
}

// Update updates a roadmap
func (r *GormRoadmapRepository) Update(roadmap *models.Roadmap) error {
	return r.db.Save(roadmap).Error
}

// Delete deletes a roadmap and all related data in a transaction
func (r *GormRoadmapRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		itemIDs := tx.Model(&models.Item{}).Select("id").Where("roadmap_id = ?", id)
		if err := tx.Where("item_id IN (?)", itemIDs).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		if err := tx.Where("roadmap_id = ?", id).Delete(&models.Item{}).Error; err != nil {
			return err
		}
		if err := tx.Where("roadmap_id = ?", id).Delete(&models.Objective{}).Error; err != nil {
			return err
		}
		if err := tx.Where("roadmap_id = ?", id).Delete(&models.Module{}).Error; err != nil {
			return err
		}
		if err := tx.Where("roadmap_id = ?", id).Delete(&models.Team{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).Delete(&models.Roadmap{}).Error
	})
}
