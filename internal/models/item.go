package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ItemStatus string

const (
	StatusNow   ItemStatus = "now"
	StatusNext  ItemStatus = "next"
	StatusLater ItemStatus = "later"
)

// ValidStatus reports whether s is one of the three roadmap horizons.
func ValidStatus(s ItemStatus) bool {
	return s == StatusNow || s == StatusNext || s == StatusLater
}

type ItemCategory string

const (
	CategoryTech     ItemCategory = "tech"
	CategoryBusiness ItemCategory = "business"
	CategoryMixed    ItemCategory = "mixed"
)

// ValidCategory reports whether c is a known item category.
func ValidCategory(c ItemCategory) bool {
	return c == CategoryTech || c == CategoryBusiness || c == CategoryMixed
}

type Item struct {
	ID          string                      `gorm:"type:varchar(36);primarykey" json:"id"`
	RoadmapID   string                      `gorm:"type:varchar(36);not null;index" json:"roadmap_id"`
	ObjectiveID *string                     `gorm:"type:varchar(36);index" json:"objective_id"`
	ModuleID    *string                     `gorm:"type:varchar(36);index" json:"module_id"`
	TeamID      *string                     `gorm:"type:varchar(36);index" json:"team_id"`
	Title       string                      `gorm:"type:varchar(255);not null" json:"title"`
	Description *string                     `gorm:"type:text" json:"description"`
	Category    ItemCategory                `gorm:"type:varchar(20);not null;default:'business'" json:"category"`
	Tags        datatypes.JSONSlice[string] `json:"tags"`
	Status      ItemStatus                  `gorm:"type:varchar(10);not null;default:'later';index" json:"status"`
	OrderIndex  int                         `gorm:"not null;default:0" json:"order_index"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
	DeletedAt   gorm.DeletedAt              `gorm:"index" json:"-"`

	// Relations
	Roadmap   Roadmap    `gorm:"foreignKey:RoadmapID" json:"roadmap,omitempty"`
	Objective *Objective `gorm:"foreignKey:ObjectiveID" json:"objective,omitempty"`
	Module    *Module    `gorm:"foreignKey:ModuleID" json:"module,omitempty"`
	Team      *Team      `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	Comments  []Comment  `gorm:"foreignKey:ItemID" json:"comments,omitempty"`
}

func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
