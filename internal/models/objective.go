package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Objective struct {
	ID         string         `gorm:"type:varchar(36);primarykey" json:"id"`
	RoadmapID  string         `gorm:"type:varchar(36);not null;index" json:"roadmap_id"`
	Title      string         `gorm:"type:varchar(255);not null" json:"title"`
	Color      string         `gorm:"type:varchar(20);not null;default:'#3b82f6'" json:"color"`
	OrderIndex int            `gorm:"not null;default:0" json:"order_index"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Roadmap Roadmap `gorm:"foreignKey:RoadmapID" json:"roadmap,omitempty"`
	Items   []Item  `gorm:"foreignKey:ObjectiveID" json:"items,omitempty"`
}

func (o *Objective) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
