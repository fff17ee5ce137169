package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Roadmap struct {
	ID          string         `gorm:"type:varchar(36);primarykey" json:"id"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Description *string        `gorm:"type:text" json:"description"`
	OwnerID     string         `gorm:"type:varchar(36);not null;index" json:"owner_id"`
	IsPublic    bool           `gorm:"not null;default:false" json:"is_public"`
	ShareToken  *string        `gorm:"type:varchar(50);uniqueIndex" json:"share_token"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Owner      User        `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Objectives []Objective `gorm:"foreignKey:RoadmapID" json:"objectives,omitempty"`
	Modules    []Module    `gorm:"foreignKey:RoadmapID" json:"modules,omitempty"`
	Teams      []Team      `gorm:"foreignKey:RoadmapID" json:"teams,omitempty"`
	Items      []Item      `gorm:"foreignKey:RoadmapID" json:"items,omitempty"`
}

func (r *Roadmap) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
