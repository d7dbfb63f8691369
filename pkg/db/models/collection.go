package models

import (
	"time"

	"github.com/google/uuid"
)

// Collection is a curated, ordered grouping of categories used for
// merchandising and navigation.
type Collection struct {
	ID          uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	Name        string               `gorm:"column:name;not null"`
	Slug        string               `gorm:"column:slug;not null;uniqueIndex"`
	Description *string              `gorm:"column:description"`
	Image       *string              `gorm:"column:image"`
	IsActive    bool                 `gorm:"column:is_active;not null;default:true"`
	Categories  []CategoryCollection `gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
