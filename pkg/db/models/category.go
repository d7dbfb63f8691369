package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products and declares which options apply to listings in it.
// Deletion is restricted while products (including soft-deleted ones) still
// reference the category.
type Category struct {
	ID          uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	Name        string               `gorm:"column:name;not null"`
	Slug        string               `gorm:"column:slug;not null;uniqueIndex"`
	Description *string              `gorm:"column:description"`
	Image       *string              `gorm:"column:image"`
	IsActive    bool                 `gorm:"column:is_active;not null;default:true"`
	Options     []CategoryOption     `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	Collections []CategoryCollection `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	Brands      []BrandCategory      `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
