package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is a brand's listing in a single category. Products are
// soft-deleted: the row keeps a tombstone timestamp and drops out of default
// queries, so the brand→product cascade (which must preserve tombstones) is
// managed by the brand service rather than a storage-level FK action.
type Product struct {
	ID               uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	BrandID          uuid.UUID      `gorm:"column:brand_id;type:uuid;not null;index"`
	CategoryID       uuid.UUID      `gorm:"column:category_id;type:uuid;not null;index"`
	Name             string         `gorm:"column:name;not null"`
	Slug             string         `gorm:"column:slug;not null;uniqueIndex"`
	Description      *string        `gorm:"column:description"`
	ShortDescription *string        `gorm:"column:short_description"`
	IsActive         bool           `gorm:"column:is_active;not null;default:true"`
	Brand            *Brand         `gorm:"foreignKey:BrandID"`
	Category         *Category      `gorm:"foreignKey:CategoryID"`
	Variants         []Variant      `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Images           []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt        gorm.DeletedAt `gorm:"column:deleted_at;index"`
}
