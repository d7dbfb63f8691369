package models

import (
	"time"

	"github.com/google/uuid"
)

// CategoryCollection places a category inside a collection at a position.
// One row per (category, collection).
type CategoryCollection struct {
	CategoryID   uuid.UUID   `gorm:"column:category_id;type:uuid;primaryKey"`
	CollectionID uuid.UUID   `gorm:"column:collection_id;type:uuid;primaryKey;index"`
	Position     int         `gorm:"column:position;not null;default:0"`
	Category     *Category   `gorm:"foreignKey:CategoryID"`
	Collection   *Collection `gorm:"foreignKey:CollectionID"`
	CreatedAt    time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName preserves the original pivot table name.
func (CategoryCollection) TableName() string {
	return "category_collection"
}
