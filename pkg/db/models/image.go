package models

import (
	"time"

	"github.com/google/uuid"
)

// Image is a media asset. Association to products (and optionally a specific
// variant) lives on the ProductImage pivot.
type Image struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Path        string    `gorm:"column:path;not null"`
	Alt         *string   `gorm:"column:alt"`
	Description *string   `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
