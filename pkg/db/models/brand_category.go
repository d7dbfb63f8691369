package models

import (
	"time"

	"github.com/google/uuid"
)

// BrandCategory grants a brand access to list products into a category.
type BrandCategory struct {
	BrandID    uuid.UUID `gorm:"column:brand_id;type:uuid;primaryKey"`
	CategoryID uuid.UUID `gorm:"column:category_id;type:uuid;primaryKey;index"`
	Category   *Category `gorm:"foreignKey:CategoryID"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName preserves the original pivot table name.
func (BrandCategory) TableName() string {
	return "brand_category"
}
