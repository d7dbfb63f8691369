package models

import (
	"time"

	"github.com/google/uuid"
)

// CategoryOption assigns an option to a category, ordered and optionally
// required. One row per (category, option); re-attaching updates the pivot
// attributes in place.
type CategoryOption struct {
	CategoryID uuid.UUID `gorm:"column:category_id;type:uuid;primaryKey"`
	OptionID   uuid.UUID `gorm:"column:option_id;type:uuid;primaryKey;index"`
	IsRequired bool      `gorm:"column:is_required;not null;default:false"`
	Position   int       `gorm:"column:position;not null;default:0"`
	Option     *Option   `gorm:"foreignKey:OptionID"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName preserves the original pivot table name.
func (CategoryOption) TableName() string {
	return "category_option"
}
