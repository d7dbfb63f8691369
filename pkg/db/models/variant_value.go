package models

import (
	"time"

	"github.com/google/uuid"
)

// VariantValue binds a variant to one chosen value for a single option.
// At most one value per (variant, option) pair; deleting an option is
// restricted while values reference it.
type VariantValue struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	VariantID uuid.UUID `gorm:"column:variant_id;type:uuid;not null;uniqueIndex:uq_variant_option"`
	OptionID  uuid.UUID `gorm:"column:option_id;type:uuid;not null;uniqueIndex:uq_variant_option;index"`
	Value     string    `gorm:"column:value;not null;index"`
	Option    *Option   `gorm:"foreignKey:OptionID"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
