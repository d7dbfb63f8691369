package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/smuvr/spraby/pkg/enums"
)

// Option is a named variant attribute definition, e.g. "Color" or "Size".
// Deleting an option is restricted while any VariantValue references it.
type Option struct {
	ID           uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	Name         string           `gorm:"column:name;not null"`
	InternalName string           `gorm:"column:internal_name;not null;index"`
	Slug         string           `gorm:"column:slug;not null;uniqueIndex"`
	Type         enums.OptionType `gorm:"column:type;not null;default:'select'"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
