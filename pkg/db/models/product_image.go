package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductImage links an image to a product, optionally scoped to one variant.
// One row per (product, image); position orders the gallery and is_primary
// marks the hero image. Mutual exclusivity of is_primary per scope is
// enforced transactionally by the products service and backed by partial
// unique indexes in the migration.
type ProductImage struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	ProductID uuid.UUID  `gorm:"column:product_id;type:uuid;not null;uniqueIndex:uq_product_image"`
	ImageID   uuid.UUID  `gorm:"column:image_id;type:uuid;not null;uniqueIndex:uq_product_image;index"`
	VariantID *uuid.UUID `gorm:"column:variant_id;type:uuid;index"`
	Position  int        `gorm:"column:position;not null;default:0"`
	IsPrimary bool       `gorm:"column:is_primary;not null;default:false"`
	Image     *Image     `gorm:"foreignKey:ImageID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName preserves the original pivot table name.
func (ProductImage) TableName() string {
	return "product_images"
}
