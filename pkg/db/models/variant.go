package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Variant is a purchasable SKU under a product. Availability is a derived
// predicate (is_available AND quantity > 0), never a stored flag — see the
// repository scopes.
type Variant struct {
	ID           uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	ProductID    uuid.UUID        `gorm:"column:product_id;type:uuid;not null;index"`
	SKU          string           `gorm:"column:sku;not null;uniqueIndex"`
	Price        decimal.Decimal  `gorm:"column:price;type:numeric(12,2);not null"`
	ComparePrice *decimal.Decimal `gorm:"column:compare_price;type:numeric(12,2)"`
	CostPrice    *decimal.Decimal `gorm:"column:cost_price;type:numeric(12,2)"`
	Quantity     int              `gorm:"column:quantity;not null;default:0"`
	IsAvailable  bool             `gorm:"column:is_available;not null;default:true"`
	IsDefault    bool             `gorm:"column:is_default;not null;default:false"`
	Values       []VariantValue   `gorm:"foreignKey:VariantID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
