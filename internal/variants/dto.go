package variants

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smuvr/spraby/pkg/db/models"
	"github.com/smuvr/spraby/pkg/enums"
)

// CreateInput carries the fields accepted when adding a variant to a product.
type CreateInput struct {
	ProductID    uuid.UUID
	SKU          string
	Price        decimal.Decimal
	ComparePrice *decimal.Decimal
	CostPrice    *decimal.Decimal
	Quantity     int
	IsAvailable  *bool
	IsDefault    bool
}

// UpdateInput patches a variant. Nil fields are left untouched.
type UpdateInput struct {
	SKU          *string
	Price        *decimal.Decimal
	ComparePrice *decimal.Decimal
	CostPrice    *decimal.Decimal
	Quantity     *int
	IsAvailable  *bool
}

// SetValueInput assigns one option value to a variant. Setting a value for
// an option that already has one replaces it.
type SetValueInput struct {
	OptionID uuid.UUID
	Value    string
}

// VariantDTO is the outward shape of a variant. Available is derived from
// the availability flag and stock on hand.
type VariantDTO struct {
	ID           uuid.UUID        `json:"id"`
	ProductID    uuid.UUID        `json:"product_id"`
	SKU          string           `json:"sku"`
	Price        decimal.Decimal  `json:"price"`
	ComparePrice *decimal.Decimal `json:"compare_price,omitempty"`
	CostPrice    *decimal.Decimal `json:"cost_price,omitempty"`
	Quantity     int              `json:"quantity"`
	IsAvailable  bool             `json:"is_available"`
	IsDefault    bool             `json:"is_default"`
	Available    bool             `json:"available"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// VariantValueDTO is one option value carried by a variant.
type VariantValueDTO struct {
	OptionID   uuid.UUID        `json:"option_id"`
	OptionName string           `json:"option_name"`
	OptionType enums.OptionType `json:"option_type"`
	Value      string           `json:"value"`
}

func toDTO(m *models.Variant) *VariantDTO {
	return &VariantDTO{
		ID:           m.ID,
		ProductID:    m.ProductID,
		SKU:          m.SKU,
		Price:        m.Price,
		ComparePrice: m.ComparePrice,
		CostPrice:    m.CostPrice,
		Quantity:     m.Quantity,
		IsAvailable:  m.IsAvailable,
		IsDefault:    m.IsDefault,
		Available:    m.IsAvailable && m.Quantity > 0,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toValueDTO(m *models.VariantValue) VariantValueDTO {
	dto := VariantValueDTO{
		OptionID: m.OptionID,
		Value:    m.Value,
	}
	if m.Option != nil {
		dto.OptionName = m.Option.Name
		dto.OptionType = m.Option.Type
	}
	return dto
}
