package variants

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smuvr/spraby/internal/rbac"
	"github.com/smuvr/spraby/pkg/db/models"
)

// Service exposes variant management under a product, including the option
// values that describe each variant and the per-product default flag.
type Service interface {
	Create(ctx context.Context, actor rbac.Actor, input CreateInput) (*VariantDTO, error)
	Update(ctx context.Context, actor rbac.Actor, id uuid.UUID, input UpdateInput) (*VariantDTO, error)
	Get(ctx context.Context, actor rbac.Actor, id uuid.UUID) (*VariantDTO, error)
	ListByProduct(ctx context.Context, actor rbac.Actor, productID uuid.UUID, availableOnly bool) ([]VariantDTO, error)
	Delete(ctx context.Context, actor rbac.Actor, id uuid.UUID) error
	SetDefault(ctx context.Context, actor rbac.Actor, id uuid.UUID) error

	SetValue(ctx context.Context, actor rbac.Actor, variantID uuid.UUID, input SetValueInput) error
	DeleteValue(ctx context.Context, actor rbac.Actor, variantID, optionID uuid.UUID) error
	ListValues(ctx context.Context, actor rbac.Actor, variantID uuid.UUID) ([]VariantValueDTO, error)
}

// Repository defines the persistence surface for variants and their values.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, variant *models.Variant) error
	Save(ctx context.Context, variant *models.Variant) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Variant, error)
	ListByProduct(ctx context.Context, productID uuid.UUID, availableOnly bool) ([]models.Variant, error)
	SKUTaken(ctx context.Context, sku string, excludeID uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// ProductCategoryID resolves the live product's category, reporting
	// gorm.ErrRecordNotFound for missing or soft-deleted products.
	ProductCategoryID(ctx context.Context, productID uuid.UUID) (uuid.UUID, error)
	DemoteDefault(ctx context.Context, productID uuid.UUID) error

	OptionAttachedToCategory(ctx context.Context, optionID, categoryID uuid.UUID) (bool, error)
	UpsertValue(ctx context.Context, value *models.VariantValue) error
	DeleteValueRow(ctx context.Context, variantID, optionID uuid.UUID) (int64, error)
	ListValueRows(ctx context.Context, variantID uuid.UUID) ([]models.VariantValue, error)
	DeleteValuesByVariant(ctx context.Context, variantID uuid.UUID) error
	DeleteImageLinksByVariant(ctx context.Context, variantID uuid.UUID) error
}
