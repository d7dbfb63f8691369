package variants

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/smuvr/spraby/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a variants repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, variant *models.Variant) error {
	if variant.ID == uuid.Nil {
		variant.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(variant).Error
}

func (r *repository) Save(ctx context.Context, variant *models.Variant) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(variant).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Variant, error) {
	var variant models.Variant
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&variant).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *repository) ListByProduct(ctx context.Context, productID uuid.UUID, availableOnly bool) ([]models.Variant, error) {
	q := r.db.WithContext(ctx).Where("product_id = ?", productID)
	if availableOnly {
		q = q.Where("is_available = ? AND quantity > 0", true)
	}
	var out []models.Variant
	err := q.Order("created_at ASC, id ASC").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) SKUTaken(ctx context.Context, sku string, excludeID uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.Variant{}).Where("sku = ?", sku)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Variant{}).Error
}

func (r *repository) ProductCategoryID(ctx context.Context, productID uuid.UUID) (uuid.UUID, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Select("id", "category_id").
		Where("id = ?", productID).
		First(&product).Error
	if err != nil {
		return uuid.Nil, err
	}
	return product.CategoryID, nil
}

func (r *repository) DemoteDefault(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Variant{}).
		Where("product_id = ? AND is_default = ?", productID, true).
		Update("is_default", false).Error
}

func (r *repository) OptionAttachedToCategory(ctx context.Context, optionID, categoryID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CategoryOption{}).
		Where("option_id = ? AND category_id = ?", optionID, categoryID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) UpsertValue(ctx context.Context, value *models.VariantValue) error {
	if value.ID == uuid.Nil {
		value.ID = uuid.New()
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "variant_id"}, {Name: "option_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(value).Error
}

func (r *repository) DeleteValueRow(ctx context.Context, variantID, optionID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("variant_id = ? AND option_id = ?", variantID, optionID).
		Delete(&models.VariantValue{})
	return res.RowsAffected, res.Error
}

func (r *repository) ListValueRows(ctx context.Context, variantID uuid.UUID) ([]models.VariantValue, error) {
	var values []models.VariantValue
	err := r.db.WithContext(ctx).
		Preload("Option").
		Where("variant_id = ?", variantID).
		Order("created_at ASC, id ASC").
		Find(&values).Error
	if err != nil {
		return nil, err
	}
	return values, nil
}

func (r *repository) DeleteValuesByVariant(ctx context.Context, variantID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("variant_id = ?", variantID).
		Delete(&models.VariantValue{}).Error
}

func (r *repository) DeleteImageLinksByVariant(ctx context.Context, variantID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("variant_id = ?", variantID).
		Delete(&models.ProductImage{}).Error
}
