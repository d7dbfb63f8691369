package products

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/smuvr/spraby/pkg/db/models"
	"github.com/smuvr/spraby/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a products repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(product).Error
}

func (r *repository) Save(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(product).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) FindByIDUnscoped(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Unscoped().Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]models.Product, error) {
	q := r.db.WithContext(ctx).Model(&models.Product{})
	if filter.TrashedOnly {
		q = q.Unscoped().Where("deleted_at IS NOT NULL")
	}
	if filter.Cursor != nil {
		q = q.Where("(created_at, id) > (?, ?)", filter.Cursor.CreatedAt, filter.Cursor.ID)
	}
	if filter.BrandID != nil {
		q = q.Where("brand_id = ?", *filter.BrandID)
	}
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	if filter.AvailableOnly {
		q = q.Where("EXISTS (SELECT 1 FROM variants WHERE variants.product_id = products.id AND variants.is_available AND variants.quantity > 0)")
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = pagination.DefaultLimit
	}
	var out []models.Product
	err := q.Order("created_at ASC, id ASC").Limit(limit).Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) SlugTaken(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Unscoped().Model(&models.Product{}).Where("slug = ?", slug)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Product{}).Error
}

func (r *repository) Restore(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Unscoped().
		Model(&models.Product{}).
		Where("id = ?", id).
		Update("deleted_at", nil).Error
}

func (r *repository) HardDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Unscoped().
		Where("id = ?", id).
		Delete(&models.Product{}).Error
}

func (r *repository) BrandExists(ctx context.Context, brandID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Brand{}).
		Where("id = ?", brandID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) CategoryExists(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("id = ?", categoryID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) BrandCategoryIDs(ctx context.Context, brandID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.BrandCategory{}).
		Where("brand_id = ?", brandID).
		Pluck("category_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *repository) DeleteVariantValues(ctx context.Context, productID uuid.UUID) error {
	sub := r.db.Model(&models.Variant{}).Select("id").Where("product_id = ?", productID)
	return r.db.WithContext(ctx).
		Where("variant_id IN (?)", sub).
		Delete(&models.VariantValue{}).Error
}

func (r *repository) DeleteVariants(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&models.Variant{}).Error
}

func (r *repository) DeleteImageLinks(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&models.ProductImage{}).Error
}

func (r *repository) AvailableProductIDs(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	out := make(map[uuid.UUID]bool, len(productIDs))
	if len(productIDs) == 0 {
		return out, nil
	}
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.Variant{}).
		Distinct("product_id").
		Where("product_id IN ? AND is_available = ? AND quantity > 0", productIDs, true).
		Pluck("product_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

func (r *repository) ImageExists(ctx context.Context, imageID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Image{}).
		Where("id = ?", imageID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) VariantBelongsToProduct(ctx context.Context, variantID, productID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Variant{}).
		Where("id = ? AND product_id = ?", variantID, productID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) UpsertImageLink(ctx context.Context, link *models.ProductImage) error {
	if link.ID == uuid.Nil {
		link.ID = uuid.New()
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}, {Name: "image_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"variant_id", "position", "is_primary", "updated_at"}),
		}).
		Create(link).Error
}

func (r *repository) FindImageLink(ctx context.Context, productID, imageID uuid.UUID) (*models.ProductImage, error) {
	var link models.ProductImage
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND image_id = ?", productID, imageID).
		First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *repository) DeleteImageLink(ctx context.Context, productID, imageID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("product_id = ? AND image_id = ?", productID, imageID).
		Delete(&models.ProductImage{})
	return res.RowsAffected, res.Error
}

func (r *repository) ListImageLinks(ctx context.Context, productID uuid.UUID) ([]models.ProductImage, error) {
	var links []models.ProductImage
	err := r.db.WithContext(ctx).
		Preload("Image").
		Where("product_id = ?", productID).
		Order("position ASC, created_at ASC").
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

func (r *repository) FindPrimaryLink(ctx context.Context, productID uuid.UUID) (*models.ProductImage, error) {
	var link models.ProductImage
	err := r.db.WithContext(ctx).
		Preload("Image").
		Where("product_id = ? AND is_primary = ? AND variant_id IS NULL", productID, true).
		First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *repository) DemotePrimary(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID) error {
	q := r.db.WithContext(ctx).
		Model(&models.ProductImage{}).
		Where("product_id = ? AND is_primary = ?", productID, true)
	if variantID == nil {
		q = q.Where("variant_id IS NULL")
	} else {
		q = q.Where("variant_id = ?", *variantID)
	}
	return q.Update("is_primary", false).Error
}

func (r *repository) MarkPrimary(ctx context.Context, linkID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.ProductImage{}).
		Where("id = ?", linkID).
		Update("is_primary", true).Error
}
