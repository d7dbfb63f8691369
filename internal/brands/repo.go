package brands

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

// NewRepository builds a brands repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, brand *models.Brand) error {
	if brand.ID == uuid.Nil {
		brand.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(brand).Error
}

func (r *repository) Save(ctx context.Context, brand *models.Brand) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(brand).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&brand).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]models.Brand, error) {
	q := r.db.WithContext(ctx).Model(&models.Brand{})
	if filter.Cursor != nil {
		q = q.Where("(created_at, id) > (?, ?)", filter.Cursor.CreatedAt, filter.Cursor.ID)
	}
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = pagination.DefaultLimit
	}
	var out []models.Brand
	err := q.Order("created_at ASC, id ASC").Limit(limit).Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) SlugTaken(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.Brand{}).Where("slug = ?", slug)
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
		Delete(&models.Brand{}).Error
}

func (r *repository) UserExists(ctx context.Context, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
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

func (r *repository) UpsertCategoryLink(ctx context.Context, link *models.BrandCategory) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "brand_id"}, {Name: "category_id"}},
			DoNothing: true,
		}).
		Create(link).Error
}

func (r *repository) DeleteCategoryLink(ctx context.Context, brandID, categoryID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("brand_id = ? AND category_id = ?", brandID, categoryID).
		Delete(&models.BrandCategory{})
	return res.RowsAffected, res.Error
}

func (r *repository) ListCategoryLinks(ctx context.Context, brandID uuid.UUID) ([]models.BrandCategory, error) {
	var links []models.BrandCategory
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("brand_id = ?", brandID).
		Order("created_at ASC").
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

func (r *repository) DeleteCategoryLinks(ctx context.Context, brandID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("brand_id = ?", brandID).
		Delete(&models.BrandCategory{}).Error
}

// ListProductIDs includes soft-deleted products so the cascade cleans up
// variants and image links that belonged to already-trashed listings.
func (r *repository) ListProductIDs(ctx context.Context, brandID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Unscoped().
		Model(&models.Product{}).
		Where("brand_id = ?", brandID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *repository) DeleteVariantValuesByProducts(ctx context.Context, productIDs []uuid.UUID) error {
	if len(productIDs) == 0 {
		return nil
	}
	sub := r.db.Model(&models.Variant{}).Select("id").Where("product_id IN ?", productIDs)
	return r.db.WithContext(ctx).
		Where("variant_id IN (?)", sub).
		Delete(&models.VariantValue{}).Error
}

func (r *repository) DeleteVariantsByProducts(ctx context.Context, productIDs []uuid.UUID) error {
	if len(productIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Delete(&models.Variant{}).Error
}

func (r *repository) DeleteProductImagesByProducts(ctx context.Context, productIDs []uuid.UUID) error {
	if len(productIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Delete(&models.ProductImage{}).Error
}

// SoftDeleteProducts tombstones the brand's live products. Products that were
// already soft-deleted keep their original deletion timestamps.
func (r *repository) SoftDeleteProducts(ctx context.Context, brandID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("brand_id = ?", brandID).
		Delete(&models.Product{}).Error
}
