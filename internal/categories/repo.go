package categories

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

// NewRepository builds a categories repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, category *models.Category) error {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *repository) Save(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(category).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *repository) List(ctx context.Context, limit int, cursor *pagination.Cursor) ([]models.Category, error) {
	q := r.db.WithContext(ctx).Model(&models.Category{})
	if cursor != nil {
		q = q.Where("(created_at, id) > (?, ?)", cursor.CreatedAt, cursor.ID)
	}
	var out []models.Category
	err := q.Order("created_at ASC, id ASC").Limit(limit).Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) SlugTaken(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.Category{}).Where("slug = ?", slug)
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
		Delete(&models.Category{}).Error
}

func (r *repository) CountProducts(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Unscoped().
		Model(&models.Product{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) OptionExists(ctx context.Context, optionID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Option{}).
		Where("id = ?", optionID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) UpsertOptionLink(ctx context.Context, link *models.CategoryOption) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "category_id"}, {Name: "option_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_required", "position", "updated_at"}),
		}).
		Create(link).Error
}

func (r *repository) DeleteOptionLink(ctx context.Context, categoryID, optionID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("category_id = ? AND option_id = ?", categoryID, optionID).
		Delete(&models.CategoryOption{})
	return res.RowsAffected, res.Error
}

func (r *repository) ListOptionLinks(ctx context.Context, categoryID uuid.UUID) ([]models.CategoryOption, error) {
	var links []models.CategoryOption
	err := r.db.WithContext(ctx).
		Preload("Option").
		Where("category_id = ?", categoryID).
		Order("position ASC, created_at ASC").
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

func (r *repository) CollectionExists(ctx context.Context, collectionID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Collection{}).
		Where("id = ?", collectionID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) UpsertCollectionLink(ctx context.Context, link *models.CategoryCollection) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "category_id"}, {Name: "collection_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"position", "updated_at"}),
		}).
		Create(link).Error
}

func (r *repository) DeleteCollectionLink(ctx context.Context, categoryID, collectionID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("category_id = ? AND collection_id = ?", categoryID, collectionID).
		Delete(&models.CategoryCollection{})
	return res.RowsAffected, res.Error
}

func (r *repository) ListCollectionLinks(ctx context.Context, categoryID uuid.UUID) ([]models.CategoryCollection, error) {
	var links []models.CategoryCollection
	err := r.db.WithContext(ctx).
		Preload("Collection").
		Where("category_id = ?", categoryID).
		Order("position ASC, created_at ASC").
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

func (r *repository) DeleteAllLinks(ctx context.Context, categoryID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Delete(&models.CategoryOption{}).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Delete(&models.CategoryCollection{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Delete(&models.BrandCategory{}).Error
}
