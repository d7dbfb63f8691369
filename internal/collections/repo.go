package collections

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smuvr/spraby/pkg/db/models"
	"github.com/smuvr/spraby/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a collections repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, collection *models.Collection) error {
	if collection.ID == uuid.Nil {
		collection.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(collection).Error
}

func (r *repository) Save(ctx context.Context, collection *models.Collection) error {
	return r.db.WithContext(ctx).Save(collection).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Collection, error) {
	var collection models.Collection
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&collection).Error; err != nil {
		return nil, err
	}
	return &collection, nil
}

func (r *repository) List(ctx context.Context, limit int, cursor *pagination.Cursor) ([]models.Collection, error) {
	q := r.db.WithContext(ctx).Model(&models.Collection{})
	if cursor != nil {
		q = q.Where("(created_at, id) > (?, ?)", cursor.CreatedAt, cursor.ID)
	}
	var out []models.Collection
	err := q.Order("created_at ASC, id ASC").Limit(limit).Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) SlugTaken(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.Collection{}).Where("slug = ?", slug)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) ListCategoryLinks(ctx context.Context, collectionID uuid.UUID) ([]models.CategoryCollection, error) {
	var links []models.CategoryCollection
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("collection_id = ?", collectionID).
		Order("position ASC, created_at ASC").
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

func (r *repository) DeleteCategoryLinks(ctx context.Context, collectionID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("collection_id = ?", collectionID).
		Delete(&models.CategoryCollection{}).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Collection{}).Error
}
