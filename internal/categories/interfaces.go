package categories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smuvr/spraby/internal/rbac"
	"github.com/smuvr/spraby/pkg/db/models"
	"github.com/smuvr/spraby/pkg/pagination"
)

// Service exposes category management, including the option and collection
// assignments a category carries.
type Service interface {
	Create(ctx context.Context, actor rbac.Actor, input CreateInput) (*CategoryDTO, error)
	Update(ctx context.Context, actor rbac.Actor, id uuid.UUID, input UpdateInput) (*CategoryDTO, error)
	Get(ctx context.Context, actor rbac.Actor, id uuid.UUID) (*CategoryDTO, error)
	List(ctx context.Context, actor rbac.Actor, input ListInput) (*ListResult, error)
	Delete(ctx context.Context, actor rbac.Actor, id uuid.UUID) error

	AttachOption(ctx context.Context, actor rbac.Actor, categoryID uuid.UUID, input AttachOptionInput) error
	DetachOption(ctx context.Context, actor rbac.Actor, categoryID, optionID uuid.UUID) error
	ListOptions(ctx context.Context, actor rbac.Actor, categoryID uuid.UUID) ([]CategoryOptionDTO, error)

	AttachCollection(ctx context.Context, actor rbac.Actor, categoryID uuid.UUID, input AttachCollectionInput) error
	DetachCollection(ctx context.Context, actor rbac.Actor, categoryID, collectionID uuid.UUID) error
	ListCollections(ctx context.Context, actor rbac.Actor, categoryID uuid.UUID) ([]CategoryCollectionDTO, error)
}

// Repository defines the persistence surface for categories and their pivots.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, category *models.Category) error
	Save(ctx context.Context, category *models.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	List(ctx context.Context, limit int, cursor *pagination.Cursor) ([]models.Category, error)
	SlugTaken(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// CountProducts includes soft-deleted rows: a tombstone still pins its
	// category.
	CountProducts(ctx context.Context, categoryID uuid.UUID) (int64, error)

	OptionExists(ctx context.Context, optionID uuid.UUID) (bool, error)
	UpsertOptionLink(ctx context.Context, link *models.CategoryOption) error
	DeleteOptionLink(ctx context.Context, categoryID, optionID uuid.UUID) (int64, error)
	ListOptionLinks(ctx context.Context, categoryID uuid.UUID) ([]models.CategoryOption, error)

	CollectionExists(ctx context.Context, collectionID uuid.UUID) (bool, error)
	UpsertCollectionLink(ctx context.Context, link *models.CategoryCollection) error
	DeleteCollectionLink(ctx context.Context, categoryID, collectionID uuid.UUID) (int64, error)
	ListCollectionLinks(ctx context.Context, categoryID uuid.UUID) ([]models.CategoryCollection, error)

	DeleteAllLinks(ctx context.Context, categoryID uuid.UUID) error
}
