package collections

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smuvr/spraby/internal/rbac"
	"github.com/smuvr/spraby/pkg/db/models"
	"github.com/smuvr/spraby/pkg/pagination"
)

// Service exposes merchandising collection management.
type Service interface {
	Create(ctx context.Context, actor rbac.Actor, input CreateInput) (*CollectionDTO, error)
	Update(ctx context.Context, actor rbac.Actor, id uuid.UUID, input UpdateInput) (*CollectionDTO, error)
	Get(ctx context.Context, actor rbac.Actor, id uuid.UUID) (*CollectionDTO, error)
	List(ctx context.Context, actor rbac.Actor, input ListInput) (*ListResult, error)
	ListCategories(ctx context.Context, actor rbac.Actor, id uuid.UUID) ([]CollectionCategoryDTO, error)
	Delete(ctx context.Context, actor rbac.Actor, id uuid.UUID) error
}

// Repository defines the persistence surface for collections.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, collection *models.Collection) error
	Save(ctx context.Context, collection *models.Collection) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Collection, error)
	List(ctx context.Context, limit int, cursor *pagination.Cursor) ([]models.Collection, error)
	SlugTaken(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
	ListCategoryLinks(ctx context.Context, collectionID uuid.UUID) ([]models.CategoryCollection, error)
	DeleteCategoryLinks(ctx context.Context, collectionID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}
