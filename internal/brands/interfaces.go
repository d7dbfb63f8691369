package brands

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smuvr/spraby/internal/rbac"
	"github.com/smuvr/spraby/pkg/db/models"
)

// Service exposes brand management. Brand deletion cascades to the brand's
// products in application code: products are soft-deleted so their tombstones
// outlive the brand row, while variants and image links are removed for good.
type Service interface {
	Create(ctx context.Context, actor rbac.Actor, input CreateInput) (*BrandDTO, error)
	Update(ctx context.Context, actor rbac.Actor, id uuid.UUID, input UpdateInput) (*BrandDTO, error)
	Get(ctx context.Context, actor rbac.Actor, id uuid.UUID) (*BrandDTO, error)
	List(ctx context.Context, actor rbac.Actor, input ListInput) (*ListResult, error)
	Delete(ctx context.Context, actor rbac.Actor, id uuid.UUID) error

	AttachCategory(ctx context.Context, actor rbac.Actor, brandID, categoryID uuid.UUID) error
	DetachCategory(ctx context.Context, actor rbac.Actor, brandID, categoryID uuid.UUID) error
	ListCategories(ctx context.Context, actor rbac.Actor, brandID uuid.UUID) ([]BrandCategoryDTO, error)
}

// Repository defines the persistence surface for brands, including the bulk
// statements the delete cascade runs.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, brand *models.Brand) error
	Save(ctx context.Context, brand *models.Brand) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Brand, error)
	List(ctx context.Context, filter ListFilter) ([]models.Brand, error)
	SlugTaken(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error

	UserExists(ctx context.Context, userID uuid.UUID) (bool, error)
	CategoryExists(ctx context.Context, categoryID uuid.UUID) (bool, error)
	UpsertCategoryLink(ctx context.Context, link *models.BrandCategory) error
	DeleteCategoryLink(ctx context.Context, brandID, categoryID uuid.UUID) (int64, error)
	ListCategoryLinks(ctx context.Context, brandID uuid.UUID) ([]models.BrandCategory, error)
	DeleteCategoryLinks(ctx context.Context, brandID uuid.UUID) error

	ListProductIDs(ctx context.Context, brandID uuid.UUID) ([]uuid.UUID, error)
	DeleteVariantValuesByProducts(ctx context.Context, productIDs []uuid.UUID) error
	DeleteVariantsByProducts(ctx context.Context, productIDs []uuid.UUID) error
	DeleteProductImagesByProducts(ctx context.Context, productIDs []uuid.UUID) error
	SoftDeleteProducts(ctx context.Context, brandID uuid.UUID) error
}
