package products

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smuvr/spraby/internal/rbac"
	"github.com/smuvr/spraby/pkg/db/models"
)

// Service exposes product listings: CRUD with soft deletion, the image
// gallery, and derived availability.
type Service interface {
	Create(ctx context.Context, actor rbac.Actor, input CreateInput) (*ProductDTO, error)
	Update(ctx context.Context, actor rbac.Actor, id uuid.UUID, input UpdateInput) (*ProductDTO, error)
	Get(ctx context.Context, actor rbac.Actor, id uuid.UUID) (*ProductDTO, error)
	List(ctx context.Context, actor rbac.Actor, input ListInput) (*ListResult, error)
	Delete(ctx context.Context, actor rbac.Actor, id uuid.UUID) error
	Restore(ctx context.Context, actor rbac.Actor, id uuid.UUID) (*ProductDTO, error)
	ForceDelete(ctx context.Context, actor rbac.Actor, id uuid.UUID) error

	AttachImage(ctx context.Context, actor rbac.Actor, productID uuid.UUID, input AttachImageInput) error
	DetachImage(ctx context.Context, actor rbac.Actor, productID, imageID uuid.UUID) error
	SetPrimaryImage(ctx context.Context, actor rbac.Actor, productID, imageID uuid.UUID) error
	ListImages(ctx context.Context, actor rbac.Actor, productID uuid.UUID) ([]ProductImageDTO, error)
	PrimaryImage(ctx context.Context, actor rbac.Actor, productID uuid.UUID) (*ProductImageDTO, error)
}

// Repository defines the persistence surface for products and their image
// links.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, product *models.Product) error
	Save(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindByIDUnscoped(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, filter ListFilter) ([]models.Product, error)
	// SlugTaken searches soft-deleted rows too: the unique index on slug does
	// not care about tombstones.
	SlugTaken(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
	HardDelete(ctx context.Context, id uuid.UUID) error

	BrandExists(ctx context.Context, brandID uuid.UUID) (bool, error)
	CategoryExists(ctx context.Context, categoryID uuid.UUID) (bool, error)
	BrandCategoryIDs(ctx context.Context, brandID uuid.UUID) ([]uuid.UUID, error)

	DeleteVariantValues(ctx context.Context, productID uuid.UUID) error
	DeleteVariants(ctx context.Context, productID uuid.UUID) error
	DeleteImageLinks(ctx context.Context, productID uuid.UUID) error

	AvailableProductIDs(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]bool, error)

	ImageExists(ctx context.Context, imageID uuid.UUID) (bool, error)
	VariantBelongsToProduct(ctx context.Context, variantID, productID uuid.UUID) (bool, error)
	UpsertImageLink(ctx context.Context, link *models.ProductImage) error
	FindImageLink(ctx context.Context, productID, imageID uuid.UUID) (*models.ProductImage, error)
	DeleteImageLink(ctx context.Context, productID, imageID uuid.UUID) (int64, error)
	ListImageLinks(ctx context.Context, productID uuid.UUID) ([]models.ProductImage, error)
	FindPrimaryLink(ctx context.Context, productID uuid.UUID) (*models.ProductImage, error)
	// DemotePrimary clears is_primary for every link of the product within one
	// scope: gallery links when variantID is nil, that variant's links
	// otherwise.
	DemotePrimary(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID) error
	MarkPrimary(ctx context.Context, linkID uuid.UUID) error
}
