package images

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smuvr/spraby/internal/rbac"
	"github.com/smuvr/spraby/pkg/db/models"
	"github.com/smuvr/spraby/pkg/pagination"
)

// Service exposes image asset management. Upload and storage happen in a
// separate pipeline; this service tracks the stored path and its metadata.
type Service interface {
	Create(ctx context.Context, actor rbac.Actor, input CreateInput) (*ImageDTO, error)
	Update(ctx context.Context, actor rbac.Actor, id uuid.UUID, input UpdateInput) (*ImageDTO, error)
	Get(ctx context.Context, actor rbac.Actor, id uuid.UUID) (*ImageDTO, error)
	List(ctx context.Context, actor rbac.Actor, input ListInput) (*ListResult, error)
	Delete(ctx context.Context, actor rbac.Actor, id uuid.UUID) error
}

// Repository defines the persistence surface for image assets.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, image *models.Image) error
	Save(ctx context.Context, image *models.Image) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Image, error)
	List(ctx context.Context, limit int, cursor *pagination.Cursor) ([]models.Image, error)
	DeleteProductLinks(ctx context.Context, imageID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}
