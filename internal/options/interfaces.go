package options

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smuvr/spraby/internal/rbac"
	"github.com/smuvr/spraby/pkg/db/models"
	"github.com/smuvr/spraby/pkg/pagination"
)

// Service exposes option definition management.
type Service interface {
	Create(ctx context.Context, actor rbac.Actor, input CreateInput) (*OptionDTO, error)
	Update(ctx context.Context, actor rbac.Actor, id uuid.UUID, input UpdateInput) (*OptionDTO, error)
	Get(ctx context.Context, actor rbac.Actor, id uuid.UUID) (*OptionDTO, error)
	List(ctx context.Context, actor rbac.Actor, input ListInput) (*ListResult, error)
	Delete(ctx context.Context, actor rbac.Actor, id uuid.UUID) error
}

// Repository defines the persistence surface for options.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, option *models.Option) error
	Save(ctx context.Context, option *models.Option) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Option, error)
	List(ctx context.Context, limit int, cursor *pagination.Cursor) ([]models.Option, error)
	SlugTaken(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
	CountVariantValues(ctx context.Context, optionID uuid.UUID) (int64, error)
	DeleteCategoryLinks(ctx context.Context, optionID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}
