package brands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smuvr/spraby/internal/rbac"
	"github.com/smuvr/spraby/pkg/db"
	"github.com/smuvr/spraby/pkg/db/models"
	"github.com/smuvr/spraby/pkg/enums"
	pkgerrors "github.com/smuvr/spraby/pkg/errors"
	"github.com/smuvr/spraby/pkg/logger"
	"github.com/smuvr/spraby/pkg/pagination"
	"github.com/smuvr/spraby/pkg/slug"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo Repository
	tx   txRunner
	logg *logger.Logger
}

// NewService builds a brands service with the required dependencies.
func NewService(repo Repository, tx txRunner, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("brands repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx, logg: logg}, nil
}

func (s *service) Create(ctx context.Context, actor rbac.Actor, input CreateInput) (*BrandDTO, error) {
	if err := rbac.Require(actor, enums.PermissionCreateBrand); err != nil {
		return nil, err
	}

	ownerID := actor.UserID
	if input.UserID != nil {
		ownerID = *input.UserID
	}
	if ownerID == uuid.Nil {
		return nil, pkgerrors.NewValidation(map[string]string{"user_id": "is required"})
	}

	exists, err := s.repo.UserExists(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking brand owner")
	}
	if !exists {
		return nil, pkgerrors.NewValidation(map[string]string{"user_id": "unknown user"})
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.NewValidation(map[string]string{"name": "is required"})
	}

	slugValue, err := s.resolveSlug(ctx, name, input.Slug, uuid.Nil)
	if err != nil {
		return nil, err
	}

	brand := &models.Brand{
		UserID:      ownerID,
		Name:        name,
		Slug:        slugValue,
		Description: input.Description,
		Logo:        input.Logo,
		IsActive:    true,
	}
	if input.IsActive != nil {
		brand.IsActive = *input.IsActive
	}

	if err := s.repo.Create(ctx, brand); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "brand slug already in use").
				WithDetails(map[string]string{"slug": slugValue})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating brand")
	}
	return toDTO(brand), nil
}

func (s *service) Update(ctx context.Context, actor rbac.Actor, id uuid.UUID, input UpdateInput) (*BrandDTO, error) {
	if err := rbac.Require(actor, enums.PermissionEditBrand); err != nil {
		return nil, err
	}

	brand, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.NewValidation(map[string]string{"name": "cannot be blank"})
		}
		brand.Name = name
	}
	if input.Description != nil {
		brand.Description = input.Description
	}
	if input.Logo != nil {
		brand.Logo = input.Logo
	}
	if input.IsActive != nil {
		brand.IsActive = *input.IsActive
	}

	switch {
	case input.Slug != nil:
		slugValue, err := s.resolveSlug(ctx, brand.Name, *input.Slug, brand.ID)
		if err != nil {
			return nil, err
		}
		brand.Slug = slugValue
	case input.Name != nil:
		slugValue, err := s.resolveSlug(ctx, brand.Name, "", brand.ID)
		if err != nil {
			return nil, err
		}
		brand.Slug = slugValue
	}

	if err := s.repo.Save(ctx, brand); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "brand slug already in use").
				WithDetails(map[string]string{"slug": brand.Slug})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating brand")
	}
	return toDTO(brand), nil
}

func (s *service) Get(ctx context.Context, actor rbac.Actor, id uuid.UUID) (*BrandDTO, error) {
	if err := rbac.Require(actor, enums.PermissionViewBrands); err != nil {
		return nil, err
	}
	brand, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDTO(brand), nil
}

func (s *service) List(ctx context.Context, actor rbac.Actor, input ListInput) (*ListResult, error) {
	if err := rbac.Require(actor, enums.PermissionViewBrands); err != nil {
		return nil, err
	}

	cursor, err := pagination.ParseCursor(input.Page.Cursor)
	if err != nil {
		return nil, pkgerrors.NewValidation(map[string]string{"cursor": "is not a valid cursor"})
	}
	limit := pagination.NormalizeLimit(input.Page.Limit)

	rows, err := s.repo.List(ctx, ListFilter{
		Limit:      pagination.LimitWithBuffer(input.Page.Limit),
		Cursor:     cursor,
		UserID:     input.UserID,
		ActiveOnly: input.ActiveOnly,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing brands")
	}

	result := &ListResult{Items: make([]BrandDTO, 0, len(rows))}
	for i := range rows {
		if i == limit {
			last := rows[limit-1]
			result.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
			break
		}
		result.Items = append(result.Items, *toDTO(&rows[i]))
	}
	return result, nil
}

// Delete removes the brand and cascades over its catalog in one transaction:
// products are soft-deleted and keep their tombstones, while their variants,
// variant values, and image links are removed outright.
func (s *service) Delete(ctx context.Context, actor rbac.Actor, id uuid.UUID) error {
	if err := rbac.Require(actor, enums.PermissionDeleteBrand); err != nil {
		return err
	}

	if _, err := s.load(ctx, id); err != nil {
		return err
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		productIDs, err := repo.ListProductIDs(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing brand products")
		}
		if err := repo.DeleteVariantValuesByProducts(ctx, productIDs); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting variant values")
		}
		if err := repo.DeleteVariantsByProducts(ctx, productIDs); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting variants")
		}
		if err := repo.DeleteProductImagesByProducts(ctx, productIDs); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting product image links")
		}
		if err := repo.SoftDeleteProducts(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "soft deleting products")
		}
		if err := repo.DeleteCategoryLinks(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "detaching brand categories")
		}
		if err := repo.Delete(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting brand")
		}
		return nil
	})
	if err != nil {
		return err
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "brand_id", id.String()), "brand deleted with product cascade")
	}
	return nil
}

// AttachCategory grants the brand listing rights in the category. Attaching
// an already granted category is a no-op.
func (s *service) AttachCategory(ctx context.Context, actor rbac.Actor, brandID, categoryID uuid.UUID) error {
	if err := rbac.Require(actor, enums.PermissionEditBrand); err != nil {
		return err
	}

	if _, err := s.load(ctx, brandID); err != nil {
		return err
	}
	exists, err := s.repo.CategoryExists(ctx, categoryID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking category")
	}
	if !exists {
		return pkgerrors.NewValidation(map[string]string{"category_id": "unknown category"})
	}

	link := &models.BrandCategory{BrandID: brandID, CategoryID: categoryID}
	if err := s.repo.UpsertCategoryLink(ctx, link); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "attaching category")
	}
	return nil
}

func (s *service) DetachCategory(ctx context.Context, actor rbac.Actor, brandID, categoryID uuid.UUID) error {
	if err := rbac.Require(actor, enums.PermissionEditBrand); err != nil {
		return err
	}

	affected, err := s.repo.DeleteCategoryLink(ctx, brandID, categoryID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "detaching category")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "category is not attached to the brand")
	}
	return nil
}

// ListCategories returns the categories the brand may list into.
func (s *service) ListCategories(ctx context.Context, actor rbac.Actor, brandID uuid.UUID) ([]BrandCategoryDTO, error) {
	if err := rbac.Require(actor, enums.PermissionViewBrands); err != nil {
		return nil, err
	}

	if _, err := s.load(ctx, brandID); err != nil {
		return nil, err
	}

	links, err := s.repo.ListCategoryLinks(ctx, brandID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing brand categories")
	}

	out := make([]BrandCategoryDTO, 0, len(links))
	for i := range links {
		out = append(out, toCategoryDTO(&links[i]))
	}
	return out, nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Brand, error) {
	brand, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "brand not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading brand")
	}
	return brand, nil
}

func (s *service) resolveSlug(ctx context.Context, name, provided string, excludeID uuid.UUID) (string, error) {
	source := provided
	if strings.TrimSpace(source) == "" {
		source = name
	}
	slugValue := slug.Make(source)
	if slugValue == "" {
		return "", pkgerrors.NewValidation(map[string]string{"slug": "cannot be derived from the given value"})
	}

	taken, err := s.repo.SlugTaken(ctx, slugValue, excludeID)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking slug uniqueness")
	}
	if taken {
		return "", pkgerrors.New(pkgerrors.CodeConflict, "brand slug already in use").
			WithDetails(map[string]string{"slug": slugValue})
	}
	return slugValue, nil
}
