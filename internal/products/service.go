package products

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
	"github.com/smuvr/spraby/pkg/pagination"
	"github.com/smuvr/spraby/pkg/slug"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds a products service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) Create(ctx context.Context, actor rbac.Actor, input CreateInput) (*ProductDTO, error) {
	if err := rbac.Require(actor, enums.PermissionCreateProduct); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.NewValidation(map[string]string{"name": "is required"})
	}

	exists, err := s.repo.BrandExists(ctx, input.BrandID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking brand")
	}
	if !exists {
		return nil, pkgerrors.NewValidation(map[string]string{"brand_id": "unknown brand"})
	}

	if err := s.checkCategory(ctx, input.BrandID, input.CategoryID); err != nil {
		return nil, err
	}

	slugValue, err := s.resolveSlug(ctx, name, input.Slug, uuid.Nil)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		BrandID:          input.BrandID,
		CategoryID:       input.CategoryID,
		Name:             name,
		Slug:             slugValue,
		Description:      input.Description,
		ShortDescription: input.ShortDescription,
		IsActive:         true,
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.repo.Create(ctx, product); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product slug already in use").
				WithDetails(map[string]string{"slug": slugValue})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating product")
	}
	return toDTO(product, false), nil
}

func (s *service) Update(ctx context.Context, actor rbac.Actor, id uuid.UUID, input UpdateInput) (*ProductDTO, error) {
	if err := rbac.Require(actor, enums.PermissionEditProduct); err != nil {
		return nil, err
	}

	product, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.NewValidation(map[string]string{"name": "cannot be blank"})
		}
		product.Name = name
	}
	if input.CategoryID != nil && *input.CategoryID != product.CategoryID {
		if err := s.checkCategory(ctx, product.BrandID, *input.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = *input.CategoryID
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.ShortDescription != nil {
		product.ShortDescription = input.ShortDescription
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	switch {
	case input.Slug != nil:
		slugValue, err := s.resolveSlug(ctx, product.Name, *input.Slug, product.ID)
		if err != nil {
			return nil, err
		}
		product.Slug = slugValue
	case input.Name != nil:
		slugValue, err := s.resolveSlug(ctx, product.Name, "", product.ID)
		if err != nil {
			return nil, err
		}
		product.Slug = slugValue
	}

	if err := s.repo.Save(ctx, product); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product slug already in use").
				WithDetails(map[string]string{"slug": product.Slug})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating product")
	}
	return s.withAvailability(ctx, product)
}

func (s *service) Get(ctx context.Context, actor rbac.Actor, id uuid.UUID) (*ProductDTO, error) {
	if err := rbac.Require(actor, enums.PermissionViewProducts); err != nil {
		return nil, err
	}
	product, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withAvailability(ctx, product)
}

func (s *service) List(ctx context.Context, actor rbac.Actor, input ListInput) (*ListResult, error) {
	if err := rbac.Require(actor, enums.PermissionViewProducts); err != nil {
		return nil, err
	}
	if input.TrashedOnly {
		// trashed listings exist for restore, which is delete-level access
		if err := rbac.Require(actor, enums.PermissionDeleteProduct); err != nil {
			return nil, err
		}
	}

	cursor, err := pagination.ParseCursor(input.Page.Cursor)
	if err != nil {
		return nil, pkgerrors.NewValidation(map[string]string{"cursor": "is not a valid cursor"})
	}
	limit := pagination.NormalizeLimit(input.Page.Limit)

	rows, err := s.repo.List(ctx, ListFilter{
		Limit:         pagination.LimitWithBuffer(input.Page.Limit),
		Cursor:        cursor,
		BrandID:       input.BrandID,
		CategoryID:    input.CategoryID,
		ActiveOnly:    input.ActiveOnly,
		AvailableOnly: input.AvailableOnly,
		TrashedOnly:   input.TrashedOnly,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing products")
	}

	pageEnd := len(rows)
	if pageEnd > limit {
		pageEnd = limit
	}
	ids := make([]uuid.UUID, 0, pageEnd)
	for i := 0; i < pageEnd; i++ {
		ids = append(ids, rows[i].ID)
	}
	available, err := s.repo.AvailableProductIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolving availability")
	}

	result := &ListResult{Items: make([]ProductDTO, 0, pageEnd)}
	for i := 0; i < pageEnd; i++ {
		result.Items = append(result.Items, *toDTO(&rows[i], available[rows[i].ID]))
	}
	if len(rows) > limit {
		last := rows[limit-1]
		result.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return result, nil
}

// Delete soft-deletes the product. Variants, values, and image links stay in
// place so a restore brings the listing back whole.
func (s *service) Delete(ctx context.Context, actor rbac.Actor, id uuid.UUID) error {
	if err := rbac.Require(actor, enums.PermissionDeleteProduct); err != nil {
		return err
	}

	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting product")
	}
	return nil
}

// Restore clears the tombstone on a soft-deleted product.
func (s *service) Restore(ctx context.Context, actor rbac.Actor, id uuid.UUID) (*ProductDTO, error) {
	if err := rbac.Require(actor, enums.PermissionDeleteProduct); err != nil {
		return nil, err
	}

	product, err := s.repo.FindByIDUnscoped(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}
	if !product.DeletedAt.Valid {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "product is not deleted")
	}

	if err := s.repo.Restore(ctx, id); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "restoring product")
	}
	product.DeletedAt = gorm.DeletedAt{}
	return s.withAvailability(ctx, product)
}

// ForceDelete removes the product row and everything hanging off it. Gone
// means gone: no tombstone survives this one.
func (s *service) ForceDelete(ctx context.Context, actor rbac.Actor, id uuid.UUID) error {
	if err := rbac.Require(actor, enums.PermissionDeleteProduct); err != nil {
		return err
	}

	if _, err := s.repo.FindByIDUnscoped(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.DeleteVariantValues(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting variant values")
		}
		if err := repo.DeleteVariants(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting variants")
		}
		if err := repo.DeleteImageLinks(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting image links")
		}
		if err := repo.HardDelete(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting product")
		}
		return nil
	})
}

// AttachImage links an image to the product, optionally scoped to one
// variant. Re-attaching updates the link in place; a primary attach demotes
// the previous primary in the same scope transactionally.
func (s *service) AttachImage(ctx context.Context, actor rbac.Actor, productID uuid.UUID, input AttachImageInput) error {
	if err := rbac.Require(actor, enums.PermissionEditProduct); err != nil {
		return err
	}

	if _, err := s.load(ctx, productID); err != nil {
		return err
	}
	exists, err := s.repo.ImageExists(ctx, input.ImageID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking image")
	}
	if !exists {
		return pkgerrors.NewValidation(map[string]string{"image_id": "unknown image"})
	}
	if input.VariantID != nil {
		owned, err := s.repo.VariantBelongsToProduct(ctx, *input.VariantID, productID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking variant")
		}
		if !owned {
			return pkgerrors.NewValidation(map[string]string{"variant_id": "variant does not belong to the product"})
		}
	}
	if input.Position < 0 {
		return pkgerrors.NewValidation(map[string]string{"position": "must not be negative"})
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if input.IsPrimary {
			if err := repo.DemotePrimary(ctx, productID, input.VariantID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "demoting primary image")
			}
		}
		link := &models.ProductImage{
			ProductID: productID,
			ImageID:   input.ImageID,
			VariantID: input.VariantID,
			Position:  input.Position,
			IsPrimary: input.IsPrimary,
		}
		if err := repo.UpsertImageLink(ctx, link); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "attaching image")
		}
		return nil
	})
}

func (s *service) DetachImage(ctx context.Context, actor rbac.Actor, productID, imageID uuid.UUID) error {
	if err := rbac.Require(actor, enums.PermissionEditProduct); err != nil {
		return err
	}

	affected, err := s.repo.DeleteImageLink(ctx, productID, imageID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "detaching image")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "image is not attached to the product")
	}
	return nil
}

// SetPrimaryImage promotes an attached image to primary within its scope,
// demoting the previous primary in the same transaction.
func (s *service) SetPrimaryImage(ctx context.Context, actor rbac.Actor, productID, imageID uuid.UUID) error {
	if err := rbac.Require(actor, enums.PermissionEditProduct); err != nil {
		return err
	}

	link, err := s.repo.FindImageLink(ctx, productID, imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "image is not attached to the product")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading image link")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.DemotePrimary(ctx, productID, link.VariantID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "demoting primary image")
		}
		if err := repo.MarkPrimary(ctx, link.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marking primary image")
		}
		return nil
	})
}

// ListImages returns the product's image links in gallery order.
func (s *service) ListImages(ctx context.Context, actor rbac.Actor, productID uuid.UUID) ([]ProductImageDTO, error) {
	if err := rbac.Require(actor, enums.PermissionViewProducts); err != nil {
		return nil, err
	}

	if _, err := s.load(ctx, productID); err != nil {
		return nil, err
	}

	links, err := s.repo.ListImageLinks(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing product images")
	}

	out := make([]ProductImageDTO, 0, len(links))
	for i := range links {
		out = append(out, toImageDTO(&links[i]))
	}
	return out, nil
}

// PrimaryImage returns the product-level hero image.
func (s *service) PrimaryImage(ctx context.Context, actor rbac.Actor, productID uuid.UUID) (*ProductImageDTO, error) {
	if err := rbac.Require(actor, enums.PermissionViewProducts); err != nil {
		return nil, err
	}

	if _, err := s.load(ctx, productID); err != nil {
		return nil, err
	}

	link, err := s.repo.FindPrimaryLink(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product has no primary image")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading primary image")
	}
	dto := toImageDTO(link)
	return &dto, nil
}

func (s *service) checkCategory(ctx context.Context, brandID, categoryID uuid.UUID) error {
	exists, err := s.repo.CategoryExists(ctx, categoryID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking category")
	}
	if !exists {
		return pkgerrors.NewValidation(map[string]string{"category_id": "unknown category"})
	}

	// a brand with category grants may only list inside them; a brand with no
	// grants is unrestricted
	granted, err := s.repo.BrandCategoryIDs(ctx, brandID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking brand categories")
	}
	if len(granted) == 0 {
		return nil
	}
	for _, id := range granted {
		if id == categoryID {
			return nil
		}
	}
	return pkgerrors.NewValidation(map[string]string{"category_id": "brand may not list into this category"})
}

func (s *service) withAvailability(ctx context.Context, product *models.Product) (*ProductDTO, error) {
	available, err := s.repo.AvailableProductIDs(ctx, []uuid.UUID{product.ID})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolving availability")
	}
	return toDTO(product, available[product.ID]), nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}
	return product, nil
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
		return "", pkgerrors.New(pkgerrors.CodeConflict, "product slug already in use").
			WithDetails(map[string]string{"slug": slugValue})
	}
	return slugValue, nil
}
