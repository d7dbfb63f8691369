package categories

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

// NewService builds a categories service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("categories repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) Create(ctx context.Context, actor rbac.Actor, input CreateInput) (*CategoryDTO, error) {
	if err := rbac.Require(actor, enums.PermissionManageCategories); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.NewValidation(map[string]string{"name": "is required"})
	}

	slugValue, err := s.resolveSlug(ctx, name, input.Slug, uuid.Nil)
	if err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:        name,
		Slug:        slugValue,
		Description: input.Description,
		Image:       input.Image,
		IsActive:    true,
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := s.repo.Create(ctx, category); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category slug already in use").
				WithDetails(map[string]string{"slug": slugValue})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating category")
	}
	return toDTO(category), nil
}

func (s *service) Update(ctx context.Context, actor rbac.Actor, id uuid.UUID, input UpdateInput) (*CategoryDTO, error) {
	if err := rbac.Require(actor, enums.PermissionManageCategories); err != nil {
		return nil, err
	}

	category, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.NewValidation(map[string]string{"name": "cannot be blank"})
		}
		category.Name = name
	}
	if input.Description != nil {
		category.Description = input.Description
	}
	if input.Image != nil {
		category.Image = input.Image
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	switch {
	case input.Slug != nil:
		slugValue, err := s.resolveSlug(ctx, category.Name, *input.Slug, category.ID)
		if err != nil {
			return nil, err
		}
		category.Slug = slugValue
	case input.Name != nil:
		slugValue, err := s.resolveSlug(ctx, category.Name, "", category.ID)
		if err != nil {
			return nil, err
		}
		category.Slug = slugValue
	}

	if err := s.repo.Save(ctx, category); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category slug already in use").
				WithDetails(map[string]string{"slug": category.Slug})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating category")
	}
	return toDTO(category), nil
}

func (s *service) Get(ctx context.Context, actor rbac.Actor, id uuid.UUID) (*CategoryDTO, error) {
	if err := rbac.Require(actor, enums.PermissionViewCategories); err != nil {
		return nil, err
	}
	category, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDTO(category), nil
}

func (s *service) List(ctx context.Context, actor rbac.Actor, input ListInput) (*ListResult, error) {
	if err := rbac.Require(actor, enums.PermissionViewCategories); err != nil {
		return nil, err
	}

	cursor, err := pagination.ParseCursor(input.Page.Cursor)
	if err != nil {
		return nil, pkgerrors.NewValidation(map[string]string{"cursor": "is not a valid cursor"})
	}
	limit := pagination.NormalizeLimit(input.Page.Limit)

	rows, err := s.repo.List(ctx, pagination.LimitWithBuffer(input.Page.Limit), cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing categories")
	}

	result := &ListResult{Items: make([]CategoryDTO, 0, len(rows))}
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

// Delete removes a category and its pivot rows. It is rejected while any
// product, soft-deleted ones included, still references the category.
func (s *service) Delete(ctx context.Context, actor rbac.Actor, id uuid.UUID) error {
	if err := rbac.Require(actor, enums.PermissionManageCategories); err != nil {
		return err
	}

	if _, err := s.load(ctx, id); err != nil {
		return err
	}

	referenced, err := s.repo.CountProducts(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "counting category products")
	}
	if referenced > 0 {
		return pkgerrors.New(pkgerrors.CodeReferenced, "category is referenced by products").
			WithDetails(map[string]int64{"products": referenced})
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.DeleteAllLinks(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "detaching category links")
		}
		if err := repo.Delete(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting category")
		}
		return nil
	})
}

// AttachOption assigns an option to the category. Attaching an option that is
// already assigned updates is_required and position instead of failing.
func (s *service) AttachOption(ctx context.Context, actor rbac.Actor, categoryID uuid.UUID, input AttachOptionInput) error {
	if err := rbac.Require(actor, enums.PermissionManageCategories); err != nil {
		return err
	}

	if _, err := s.load(ctx, categoryID); err != nil {
		return err
	}
	exists, err := s.repo.OptionExists(ctx, input.OptionID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking option")
	}
	if !exists {
		return pkgerrors.NewValidation(map[string]string{"option_id": "unknown option"})
	}
	if input.Position < 0 {
		return pkgerrors.NewValidation(map[string]string{"position": "must not be negative"})
	}

	link := &models.CategoryOption{
		CategoryID: categoryID,
		OptionID:   input.OptionID,
		IsRequired: input.IsRequired,
		Position:   input.Position,
	}
	if err := s.repo.UpsertOptionLink(ctx, link); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "attaching option")
	}
	return nil
}

func (s *service) DetachOption(ctx context.Context, actor rbac.Actor, categoryID, optionID uuid.UUID) error {
	if err := rbac.Require(actor, enums.PermissionManageCategories); err != nil {
		return err
	}

	affected, err := s.repo.DeleteOptionLink(ctx, categoryID, optionID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "detaching option")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "option is not attached to the category")
	}
	return nil
}

// ListOptions returns the category's option assignments ordered by position.
func (s *service) ListOptions(ctx context.Context, actor rbac.Actor, categoryID uuid.UUID) ([]CategoryOptionDTO, error) {
	if err := rbac.Require(actor, enums.PermissionViewCategories); err != nil {
		return nil, err
	}

	if _, err := s.load(ctx, categoryID); err != nil {
		return nil, err
	}

	links, err := s.repo.ListOptionLinks(ctx, categoryID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing category options")
	}

	out := make([]CategoryOptionDTO, 0, len(links))
	for i := range links {
		out = append(out, toOptionDTO(&links[i]))
	}
	return out, nil
}

// AttachCollection places the category into a collection. Re-attaching moves
// the category to the new position.
func (s *service) AttachCollection(ctx context.Context, actor rbac.Actor, categoryID uuid.UUID, input AttachCollectionInput) error {
	if err := rbac.Require(actor, enums.PermissionManageCategories); err != nil {
		return err
	}

	if _, err := s.load(ctx, categoryID); err != nil {
		return err
	}
	exists, err := s.repo.CollectionExists(ctx, input.CollectionID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking collection")
	}
	if !exists {
		return pkgerrors.NewValidation(map[string]string{"collection_id": "unknown collection"})
	}
	if input.Position < 0 {
		return pkgerrors.NewValidation(map[string]string{"position": "must not be negative"})
	}

	link := &models.CategoryCollection{
		CategoryID:   categoryID,
		CollectionID: input.CollectionID,
		Position:     input.Position,
	}
	if err := s.repo.UpsertCollectionLink(ctx, link); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "attaching collection")
	}
	return nil
}

func (s *service) DetachCollection(ctx context.Context, actor rbac.Actor, categoryID, collectionID uuid.UUID) error {
	if err := rbac.Require(actor, enums.PermissionManageCategories); err != nil {
		return err
	}

	affected, err := s.repo.DeleteCollectionLink(ctx, categoryID, collectionID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "detaching collection")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "category is not placed in the collection")
	}
	return nil
}

// ListCollections returns the collections the category is placed in, ordered
// by position.
func (s *service) ListCollections(ctx context.Context, actor rbac.Actor, categoryID uuid.UUID) ([]CategoryCollectionDTO, error) {
	if err := rbac.Require(actor, enums.PermissionViewCategories); err != nil {
		return nil, err
	}

	if _, err := s.load(ctx, categoryID); err != nil {
		return nil, err
	}

	links, err := s.repo.ListCollectionLinks(ctx, categoryID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing category collections")
	}

	out := make([]CategoryCollectionDTO, 0, len(links))
	for i := range links {
		out = append(out, toCollectionDTO(&links[i]))
	}
	return out, nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading category")
	}
	return category, nil
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
		return "", pkgerrors.New(pkgerrors.CodeConflict, "category slug already in use").
			WithDetails(map[string]string{"slug": slugValue})
	}
	return slugValue, nil
}
