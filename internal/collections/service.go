package collections

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

// NewService builds a collections service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("collections repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) Create(ctx context.Context, actor rbac.Actor, input CreateInput) (*CollectionDTO, error) {
	if err := rbac.Require(actor, enums.PermissionManageCollections); err != nil {
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

	collection := &models.Collection{
		Name:        name,
		Slug:        slugValue,
		Description: input.Description,
		Image:       input.Image,
		IsActive:    true,
	}
	if input.IsActive != nil {
		collection.IsActive = *input.IsActive
	}

	if err := s.repo.Create(ctx, collection); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "collection slug already in use").
				WithDetails(map[string]string{"slug": slugValue})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating collection")
	}
	return toDTO(collection), nil
}

func (s *service) Update(ctx context.Context, actor rbac.Actor, id uuid.UUID, input UpdateInput) (*CollectionDTO, error) {
	if err := rbac.Require(actor, enums.PermissionManageCollections); err != nil {
		return nil, err
	}

	collection, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.NewValidation(map[string]string{"name": "cannot be blank"})
		}
		collection.Name = name
	}
	if input.Description != nil {
		collection.Description = input.Description
	}
	if input.Image != nil {
		collection.Image = input.Image
	}
	if input.IsActive != nil {
		collection.IsActive = *input.IsActive
	}

	switch {
	case input.Slug != nil:
		slugValue, err := s.resolveSlug(ctx, collection.Name, *input.Slug, collection.ID)
		if err != nil {
			return nil, err
		}
		collection.Slug = slugValue
	case input.Name != nil:
		slugValue, err := s.resolveSlug(ctx, collection.Name, "", collection.ID)
		if err != nil {
			return nil, err
		}
		collection.Slug = slugValue
	}

	if err := s.repo.Save(ctx, collection); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "collection slug already in use").
				WithDetails(map[string]string{"slug": collection.Slug})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating collection")
	}
	return toDTO(collection), nil
}

func (s *service) Get(ctx context.Context, actor rbac.Actor, id uuid.UUID) (*CollectionDTO, error) {
	if err := rbac.Require(actor, enums.PermissionViewCollections); err != nil {
		return nil, err
	}
	collection, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDTO(collection), nil
}

func (s *service) List(ctx context.Context, actor rbac.Actor, input ListInput) (*ListResult, error) {
	if err := rbac.Require(actor, enums.PermissionViewCollections); err != nil {
		return nil, err
	}

	cursor, err := pagination.ParseCursor(input.Page.Cursor)
	if err != nil {
		return nil, pkgerrors.NewValidation(map[string]string{"cursor": "is not a valid cursor"})
	}
	limit := pagination.NormalizeLimit(input.Page.Limit)

	rows, err := s.repo.List(ctx, pagination.LimitWithBuffer(input.Page.Limit), cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing collections")
	}

	result := &ListResult{Items: make([]CollectionDTO, 0, len(rows))}
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

// ListCategories returns the categories placed in the collection, ordered by
// pivot position.
func (s *service) ListCategories(ctx context.Context, actor rbac.Actor, id uuid.UUID) ([]CollectionCategoryDTO, error) {
	if err := rbac.Require(actor, enums.PermissionViewCollections); err != nil {
		return nil, err
	}

	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}

	links, err := s.repo.ListCategoryLinks(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing collection categories")
	}

	out := make([]CollectionCategoryDTO, 0, len(links))
	for i := range links {
		out = append(out, toCategoryDTO(&links[i]))
	}
	return out, nil
}

// Delete removes the collection together with its category placements.
// Categories themselves are untouched.
func (s *service) Delete(ctx context.Context, actor rbac.Actor, id uuid.UUID) error {
	if err := rbac.Require(actor, enums.PermissionManageCollections); err != nil {
		return err
	}

	if _, err := s.load(ctx, id); err != nil {
		return err
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.DeleteCategoryLinks(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "detaching collection categories")
		}
		if err := repo.Delete(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting collection")
		}
		return nil
	})
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Collection, error) {
	collection, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "collection not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading collection")
	}
	return collection, nil
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
		return "", pkgerrors.New(pkgerrors.CodeConflict, "collection slug already in use").
			WithDetails(map[string]string{"slug": slugValue})
	}
	return slugValue, nil
}
