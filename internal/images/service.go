package images

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smuvr/spraby/internal/rbac"
	"github.com/smuvr/spraby/pkg/db/models"
	"github.com/smuvr/spraby/pkg/enums"
	pkgerrors "github.com/smuvr/spraby/pkg/errors"
	"github.com/smuvr/spraby/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds an images service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("images repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) Create(ctx context.Context, actor rbac.Actor, input CreateInput) (*ImageDTO, error) {
	if err := rbac.Require(actor, enums.PermissionEditProduct); err != nil {
		return nil, err
	}

	path := strings.TrimSpace(input.Path)
	if path == "" {
		return nil, pkgerrors.NewValidation(map[string]string{"path": "is required"})
	}

	image := &models.Image{
		Path:        path,
		Alt:         input.Alt,
		Description: input.Description,
	}
	if err := s.repo.Create(ctx, image); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating image")
	}
	return toDTO(image), nil
}

func (s *service) Update(ctx context.Context, actor rbac.Actor, id uuid.UUID, input UpdateInput) (*ImageDTO, error) {
	if err := rbac.Require(actor, enums.PermissionEditProduct); err != nil {
		return nil, err
	}

	image, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Alt != nil {
		image.Alt = input.Alt
	}
	if input.Description != nil {
		image.Description = input.Description
	}

	if err := s.repo.Save(ctx, image); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating image")
	}
	return toDTO(image), nil
}

func (s *service) Get(ctx context.Context, actor rbac.Actor, id uuid.UUID) (*ImageDTO, error) {
	if err := rbac.Require(actor, enums.PermissionViewProducts); err != nil {
		return nil, err
	}
	image, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDTO(image), nil
}

func (s *service) List(ctx context.Context, actor rbac.Actor, input ListInput) (*ListResult, error) {
	if err := rbac.Require(actor, enums.PermissionViewProducts); err != nil {
		return nil, err
	}

	cursor, err := pagination.ParseCursor(input.Page.Cursor)
	if err != nil {
		return nil, pkgerrors.NewValidation(map[string]string{"cursor": "is not a valid cursor"})
	}
	limit := pagination.NormalizeLimit(input.Page.Limit)

	rows, err := s.repo.List(ctx, pagination.LimitWithBuffer(input.Page.Limit), cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing images")
	}

	result := &ListResult{Items: make([]ImageDTO, 0, len(rows))}
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

// Delete removes the image asset and every product link pointing at it.
func (s *service) Delete(ctx context.Context, actor rbac.Actor, id uuid.UUID) error {
	if err := rbac.Require(actor, enums.PermissionEditProduct); err != nil {
		return err
	}

	if _, err := s.load(ctx, id); err != nil {
		return err
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.DeleteProductLinks(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "detaching image from products")
		}
		if err := repo.Delete(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting image")
		}
		return nil
	})
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Image, error) {
	image, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "image not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading image")
	}
	return image, nil
}
