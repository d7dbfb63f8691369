package options

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

// NewService builds an options service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("options repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) Create(ctx context.Context, actor rbac.Actor, input CreateInput) (*OptionDTO, error) {
	if err := rbac.Require(actor, enums.PermissionManageOptions); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.NewValidation(map[string]string{"name": "is required"})
	}

	optionType := input.Type
	if optionType == "" {
		optionType = enums.OptionTypeSelect
	}
	if !optionType.IsValid() {
		return nil, pkgerrors.NewValidation(map[string]string{"type": "must be one of select, color, text"})
	}

	slugValue, err := s.resolveSlug(ctx, name, input.Slug, uuid.Nil)
	if err != nil {
		return nil, err
	}

	internalName := strings.TrimSpace(input.InternalName)
	if internalName == "" {
		internalName = slugValue
	}

	option := &models.Option{
		Name:         name,
		InternalName: internalName,
		Slug:         slugValue,
		Type:         optionType,
	}
	if err := s.repo.Create(ctx, option); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "option slug already in use").
				WithDetails(map[string]string{"slug": slugValue})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating option")
	}
	return toDTO(option), nil
}

func (s *service) Update(ctx context.Context, actor rbac.Actor, id uuid.UUID, input UpdateInput) (*OptionDTO, error) {
	if err := rbac.Require(actor, enums.PermissionManageOptions); err != nil {
		return nil, err
	}

	option, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.NewValidation(map[string]string{"name": "cannot be blank"})
		}
		option.Name = name
	}
	if input.Type != nil {
		if !input.Type.IsValid() {
			return nil, pkgerrors.NewValidation(map[string]string{"type": "must be one of select, color, text"})
		}
		option.Type = *input.Type
	}
	if input.InternalName != nil {
		internalName := strings.TrimSpace(*input.InternalName)
		if internalName == "" {
			return nil, pkgerrors.NewValidation(map[string]string{"internal_name": "cannot be blank"})
		}
		option.InternalName = internalName
	}

	switch {
	case input.Slug != nil:
		slugValue, err := s.resolveSlug(ctx, option.Name, *input.Slug, option.ID)
		if err != nil {
			return nil, err
		}
		option.Slug = slugValue
	case input.Name != nil:
		slugValue, err := s.resolveSlug(ctx, option.Name, "", option.ID)
		if err != nil {
			return nil, err
		}
		option.Slug = slugValue
	}

	if err := s.repo.Save(ctx, option); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "option slug already in use").
				WithDetails(map[string]string{"slug": option.Slug})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating option")
	}
	return toDTO(option), nil
}

func (s *service) Get(ctx context.Context, actor rbac.Actor, id uuid.UUID) (*OptionDTO, error) {
	if err := rbac.Require(actor, enums.PermissionViewOptions); err != nil {
		return nil, err
	}
	option, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDTO(option), nil
}

func (s *service) List(ctx context.Context, actor rbac.Actor, input ListInput) (*ListResult, error) {
	if err := rbac.Require(actor, enums.PermissionViewOptions); err != nil {
		return nil, err
	}

	cursor, err := pagination.ParseCursor(input.Page.Cursor)
	if err != nil {
		return nil, pkgerrors.NewValidation(map[string]string{"cursor": "is not a valid cursor"})
	}
	limit := pagination.NormalizeLimit(input.Page.Limit)

	rows, err := s.repo.List(ctx, pagination.LimitWithBuffer(input.Page.Limit), cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing options")
	}

	result := &ListResult{Items: make([]OptionDTO, 0, len(rows))}
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

// Delete removes an option definition together with its category assignments.
// It is rejected while any variant value still references the option.
func (s *service) Delete(ctx context.Context, actor rbac.Actor, id uuid.UUID) error {
	if err := rbac.Require(actor, enums.PermissionManageOptions); err != nil {
		return err
	}

	if _, err := s.load(ctx, id); err != nil {
		return err
	}

	referenced, err := s.repo.CountVariantValues(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "counting option references")
	}
	if referenced > 0 {
		return pkgerrors.New(pkgerrors.CodeReferenced, "option is referenced by variant values").
			WithDetails(map[string]int64{"variant_values": referenced})
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.DeleteCategoryLinks(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "detaching option from categories")
		}
		if err := repo.Delete(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting option")
		}
		return nil
	})
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Option, error) {
	option, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "option not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading option")
	}
	return option, nil
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
		return "", pkgerrors.New(pkgerrors.CodeConflict, "option slug already in use").
			WithDetails(map[string]string{"slug": slugValue})
	}
	return slugValue, nil
}
