package variants

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
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds a variants service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("variants repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) Create(ctx context.Context, actor rbac.Actor, input CreateInput) (*VariantDTO, error) {
	if err := rbac.Require(actor, enums.PermissionEditProduct); err != nil {
		return nil, err
	}

	if _, err := s.repo.ProductCategoryID(ctx, input.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewValidation(map[string]string{"product_id": "unknown product"})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking product")
	}

	sku := strings.TrimSpace(input.SKU)
	if sku == "" {
		return nil, pkgerrors.NewValidation(map[string]string{"sku": "is required"})
	}
	if fields := validatePricing(input.Price, input.ComparePrice, input.CostPrice, input.Quantity); fields != nil {
		return nil, pkgerrors.NewValidation(fields)
	}

	taken, err := s.repo.SKUTaken(ctx, sku, uuid.Nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking sku uniqueness")
	}
	if taken {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "sku already in use").
			WithDetails(map[string]string{"sku": sku})
	}

	variant := &models.Variant{
		ProductID:    input.ProductID,
		SKU:          sku,
		Price:        input.Price,
		ComparePrice: input.ComparePrice,
		CostPrice:    input.CostPrice,
		Quantity:     input.Quantity,
		IsAvailable:  true,
		IsDefault:    input.IsDefault,
	}
	if input.IsAvailable != nil {
		variant.IsAvailable = *input.IsAvailable
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if input.IsDefault {
			if err := repo.DemoteDefault(ctx, input.ProductID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "demoting default variant")
			}
		}
		if err := repo.Create(ctx, variant); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "sku already in use").
					WithDetails(map[string]string{"sku": sku})
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating variant")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toDTO(variant), nil
}

func (s *service) Update(ctx context.Context, actor rbac.Actor, id uuid.UUID, input UpdateInput) (*VariantDTO, error) {
	if err := rbac.Require(actor, enums.PermissionEditProduct); err != nil {
		return nil, err
	}

	variant, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.SKU != nil {
		sku := strings.TrimSpace(*input.SKU)
		if sku == "" {
			return nil, pkgerrors.NewValidation(map[string]string{"sku": "cannot be blank"})
		}
		if sku != variant.SKU {
			taken, err := s.repo.SKUTaken(ctx, sku, variant.ID)
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking sku uniqueness")
			}
			if taken {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "sku already in use").
					WithDetails(map[string]string{"sku": sku})
			}
		}
		variant.SKU = sku
	}
	if input.Price != nil {
		variant.Price = *input.Price
	}
	if input.ComparePrice != nil {
		variant.ComparePrice = input.ComparePrice
	}
	if input.CostPrice != nil {
		variant.CostPrice = input.CostPrice
	}
	if input.Quantity != nil {
		variant.Quantity = *input.Quantity
	}
	if input.IsAvailable != nil {
		variant.IsAvailable = *input.IsAvailable
	}

	if fields := validatePricing(variant.Price, variant.ComparePrice, variant.CostPrice, variant.Quantity); fields != nil {
		return nil, pkgerrors.NewValidation(fields)
	}

	if err := s.repo.Save(ctx, variant); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "sku already in use").
				WithDetails(map[string]string{"sku": variant.SKU})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating variant")
	}
	return toDTO(variant), nil
}

func (s *service) Get(ctx context.Context, actor rbac.Actor, id uuid.UUID) (*VariantDTO, error) {
	if err := rbac.Require(actor, enums.PermissionViewProducts); err != nil {
		return nil, err
	}
	variant, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDTO(variant), nil
}

func (s *service) ListByProduct(ctx context.Context, actor rbac.Actor, productID uuid.UUID, availableOnly bool) ([]VariantDTO, error) {
	if err := rbac.Require(actor, enums.PermissionViewProducts); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListByProduct(ctx, productID, availableOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing variants")
	}
	out := make([]VariantDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toDTO(&rows[i]))
	}
	return out, nil
}

// Delete removes the variant together with its values and variant-scoped
// image links.
func (s *service) Delete(ctx context.Context, actor rbac.Actor, id uuid.UUID) error {
	if err := rbac.Require(actor, enums.PermissionEditProduct); err != nil {
		return err
	}

	if _, err := s.load(ctx, id); err != nil {
		return err
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.DeleteValuesByVariant(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting variant values")
		}
		if err := repo.DeleteImageLinksByVariant(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting variant image links")
		}
		if err := repo.Delete(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting variant")
		}
		return nil
	})
}

// SetDefault flags the variant as its product's default, demoting the
// previous default in the same transaction.
func (s *service) SetDefault(ctx context.Context, actor rbac.Actor, id uuid.UUID) error {
	if err := rbac.Require(actor, enums.PermissionEditProduct); err != nil {
		return err
	}

	variant, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if variant.IsDefault {
		return nil
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.DemoteDefault(ctx, variant.ProductID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "demoting default variant")
		}
		variant.IsDefault = true
		if err := repo.Save(ctx, variant); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving default variant")
		}
		return nil
	})
}

// SetValue assigns an option value to the variant. The option must be
// assigned to the product's category; a value set for an option that already
// has one replaces the previous value.
func (s *service) SetValue(ctx context.Context, actor rbac.Actor, variantID uuid.UUID, input SetValueInput) error {
	if err := rbac.Require(actor, enums.PermissionEditProduct); err != nil {
		return err
	}

	variant, err := s.load(ctx, variantID)
	if err != nil {
		return err
	}

	value := strings.TrimSpace(input.Value)
	if value == "" {
		return pkgerrors.NewValidation(map[string]string{"value": "is required"})
	}

	categoryID, err := s.repo.ProductCategoryID(ctx, variant.ProductID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product category")
	}
	attached, err := s.repo.OptionAttachedToCategory(ctx, input.OptionID, categoryID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking option applicability")
	}
	if !attached {
		return pkgerrors.NewValidation(map[string]string{"option_id": "option does not apply to the product's category"})
	}

	row := &models.VariantValue{
		VariantID: variantID,
		OptionID:  input.OptionID,
		Value:     value,
	}
	if err := s.repo.UpsertValue(ctx, row); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "setting variant value")
	}
	return nil
}

func (s *service) DeleteValue(ctx context.Context, actor rbac.Actor, variantID, optionID uuid.UUID) error {
	if err := rbac.Require(actor, enums.PermissionEditProduct); err != nil {
		return err
	}

	affected, err := s.repo.DeleteValueRow(ctx, variantID, optionID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting variant value")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "variant has no value for the option")
	}
	return nil
}

func (s *service) ListValues(ctx context.Context, actor rbac.Actor, variantID uuid.UUID) ([]VariantValueDTO, error) {
	if err := rbac.Require(actor, enums.PermissionViewProducts); err != nil {
		return nil, err
	}

	if _, err := s.load(ctx, variantID); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListValueRows(ctx, variantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing variant values")
	}
	out := make([]VariantValueDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toValueDTO(&rows[i]))
	}
	return out, nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Variant, error) {
	variant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading variant")
	}
	return variant, nil
}
