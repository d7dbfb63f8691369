package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smuvr/spraby/api/responses"
	"github.com/smuvr/spraby/api/validators"
	variantsvc "github.com/smuvr/spraby/internal/variants"
	pkgerrors "github.com/smuvr/spraby/pkg/errors"
	"github.com/smuvr/spraby/pkg/logger"
	"github.com/smuvr/spraby/pkg/metrics"
)

type createVariantRequest struct {
	ProductID    string  `json:"product_id" validate:"required,uuid"`
	SKU          string  `json:"sku" validate:"required,max=255"`
	Price        string  `json:"price" validate:"required"`
	ComparePrice *string `json:"compare_price,omitempty"`
	CostPrice    *string `json:"cost_price,omitempty"`
	Quantity     int     `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	IsAvailable  *bool   `json:"is_available,omitempty"`
	IsDefault    bool    `json:"is_default,omitempty"`
}

func (r createVariantRequest) toInput() (variantsvc.CreateInput, error) {
	productID, err := uuid.Parse(r.ProductID)
	if err != nil {
		return variantsvc.CreateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id")
	}

	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return variantsvc.CreateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price")
	}

	input := variantsvc.CreateInput{
		ProductID:   productID,
		SKU:         r.SKU,
		Price:       price,
		Quantity:    r.Quantity,
		IsAvailable: r.IsAvailable,
		IsDefault:   r.IsDefault,
	}

	if r.ComparePrice != nil {
		compare, err := decimal.NewFromString(*r.ComparePrice)
		if err != nil {
			return variantsvc.CreateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid compare price")
		}
		input.ComparePrice = &compare
	}
	if r.CostPrice != nil {
		cost, err := decimal.NewFromString(*r.CostPrice)
		if err != nil {
			return variantsvc.CreateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cost price")
		}
		input.CostPrice = &cost
	}
	return input, nil
}

type updateVariantRequest struct {
	SKU          *string `json:"sku,omitempty" validate:"omitempty,max=255"`
	Price        *string `json:"price,omitempty"`
	ComparePrice *string `json:"compare_price,omitempty"`
	CostPrice    *string `json:"cost_price,omitempty"`
	Quantity     *int    `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	IsAvailable  *bool   `json:"is_available,omitempty"`
}

func (r updateVariantRequest) toInput() (variantsvc.UpdateInput, error) {
	input := variantsvc.UpdateInput{
		SKU:         r.SKU,
		Quantity:    r.Quantity,
		IsAvailable: r.IsAvailable,
	}

	if r.Price != nil {
		price, err := decimal.NewFromString(*r.Price)
		if err != nil {
			return variantsvc.UpdateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price")
		}
		input.Price = &price
	}
	if r.ComparePrice != nil {
		compare, err := decimal.NewFromString(*r.ComparePrice)
		if err != nil {
			return variantsvc.UpdateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid compare price")
		}
		input.ComparePrice = &compare
	}
	if r.CostPrice != nil {
		cost, err := decimal.NewFromString(*r.CostPrice)
		if err != nil {
			return variantsvc.UpdateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cost price")
		}
		input.CostPrice = &cost
	}
	return input, nil
}

type setVariantValueRequest struct {
	OptionID string `json:"option_id" validate:"required,uuid"`
	Value    string `json:"value" validate:"required,max=255"`
}

func (r setVariantValueRequest) toInput() (variantsvc.SetValueInput, error) {
	optionID, err := uuid.Parse(r.OptionID)
	if err != nil {
		return variantsvc.SetValueInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid option id")
	}
	return variantsvc.SetValueInput{OptionID: optionID, Value: r.Value}, nil
}

func CreateVariant(svc variantsvc.Service, logg *logger.Logger, m *metrics.HTTPMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}

		var payload createVariantRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		variant, err := svc.Create(r.Context(), actor, input)
		if err != nil {
			m.IncMutationFailure("variant", failureCode(err))
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncMutation("variant", "create")
		responses.WriteSuccessStatus(w, http.StatusCreated, variant)
	}
}

func UpdateVariant(svc variantsvc.Service, logg *logger.Logger, m *metrics.HTTPMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}

		id, err := validators.ParsePathUUID(r, "variantID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateVariantRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		variant, err := svc.Update(r.Context(), actor, id, input)
		if err != nil {
			m.IncMutationFailure("variant", failureCode(err))
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncMutation("variant", "update")
		responses.WriteSuccess(w, variant)
	}
}

func GetVariant(svc variantsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}

		id, err := validators.ParsePathUUID(r, "variantID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		variant, err := svc.Get(r.Context(), actor, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, variant)
	}
}

// ListProductVariants returns every variant under the product, optionally
// narrowed to the purchasable ones.
func ListProductVariants(svc variantsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}

		productID, err := validators.ParsePathUUID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		availableOnly, err := validators.ParseQueryBool(r, "available")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		variants, err := svc.ListByProduct(r.Context(), actor, productID, availableOnly)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, variants)
	}
}

func DeleteVariant(svc variantsvc.Service, logg *logger.Logger, m *metrics.HTTPMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}

		id, err := validators.ParsePathUUID(r, "variantID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), actor, id); err != nil {
			m.IncMutationFailure("variant", failureCode(err))
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncMutation("variant", "delete")
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// SetDefaultVariant makes this variant the product's default, demoting any
// previous default.
func SetDefaultVariant(svc variantsvc.Service, logg *logger.Logger, m *metrics.HTTPMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}

		id, err := validators.ParsePathUUID(r, "variantID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetDefault(r.Context(), actor, id); err != nil {
			m.IncMutationFailure("variant", failureCode(err))
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncMutation("variant", "set_default")
		responses.WriteSuccess(w, map[string]string{"status": "default"})
	}
}

func SetVariantValue(svc variantsvc.Service, logg *logger.Logger, m *metrics.HTTPMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}

		variantID, err := validators.ParsePathUUID(r, "variantID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload setVariantValueRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetValue(r.Context(), actor, variantID, input); err != nil {
			m.IncMutationFailure("variant_value", failureCode(err))
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncMutation("variant_value", "set")
		responses.WriteSuccess(w, map[string]string{"status": "set"})
	}
}

func DeleteVariantValue(svc variantsvc.Service, logg *logger.Logger, m *metrics.HTTPMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}

		variantID, err := validators.ParsePathUUID(r, "variantID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		optionID, err := validators.ParsePathUUID(r, "optionID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteValue(r.Context(), actor, variantID, optionID); err != nil {
			m.IncMutationFailure("variant_value", failureCode(err))
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncMutation("variant_value", "delete")
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func ListVariantValues(svc variantsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}

		variantID, err := validators.ParsePathUUID(r, "variantID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		values, err := svc.ListValues(r.Context(), actor, variantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, values)
	}
}
