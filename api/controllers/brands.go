package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/smuvr/spraby/api/responses"
	"github.com/smuvr/spraby/api/validators"
	brandsvc "github.com/smuvr/spraby/internal/brands"
	pkgerrors "github.com/smuvr/spraby/pkg/errors"
	"github.com/smuvr/spraby/pkg/logger"
	"github.com/smuvr/spraby/pkg/metrics"
)

type createBrandRequest struct {
	UserID      *string `json:"user_id,omitempty" validate:"omitempty,uuid"`
	Name        string  `json:"name" validate:"required,max=255"`
	Slug        string  `json:"slug,omitempty" validate:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
	Logo        *string `json:"logo,omitempty" validate:"omitempty,max=2048"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (r createBrandRequest) toInput() (brandsvc.CreateInput, error) {
	input := brandsvc.CreateInput{
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Logo:        r.Logo,
		IsActive:    r.IsActive,
	}
	if r.UserID != nil {
		userID, err := uuid.Parse(*r.UserID)
		if err != nil {
			return brandsvc.CreateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id")
		}
		input.UserID = &userID
	}
	return input, nil
}

type updateBrandRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Slug        *string `json:"slug,omitempty" validate:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
	Logo        *string `json:"logo,omitempty" validate:"omitempty,max=2048"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (r updateBrandRequest) toInput() brandsvc.UpdateInput {
	return brandsvc.UpdateInput{
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Logo:        r.Logo,
		IsActive:    r.IsActive,
	}
}

func CreateBrand(svc brandsvc.Service, logg *logger.Logger, m *metrics.HTTPMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}

		var payload createBrandRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		brand, err := svc.Create(r.Context(), actor, input)
		if err != nil {
			m.IncMutationFailure("brand", failureCode(err))
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncMutation("brand", "create")
		responses.WriteSuccessStatus(w, http.StatusCreated, brand)
	}
}

func UpdateBrand(svc brandsvc.Service, logg *logger.Logger, m *metrics.HTTPMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}

		id, err := validators.ParsePathUUID(r, "brandID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateBrandRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		brand, err := svc.Update(r.Context(), actor, id, payload.toInput())
		if err != nil {
			m.IncMutationFailure("brand", failureCode(err))
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncMutation("brand", "update")
		responses.WriteSuccess(w, brand)
	}
}

func GetBrand(svc brandsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}

		id, err := validators.ParsePathUUID(r, "brandID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		brand, err := svc.Get(r.Context(), actor, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, brand)
	}
}

func ListBrands(svc brandsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}

		page, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID, err := validators.ParseQueryUUID(r, "user_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		activeOnly, err := validators.ParseQueryBool(r, "active")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), actor, brandsvc.ListInput{
			Page:       page,
			UserID:     userID,
			ActiveOnly: activeOnly,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// DeleteBrand removes the brand and cascades over its catalog.
func DeleteBrand(svc brandsvc.Service, logg *logger.Logger, m *metrics.HTTPMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}

		id, err := validators.ParsePathUUID(r, "brandID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), actor, id); err != nil {
			m.IncMutationFailure("brand", failureCode(err))
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncMutation("brand", "delete")
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func AttachBrandCategory(svc brandsvc.Service, logg *logger.Logger, m *metrics.HTTPMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}

		brandID, err := validators.ParsePathUUID(r, "brandID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		categoryID, err := validators.ParsePathUUID(r, "categoryID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.AttachCategory(r.Context(), actor, brandID, categoryID); err != nil {
			m.IncMutationFailure("brand_category", failureCode(err))
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncMutation("brand_category", "attach")
		responses.WriteSuccess(w, map[string]string{"status": "attached"})
	}
}

func DetachBrandCategory(svc brandsvc.Service, logg *logger.Logger, m *metrics.HTTPMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}

		brandID, err := validators.ParsePathUUID(r, "brandID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		categoryID, err := validators.ParsePathUUID(r, "categoryID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DetachCategory(r.Context(), actor, brandID, categoryID); err != nil {
			m.IncMutationFailure("brand_category", failureCode(err))
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncMutation("brand_category", "detach")
		responses.WriteSuccess(w, map[string]string{"status": "detached"})
	}
}

func ListBrandCategories(svc brandsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}

		brandID, err := validators.ParsePathUUID(r, "brandID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		categories, err := svc.ListCategories(r.Context(), actor, brandID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, categories)
	}
}
