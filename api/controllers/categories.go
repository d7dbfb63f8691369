package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/smuvr/spraby/api/responses"
	"github.com/smuvr/spraby/api/validators"
	categorysvc "github.com/smuvr/spraby/internal/categories"
	pkgerrors "github.com/smuvr/spraby/pkg/errors"
	"github.com/smuvr/spraby/pkg/logger"
	"github.com/smuvr/spraby/pkg/metrics"
)

type createCategoryRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Slug        string  `json:"slug,omitempty" validate:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
	Image       *string `json:"image,omitempty" validate:"omitempty,max=2048"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (r createCategoryRequest) toInput() categorysvc.CreateInput {
	return categorysvc.CreateInput{
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Image:       r.Image,
		IsActive:    r.IsActive,
	}
}

type updateCategoryRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Slug        *string `json:"slug,omitempty" validate:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
	Image       *string `json:"image,omitempty" validate:"omitempty,max=2048"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (r updateCategoryRequest) toInput() categorysvc.UpdateInput {
	return categorysvc.UpdateInput{
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Image:       r.Image,
		IsActive:    r.IsActive,
	}
}

type attachCategoryOptionRequest struct {
	OptionID   string `json:"option_id" validate:"required,uuid"`
	IsRequired bool   `json:"is_required,omitempty"`
	Position   int    `json:"position,omitempty" validate:"omitempty,gte=0"`
}

func (r attachCategoryOptionRequest) toInput() (categorysvc.AttachOptionInput, error) {
	optionID, err := uuid.Parse(r.OptionID)
	if err != nil {
		return categorysvc.AttachOptionInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid option id")
	}
	return categorysvc.AttachOptionInput{
		OptionID:   optionID,
		IsRequired: r.IsRequired,
		Position:   r.Position,
	}, nil
}

type attachCategoryCollectionRequest struct {
	CollectionID string `json:"collection_id" validate:"required,uuid"`
	Position     int    `json:"position,omitempty" validate:"omitempty,gte=0"`
}

func (r attachCategoryCollectionRequest) toInput() (categorysvc.AttachCollectionInput, error) {
	collectionID, err := uuid.Parse(r.CollectionID)
	if err != nil {
		return categorysvc.AttachCollectionInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid collection id")
	}
	return categorysvc.AttachCollectionInput{
		CollectionID: collectionID,
		Position:     r.Position,
	}, nil
}

func CreateCategory(svc categorysvc.Service, logg *logger.Logger, m *metrics.HTTPMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}

		var payload createCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.Create(r.Context(), actor, payload.toInput())
		if err != nil {
			m.IncMutationFailure("category", failureCode(err))
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncMutation("category", "create")
		responses.WriteSuccessStatus(w, http.StatusCreated, category)
	}
}

func UpdateCategory(svc categorysvc.Service, logg *logger.Logger, m *metrics.HTTPMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}

		id, err := validators.ParsePathUUID(r, "categoryID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.Update(r.Context(), actor, id, payload.toInput())
		if err != nil {
			m.IncMutationFailure("category", failureCode(err))
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncMutation("category", "update")
		responses.WriteSuccess(w, category)
	}
}

func GetCategory(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}

		id, err := validators.ParsePathUUID(r, "categoryID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.Get(r.Context(), actor, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, category)
	}
}

func ListCategories(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		result, err := svc.List(r.Context(), actor, categorysvc.ListInput{Page: page})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func DeleteCategory(svc categorysvc.Service, logg *logger.Logger, m *metrics.HTTPMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}

		id, err := validators.ParsePathUUID(r, "categoryID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), actor, id); err != nil {
			m.IncMutationFailure("category", failureCode(err))
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncMutation("category", "delete")
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func AttachCategoryOption(svc categorysvc.Service, logg *logger.Logger, m *metrics.HTTPMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}

		categoryID, err := validators.ParsePathUUID(r, "categoryID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload attachCategoryOptionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.AttachOption(r.Context(), actor, categoryID, input); err != nil {
			m.IncMutationFailure("category_option", failureCode(err))
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncMutation("category_option", "attach")
		responses.WriteSuccess(w, map[string]string{"status": "attached"})
	}
}

func DetachCategoryOption(svc categorysvc.Service, logg *logger.Logger, m *metrics.HTTPMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}

		categoryID, err := validators.ParsePathUUID(r, "categoryID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		optionID, err := validators.ParsePathUUID(r, "optionID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DetachOption(r.Context(), actor, categoryID, optionID); err != nil {
			m.IncMutationFailure("category_option", failureCode(err))
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncMutation("category_option", "detach")
		responses.WriteSuccess(w, map[string]string{"status": "detached"})
	}
}

func ListCategoryOptions(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}

		categoryID, err := validators.ParsePathUUID(r, "categoryID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		options, err := svc.ListOptions(r.Context(), actor, categoryID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, options)
	}
}

func AttachCategoryCollection(svc categorysvc.Service, logg *logger.Logger, m *metrics.HTTPMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}

		categoryID, err := validators.ParsePathUUID(r, "categoryID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload attachCategoryCollectionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.AttachCollection(r.Context(), actor, categoryID, input); err != nil {
			m.IncMutationFailure("category_collection", failureCode(err))
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncMutation("category_collection", "attach")
		responses.WriteSuccess(w, map[string]string{"status": "attached"})
	}
}

func DetachCategoryCollection(svc categorysvc.Service, logg *logger.Logger, m *metrics.HTTPMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}

		categoryID, err := validators.ParsePathUUID(r, "categoryID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		collectionID, err := validators.ParsePathUUID(r, "collectionID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DetachCollection(r.Context(), actor, categoryID, collectionID); err != nil {
			m.IncMutationFailure("category_collection", failureCode(err))
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncMutation("category_collection", "detach")
		responses.WriteSuccess(w, map[string]string{"status": "detached"})
	}
}

func ListCategoryCollections(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}

		categoryID, err := validators.ParsePathUUID(r, "categoryID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		collections, err := svc.ListCollections(r.Context(), actor, categoryID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, collections)
	}
}
