package controllers

import (
	"net/http"

	"github.com/smuvr/spraby/api/responses"
	"github.com/smuvr/spraby/api/validators"
	collectionsvc "github.com/smuvr/spraby/internal/collections"
	"github.com/smuvr/spraby/pkg/logger"
	"github.com/smuvr/spraby/pkg/metrics"
)

type createCollectionRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Slug        string  `json:"slug,omitempty" validate:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
	Image       *string `json:"image,omitempty" validate:"omitempty,max=2048"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (r createCollectionRequest) toInput() collectionsvc.CreateInput {
	return collectionsvc.CreateInput{
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Image:       r.Image,
		IsActive:    r.IsActive,
	}
}

type updateCollectionRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Slug        *string `json:"slug,omitempty" validate:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
	Image       *string `json:"image,omitempty" validate:"omitempty,max=2048"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (r updateCollectionRequest) toInput() collectionsvc.UpdateInput {
	return collectionsvc.UpdateInput{
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Image:       r.Image,
		IsActive:    r.IsActive,
	}
}

func CreateCollection(svc collectionsvc.Service, logg *logger.Logger, m *metrics.HTTPMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}

		var payload createCollectionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		collection, err := svc.Create(r.Context(), actor, payload.toInput())
		if err != nil {
			m.IncMutationFailure("collection", failureCode(err))
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncMutation("collection", "create")
		responses.WriteSuccessStatus(w, http.StatusCreated, collection)
	}
}

func UpdateCollection(svc collectionsvc.Service, logg *logger.Logger, m *metrics.HTTPMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}

		id, err := validators.ParsePathUUID(r, "collectionID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCollectionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		collection, err := svc.Update(r.Context(), actor, id, payload.toInput())
		if err != nil {
			m.IncMutationFailure("collection", failureCode(err))
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncMutation("collection", "update")
		responses.WriteSuccess(w, collection)
	}
}

func GetCollection(svc collectionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}

		id, err := validators.ParsePathUUID(r, "collectionID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		collection, err := svc.Get(r.Context(), actor, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, collection)
	}
}

func ListCollections(svc collectionsvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		result, err := svc.List(r.Context(), actor, collectionsvc.ListInput{Page: page})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// ListCollectionCategories returns the categories placed in the collection in
// display order.
func ListCollectionCategories(svc collectionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}

		id, err := validators.ParsePathUUID(r, "collectionID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		categories, err := svc.ListCategories(r.Context(), actor, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, categories)
	}
}

func DeleteCollection(svc collectionsvc.Service, logg *logger.Logger, m *metrics.HTTPMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}

		id, err := validators.ParsePathUUID(r, "collectionID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), actor, id); err != nil {
			m.IncMutationFailure("collection", failureCode(err))
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncMutation("collection", "delete")
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
