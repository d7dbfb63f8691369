package controllers

import (
	"net/http"

	"github.com/smuvr/spraby/api/responses"
	"github.com/smuvr/spraby/api/validators"
	imagesvc "github.com/smuvr/spraby/internal/images"
	"github.com/smuvr/spraby/pkg/logger"
	"github.com/smuvr/spraby/pkg/metrics"
)

type createImageRequest struct {
	Path        string  `json:"path" validate:"required,max=2048"`
	Alt         *string `json:"alt,omitempty" validate:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
}

func (r createImageRequest) toInput() imagesvc.CreateInput {
	return imagesvc.CreateInput{
		Path:        r.Path,
		Alt:         r.Alt,
		Description: r.Description,
	}
}

type updateImageRequest struct {
	Alt         *string `json:"alt,omitempty" validate:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
}

func (r updateImageRequest) toInput() imagesvc.UpdateInput {
	return imagesvc.UpdateInput{
		Alt:         r.Alt,
		Description: r.Description,
	}
}

func CreateImage(svc imagesvc.Service, logg *logger.Logger, m *metrics.HTTPMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}

		var payload createImageRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		image, err := svc.Create(r.Context(), actor, payload.toInput())
		if err != nil {
			m.IncMutationFailure("image", failureCode(err))
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncMutation("image", "create")
		responses.WriteSuccessStatus(w, http.StatusCreated, image)
	}
}

func UpdateImage(svc imagesvc.Service, logg *logger.Logger, m *metrics.HTTPMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}

		id, err := validators.ParsePathUUID(r, "imageID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateImageRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		image, err := svc.Update(r.Context(), actor, id, payload.toInput())
		if err != nil {
			m.IncMutationFailure("image", failureCode(err))
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncMutation("image", "update")
		responses.WriteSuccess(w, image)
	}
}

func GetImage(svc imagesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}

		id, err := validators.ParsePathUUID(r, "imageID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		image, err := svc.Get(r.Context(), actor, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, image)
	}
}

func ListImages(svc imagesvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		result, err := svc.List(r.Context(), actor, imagesvc.ListInput{Page: page})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func DeleteImage(svc imagesvc.Service, logg *logger.Logger, m *metrics.HTTPMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}

		id, err := validators.ParsePathUUID(r, "imageID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), actor, id); err != nil {
			m.IncMutationFailure("image", failureCode(err))
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncMutation("image", "delete")
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
