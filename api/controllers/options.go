package controllers

import (
	"net/http"
	"strings"

	"github.com/smuvr/spraby/api/responses"
	"github.com/smuvr/spraby/api/validators"
	optionsvc "github.com/smuvr/spraby/internal/options"
	"github.com/smuvr/spraby/pkg/enums"
	pkgerrors "github.com/smuvr/spraby/pkg/errors"
	"github.com/smuvr/spraby/pkg/logger"
	"github.com/smuvr/spraby/pkg/metrics"
)

type createOptionRequest struct {
	Name         string `json:"name" validate:"required,max=255"`
	InternalName string `json:"internal_name,omitempty" validate:"omitempty,max=255"`
	Slug         string `json:"slug,omitempty" validate:"omitempty,max=255"`
	Type         string `json:"type,omitempty"`
}

func (r createOptionRequest) toInput() (optionsvc.CreateInput, error) {
	input := optionsvc.CreateInput{
		Name:         strings.TrimSpace(r.Name),
		InternalName: strings.TrimSpace(r.InternalName),
		Slug:         strings.TrimSpace(r.Slug),
	}
	if raw := strings.TrimSpace(r.Type); raw != "" {
		optionType, err := enums.ParseOptionType(raw)
		if err != nil {
			return optionsvc.CreateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid option type")
		}
		input.Type = optionType
	}
	return input, nil
}

type updateOptionRequest struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,max=255"`
	InternalName *string `json:"internal_name,omitempty" validate:"omitempty,max=255"`
	Slug         *string `json:"slug,omitempty" validate:"omitempty,max=255"`
	Type         *string `json:"type,omitempty"`
}

func (r updateOptionRequest) toInput() (optionsvc.UpdateInput, error) {
	input := optionsvc.UpdateInput{
		Name:         r.Name,
		InternalName: r.InternalName,
		Slug:         r.Slug,
	}
	if r.Type != nil {
		optionType, err := enums.ParseOptionType(strings.TrimSpace(*r.Type))
		if err != nil {
			return optionsvc.UpdateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid option type")
		}
		input.Type = &optionType
	}
	return input, nil
}

func CreateOption(svc optionsvc.Service, logg *logger.Logger, m *metrics.HTTPMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}

		var payload createOptionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		option, err := svc.Create(r.Context(), actor, input)
		if err != nil {
			m.IncMutationFailure("option", failureCode(err))
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncMutation("option", "create")
		responses.WriteSuccessStatus(w, http.StatusCreated, option)
	}
}

func UpdateOption(svc optionsvc.Service, logg *logger.Logger, m *metrics.HTTPMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}

		id, err := validators.ParsePathUUID(r, "optionID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateOptionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		option, err := svc.Update(r.Context(), actor, id, input)
		if err != nil {
			m.IncMutationFailure("option", failureCode(err))
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncMutation("option", "update")
		responses.WriteSuccess(w, option)
	}
}

func GetOption(svc optionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}

		id, err := validators.ParsePathUUID(r, "optionID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		option, err := svc.Get(r.Context(), actor, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, option)
	}
}

func ListOptions(svc optionsvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		result, err := svc.List(r.Context(), actor, optionsvc.ListInput{Page: page})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func DeleteOption(svc optionsvc.Service, logg *logger.Logger, m *metrics.HTTPMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}

		id, err := validators.ParsePathUUID(r, "optionID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), actor, id); err != nil {
			m.IncMutationFailure("option", failureCode(err))
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncMutation("option", "delete")
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
