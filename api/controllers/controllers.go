package controllers

import (
	"net/http"

	"github.com/smuvr/spraby/api/middleware"
	"github.com/smuvr/spraby/api/responses"
	"github.com/smuvr/spraby/internal/rbac"
	pkgerrors "github.com/smuvr/spraby/pkg/errors"
	"github.com/smuvr/spraby/pkg/logger"
)

// actorFrom pulls the actor seeded by the identity middleware, writing a 401
// when the context was never seeded.
func actorFrom(w http.ResponseWriter, r *http.Request, logg *logger.Logger) (rbac.Actor, bool) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "actor context missing"))
		return rbac.Actor{}, false
	}
	return actor, true
}

// failureCode maps an error to the metric label counting rejected mutations.
func failureCode(err error) string {
	if typed := pkgerrors.As(err); typed != nil {
		return string(typed.Code())
	}
	return string(pkgerrors.CodeInternal)
}
