package handling

import (
	"errors"
	"freshcatch_server/lib"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// HandleError maps service-layer sentinel errors onto HTTP responses.
// Anything unrecognized is logged and answered with a generic 500 so
// internals never leak to the client.
func HandleError(err error, msg string, logger *gecho.Logger, w http.ResponseWriter) {
	switch {
	case errors.Is(err, lib.ErrNotFound):
		gecho.NotFound(w, gecho.WithMessage("error.notFound"), gecho.Send())
		return
	case errors.Is(err, lib.ErrConflict):
		gecho.Conflict(w, gecho.WithMessage("error.conflict"), gecho.Send())
		return
	case errors.Is(err, lib.ErrRestricted):
		gecho.Conflict(w, gecho.WithMessage("error.restrictedByReferences"), gecho.Send())
		return
	case errors.Is(err, lib.ErrAccessDenied):
		gecho.Forbidden(w, gecho.WithMessage("error.auth.accessDenied"), gecho.Send())
		return
	case errors.Is(err, lib.ErrInvalidCredentials):
		gecho.Unauthorized(w, gecho.WithMessage("error.auth.invalidCredentials"), gecho.Send())
		return
	case errors.Is(err, lib.ErrInvalidToken), errors.Is(err, lib.ErrExpiredToken):
		gecho.Unauthorized(w, gecho.WithMessage("error.auth.invalidOrMissingAccessToken"), gecho.Send())
		return
	case errors.Is(err, lib.ErrEmptyCart):
		gecho.BadRequest(w, gecho.WithMessage("error.order.emptyCart"), gecho.Send())
		return
	case errors.Is(err, lib.ErrProductUnavailable):
		gecho.Conflict(w, gecho.WithMessage("error.order.productUnavailable"), gecho.Send())
		return
	case errors.Is(err, lib.ErrInsufficientStock):
		gecho.Conflict(w, gecho.WithMessage("error.order.insufficientStock"), gecho.Send())
		return
	case errors.Is(err, lib.ErrInvalidTransition):
		gecho.Conflict(w, gecho.WithMessage("error.order.invalidStatusTransition"), gecho.Send())
		return
	}

	logger.Error("An error occurred", gecho.Field("error", err), gecho.Field("msg", msg), gecho.WithCallerSkip(3))

	gecho.InternalServerError(w, gecho.Send())
}
