package auth

import (
	"freshcatch_server/api/middleware"
	"freshcatch_server/handling"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// HandleMe returns the authenticated user's profile
func (arm *AuthRoutesManager) HandleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("error.auth.invalidOrMissingAccessToken"), gecho.Send())
		return
	}

	user, err := arm.authService.GetUserByID(claims.Sub)
	if err != nil {
		handling.HandleError(err, "fetching profile", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(user),
		gecho.Send(),
	)
}
