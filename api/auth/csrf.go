package auth

import (
	"freshcatch_server/lib"
	"net/http"
	"time"

	"github.com/MonkyMars/gecho"
)

// HandleCSRF generates and sets a CSRF token
func (arm *AuthRoutesManager) HandleCSRF(w http.ResponseWriter, r *http.Request) {
	token, err := lib.GenerateCSRFToken()
	if err != nil {
		arm.logger.Error("Failed to generate CSRF token", gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("error.csrf.failedToGenerate"),
			gecho.Send(),
		)
		return
	}

	// Set CSRF cookie with 24 hour expiration
	expiry := time.Now().Add(24 * time.Hour)
	lib.SetCSRFCookie(token, expiry, w)

	// Return the token in the response as well
	gecho.Success(w,
		gecho.WithMessage("success.csrf.generated"),
		gecho.WithData(map[string]string{
			"csrf_token": token,
		}),
		gecho.Send(),
	)
}
