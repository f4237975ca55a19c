package auth

import (
	"freshcatch_server/lib"
	"freshcatch_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (arm *AuthRoutesManager) HandleLogout(w http.ResponseWriter, r *http.Request) {
	var accessClaims, refreshClaims *structs.AuthClaims

	if accessToken, err := lib.GetCookieValue(lib.AccessCookieName, r); err == nil {
		if claims, parseErr := lib.ParseToken(accessToken, arm.cfg.Auth.AccessTokenSecret); parseErr == nil {
			accessClaims = claims
		}
	}

	if refreshToken, err := lib.GetCookieValue(lib.RefreshCookieName, r); err == nil {
		if claims, parseErr := lib.ParseToken(refreshToken, arm.cfg.Auth.RefreshTokenSecret); parseErr == nil {
			refreshClaims = claims
		}
	}

	if accessClaims == nil && refreshClaims == nil {
		// Nothing valid to revoke, still clear cookies
		lib.ClearCookie(lib.AccessCookieName, w)
		lib.ClearCookie(lib.RefreshCookieName, w)
		gecho.Success(w,
			gecho.WithMessage("success.auth.loggedOut"),
			gecho.Send(),
		)
		return
	}

	if err := arm.authService.Logout(accessClaims, refreshClaims); err != nil {
		arm.logger.Error("Failed to blacklist tokens during logout", gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("error.auth.logoutFailed"),
			gecho.Send(),
		)
		return
	}

	lib.ClearCookie(lib.AccessCookieName, w)
	lib.ClearCookie(lib.RefreshCookieName, w)

	gecho.Success(w,
		gecho.WithMessage("success.auth.loggedOut"),
		gecho.Send(),
	)
}
