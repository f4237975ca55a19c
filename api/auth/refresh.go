package auth

import (
	"freshcatch_server/lib"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// HandleRefresh rotates the token pair: the presented refresh token is
// blacklisted and fresh cookies are set
func (arm *AuthRoutesManager) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	refreshToken, err := lib.GetCookieValue(lib.RefreshCookieName, r)
	if err != nil {
		arm.logger.Warn("Refresh attempted without refresh token cookie", gecho.Field("error", err))
		gecho.Unauthorized(w, gecho.WithMessage("error.auth.invalidOrMissingRefreshToken"), gecho.Send())
		return
	}

	authResponse, err := arm.authService.RefreshAccessToken(refreshToken)
	if err != nil {
		arm.logger.Warn("Failed to refresh tokens", gecho.Field("error", err))
		lib.ClearCookie(lib.AccessCookieName, w)
		lib.ClearCookie(lib.RefreshCookieName, w)
		gecho.Unauthorized(w, gecho.WithMessage("error.auth.invalidOrMissingRefreshToken"), gecho.Send())
		return
	}

	lib.SetCookie(lib.AccessCookieName, authResponse.AccessToken, arm.authService.GetAccessTokenExpiration(), w)
	lib.SetCookie(lib.RefreshCookieName, authResponse.RefreshToken, arm.authService.GetRefreshTokenExpiration(), w)

	gecho.Success(w,
		gecho.WithMessage("success.auth.tokensRefreshed"),
		gecho.WithData(authResponse.User),
		gecho.Send(),
	)
}
