package auth

import (
	"freshcatch_server/lib"
	"freshcatch_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (arm *AuthRoutesManager) HandleLogin(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.AuthRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract login request body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("error.auth.invalidLogin"), gecho.Send())
		return
	}

	user, err := arm.authService.Login(body)
	if err != nil {
		arm.logger.Warn("Login failed", gecho.Field("error", err))
		gecho.Unauthorized(w, gecho.WithMessage("error.auth.invalidCredentials"), gecho.Send())
		return
	}

	accessToken, err := arm.authService.GenerateAccessToken(user)
	if err != nil {
		arm.logger.Warn("Failed to generate access token", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.auth.loginFailed"), gecho.Send())
		return
	}

	refreshToken, err := arm.authService.GenerateRefreshToken(user)
	if err != nil {
		arm.logger.Warn("Failed to generate refresh token", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.auth.loginFailed"), gecho.Send())
		return
	}

	lib.SetCookie(lib.RefreshCookieName, refreshToken, arm.authService.GetRefreshTokenExpiration(), w)
	lib.SetCookie(lib.AccessCookieName, accessToken, arm.authService.GetAccessTokenExpiration(), w)

	// Send last login to db asynchronously
	go func() {
		err := arm.authService.UpdateLastLogin(user.Id)
		if err != nil {
			arm.logger.Error("Failed to update last login", gecho.Field("error", err), gecho.Field("userID", user.Id))
		}
	}()

	gecho.Success(w,
		gecho.WithMessage("success.auth.loggedIn"),
		gecho.WithData(user),
		gecho.Send(),
	)
}
