package auth

import (
	"errors"
	"freshcatch_server/lib"
	"freshcatch_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (arm *AuthRoutesManager) HandleRegister(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.RegisterRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract register request body", gecho.Field("error", err))
		gecho.BadRequest(w,
			gecho.WithMessage("error.auth.invalidRegistration"),
			gecho.WithData(err.Error()),
			gecho.Send(),
		)
		return
	}

	user, err := arm.authService.Register(body)
	if err != nil {
		if errors.Is(err, lib.ErrConflict) {
			gecho.Conflict(w, gecho.WithMessage("error.auth.userAlreadyExists"), gecho.Send())
			return
		}
		arm.logger.Error("Registration failed", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.auth.registrationFailed"), gecho.Send())
		return
	}

	accessToken, err := arm.authService.GenerateAccessToken(user)
	if err != nil {
		arm.logger.Error("Failed to generate access token after registration", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.auth.registrationFailed"), gecho.Send())
		return
	}

	refreshToken, err := arm.authService.GenerateRefreshToken(user)
	if err != nil {
		arm.logger.Error("Failed to generate refresh token after registration", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.auth.registrationFailed"), gecho.Send())
		return
	}

	lib.SetCookie(lib.AccessCookieName, accessToken, arm.authService.GetAccessTokenExpiration(), w)
	lib.SetCookie(lib.RefreshCookieName, refreshToken, arm.authService.GetRefreshTokenExpiration(), w)

	gecho.Success(w,
		gecho.WithMessage("success.auth.registered"),
		gecho.WithData(user),
		gecho.Send(),
	)
}
