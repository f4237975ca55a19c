package auth

import (
	"freshcatch_server/api/middleware"
	"freshcatch_server/services"
	"freshcatch_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type AuthRoutesManager struct {
	logger       *gecho.Logger
	authService  *services.AuthService
	cacheService *services.CacheService
	cfg          *structs.Config
	mw           *middleware.Middleware
}

func NewAuthRoutesManager(
	logger *gecho.Logger,
	authService *services.AuthService,
	cacheService *services.CacheService,
	cfg *structs.Config,
	mw *middleware.Middleware,
) *AuthRoutesManager {
	return &AuthRoutesManager{
		logger:       logger,
		authService:  authService,
		cacheService: cacheService,
		cfg:          cfg,
		mw:           mw,
	}
}

func (arm *AuthRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		// CSRF token endpoint (must be called before protected routes)
		r.Get("/csrf", arm.HandleCSRF)

		r.Group(func(r chi.Router) {
			r.Use(arm.mw.CSRFMiddleware())
			r.Post("/register", arm.HandleRegister)
			r.Post("/login", arm.HandleLogin)
			r.Post("/refresh", arm.HandleRefresh)
			r.Post("/logout", arm.HandleLogout)
		})

		r.Group(func(r chi.Router) {
			r.Use(arm.mw.UserAuthMiddleware)
			r.Get("/me", arm.HandleMe)
		})
	})
}
