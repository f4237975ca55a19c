package middleware

import (
	"freshcatch_server/database"
	"freshcatch_server/services"
	"freshcatch_server/structs"

	"github.com/MonkyMars/gecho"
)

type Middleware struct {
	logger       *gecho.Logger
	cfg          *structs.Config
	authService  *services.AuthService
	cacheService *services.CacheService
}

func NewMiddleware(cfg *structs.Config, logger *gecho.Logger, db *database.DB) *Middleware {
	return &Middleware{
		logger:       logger,
		cfg:          cfg,
		authService:  services.NewAuthService(cfg, logger, db),
		cacheService: services.NewCacheService(logger, cfg),
	}
}
