package api

import (
	"freshcatch_server/api/admin"
	"freshcatch_server/api/auth"
	"freshcatch_server/api/cart"
	"freshcatch_server/api/debug"
	"freshcatch_server/api/health"
	"freshcatch_server/api/middleware"
	"freshcatch_server/api/orders"
	"freshcatch_server/api/products"
	"freshcatch_server/database"
	"freshcatch_server/services"
	"freshcatch_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	productRoutes *products.ProductRoutesManager
	healthRoutes  *health.HealthRoutesManager
	authRoutes    *auth.AuthRoutesManager
	cartRoutes    *cart.CartRoutesManager
	orderRoutes   *orders.OrderRoutesManager
	adminRoutes   *admin.AdminRoutesManager
	debugRoutes   *debug.DebugRoutesManager
}

func NewRouterManager(
	logger *gecho.Logger,
	db *database.DB,
	cfg *structs.Config,
	mw *middleware.Middleware,
) *routerManager {
	sm := services.NewServiceManager(logger, cfg, db)

	return &routerManager{
		productRoutes: products.NewProductRoutesManager(logger, sm.ProductService),
		healthRoutes:  health.NewHealthRoutesManager(sm.HealthService),
		authRoutes:    auth.NewAuthRoutesManager(logger, sm.AuthService, sm.CacheService, cfg, mw),
		cartRoutes:    cart.NewCartRoutesManager(logger, sm.CartService, mw),
		orderRoutes:   orders.NewOrderRoutesManager(logger, sm.OrderService, mw),
		adminRoutes:   admin.NewAdminRoutesManager(logger, sm.ProductService, sm.OrderService, sm.StatsService, mw),
		debugRoutes:   debug.NewDebugRoutesManager(sm.CacheService),
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.productRoutes.RegisterRoutes(r)
	rm.healthRoutes.RegisterRoutes(r)
	rm.authRoutes.RegisterRoutes(r)
	rm.cartRoutes.RegisterRoutes(r)
	rm.orderRoutes.RegisterRoutes(r)
	rm.adminRoutes.RegisterRoutes(r)
	rm.debugRoutes.RegisterRoutes(r)
}
