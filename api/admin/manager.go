package admin

import (
	"freshcatch_server/api/middleware"
	"freshcatch_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type AdminRoutesManager struct {
	logger         *gecho.Logger
	productService *services.ProductService
	orderService   *services.OrderService
	statsService   *services.StatsService
	mw             *middleware.Middleware
}

func NewAdminRoutesManager(
	logger *gecho.Logger,
	productService *services.ProductService,
	orderService *services.OrderService,
	statsService *services.StatsService,
	mw *middleware.Middleware,
) *AdminRoutesManager {
	return &AdminRoutesManager{
		logger:         logger,
		productService: productService,
		orderService:   orderService,
		statsService:   statsService,
		mw:             mw,
	}
}

func (arm *AdminRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(arm.mw.UserAuthMiddleware)
		r.Use(arm.mw.AdminAuthMiddleware)

		r.Get("/products", arm.ListAllProducts)

		// Order management routes
		r.Get("/orders", arm.ListOrders)
		r.Get("/orders/{id}", arm.GetOrderDetails)

		// Revenue analytics
		r.Get("/stats/revenue", arm.GetRevenueSummary)
		r.Get("/stats/orders", arm.GetStatusBreakdown)
		r.Get("/stats/daily", arm.GetDailyStats)

		// Mutations behind CSRF
		r.Group(func(r chi.Router) {
			r.Use(arm.mw.CSRFMiddleware())
			r.Post("/products", arm.CreateProduct)
			r.Put("/products", arm.UpdateProduct)
			r.Delete("/products/{id}", arm.DeleteProduct)

			r.Put("/orders/{id}/status", arm.UpdateOrderStatus)
		})
	})
}
