package orders

import (
	"freshcatch_server/api/middleware"
	"freshcatch_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type OrderRoutesManager struct {
	logger       *gecho.Logger
	orderService *services.OrderService
	mw           *middleware.Middleware
}

func NewOrderRoutesManager(
	logger *gecho.Logger,
	orderService *services.OrderService,
	mw *middleware.Middleware,
) *OrderRoutesManager {
	return &OrderRoutesManager{
		logger:       logger,
		orderService: orderService,
		mw:           mw,
	}
}

func (orm *OrderRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		// Public order tracking by order number
		r.Get("/track/{orderNumber}", orm.TrackOrder)

		r.Group(func(r chi.Router) {
			r.Use(orm.mw.UserAuthMiddleware)
			r.Post("/checkout", orm.Checkout)
			r.Get("/me", orm.GetMyOrders)
			r.Get("/me/{id}", orm.GetMyOrderById)
			r.Post("/me/{id}/cancel", orm.CancelMyOrder)
		})
	})
}
