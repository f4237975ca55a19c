package cart

import (
	"freshcatch_server/api/middleware"
	"freshcatch_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type CartRoutesManager struct {
	logger      *gecho.Logger
	cartService *services.CartService
	mw          *middleware.Middleware
}

func NewCartRoutesManager(
	logger *gecho.Logger,
	cartService *services.CartService,
	mw *middleware.Middleware,
) *CartRoutesManager {
	return &CartRoutesManager{
		logger:      logger,
		cartService: cartService,
		mw:          mw,
	}
}

func (crm *CartRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/cart", func(r chi.Router) {
		r.Use(crm.mw.UserAuthMiddleware)
		r.Get("/", crm.GetCart)
		r.Post("/", crm.AddItem)
		r.Put("/{id}", crm.UpdateItem)
		r.Delete("/{id}", crm.RemoveItem)
		r.Delete("/", crm.ClearCart)
	})
}
