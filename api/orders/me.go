package orders

import (
	"freshcatch_server/api/middleware"
	"freshcatch_server/handling"
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// GetMyOrders returns all orders for the authenticated user
func (orm *OrderRoutesManager) GetMyOrders(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("error.auth.invalidOrMissingAccessToken"), gecho.Send())
		return
	}

	orders, err := orm.orderService.GetOrdersByUserId(r.Context(), claims.Sub)
	if err != nil {
		handling.HandleError(err, "fetching orders", orm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.order.ordersFetched"),
		gecho.WithData(map[string]any{
			"orders": orders,
			"count":  len(orders),
		}),
		gecho.Send(),
	)
}

// GetMyOrderById returns one of the authenticated user's orders with items
func (orm *OrderRoutesManager) GetMyOrderById(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("error.auth.invalidOrMissingAccessToken"), gecho.Send())
		return
	}

	orderId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		orm.logger.Warn("Invalid order ID format", gecho.Field("order_id", chi.URLParam(r, "id")))
		gecho.BadRequest(w,
			gecho.WithMessage("error.order.invalidOrderId"),
			gecho.Send(),
		)
		return
	}

	// The user filter doubles as the ownership check
	order, err := orm.orderService.GetUserOrderById(r.Context(), claims.Sub, orderId)
	if err != nil {
		handling.HandleError(err, "fetching order", orm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.order.orderDetailsFetched"),
		gecho.WithData(map[string]any{
			"order": order,
		}),
		gecho.Send(),
	)
}

// CancelMyOrder lets a customer cancel their own order while it is still
// cancellable
func (orm *OrderRoutesManager) CancelMyOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("error.auth.invalidOrMissingAccessToken"), gecho.Send())
		return
	}

	orderId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.order.invalidOrderId"),
			gecho.Send(),
		)
		return
	}

	order, err := orm.orderService.CancelOwnOrder(r.Context(), claims.Sub, orderId)
	if err != nil {
		handling.HandleError(err, "cancelling order", orm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.order.cancelled"),
		gecho.WithData(map[string]any{
			"order": order,
		}),
		gecho.Send(),
	)
}
