package orders

import (
	"freshcatch_server/api/health"
	"freshcatch_server/api/middleware"
	"freshcatch_server/handling"
	"freshcatch_server/lib"
	"freshcatch_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// Checkout handles POST /orders/checkout: turns the caller's cart into an
// order with a freshly assigned order number
func (orm *OrderRoutesManager) Checkout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("error.auth.invalidOrMissingAccessToken"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.CheckoutRequest](r)
	if err != nil {
		orm.logger.Warn("Invalid checkout request", gecho.Field("error", err), gecho.Field("user_id", claims.Sub))
		gecho.BadRequest(w,
			gecho.WithMessage("error.order.invalidCheckoutRequest"),
			gecho.WithData(err.Error()),
			gecho.Send(),
		)
		return
	}

	order, err := orm.orderService.Checkout(r.Context(), claims.Sub, body)
	if err != nil {
		handling.HandleError(err, "checkout", orm.logger, w)
		return
	}

	health.OrdersCreated.Inc()

	gecho.Success(w,
		gecho.WithMessage("success.order.created"),
		gecho.WithData(map[string]any{
			"order":        order,
			"order_number": order.OrderNumber,
		}),
		gecho.Send(),
	)
}
