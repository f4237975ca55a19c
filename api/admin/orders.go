package admin

import (
	"freshcatch_server/handling"
	"freshcatch_server/lib"
	"freshcatch_server/structs"
	"freshcatch_server/structs/tables"
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ListOrders returns a paginated view over all orders, optionally filtered
// by status and payment status.
func (arm *AdminRoutesManager) ListOrders(w http.ResponseWriter, r *http.Request) {
	page, pageSize := handling.ParsePagination(r)

	var status *tables.OrderStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := tables.OrderStatus(raw)
		if !s.Valid() {
			gecho.BadRequest(w, gecho.WithMessage("error.order.invalidStatusFilter"), gecho.Send())
			return
		}
		status = &s
	}

	var paymentStatus *tables.PaymentStatus
	if raw := r.URL.Query().Get("payment_status"); raw != "" {
		ps := tables.PaymentStatus(raw)
		if ps != tables.PaymentStatusPending && ps != tables.PaymentStatusPaid {
			gecho.BadRequest(w, gecho.WithMessage("error.order.invalidPaymentStatusFilter"), gecho.Send())
			return
		}
		paymentStatus = &ps
	}

	result, err := arm.orderService.GetAllOrders(r.Context(), status, paymentStatus, page, pageSize)
	if err != nil {
		handling.HandleError(err, "listing orders", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.order.ordersFetched"),
		gecho.WithData(result),
		gecho.Send(),
	)
}

// GetOrderDetails returns any order with its items, without the ownership
// filter the customer endpoints apply.
func (arm *AdminRoutesManager) GetOrderDetails(w http.ResponseWriter, r *http.Request) {
	orderId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.order.invalidOrderId"), gecho.Send())
		return
	}

	order, err := arm.orderService.GetOrderById(r.Context(), orderId)
	if err != nil {
		handling.HandleError(err, "fetching order", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.order.orderFetched"),
		gecho.WithData(order),
		gecho.Send(),
	)
}

// UpdateOrderStatus moves an order along the fulfilment pipeline. Invalid
// transitions are rejected, delivered orders feed the daily revenue rollup
// and cancellations restock their items.
func (arm *AdminRoutesManager) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.order.invalidOrderId"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.UpdateOrderStatusRequest](r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.order.invalidStatusPayload"), gecho.Send())
		return
	}

	order, err := arm.orderService.UpdateOrderStatus(r.Context(), orderId, tables.OrderStatus(body.Status))
	if err != nil {
		handling.HandleError(err, "updating order status", arm.logger, w)
		return
	}

	arm.logger.Info("Order status updated",
		gecho.Field("order_number", order.OrderNumber),
		gecho.Field("status", order.Status),
	)
	gecho.Success(w,
		gecho.WithMessage("success.order.statusUpdated"),
		gecho.WithData(order),
		gecho.Send(),
	)
}
