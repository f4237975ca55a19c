package orders

import (
	"freshcatch_server/handling"
	"net/http"
	"strings"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// trackingResponse exposes only the status-relevant fields of an order;
// tracking is public, so no customer details leave this endpoint
type trackingResponse struct {
	OrderNumber   string `json:"order_number"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// TrackOrder handles GET /orders/track/{orderNumber}
func (orm *OrderRoutesManager) TrackOrder(w http.ResponseWriter, r *http.Request) {
	orderNumber := strings.TrimSpace(chi.URLParam(r, "orderNumber"))
	if orderNumber == "" || !strings.HasPrefix(orderNumber, "ORD-") {
		gecho.BadRequest(w,
			gecho.WithMessage("error.order.invalidOrderNumber"),
			gecho.Send(),
		)
		return
	}

	order, err := orm.orderService.GetOrderByOrderNumber(r.Context(), orderNumber)
	if err != nil {
		handling.HandleError(err, "tracking order", orm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(trackingResponse{
			OrderNumber:   order.OrderNumber,
			Status:        string(order.Status),
			PaymentStatus: string(order.PaymentStatus),
			CreatedAt:     order.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
			UpdatedAt:     order.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		}),
		gecho.Send(),
	)
}
