package structs

import "time"

// RevenueSummary is recomputed from order rows on every call; only orders in
// the delivered status count as realized revenue.
type RevenueSummary struct {
	TotalRevenue         uint64    `json:"total_revenue"` // cents
	TodayRevenue         uint64    `json:"today_revenue"` // cents
	DeliveredOrders      int       `json:"delivered_orders"`
	TodayDeliveredOrders int       `json:"today_delivered_orders"`
	AverageOrderValue    float64   `json:"average_order_value"` // currency units, 2 decimals, 0 when no orders
	ComputedAt           time.Time `json:"computed_at"`
}

// StatusBreakdownRow is one (status, payment_status) group with its count
// and summed amount.
type StatusBreakdownRow struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	Count         int    `json:"count"`
	TotalAmount   uint64 `json:"total_amount"` // cents
}
