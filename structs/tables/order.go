package tables

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	// Table Name and identifiers
	tableName   struct{}  `bun:"table:orders,alias:o"`
	Id          uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id" validate:"omitempty,uuid4"`
	OrderNumber string    `bun:"order_number,notnull,unique" json:"order_number" validate:"omitempty,min=8,max=50"`

	// Customer reference
	UserId uuid.UUID `bun:"user_id,notnull,type:uuid" json:"user_id" validate:"required,uuid4"`

	// Delivery data
	DeliveryAddress string `bun:"delivery_address,notnull" json:"delivery_address" validate:"required,min=5,max=300"`
	DeliveryNote    string `bun:"delivery_note" json:"delivery_note,omitempty" validate:"omitempty,max=500"`
	Phone           string `bun:"phone,notnull" json:"phone" validate:"required,min=10,max=20"`

	// Payment data
	PaymentMethod PaymentMethod `bun:"payment_method,notnull,default:'cash_on_delivery'" json:"payment_method" validate:"required,oneof=cash_on_delivery card online"`
	PaymentStatus PaymentStatus `bun:"payment_status,notnull,default:'pending'" json:"payment_status" validate:"required,oneof=pending paid"`

	// Order data
	TotalAmount uint64      `bun:"total_amount,notnull" json:"total_amount" validate:"required,gt=0"` // stored in cents
	Status      OrderStatus `bun:"status,notnull,default:'pending'" json:"status" validate:"required,oneof=pending confirmed preparing out_for_delivery delivered cancelled"`
	CreatedAt   time.Time   `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time   `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`

	Items []OrderItem `bun:"rel:has-many,join:id=order_id" json:"items,omitempty"`
}

type OrderItem struct {
	tableName struct{}  `bun:"table:order_items,alias:oi"`
	Id        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id" validate:"omitempty,uuid4"`
	OrderId   uuid.UUID `bun:"order_id,notnull,type:uuid" json:"order_id" validate:"required,uuid4"`
	// product_id is ON DELETE RESTRICT: a product with order history cannot be removed
	ProductId uuid.UUID `bun:"product_id,notnull,type:uuid" json:"product_id" validate:"required,uuid4"`
	Quantity  int       `bun:"quantity,notnull" json:"quantity" validate:"required,min=1"`

	// Snapshot of pricing at time of order
	UnitPrice uint64 `bun:"unit_price,notnull" json:"unit_price" validate:"required,gt=0"` // price when ordered, in cents
	LineTotal uint64 `bun:"line_total,notnull" json:"line_total" validate:"required,gt=0"` // quantity * unit_price

	// Keep reference to product name for later renames
	ProductName string `bun:"product_name,notnull" json:"product_name" validate:"required,min=2,max=200"`
}

// OrderCount holds the per-day checkout sequence. Rows are created lazily on
// the first order of a day and only ever incremented, never deleted.
type OrderCount struct {
	tableName struct{}  `bun:"table:order_counts,alias:oc"`
	Date      string    `bun:"date,pk" json:"date"` // YYYY-MM-DD, server-side UTC
	Count     int       `bun:"count,notnull" json:"count"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// DailyStat is the per-day delivered-revenue rollup, upserted once per
// transition into the delivered status.
type DailyStat struct {
	tableName       struct{}  `bun:"table:daily_stats,alias:ds"`
	Date            string    `bun:"date,pk" json:"date"` // YYYY-MM-DD, server-side UTC
	Revenue         uint64    `bun:"revenue,notnull" json:"revenue"` // in cents
	DeliveredOrders int       `bun:"delivered_orders,notnull" json:"delivered_orders"`
	UpdatedAt       time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// CanTransitionTo reports whether an order in the current status may move to
// next. Delivered and cancelled are terminal; cancellation is allowed up to
// and including preparing.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	transitions := map[OrderStatus][]OrderStatus{
		OrderStatusPending:        {OrderStatusConfirmed, OrderStatusCancelled},
		OrderStatusConfirmed:      {OrderStatusPreparing, OrderStatusCancelled},
		OrderStatusPreparing:      {OrderStatusOutForDelivery, OrderStatusCancelled},
		OrderStatusOutForDelivery: {OrderStatusDelivered},
		OrderStatusDelivered:      {},
		OrderStatusCancelled:      {},
	}

	allowed, exists := transitions[s]
	if !exists {
		return false
	}

	for _, status := range allowed {
		if status == next {
			return true
		}
	}
	return false
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusOutForDelivery, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

type PaymentMethod string

const (
	PaymentMethodCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentMethodCard           PaymentMethod = "card"
	PaymentMethodOnline         PaymentMethod = "online"
)
