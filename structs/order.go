package structs

// CheckoutRequest turns the caller's cart into an order. The cart itself is
// read server-side; only delivery and payment details travel in the body.
type CheckoutRequest struct {
	DeliveryAddress string `json:"delivery_address" validate:"required,min=5,max=300"`
	DeliveryNote    string `json:"delivery_note" validate:"omitempty,max=500"`
	Phone           string `json:"phone" validate:"required,min=10,max=20"`
	PaymentMethod   string `json:"payment_method" validate:"required,oneof=cash_on_delivery card online"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed preparing out_for_delivery delivered cancelled"`
}

type CartItemRequest struct {
	ProductId string `json:"product_id" validate:"required,uuid4"`
	Quantity  int    `json:"quantity" validate:"required,min=1,max=99"`
}
