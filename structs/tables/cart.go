package tables

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is unique per (user_id, product_id); adding the same product
// again replaces the quantity.
type CartItem struct {
	tableName struct{}  `bun:"table:cart_items,alias:ci"`
	Id        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	UserId    uuid.UUID `bun:"user_id,notnull,type:uuid" json:"user_id"`
	ProductId uuid.UUID `bun:"product_id,notnull,type:uuid" json:"product_id"`
	Quantity  int       `bun:"quantity,notnull" json:"quantity"`
	CreatedAt time.Time `bun:"created_at,notnull,default:now()" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:now()" json:"updated_at"`

	Product *Product `bun:"rel:belongs-to,join:product_id=id" json:"product,omitempty"`
}
