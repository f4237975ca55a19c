package tables

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	tableName     struct{}        `bun:"table:products,alias:p"`
	ID            uuid.UUID       `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Name          string          `bun:"name,notnull" json:"name"`
	Description   string          `bun:"description,notnull" json:"description"`
	Price         uint64          `bun:"price,notnull" json:"price"` // stored in cents, always > 0
	Category      ProductCategory `bun:"category,notnull" json:"category"`
	StockQuantity int             `bun:"stock_quantity,notnull" json:"stock_quantity"` // never below 0
	IsAvailable   bool            `bun:"is_available,notnull" json:"is_available"`
	Unit          string          `bun:"unit,notnull,default:'kg'" json:"unit"`  // kg, piece, portion
	ImageURL      string          `bun:"image_url" json:"image_url,omitempty"`   // opaque CDN URL
	Origin        string          `bun:"origin" json:"origin,omitempty"`         // e.g. "North Sea"
	CreatedAt     time.Time       `bun:"created_at,notnull,default:now()" json:"created_at"`
	UpdatedAt     time.Time       `bun:"updated_at,notnull,default:now()" json:"updated_at"`
}

// ProductCategory is a closed enum; anything outside it is rejected at the
// request boundary.
type ProductCategory string

const (
	CategoryFish       ProductCategory = "fish"
	CategoryShellfish  ProductCategory = "shellfish"
	CategoryCrustacean ProductCategory = "crustacean"
	CategorySmoked     ProductCategory = "smoked"
	CategoryFrozen     ProductCategory = "frozen"
	CategoryPrepared   ProductCategory = "prepared"
)

func (c ProductCategory) Valid() bool {
	switch c {
	case CategoryFish, CategoryShellfish, CategoryCrustacean, CategorySmoked, CategoryFrozen, CategoryPrepared:
		return true
	}
	return false
}
