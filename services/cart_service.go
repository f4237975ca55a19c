package services

import (
	"context"
	"freshcatch_server/database"
	"freshcatch_server/lib"
	"freshcatch_server/structs"
	"freshcatch_server/structs/tables"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

type CartService struct {
	logger         *gecho.Logger
	db             *database.DB
	productService *ProductService
}

func NewCartService(logger *gecho.Logger, db *database.DB, productService *ProductService) *CartService {
	return &CartService{
		logger:         logger,
		db:             db,
		productService: productService,
	}
}

// GetCart returns the user's cart items with product details preloaded
func (cs *CartService) GetCart(ctx context.Context, userId uuid.UUID) ([]tables.CartItem, error) {
	items, err := database.Query[tables.CartItem](cs.db).
		Where("user_id", userId).
		Relation("Product").
		OrderBy("created_at", database.ASC).
		All(ctx)
	if err != nil {
		cs.logger.Error("Failed to fetch cart", gecho.Field("error", err), gecho.Field("user_id", userId))
		return nil, lib.MapDBError(err)
	}
	return items, nil
}

// AddItem puts a product in the user's cart. Adding a product that is
// already in the cart replaces its quantity.
func (cs *CartService) AddItem(ctx context.Context, userId uuid.UUID, req *structs.CartItemRequest) (*tables.CartItem, error) {
	productId, err := uuid.Parse(req.ProductId)
	if err != nil {
		return nil, lib.ErrNotFound
	}

	product, err := cs.productService.GetProductByID(ctx, productId.String())
	if err != nil {
		return nil, err
	}
	if !product.IsAvailable || product.StockQuantity <= 0 {
		return nil, lib.ErrProductUnavailable
	}
	if req.Quantity > product.StockQuantity {
		return nil, lib.ErrInsufficientStock
	}

	existing, err := database.Query[tables.CartItem](cs.db).
		Where("user_id", userId).
		Where("product_id", productId).
		First(ctx)
	if err != nil {
		return nil, lib.MapDBError(err)
	}

	if existing != nil {
		updates := map[string]any{
			"quantity":   req.Quantity,
			"updated_at": time.Now(),
		}
		_, err := database.Query[tables.CartItem](cs.db).Where("id", existing.Id).Update(ctx, updates)
		if err != nil {
			return nil, lib.MapDBError(err)
		}
		existing.Quantity = req.Quantity
		existing.Product = product
		return existing, nil
	}

	item := &tables.CartItem{
		UserId:    userId,
		ProductId: productId,
		Quantity:  req.Quantity,
	}
	item, err = database.Query[tables.CartItem](cs.db).Insert(ctx, item)
	if err != nil {
		cs.logger.Error("Failed to add cart item", gecho.Field("error", err), gecho.Field("user_id", userId))
		return nil, lib.MapDBError(err)
	}

	item.Product = product
	return item, nil
}

// UpdateItemQuantity changes the quantity of an existing cart item
func (cs *CartService) UpdateItemQuantity(ctx context.Context, userId, itemId uuid.UUID, quantity int) (*tables.CartItem, error) {
	item, err := database.Query[tables.CartItem](cs.db).
		Where("id", itemId).
		Where("user_id", userId).
		Relation("Product").
		First(ctx)
	if err != nil {
		return nil, lib.MapDBError(err)
	}
	if item == nil {
		return nil, lib.ErrNotFound
	}

	if item.Product != nil && quantity > item.Product.StockQuantity {
		return nil, lib.ErrInsufficientStock
	}

	updates := map[string]any{
		"quantity":   quantity,
		"updated_at": time.Now(),
	}
	_, err = database.Query[tables.CartItem](cs.db).Where("id", itemId).Update(ctx, updates)
	if err != nil {
		return nil, lib.MapDBError(err)
	}

	item.Quantity = quantity
	return item, nil
}

// RemoveItem deletes a single cart item owned by the user
func (cs *CartService) RemoveItem(ctx context.Context, userId, itemId uuid.UUID) error {
	affected, err := database.Query[tables.CartItem](cs.db).
		Where("id", itemId).
		Where("user_id", userId).
		Delete(ctx)
	if err != nil {
		return lib.MapDBError(err)
	}
	if affected == 0 {
		return lib.ErrNotFound
	}
	return nil
}

// ClearCart removes all cart items for the user
func (cs *CartService) ClearCart(ctx context.Context, userId uuid.UUID) error {
	_, err := database.Query[tables.CartItem](cs.db).
		Where("user_id", userId).
		Delete(ctx)
	if err != nil {
		return lib.MapDBError(err)
	}
	return nil
}
