package services

import (
	"context"
	"fmt"
	"freshcatch_server/database"
	"freshcatch_server/lib"
	"freshcatch_server/structs"
	"freshcatch_server/structs/tables"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type OrderService struct {
	logger       *gecho.Logger
	cfg          *structs.Config
	db           *database.DB
	cacheService *CacheService
	emailService *EmailService
	authService  *AuthService
}

func NewOrderService(
	logger *gecho.Logger,
	cfg *structs.Config,
	db *database.DB,
	cacheService *CacheService,
	emailService *EmailService,
	authService *AuthService,
) *OrderService {
	return &OrderService{
		logger:       logger,
		cfg:          cfg,
		db:           db,
		cacheService: cacheService,
		emailService: emailService,
		authService:  authService,
	}
}

// nextOrderSequence claims the next sequence number for the given date with a
// single atomic upsert. It must run inside the order-creation transaction:
// a failure here aborts the whole checkout, and there is deliberately no
// retry on this statement since retrying could hand out the same number twice.
func nextOrderSequence(ctx context.Context, tx bun.Tx, dateKey string) (int, error) {
	var seq int
	err := tx.NewRaw(
		"INSERT INTO order_counts (date, count) VALUES (?, 1) "+
			"ON CONFLICT (date) DO UPDATE SET count = order_counts.count + 1, updated_at = now() "+
			"RETURNING count",
		dateKey,
	).Scan(ctx, &seq)
	if err != nil {
		return 0, fmt.Errorf("failed to claim order sequence for %s: %w", dateKey, err)
	}
	return seq, nil
}

// restockOrderItems returns cancelled quantities to the shelf. Availability
// only flips back on when the restock takes the product off zero stock; a
// product an admin disabled deliberately stays disabled. The CASE reads the
// pre-restock stock value, all SET expressions see the old row.
func restockOrderItems(ctx context.Context, tx bun.Tx, items []tables.OrderItem) error {
	for _, item := range items {
		_, err := tx.NewUpdate().
			Model((*tables.Product)(nil)).
			Set("stock_quantity = stock_quantity + ?", item.Quantity).
			Set("is_available = CASE WHEN stock_quantity = 0 THEN TRUE ELSE is_available END").
			Set("updated_at = ?", time.Now()).
			Where("id = ?", item.ProductId).
			Exec(ctx)
		if err != nil {
			return err
		}
	}
	return nil
}

// Checkout turns the user's cart into an order. Everything up to the commit
// runs in one transaction: stock checks and decrements, the daily sequence
// claim, the order and item inserts, and the cart clear. Any failure rolls
// the whole thing back, including the claimed sequence number.
func (os *OrderService) Checkout(ctx context.Context, userId uuid.UUID, req *structs.CheckoutRequest) (*tables.Order, error) {
	startTime := time.Now()

	order, err := database.TransactionWithResult(ctx, func(tx bun.Tx) (*tables.Order, error) {
		// Load the cart with product rows inside the transaction
		var cartItems []tables.CartItem
		err := tx.NewSelect().
			Model(&cartItems).
			Relation("Product").
			Where("ci.user_id = ?", userId).
			Scan(ctx)
		if err != nil {
			return nil, lib.MapDBError(err)
		}

		if len(cartItems) == 0 {
			return nil, lib.ErrEmptyCart
		}

		// Validate availability and stock before touching anything
		var totalAmount uint64
		for _, item := range cartItems {
			if item.Product == nil {
				return nil, lib.ErrProductUnavailable
			}
			if !item.Product.IsAvailable {
				os.logger.Debug("Checkout rejected, product unavailable",
					gecho.Field("user_id", userId),
					gecho.Field("product_id", item.ProductId))
				return nil, lib.ErrProductUnavailable
			}
			if item.Quantity > item.Product.StockQuantity {
				os.logger.Debug("Checkout rejected, insufficient stock",
					gecho.Field("user_id", userId),
					gecho.Field("product_id", item.ProductId),
					gecho.Field("requested", item.Quantity),
					gecho.Field("in_stock", item.Product.StockQuantity))
				return nil, lib.ErrInsufficientStock
			}
			totalAmount += item.Product.Price * uint64(item.Quantity)
		}

		// Decrement stock with a guard so concurrent checkouts cannot
		// oversell; zero rows affected means someone got there first
		for _, item := range cartItems {
			res, err := tx.NewUpdate().
				Model((*tables.Product)(nil)).
				Set("stock_quantity = stock_quantity - ?", item.Quantity).
				Set("updated_at = ?", time.Now()).
				Where("id = ?", item.ProductId).
				Where("stock_quantity >= ?", item.Quantity).
				Exec(ctx)
			if err != nil {
				return nil, lib.MapDBError(err)
			}
			affected, _ := res.RowsAffected()
			if affected == 0 {
				return nil, lib.ErrInsufficientStock
			}
		}

		// Sold-out products leave the storefront
		_, err = tx.NewUpdate().
			Model((*tables.Product)(nil)).
			Set("is_available = ?", false).
			Where("stock_quantity = 0").
			Where("is_available = ?", true).
			Exec(ctx)
		if err != nil {
			return nil, lib.MapDBError(err)
		}

		// Claim the daily sequence number and derive the order number.
		// Server-side UTC date, never the client's clock.
		now := time.Now()
		seq, err := nextOrderSequence(ctx, tx, lib.OrderDateKey(now))
		if err != nil {
			return nil, err
		}
		orderNumber := lib.FormatOrderNumber(now, seq)

		order := &tables.Order{
			Id:              uuid.New(),
			OrderNumber:     orderNumber,
			UserId:          userId,
			DeliveryAddress: req.DeliveryAddress,
			DeliveryNote:    req.DeliveryNote,
			Phone:           req.Phone,
			PaymentMethod:   tables.PaymentMethod(req.PaymentMethod),
			PaymentStatus:   tables.PaymentStatusPending,
			TotalAmount:     totalAmount,
			Status:          tables.OrderStatusPending,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		_, err = tx.NewInsert().Model(order).Exec(ctx)
		if err != nil {
			return nil, lib.MapDBError(err)
		}

		// Order items snapshot price and name at the time of purchase
		orderItems := make([]*tables.OrderItem, 0, len(cartItems))
		for _, item := range cartItems {
			orderItems = append(orderItems, &tables.OrderItem{
				Id:          uuid.New(),
				OrderId:     order.Id,
				ProductId:   item.ProductId,
				Quantity:    item.Quantity,
				UnitPrice:   item.Product.Price,
				LineTotal:   item.Product.Price * uint64(item.Quantity),
				ProductName: item.Product.Name,
			})
		}

		_, err = tx.NewInsert().Model(&orderItems).Exec(ctx)
		if err != nil {
			return nil, lib.MapDBError(err)
		}

		// The cart is consumed by the checkout
		_, err = tx.NewDelete().
			Model((*tables.CartItem)(nil)).
			Where("user_id = ?", userId).
			Exec(ctx)
		if err != nil {
			return nil, lib.MapDBError(err)
		}

		for _, item := range orderItems {
			order.Items = append(order.Items, *item)
		}

		return order, nil
	})
	if err != nil {
		return nil, err
	}

	// Stock changed, cached product pages are stale
	for _, item := range order.Items {
		if cacheErr := os.cacheService.InvalidateProductCaches(item.ProductId); cacheErr != nil {
			os.logger.Warn("Failed to invalidate product caches after checkout",
				gecho.Field("error", cacheErr),
				gecho.Field("product_id", item.ProductId))
		}
	}

	// Send confirmation email asynchronously
	go func() {
		user, userErr := os.authService.GetUserByID(order.UserId)
		if userErr != nil {
			os.logger.Error("Failed to load user for confirmation email",
				gecho.Field("error", userErr),
				gecho.Field("order_id", order.Id))
			return
		}

		items := make([]*tables.OrderItem, len(order.Items))
		for i := range order.Items {
			items[i] = &order.Items[i]
		}

		emailErr := os.emailService.SendOrderConfirmationEmail(
			user.Email, user.Username, order.OrderNumber, items, order.DeliveryAddress, order.TotalAmount)
		if emailErr != nil {
			os.logger.Error("Failed to send order confirmation email",
				gecho.Field("error", emailErr),
				gecho.Field("order_id", order.Id))
		}
	}()

	os.logger.Info("Order created",
		gecho.Field("order_id", order.Id),
		gecho.Field("order_number", order.OrderNumber),
		gecho.Field("user_id", userId),
		gecho.Field("total_amount", order.TotalAmount),
		gecho.Field("duration", time.Since(startTime)))

	return order, nil
}

// GetOrderById retrieves an order with its items
func (os *OrderService) GetOrderById(ctx context.Context, orderId uuid.UUID) (*tables.Order, error) {
	order, err := database.Query[tables.Order](os.db).
		Where("id", orderId).
		Relation("Items").
		First(ctx)
	if err != nil {
		return nil, lib.MapDBError(err)
	}
	if order == nil {
		return nil, lib.ErrNotFound
	}
	return order, nil
}

// GetUserOrderById retrieves an order only if it belongs to the user
func (os *OrderService) GetUserOrderById(ctx context.Context, userId, orderId uuid.UUID) (*tables.Order, error) {
	order, err := database.Query[tables.Order](os.db).
		Where("id", orderId).
		Where("user_id", userId).
		Relation("Items").
		First(ctx)
	if err != nil {
		return nil, lib.MapDBError(err)
	}
	if order == nil {
		return nil, lib.ErrNotFound
	}
	return order, nil
}

// GetOrderByOrderNumber retrieves an order by its public order number.
// Used for tracking; only the status-relevant fields should be exposed.
func (os *OrderService) GetOrderByOrderNumber(ctx context.Context, orderNumber string) (*tables.Order, error) {
	order, err := database.Query[tables.Order](os.db).
		Where("order_number", orderNumber).
		First(ctx)
	if err != nil {
		return nil, lib.MapDBError(err)
	}
	if order == nil {
		return nil, lib.ErrNotFound
	}
	return order, nil
}

// GetOrdersByUserId retrieves all orders for a user, newest first
func (os *OrderService) GetOrdersByUserId(ctx context.Context, userId uuid.UUID) ([]tables.Order, error) {
	orders, err := database.Query[tables.Order](os.db).
		Where("user_id", userId).
		Relation("Items").
		OrderBy("created_at", database.DESC).
		All(ctx)
	if err != nil {
		return nil, lib.MapDBError(err)
	}
	return orders, nil
}

// GetAllOrders retrieves all orders with optional filtering, for admins
func (os *OrderService) GetAllOrders(ctx context.Context, status *tables.OrderStatus, paymentStatus *tables.PaymentStatus, page, pageSize int) (*database.PaginationResult[tables.Order], error) {
	query := database.Query[tables.Order](os.db)

	if status != nil {
		query = query.Where("status", *status)
	}
	if paymentStatus != nil {
		query = query.Where("payment_status", *paymentStatus)
	}

	query = query.Relation("Items").OrderBy("created_at", database.DESC)

	result, err := database.Paginate(query, ctx, page, pageSize)
	if err != nil {
		return nil, lib.MapDBError(err)
	}
	return result, nil
}

// UpdateOrderStatus moves an order through its lifecycle. Transitions are
// validated against the status machine; delivered orders feed the daily
// revenue rollup and are marked paid (cash on delivery settles at the door).
func (os *OrderService) UpdateOrderStatus(ctx context.Context, orderId uuid.UUID, newStatus tables.OrderStatus) (*tables.Order, error) {
	order, err := os.GetOrderById(ctx, orderId)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(newStatus) {
		os.logger.Warn("Rejected order status transition",
			gecho.Field("order_id", orderId),
			gecho.Field("from", order.Status),
			gecho.Field("to", newStatus))
		return nil, lib.ErrInvalidTransition
	}

	err = database.Transaction(ctx, func(tx bun.Tx) error {
		updateQuery := tx.NewUpdate().
			Model((*tables.Order)(nil)).
			Set("status = ?", newStatus).
			Set("updated_at = ?", time.Now()).
			Where("id = ?", orderId).
			Where("status = ?", order.Status) // guard against concurrent transitions

		if newStatus == tables.OrderStatusDelivered {
			updateQuery = updateQuery.Set("payment_status = ?", tables.PaymentStatusPaid)
		}

		res, err := updateQuery.Exec(ctx)
		if err != nil {
			return lib.MapDBError(err)
		}
		affected, _ := res.RowsAffected()
		if affected == 0 {
			return lib.ErrInvalidTransition
		}

		switch newStatus {
		case tables.OrderStatusDelivered:
			// Roll the delivered revenue into the daily stats, once per
			// transition. The guard above makes the transition itself
			// at-most-once, so this cannot double count.
			_, err = tx.NewRaw(
				"INSERT INTO daily_stats (date, revenue, delivered_orders) VALUES (?, ?, 1) "+
					"ON CONFLICT (date) DO UPDATE SET "+
					"revenue = daily_stats.revenue + EXCLUDED.revenue, "+
					"delivered_orders = daily_stats.delivered_orders + 1, "+
					"updated_at = now()",
				lib.OrderDateKey(time.Now()), order.TotalAmount,
			).Exec(ctx)
			if err != nil {
				return lib.MapDBError(err)
			}

		case tables.OrderStatusCancelled:
			if err := restockOrderItems(ctx, tx, order.Items); err != nil {
				return lib.MapDBError(err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if newStatus == tables.OrderStatusCancelled {
		for _, item := range order.Items {
			if cacheErr := os.cacheService.InvalidateProductCaches(item.ProductId); cacheErr != nil {
				os.logger.Warn("Failed to invalidate product caches after cancellation",
					gecho.Field("error", cacheErr),
					gecho.Field("product_id", item.ProductId))
			}
		}
	}

	// Notify the customer asynchronously
	go func() {
		user, userErr := os.authService.GetUserByID(order.UserId)
		if userErr != nil {
			os.logger.Error("Failed to load user for status email",
				gecho.Field("error", userErr),
				gecho.Field("order_id", orderId))
			return
		}

		emailErr := os.emailService.SendOrderStatusEmail(user.Email, user.Username, order.OrderNumber, newStatus)
		if emailErr != nil {
			os.logger.Error("Failed to send order status email",
				gecho.Field("error", emailErr),
				gecho.Field("order_id", orderId))
		}
	}()

	os.logger.Info("Order status updated",
		gecho.Field("order_id", orderId),
		gecho.Field("order_number", order.OrderNumber),
		gecho.Field("old_status", order.Status),
		gecho.Field("new_status", newStatus))

	order.Status = newStatus
	if newStatus == tables.OrderStatusDelivered {
		order.PaymentStatus = tables.PaymentStatusPaid
	}
	return order, nil
}

// CancelOwnOrder lets a customer cancel their own order, subject to the
// same transition rules as the admin path
func (os *OrderService) CancelOwnOrder(ctx context.Context, userId, orderId uuid.UUID) (*tables.Order, error) {
	order, err := os.GetUserOrderById(ctx, userId, orderId)
	if err != nil {
		return nil, err
	}
	return os.UpdateOrderStatus(ctx, order.Id, tables.OrderStatusCancelled)
}
