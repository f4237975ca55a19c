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
)

type ProductService struct {
	logger       *gecho.Logger
	db           *database.DB
	cacheService *CacheService
}

func NewProductService(logger *gecho.Logger, db *database.DB, cacheService *CacheService) *ProductService {
	return &ProductService{
		logger:       logger,
		db:           db,
		cacheService: cacheService,
	}
}

// ProductListOptions contains filtering and pagination options for product queries
type ProductListOptions struct {
	// Pagination
	Page     int `json:"page"`
	PageSize int `json:"page_size"`

	// Filters
	Category      *tables.ProductCategory `json:"category,omitempty"`       // Filter by category
	AvailableOnly bool                    `json:"available_only,omitempty"` // Only in-stock, available products
	MinPrice      *uint64                 `json:"min_price,omitempty"`      // Minimum price in cents
	MaxPrice      *uint64                 `json:"max_price,omitempty"`      // Maximum price in cents
	SearchTerm    string                  `json:"search_term,omitempty"`    // Search in name, description, origin

	// Sorting
	SortBy        string `json:"sort_by"`        // Field to sort by (created_at, price, name)
	SortDirection string `json:"sort_direction"` // ASC or DESC

	// Performance
	Timeout time.Duration `json:"-"` // Query timeout (not exposed in JSON)
}

// ProductListResult wraps the product list response with metadata
type ProductListResult struct {
	Products   []tables.Product    `json:"products"`
	Pagination database.Pagination `json:"pagination"`
	Filters    ProductListOptions  `json:"filters"`
	QueryTime  time.Duration       `json:"query_time"`
}

// cacheKey derives a stable cache key from the filter set
func (opts *ProductListOptions) cacheKey() string {
	category := ""
	if opts.Category != nil {
		category = string(*opts.Category)
	}
	minPrice, maxPrice := uint64(0), uint64(0)
	if opts.MinPrice != nil {
		minPrice = *opts.MinPrice
	}
	if opts.MaxPrice != nil {
		maxPrice = *opts.MaxPrice
	}
	return fmt.Sprintf("%d:%d:%s:%t:%d:%d:%s:%s:%s",
		opts.Page, opts.PageSize, category, opts.AvailableOnly,
		minPrice, maxPrice, opts.SearchTerm, opts.SortBy, opts.SortDirection)
}

// GetAllProducts retrieves products with filtering, pagination, and caching
func (ps *ProductService) GetAllProducts(ctx context.Context, opts *ProductListOptions) (*ProductListResult, error) {
	startTime := time.Now()

	if opts == nil {
		opts = &ProductListOptions{}
	}
	ps.applyDefaultOptions(opts)

	if err := ps.validateOptions(opts); err != nil {
		ps.logger.Error("Invalid product list options", gecho.Field("error", err), gecho.Field("options", opts))
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	queryCtx := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		queryCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	query := database.Query[tables.Product](ps.db)
	query = ps.applyFilters(query, opts)
	query = ps.applySorting(query, opts)

	result, err := database.Paginate(query, queryCtx, opts.Page, opts.PageSize)
	if err != nil {
		ps.logger.Error("Failed to fetch products",
			gecho.Field("error", err),
			gecho.Field("page", opts.Page),
			gecho.Field("pageSize", opts.PageSize),
			gecho.Field("duration", time.Since(startTime)))
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	ps.logger.Debug("Products fetched successfully",
		gecho.Field("count", len(result.Data)),
		gecho.Field("total", result.Pagination.Total),
		gecho.Field("page", result.Pagination.Page),
		gecho.Field("duration", time.Since(startTime)),
	)

	return &ProductListResult{
		Products:   result.Data,
		Pagination: result.Pagination,
		Filters:    *opts,
		QueryTime:  time.Since(startTime),
	}, nil
}

// GetAvailableProducts is the storefront listing: available products only,
// served from cache when possible
func (ps *ProductService) GetAvailableProducts(ctx context.Context, opts *ProductListOptions) (*ProductListResult, error) {
	startTime := time.Now()

	if opts == nil {
		opts = &ProductListOptions{}
	}
	opts.AvailableOnly = true
	ps.applyDefaultOptions(opts)

	cachedProducts, err := ps.cacheService.GetProductList(opts.cacheKey())
	if err != nil {
		ps.logger.Warn("Failed to get products from cache", gecho.Field("error", err))
	} else if cachedProducts != nil {
		ps.logger.Debug("Products retrieved from cache",
			gecho.Field("count", len(cachedProducts)),
			gecho.Field("page", opts.Page),
			gecho.Field("duration", time.Since(startTime)),
		)

		return &ProductListResult{
			Products: cachedProducts,
			Pagination: database.Pagination{
				Page:     opts.Page,
				PageSize: opts.PageSize,
				Total:    len(cachedProducts), // approximate, exact total comes from uncached path
			},
			Filters:   *opts,
			QueryTime: time.Since(startTime),
		}, nil
	}

	result, err := ps.GetAllProducts(ctx, opts)
	if err != nil {
		return nil, err
	}

	// Cache the page asynchronously
	go func() {
		if err := ps.cacheService.SetProductList(opts.cacheKey(), result.Products); err != nil {
			ps.logger.Warn("Failed to cache product page", gecho.Field("error", err))
		}
	}()

	return result, nil
}

// GetProductByID retrieves a single product by ID with caching
func (ps *ProductService) GetProductByID(ctx context.Context, id string) (*tables.Product, error) {
	startTime := time.Now()

	cachedProduct, err := ps.cacheService.GetProductByID(id)
	if err != nil {
		ps.logger.Warn("Failed to get product from cache", gecho.Field("error", err), gecho.Field("id", id))
	} else if cachedProduct != nil {
		ps.logger.Debug("Product retrieved from cache", gecho.Field("id", id), gecho.Field("duration", time.Since(startTime)))
		return cachedProduct, nil
	}

	product, err := database.Query[tables.Product](ps.db).
		Where("id", id).
		Timeout(5 * time.Second).
		First(ctx)
	if err != nil {
		ps.logger.Error("Failed to fetch product by ID",
			gecho.Field("id", id),
			gecho.Field("error", err),
			gecho.Field("duration", time.Since(startTime)),
		)
		return nil, lib.MapDBError(err)
	}

	if product == nil {
		ps.logger.Warn("Product not found", gecho.Field("id", id))
		return nil, lib.ErrNotFound
	}

	// Cache the product asynchronously
	go func() {
		if err := ps.cacheService.SetProductByID(product); err != nil {
			ps.logger.Warn("Failed to cache product", gecho.Field("error", err), gecho.Field("id", id))
		}
	}()

	return product, nil
}

// GetProductsByIds retrieves multiple products by their IDs
func (ps *ProductService) GetProductsByIds(ctx context.Context, ids []uuid.UUID) ([]tables.Product, error) {
	if len(ids) == 0 {
		return []tables.Product{}, nil
	}

	idInterfaces := make([]any, len(ids))
	for i, id := range ids {
		idInterfaces[i] = id
	}

	products, err := database.Query[tables.Product](ps.db).
		WhereIn("id", idInterfaces).
		Timeout(10 * time.Second).
		All(ctx)
	if err != nil {
		ps.logger.Error("Failed to fetch products by IDs",
			gecho.Field("ids", ids),
			gecho.Field("error", err),
		)
		return nil, lib.MapDBError(err)
	}

	return products, nil
}

// CreateProduct inserts a new catalog product
func (ps *ProductService) CreateProduct(ctx context.Context, req *structs.CreateProductRequest) (*tables.Product, error) {
	category := tables.ProductCategory(req.Category)
	if !category.Valid() {
		return nil, fmt.Errorf("invalid category: %s", req.Category)
	}

	unit := req.Unit
	if unit == "" {
		unit = "kg"
	}

	product := &tables.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Category:      category,
		StockQuantity: req.StockQuantity,
		IsAvailable:   req.IsAvailable,
		Unit:          unit,
		ImageURL:      req.ImageURL,
		Origin:        req.Origin,
	}

	product, err := database.Query[tables.Product](ps.db).Insert(ctx, product)
	if err != nil {
		ps.logger.Error("Failed to create product", gecho.Field("error", err), gecho.Field("name", req.Name))
		return nil, lib.MapDBError(err)
	}

	if err := ps.cacheService.InvalidateProductCaches(product.ID); err != nil {
		ps.logger.Warn("Failed to invalidate product caches after create", gecho.Field("error", err))
	}

	ps.logger.Info("Product created", gecho.Field("product_id", product.ID), gecho.Field("name", product.Name))
	return product, nil
}

// UpdateProduct applies a partial update; nil fields are left untouched
func (ps *ProductService) UpdateProduct(ctx context.Context, req *structs.UpdateProductRequest) (*tables.Product, error) {
	productId, err := uuid.Parse(req.Id)
	if err != nil {
		return nil, fmt.Errorf("invalid product ID: %s", req.Id)
	}

	updates := map[string]any{
		"updated_at": time.Now(),
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Category != nil {
		category := tables.ProductCategory(*req.Category)
		if !category.Valid() {
			return nil, fmt.Errorf("invalid category: %s", *req.Category)
		}
		updates["category"] = category
	}
	if req.StockQuantity != nil {
		updates["stock_quantity"] = *req.StockQuantity
	}
	if req.IsAvailable != nil {
		updates["is_available"] = *req.IsAvailable
	}
	if req.Unit != nil {
		updates["unit"] = *req.Unit
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.Origin != nil {
		updates["origin"] = *req.Origin
	}

	affected, err := database.Query[tables.Product](ps.db).Where("id", productId).Update(ctx, updates)
	if err != nil {
		ps.logger.Error("Failed to update product", gecho.Field("error", err), gecho.Field("product_id", productId))
		return nil, lib.MapDBError(err)
	}
	if affected == 0 {
		return nil, lib.ErrNotFound
	}

	if err := ps.cacheService.InvalidateProductCaches(productId); err != nil {
		ps.logger.Warn("Failed to invalidate product caches after update", gecho.Field("error", err))
	}

	product, err := database.Query[tables.Product](ps.db).Where("id", productId).First(ctx)
	if err != nil {
		return nil, lib.MapDBError(err)
	}

	ps.logger.Info("Product updated", gecho.Field("product_id", productId))
	return product, nil
}

// DeleteProduct removes a product from the catalog. Products referenced by
// order items are protected by ON DELETE RESTRICT; those deletes surface as
// lib.ErrRestricted and the caller should disable availability instead.
func (ps *ProductService) DeleteProduct(ctx context.Context, productId uuid.UUID) error {
	affected, err := database.Query[tables.Product](ps.db).Where("id", productId).Delete(ctx)
	if err != nil {
		mappedErr := lib.MapDBError(err)
		if mappedErr == lib.ErrRestricted {
			ps.logger.Warn("Product delete blocked by order history", gecho.Field("product_id", productId))
		} else {
			ps.logger.Error("Failed to delete product", gecho.Field("error", mappedErr), gecho.Field("product_id", productId))
		}
		return mappedErr
	}
	if affected == 0 {
		return lib.ErrNotFound
	}

	if err := ps.cacheService.InvalidateProductCaches(productId); err != nil {
		ps.logger.Warn("Failed to invalidate product caches after delete", gecho.Field("error", err))
	}

	ps.logger.Info("Product deleted", gecho.Field("product_id", productId))
	return nil
}

// applyDefaultOptions sets default values for unspecified options
func (ps *ProductService) applyDefaultOptions(opts *ProductListOptions) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.PageSize < 1 {
		opts.PageSize = 20
	}
	if opts.PageSize > 100 {
		opts.PageSize = 100 // Max page size for performance
	}
	if opts.SortBy == "" {
		opts.SortBy = "created_at"
	}
	if opts.SortDirection == "" {
		opts.SortDirection = "DESC"
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
}

// validateOptions validates the provided options
func (ps *ProductService) validateOptions(opts *ProductListOptions) error {
	validSortFields := map[string]bool{
		"created_at": true,
		"updated_at": true,
		"price":      true,
		"name":       true,
	}
	if !validSortFields[opts.SortBy] {
		return fmt.Errorf("invalid sort field: %s", opts.SortBy)
	}

	if opts.SortDirection != "ASC" && opts.SortDirection != "DESC" {
		return fmt.Errorf("invalid sort direction: %s (must be ASC or DESC)", opts.SortDirection)
	}

	if opts.Category != nil && !opts.Category.Valid() {
		return fmt.Errorf("invalid category: %s", *opts.Category)
	}

	if opts.MinPrice != nil && opts.MaxPrice != nil && *opts.MinPrice > *opts.MaxPrice {
		return fmt.Errorf("min_price cannot be greater than max_price")
	}

	return nil
}

// applyFilters applies all filter conditions to the query
func (ps *ProductService) applyFilters(query *database.QueryBuilder[tables.Product], opts *ProductListOptions) *database.QueryBuilder[tables.Product] {
	if opts.AvailableOnly {
		query = query.Where("is_available", true).WhereOp("stock_quantity", ">", 0)
	}

	if opts.Category != nil {
		query = query.Where("category", *opts.Category)
	}

	if opts.MinPrice != nil {
		query = query.WhereOp("price", ">=", *opts.MinPrice)
	}
	if opts.MaxPrice != nil {
		query = query.WhereOp("price", "<=", *opts.MaxPrice)
	}

	if opts.SearchTerm != "" {
		searchPattern := "%" + opts.SearchTerm + "%"
		query = query.WhereRaw(
			"(name ILIKE ? OR description ILIKE ? OR origin ILIKE ?)",
			searchPattern, searchPattern, searchPattern,
		)
	}

	return query
}

// applySorting applies sorting to the query
func (ps *ProductService) applySorting(query *database.QueryBuilder[tables.Product], opts *ProductListOptions) *database.QueryBuilder[tables.Product] {
	direction := database.ASC
	if opts.SortDirection == "DESC" {
		direction = database.DESC
	}
	return query.OrderBy(opts.SortBy, direction)
}
