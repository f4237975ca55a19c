package products

import (
	"errors"
	"freshcatch_server/handling"
	"freshcatch_server/lib"
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// FetchProducts handles GET /products: the storefront listing with
// filtering, pagination, and sorting. Only available products are shown.
func (p *ProductRoutesManager) FetchProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	opts, err := handling.ParseProductListOptions(r)
	if err != nil {
		p.logger.Warn("Invalid query parameters", "error", err)
		gecho.BadRequest(w,
			gecho.WithMessage("error.invalidQueryParameters"),
			gecho.WithData(err.Error()),
			gecho.Send(),
		)
		return
	}

	p.logger.Debug("Fetching products",
		gecho.Field("page", opts.Page),
		gecho.Field("page_size", opts.PageSize),
		gecho.Field("search", opts.SearchTerm),
	)

	result, err := p.productService.GetAvailableProducts(ctx, opts)
	if err != nil {
		p.logger.Error("Failed to fetch products", "error", err)
		gecho.InternalServerError(w,
			gecho.WithMessage("error.products.failedToFetch"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"products":   result.Products,
			"pagination": result.Pagination,
			"filters":    result.Filters,
			"meta": map[string]any{
				"query_time_ms": result.QueryTime.Milliseconds(),
				"count":         len(result.Products),
			},
		}),
		gecho.Send(),
	)
}

// FetchProductByID handles GET /products/{id}
func (p *ProductRoutesManager) FetchProductByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	idStr := chi.URLParam(r, "id")

	id, err := uuid.Parse(idStr)
	if err != nil || id == uuid.Nil {
		p.logger.Warn("Invalid product ID format", "id", idStr, "error", err)
		gecho.BadRequest(w,
			gecho.WithMessage("error.products.invalidProductId"),
			gecho.Send(),
		)
		return
	}

	product, err := p.productService.GetProductByID(ctx, id.String())
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w,
				gecho.WithMessage("error.products.notFound"),
				gecho.Send(),
			)
			return
		}

		p.logger.Error("Failed to fetch product by ID", "id", id, "error", err)
		gecho.InternalServerError(w,
			gecho.WithMessage("error.products.failedToFetchOne"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"product": product,
		}),
		gecho.Send(),
	)
}
