package admin

import (
	"freshcatch_server/handling"
	"freshcatch_server/lib"
	"freshcatch_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ListAllProducts returns the full catalog including unavailable and
// out-of-stock products, unlike the public listing.
func (arm *AdminRoutesManager) ListAllProducts(w http.ResponseWriter, r *http.Request) {
	opts, err := handling.ParseProductListOptions(r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.product.invalidQueryParameters"), gecho.Send())
		return
	}

	result, err := arm.productService.GetAllProducts(r.Context(), opts)
	if err != nil {
		handling.HandleError(err, "listing products", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.product.productsFetched"),
		gecho.WithData(result),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) CreateProduct(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.CreateProductRequest](r)
	if err != nil {
		arm.logger.Warn("Invalid product payload", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("error.product.invalidPayload"), gecho.Send())
		return
	}

	product, err := arm.productService.CreateProduct(r.Context(), body)
	if err != nil {
		handling.HandleError(err, "creating product", arm.logger, w)
		return
	}

	arm.logger.Info("Product created", gecho.Field("product_id", product.ID), gecho.Field("name", product.Name))
	gecho.Success(w,
		gecho.WithMessage("success.product.productCreated"),
		gecho.WithData(product),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.UpdateProductRequest](r)
	if err != nil {
		arm.logger.Warn("Invalid product payload", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("error.product.invalidPayload"), gecho.Send())
		return
	}

	product, err := arm.productService.UpdateProduct(r.Context(), body)
	if err != nil {
		handling.HandleError(err, "updating product", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.product.productUpdated"),
		gecho.WithData(product),
		gecho.Send(),
	)
}

// DeleteProduct removes a product from the catalog. Products referenced by
// order history cannot be deleted; disable them instead.
func (arm *AdminRoutesManager) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.product.invalidProductId"), gecho.Send())
		return
	}

	if err := arm.productService.DeleteProduct(r.Context(), productId); err != nil {
		handling.HandleError(err, "deleting product", arm.logger, w)
		return
	}

	arm.logger.Info("Product deleted", gecho.Field("product_id", productId))
	gecho.Success(w,
		gecho.WithMessage("success.product.productDeleted"),
		gecho.Send(),
	)
}
