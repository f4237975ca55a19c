package cart

import (
	"freshcatch_server/api/middleware"
	"freshcatch_server/handling"
	"freshcatch_server/lib"
	"freshcatch_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// GetCart returns the authenticated user's cart with product details
func (crm *CartRoutesManager) GetCart(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("error.auth.invalidOrMissingAccessToken"), gecho.Send())
		return
	}

	items, err := crm.cartService.GetCart(r.Context(), claims.Sub)
	if err != nil {
		handling.HandleError(err, "fetching cart", crm.logger, w)
		return
	}

	var total uint64
	for _, item := range items {
		if item.Product != nil {
			total += item.Product.Price * uint64(item.Quantity)
		}
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"items": items,
			"count": len(items),
			"total": total,
		}),
		gecho.Send(),
	)
}

// AddItem handles POST /cart
func (crm *CartRoutesManager) AddItem(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("error.auth.invalidOrMissingAccessToken"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.CartItemRequest](r)
	if err != nil {
		crm.logger.Warn("Invalid cart item request", gecho.Field("error", err))
		gecho.BadRequest(w,
			gecho.WithMessage("error.cart.invalidItem"),
			gecho.WithData(err.Error()),
			gecho.Send(),
		)
		return
	}

	item, err := crm.cartService.AddItem(r.Context(), claims.Sub, body)
	if err != nil {
		handling.HandleError(err, "adding cart item", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.cart.itemAdded"),
		gecho.WithData(map[string]any{"item": item}),
		gecho.Send(),
	)
}

// UpdateItem handles PUT /cart/{id}
func (crm *CartRoutesManager) UpdateItem(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("error.auth.invalidOrMissingAccessToken"), gecho.Send())
		return
	}

	itemId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.cart.invalidItemId"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.CartItemRequest](r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.cart.invalidItem"),
			gecho.WithData(err.Error()),
			gecho.Send(),
		)
		return
	}

	item, err := crm.cartService.UpdateItemQuantity(r.Context(), claims.Sub, itemId, body.Quantity)
	if err != nil {
		handling.HandleError(err, "updating cart item", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.cart.itemUpdated"),
		gecho.WithData(map[string]any{"item": item}),
		gecho.Send(),
	)
}

// RemoveItem handles DELETE /cart/{id}
func (crm *CartRoutesManager) RemoveItem(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("error.auth.invalidOrMissingAccessToken"), gecho.Send())
		return
	}

	itemId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.cart.invalidItemId"), gecho.Send())
		return
	}

	if err := crm.cartService.RemoveItem(r.Context(), claims.Sub, itemId); err != nil {
		handling.HandleError(err, "removing cart item", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.cart.itemRemoved"),
		gecho.Send(),
	)
}

// ClearCart handles DELETE /cart
func (crm *CartRoutesManager) ClearCart(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("error.auth.invalidOrMissingAccessToken"), gecho.Send())
		return
	}

	if err := crm.cartService.ClearCart(r.Context(), claims.Sub); err != nil {
		handling.HandleError(err, "clearing cart", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.cart.cleared"),
		gecho.Send(),
	)
}
