package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/brookins/tradewind/internal/cookie"
	"github.com/brookins/tradewind/internal/domain"
	"github.com/brookins/tradewind/internal/handler"
	"github.com/brookins/tradewind/internal/service"
)

// CartHandler serves the JSON cart API consumed by the storefront widgets.
// The cart is identified by an opaque cookie token; requests without a valid
// token transparently get a fresh cart.
type CartHandler struct {
	carts    service.CartService
	cookies  *cookie.Config
	validate *validator.Validate
	logger   *slog.Logger
}

func NewCartHandler(carts service.CartService, cookies *cookie.Config, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		carts:    carts,
		cookies:  cookies,
		validate: validator.New(),
		logger:   logger,
	}
}

// Quantities are capped at the storage width (int32) so oversized values are
// rejected here instead of wrapping downstream.
type addItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1,max=2147483647"`
}

type updateItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=0,max=2147483647"`
}

type cartResponse struct {
	Cart *domain.Cart `json:"cart"`
}

// Get handles GET /api/cart. It returns the current cart, creating one if the
// request carries no usable cart cookie.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	cart, err := h.getOrCreateCart(w, r)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, cartResponse{Cart: cart})
}

// Add handles POST /api/cart. Adding a product already in the cart merges the
// quantities rather than creating a second line.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("api.cart.add", "invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("api.cart.add", validationMessage(err)))
		return
	}

	cart, err := h.getOrCreateCart(w, r)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	updated, err := h.carts.Add(r.Context(), cart.ID, req.ProductID, req.Quantity)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, cartResponse{Cart: updated})
}

// Update handles PUT /api/cart. Setting quantity to zero removes the line.
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("api.cart.update", "invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("api.cart.update", validationMessage(err)))
		return
	}

	cartID, ok := h.cartID(r)
	if !ok {
		handler.ErrorResponse(w, r, service.ErrCartNotFound)
		return
	}

	updated, err := h.carts.UpdateQuantity(r.Context(), cartID, req.ProductID, req.Quantity)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, cartResponse{Cart: updated})
}

// Remove handles DELETE /api/cart?productId=... Removing a product that is not
// in the cart succeeds and returns the cart unchanged.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	productID := r.URL.Query().Get("productId")
	if productID == "" {
		handler.ErrorResponse(w, r, domain.Invalid("api.cart.remove", "productId query parameter is required"))
		return
	}

	cartID, ok := h.cartID(r)
	if !ok {
		handler.ErrorResponse(w, r, service.ErrCartNotFound)
		return
	}

	updated, err := h.carts.Remove(r.Context(), cartID, productID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, cartResponse{Cart: updated})
}

// cartID reads the cart token from the request cookie.
func (h *CartHandler) cartID(r *http.Request) (string, bool) {
	id := cookie.Get(r, cookie.CartCookieName)
	return id, id != ""
}

// getOrCreateCart resolves the caller's cart. A missing cookie or a token that
// no longer matches a cart both result in a fresh cart and a new cookie.
func (h *CartHandler) getOrCreateCart(w http.ResponseWriter, r *http.Request) (*domain.Cart, error) {
	if id, ok := h.cartID(r); ok {
		cart, err := h.carts.Get(r.Context(), id)
		if err == nil {
			return cart, nil
		}
		if !errors.Is(err, service.ErrCartNotFound) && !domain.IsCode(err, domain.ENOTFOUND) {
			return nil, err
		}
		h.logger.Debug("stale cart cookie, creating new cart", "cart_id", id)
	}

	cart, err := h.carts.Create(r.Context())
	if err != nil {
		return nil, err
	}
	h.cookies.SetCart(w, cart.ID)
	return cart, nil
}

// validationMessage turns the first validator failure into a user-facing
// message without exposing struct internals.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return jsonField(fe.Field()) + " is required"
		case "min":
			return jsonField(fe.Field()) + " must be at least " + fe.Param()
		}
		return jsonField(fe.Field()) + " is invalid"
	}
	return "invalid request"
}

func jsonField(field string) string {
	switch field {
	case "ProductID":
		return "productId"
	case "Quantity":
		return "quantity"
	}
	return field
}
