package storefront

import (
	"net/http"

	"github.com/brookins/tradewind/internal/domain"
	"github.com/brookins/tradewind/internal/shipping"
)

type checkoutPage struct {
	pageData
	Cart            *domain.Cart
	ShippingOptions []shipping.Option
	Shipping        float64
	Total           float64
}

type checkoutSuccessPage struct {
	pageData
	OrderNumber string
}

// Checkout handles GET /checkout. An empty cart has nothing to check out, so
// it redirects back to the cart page. The rendered total uses the preselected
// shipping option; picking another option is handled client-side.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	cart, err := h.currentCart(r)
	if err != nil {
		h.logger.Error("failed to load cart for checkout", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if cart == nil || len(cart.Items) == 0 {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	options, err := h.shipping.Quote(r.Context(), cart.Subtotal)
	if err != nil {
		h.logger.Error("failed to quote shipping", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	shippingCost := 0.0
	for _, opt := range options {
		if opt.Selected {
			shippingCost = opt.Cost
			break
		}
	}

	h.renderer.RenderHTTP(w, r, "checkout", checkoutPage{
		pageData:        h.basePage(r, "Checkout"),
		Cart:            cart,
		ShippingOptions: options,
		Shipping:        shippingCost,
		Total:           cart.Subtotal + shippingCost,
	})
}

// CheckoutSuccess handles GET /checkout/success. Payment is simulated on the
// client, so arriving here completes the order: the cart cookie is cleared
// and the confirmation shown. No order record is persisted.
func (h *Handler) CheckoutSuccess(w http.ResponseWriter, r *http.Request) {
	orderNumber := r.URL.Query().Get("order")
	if orderNumber == "" {
		orderNumber = domain.NewOrderNumber()
	}

	h.cookies.ClearCart(w)

	data := checkoutSuccessPage{
		pageData:    h.basePage(r, "Order Confirmed"),
		OrderNumber: orderNumber,
	}
	// The cart was just cleared; don't show a stale badge count.
	data.CartCount = 0

	h.renderer.RenderHTTP(w, r, "checkout_success", data)
}
