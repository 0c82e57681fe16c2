package storefront

import (
	"net/http"

	"github.com/brookins/tradewind/internal/domain"
)

type cartPage struct {
	pageData
	Cart    *domain.Cart
	IsEmpty bool
}

// Cart handles GET /cart. Visitors without a cart see the empty state; no
// cart row is created just for looking at the page.
func (h *Handler) Cart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.currentCart(r)
	if err != nil {
		h.logger.Error("failed to load cart", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.renderer.RenderHTTP(w, r, "cart", cartPage{
		pageData: h.basePage(r, "Your Cart"),
		Cart:     cart,
		IsEmpty:  cart == nil || len(cart.Items) == 0,
	})
}
