package storefront

import (
	"net/http"

	"github.com/brookins/tradewind/internal/domain"
)

type homePage struct {
	pageData
	Featured   []domain.Product
	Categories []string
}

// Home handles GET /. The featured section shows the newest products.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	page, err := h.products.List(r.Context(), domain.ProductQuery{
		Sort:  "-createdAt",
		Page:  1,
		Limit: h.featuredCount,
	})
	if err != nil {
		h.logger.Error("failed to load featured products", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	categories, err := h.products.Categories(r.Context())
	if err != nil {
		h.logger.Error("failed to load categories", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.renderer.RenderHTTP(w, r, "home", homePage{
		pageData:   h.basePage(r, h.storeName),
		Featured:   page.Products,
		Categories: categories,
	})
}
