package storefront

import (
	"net/http"
	"strconv"

	"github.com/brookins/tradewind/internal/domain"
)

type productListPage struct {
	pageData
	Products   []domain.Product
	Categories []string
	Total      int

	// Active filters, echoed back into the filter form and pagination links.
	Category string
	Search   string
	Sort     string

	Page       int
	TotalPages int
	HasPrev    bool
	HasNext    bool
}

type productDetailPage struct {
	pageData
	Product *domain.Product
	Related []domain.Product
	InStock bool
}

// ListProducts handles GET /products with optional category, search, sort,
// page and limit query parameters.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := domain.ProductQuery{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
		Sort:     r.URL.Query().Get("sort"),
		Page:     queryInt(r, "page", 1),
		Limit:    queryInt(r, "limit", 0),
	}

	page, err := h.products.List(r.Context(), query)
	if err != nil {
		if domain.IsCode(err, domain.EINVALID) {
			http.Error(w, domain.ErrorMessage(err), http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to list products", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	categories, err := h.products.Categories(r.Context())
	if err != nil {
		h.logger.Error("failed to load categories", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	limit := page.Limit
	totalPages := 0
	if limit > 0 {
		totalPages = (page.Total + limit - 1) / limit
	}

	h.renderer.RenderHTTP(w, r, "products", productListPage{
		pageData:   h.basePage(r, "Products"),
		Products:   page.Products,
		Categories: categories,
		Total:      page.Total,
		Category:   query.Category,
		Search:     query.Search,
		Sort:       query.Sort,
		Page:       page.Page,
		TotalPages: totalPages,
		HasPrev:    page.Page > 1,
		HasNext:    page.Page < totalPages,
	})
}

// ProductDetail handles GET /products/{slug}.
func (h *Handler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	product, err := h.products.GetBySlug(r.Context(), slug)
	if err != nil {
		if domain.IsCode(err, domain.ENOTFOUND) {
			http.NotFound(w, r)
			return
		}
		h.logger.Error("failed to load product", "slug", slug, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	related, err := h.products.Related(r.Context(), product.ID, 0)
	if err != nil {
		// Related products are decoration; the detail page still renders.
		h.logger.Warn("failed to load related products", "product_id", product.ID, "error", err)
		related = nil
	}

	h.renderer.RenderHTTP(w, r, "product", productDetailPage{
		pageData: h.basePage(r, product.Name),
		Product:  product,
		Related:  related,
		InStock:  product.Inventory > 0,
	})
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
