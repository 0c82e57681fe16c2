package storefront

import (
	"log/slog"
	"net/http"

	"github.com/brookins/tradewind/internal/cookie"
	"github.com/brookins/tradewind/internal/domain"
	"github.com/brookins/tradewind/internal/handler"
	"github.com/brookins/tradewind/internal/service"
	"github.com/brookins/tradewind/internal/shipping"
)

// Handler renders the HTML storefront pages.
type Handler struct {
	products service.ProductService
	carts    service.CartService
	shipping shipping.Quoter
	renderer *handler.Renderer
	cookies  *cookie.Config
	logger   *slog.Logger

	storeName     string
	featuredCount int
}

type Config struct {
	StoreName     string
	FeaturedCount int
}

func New(products service.ProductService, carts service.CartService, quoter shipping.Quoter, renderer *handler.Renderer, cookies *cookie.Config, cfg Config, logger *slog.Logger) *Handler {
	featured := cfg.FeaturedCount
	if featured <= 0 {
		featured = 4
	}
	return &Handler{
		products:      products,
		carts:         carts,
		shipping:      quoter,
		renderer:      renderer,
		cookies:       cookies,
		logger:        logger,
		storeName:     cfg.StoreName,
		featuredCount: featured,
	}
}

// pageData carries the fields every page template expects.
type pageData struct {
	StoreName string
	Title     string
	CartCount int
}

// basePage loads the shared chrome for a request. The cart count is best
// effort; a missing or broken cart renders as an empty badge rather than
// failing the page.
func (h *Handler) basePage(r *http.Request, title string) pageData {
	data := pageData{
		StoreName: h.storeName,
		Title:     title,
	}

	if id := cookie.Get(r, cookie.CartCookieName); id != "" {
		cart, err := h.carts.Get(r.Context(), id)
		if err == nil {
			data.CartCount = cart.ItemCount()
		}
	}

	return data
}

// currentCart returns the request's cart, or nil when there is none. Stale
// cookies are treated the same as missing ones.
func (h *Handler) currentCart(r *http.Request) (*domain.Cart, error) {
	id := cookie.Get(r, cookie.CartCookieName)
	if id == "" {
		return nil, nil
	}

	cart, err := h.carts.Get(r.Context(), id)
	if err != nil {
		if domain.IsCode(err, domain.ENOTFOUND) {
			return nil, nil
		}
		return nil, err
	}
	return cart, nil
}
