package routes

import (
	"github.com/brookins/tradewind/internal/router"
)

// RegisterStorefrontRoutes registers the customer-facing HTML pages.
func RegisterStorefrontRoutes(r *router.Router, deps StorefrontDeps) {
	r.Get("/", deps.Handler.Home)

	// Product browsing
	r.Get("/products", deps.Handler.ListProducts)
	r.Get("/products/{slug}", deps.Handler.ProductDetail)

	// Cart and checkout. Cart mutations go through the JSON API; these pages
	// only read.
	r.Get("/cart", deps.Handler.Cart)
	r.Get("/checkout", deps.Handler.Checkout)
	r.Get("/checkout/success", deps.Handler.CheckoutSuccess)

	if deps.StaticDir != "" {
		r.Static("/static", deps.StaticDir)
	}
}
