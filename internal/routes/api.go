package routes

import (
	"github.com/brookins/tradewind/internal/router"
)

// RegisterAPIRoutes registers the JSON cart API used by the storefront's
// client-side widgets.
func RegisterAPIRoutes(r *router.Router, deps APIDeps) {
	r.Get("/api/cart", deps.CartHandler.Get)
	r.Post("/api/cart", deps.CartHandler.Add)
	r.Put("/api/cart", deps.CartHandler.Update)
	r.Delete("/api/cart", deps.CartHandler.Remove)
}
