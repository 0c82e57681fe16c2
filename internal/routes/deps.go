package routes

import (
	"github.com/brookins/tradewind/internal/handler/api"
	"github.com/brookins/tradewind/internal/handler/storefront"
)

// StorefrontDeps contains dependencies for the HTML storefront routes.
type StorefrontDeps struct {
	Handler *storefront.Handler

	// StaticDir is the filesystem path served under /static/.
	StaticDir string
}

// APIDeps contains dependencies for the JSON API routes.
type APIDeps struct {
	CartHandler *api.CartHandler
}
