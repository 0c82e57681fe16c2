// Package cookie provides the helpers for the storefront's cookies. All
// cookies are host-only (no Domain attribute), HttpOnly, and strict
// same-site.
package cookie

import (
	"net/http"
)

// CartCookieName identifies the visitor's cart. The value is an opaque
// token; the cart itself lives in the database.
const CartCookieName = "cartId"

// CartMaxAge is how long the cart cookie persists. Abandoned carts outlive
// it in the database; there is no cleanup job.
const CartMaxAge = 30 * 24 * 60 * 60 // 30 days

// Config holds cookie security settings.
type Config struct {
	// Secure requires HTTPS for the cookie. True outside development.
	Secure bool
}

func NewConfig(secure bool) *Config {
	return &Config{Secure: secure}
}

// SetCart sets the cart cookie: 30-day max age, path "/", host-only, not
// accessible to scripts, strict same-site.
func (c *Config) SetCart(w http.ResponseWriter, cartID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CartCookieName,
		Value:    cartID,
		Path:     "/",
		MaxAge:   CartMaxAge,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearCart removes the cart cookie.
func (c *Config) ClearCart(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CartCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// Get retrieves a cookie value from the request.
// Returns empty string if cookie not found.
func Get(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
