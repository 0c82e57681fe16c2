// Package shipping quotes delivery options for the checkout page. The demo
// store ships nothing, so quotes are display-only; no labels, no tracking.
package shipping

import "context"

// Option is one shippable service offered at checkout.
type Option struct {
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Cost     float64 `json:"cost"`
	DaysMin  int     `json:"daysMin"`
	DaysMax  int     `json:"daysMax"`
	Selected bool    `json:"selected"`
}

// Quoter returns the shipping options available for an order subtotal.
type Quoter interface {
	Quote(ctx context.Context, subtotal float64) ([]Option, error)
}
