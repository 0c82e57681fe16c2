package domain

import "time"

// Cart is a session-scoped collection of selected products. The ID is an
// opaque token correlated with the cartId cookie. Subtotal is persisted
// redundantly but is always a full recomputation over the current items,
// never an incremental update.
type Cart struct {
	ID        string     `json:"id"`
	Items     []CartItem `json:"items"`
	Subtotal  float64    `json:"subtotal"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// CartItem is one product's line within a cart, identified by
// (cart, product). Price, name, and image are captured when the item is
// first added; a later product price change does not reprice existing lines.
type CartItem struct {
	ProductID string  `json:"productId"`
	Quantity  int32   `json:"quantity"`
	Price     float64 `json:"price"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Slug      string  `json:"slug"`
}

// LineTotal returns the extended price for this line.
func (i *CartItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

// ItemCount returns the total quantity across all lines.
func (c *Cart) ItemCount() int {
	n := 0
	for _, item := range c.Items {
		n += int(item.Quantity)
	}
	return n
}
