package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OrderStatus enumerates the lifecycle states of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// OrderItem is one product's quantity and captured price within an order.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Quantity  int32   `json:"quantity"`
	Price     float64 `json:"price"`
	Name      string  `json:"name"`
}

// ShippingAddress is the destination for an order.
type ShippingAddress struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Order models a completed checkout. The checkout flow is simulated and no
// persistence path exists for orders yet; the type backs the checkout view
// models only.
type Order struct {
	ID              string          `json:"id"`
	UserID          *string         `json:"userId"`
	Items           []OrderItem     `json:"items"`
	Total           float64         `json:"total"`
	Status          OrderStatus     `json:"status"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentIntent   string          `json:"paymentIntent,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// NewOrderNumber generates a short human-readable order reference for the
// confirmation page, e.g. "TW-4F2A1B9C".
func NewOrderNumber() string {
	id := uuid.New()
	return fmt.Sprintf("TW-%s", strings.ToUpper(id.String()[:8]))
}
