package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/brookins/tradewind/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// Cart statements are package-level functions over Queryable so the cart
// service can run them against the pool or inside an open transaction.

// InsertCart creates an empty cart row with subtotal 0 and matching
// timestamps.
func InsertCart(ctx context.Context, q Queryable, id string, now time.Time) (*domain.Cart, error) {
	_, err := q.Exec(ctx,
		"INSERT INTO carts (id, subtotal, created_at, updated_at) VALUES ($1, 0, $2, $2)",
		id, now)
	if err != nil {
		return nil, domain.Internal(err, "cart.create", "failed to insert cart")
	}
	return &domain.Cart{
		ID:        id,
		Items:     []domain.CartItem{},
		Subtotal:  0,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// GetCartRow fetches the cart row without its items.
func GetCartRow(ctx context.Context, q Queryable, cartID string) (*domain.Cart, error) {
	row := q.QueryRow(ctx,
		"SELECT id, subtotal, created_at, updated_at FROM carts WHERE id = $1", cartID)

	var (
		c        domain.Cart
		subtotal pgtype.Numeric
	)
	if err := row.Scan(&c.ID, &subtotal, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("cart.get", "cart", cartID)
		}
		return nil, domain.Internal(err, "cart.get", "failed to query cart")
	}

	var err error
	c.Subtotal, err = numericToFloat(subtotal)
	if err != nil {
		return nil, domain.Internal(err, "cart.get", "failed to convert cart subtotal")
	}
	return &c, nil
}

// GetCartItems returns the cart's lines in insertion order. The product's
// current slug is joined in for navigation; everything else on the line is
// the add-time snapshot.
func GetCartItems(ctx context.Context, q Queryable, cartID string) ([]domain.CartItem, error) {
	rows, err := q.Query(ctx,
		`SELECT ci.product_id::text, ci.quantity, ci.price, ci.name, ci.image, COALESCE(p.slug, '')
		 FROM cart_items ci
		 LEFT JOIN products p ON p.id = ci.product_id
		 WHERE ci.cart_id = $1
		 ORDER BY ci.created_at`,
		cartID)
	if err != nil {
		return nil, domain.Internal(err, "cart.items", "failed to query cart items")
	}
	defer rows.Close()

	items := []domain.CartItem{}
	for rows.Next() {
		var (
			item  domain.CartItem
			price pgtype.Numeric
		)
		if err := rows.Scan(&item.ProductID, &item.Quantity, &price, &item.Name, &item.Image, &item.Slug); err != nil {
			return nil, domain.Internal(err, "cart.items", "failed to scan cart item")
		}
		item.Price, err = numericToFloat(price)
		if err != nil {
			return nil, domain.Internal(err, "cart.items", "failed to convert item price")
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "cart.items", "failed to read cart items")
	}
	return items, nil
}

// GetItemQuantity returns the existing quantity for (cart, product), with
// found=false when no line exists.
func GetItemQuantity(ctx context.Context, q Queryable, cartID, productID string) (int32, bool, error) {
	var quantity int32
	err := q.QueryRow(ctx,
		"SELECT quantity FROM cart_items WHERE cart_id = $1 AND product_id = $2",
		cartID, productID).Scan(&quantity)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, domain.Internal(err, "cart.item", "failed to query cart item")
	}
	return quantity, true, nil
}

// InsertItem adds a new line with the product's current price, name, and
// first image as a point-in-time snapshot.
func InsertItem(ctx context.Context, q Queryable, cartID string, product *domain.Product, quantity int32, now time.Time) error {
	_, err := q.Exec(ctx,
		`INSERT INTO cart_items (cart_id, product_id, quantity, price, name, image, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`,
		cartID, product.ID, quantity, product.Price, product.Name, product.PrimaryImage(), now)
	if err != nil {
		return domain.Internal(err, "cart.item_insert", "failed to insert cart item")
	}
	return nil
}

// UpdateItemQuantity sets the line's absolute quantity.
func UpdateItemQuantity(ctx context.Context, q Queryable, cartID, productID string, quantity int32, now time.Time) error {
	_, err := q.Exec(ctx,
		"UPDATE cart_items SET quantity = $1, updated_at = $2 WHERE cart_id = $3 AND product_id = $4",
		quantity, now, cartID, productID)
	if err != nil {
		return domain.Internal(err, "cart.item_update", "failed to update cart item")
	}
	return nil
}

// DeleteItem removes the line. Deleting a line that does not exist is not an
// error.
func DeleteItem(ctx context.Context, q Queryable, cartID, productID string) error {
	_, err := q.Exec(ctx,
		"DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2",
		cartID, productID)
	if err != nil {
		return domain.Internal(err, "cart.item_delete", "failed to delete cart item")
	}
	return nil
}

// UpdateSubtotal persists the recomputed subtotal and bumps the cart's
// updated timestamp.
func UpdateSubtotal(ctx context.Context, q Queryable, cartID string, subtotal float64, now time.Time) error {
	_, err := q.Exec(ctx,
		"UPDATE carts SET subtotal = $1, updated_at = $2 WHERE id = $3",
		subtotal, now, cartID)
	if err != nil {
		return domain.Internal(err, "cart.subtotal", "failed to update cart subtotal")
	}
	return nil
}
