package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"math"
	"time"

	"github.com/brookins/tradewind/internal/domain"
	"github.com/brookins/tradewind/internal/postgres"
	"github.com/jackc/pgx/v5"
)

// CartService owns the cart entity lifecycle. Every mutation runs inside one
// transaction and finishes by recomputing the subtotal from a fresh read of
// all lines, so concurrent requests against the same cart are serialized by
// the store and never observe a partially-updated subtotal.
type CartService interface {
	Create(ctx context.Context) (*domain.Cart, error)
	Get(ctx context.Context, cartID string) (*domain.Cart, error)
	Add(ctx context.Context, cartID, productID string, quantity int) (*domain.Cart, error)
	UpdateQuantity(ctx context.Context, cartID, productID string, quantity int) (*domain.Cart, error)
	Remove(ctx context.Context, cartID, productID string) (*domain.Cart, error)
}

type cartService struct {
	db *postgres.DB
}

// NewCartService creates a new CartService backed by the given data access
// layer.
func NewCartService(db *postgres.DB) CartService {
	return &cartService{db: db}
}

// Create inserts a new empty cart with subtotal 0 and matching timestamps.
func (s *cartService) Create(ctx context.Context) (*domain.Cart, error) {
	id, err := generateCartID()
	if err != nil {
		return nil, domain.Internal(err, "cart.create", "failed to generate cart ID")
	}

	var cart *domain.Cart
	err = s.db.WithTx(ctx, func(tx pgx.Tx) error {
		cart, err = postgres.InsertCart(ctx, tx, id, time.Now().UTC())
		return err
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// Get fetches the cart row and its items. Returns ErrCartNotFound for an
// unknown ID.
func (s *cartService) Get(ctx context.Context, cartID string) (*domain.Cart, error) {
	var cart *domain.Cart
	err := s.db.WithTx(ctx, func(tx pgx.Tx) error {
		row, err := postgres.GetCartRow(ctx, tx, cartID)
		if err != nil {
			return mapNotFound(err, ErrCartNotFound)
		}
		items, err := postgres.GetCartItems(ctx, tx, cartID)
		if err != nil {
			return err
		}
		row.Items = items
		cart = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// Add puts quantity units of a product in the cart. If a line for the
// product already exists its quantity accumulates; otherwise a new line is
// inserted with the product's current price, name, and image as a snapshot.
// The product row is locked for the duration of the transaction so the
// inventory check cannot race a concurrent add from another cart. The check
// is against the quantity after merging with any existing line. On failure
// nothing is applied.
func (s *cartService) Add(ctx context.Context, cartID, productID string, quantity int) (*domain.Cart, error) {
	// Quantities are stored as int32; reject anything outside that range
	// before converting so oversized requests fail instead of wrapping.
	if quantity < 1 || quantity > math.MaxInt32 {
		return nil, ErrInvalidQuantity
	}

	var cart *domain.Cart
	err := s.db.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := postgres.GetCartRow(ctx, tx, cartID); err != nil {
			return mapNotFound(err, ErrCartNotFound)
		}

		product, err := postgres.GetForUpdate(ctx, tx, productID)
		if err != nil {
			return mapNotFound(err, ErrProductNotFound)
		}

		existing, found, err := postgres.GetItemQuantity(ctx, tx, cartID, productID)
		if err != nil {
			return err
		}

		// Merge in 64 bits so two large lines cannot wrap the check.
		merged := int64(quantity)
		if found {
			merged += int64(existing)
		}
		if int64(product.Inventory) < merged {
			return ErrInsufficientStock
		}
		newQuantity := int32(merged)

		now := time.Now().UTC()
		if found {
			if err := postgres.UpdateItemQuantity(ctx, tx, cartID, productID, newQuantity, now); err != nil {
				return err
			}
		} else {
			if err := postgres.InsertItem(ctx, tx, cartID, product, newQuantity, now); err != nil {
				return err
			}
		}

		cart, err = s.refresh(ctx, tx, cartID, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity sets a line's absolute quantity. A quantity of zero or
// below is a removal. The new quantity is re-validated against the product's
// current inventory under the same row lock used by Add.
func (s *cartService) UpdateQuantity(ctx context.Context, cartID, productID string, quantity int) (*domain.Cart, error) {
	if quantity <= 0 {
		return s.Remove(ctx, cartID, productID)
	}
	if quantity > math.MaxInt32 {
		return nil, ErrInvalidQuantity
	}

	var cart *domain.Cart
	err := s.db.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := postgres.GetCartRow(ctx, tx, cartID); err != nil {
			return mapNotFound(err, ErrCartNotFound)
		}

		product, err := postgres.GetForUpdate(ctx, tx, productID)
		if err != nil {
			return mapNotFound(err, ErrProductNotFound)
		}
		if product.Inventory < int32(quantity) {
			return ErrInsufficientStock
		}

		now := time.Now().UTC()
		if err := postgres.UpdateItemQuantity(ctx, tx, cartID, productID, int32(quantity), now); err != nil {
			return err
		}

		cart, err = s.refresh(ctx, tx, cartID, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// Remove deletes the line unconditionally. Removing a line that does not
// exist is a no-op that still returns the current cart.
func (s *cartService) Remove(ctx context.Context, cartID, productID string) (*domain.Cart, error) {
	var cart *domain.Cart
	err := s.db.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := postgres.GetCartRow(ctx, tx, cartID); err != nil {
			return mapNotFound(err, ErrCartNotFound)
		}

		if err := postgres.DeleteItem(ctx, tx, cartID, productID); err != nil {
			return err
		}

		var err error
		cart, err = s.refresh(ctx, tx, cartID, time.Now().UTC())
		return err
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// refresh recomputes the subtotal from a fresh read of all lines, persists
// it, and returns the full cart. Always a full recomputation, never an
// incremental update.
func (s *cartService) refresh(ctx context.Context, tx pgx.Tx, cartID string, now time.Time) (*domain.Cart, error) {
	items, err := postgres.GetCartItems(ctx, tx, cartID)
	if err != nil {
		return nil, err
	}

	subtotal := 0.0
	for i := range items {
		subtotal += items[i].LineTotal()
	}

	if err := postgres.UpdateSubtotal(ctx, tx, cartID, subtotal, now); err != nil {
		return nil, err
	}

	cart, err := postgres.GetCartRow(ctx, tx, cartID)
	if err != nil {
		return nil, mapNotFound(err, ErrCartNotFound)
	}
	cart.Items = items
	return cart, nil
}

// mapNotFound converts a store-level not-found into the service sentinel so
// callers can use errors.Is. Other errors pass through unchanged.
func mapNotFound(err, sentinel error) error {
	if domain.IsCode(err, domain.ENOTFOUND) {
		return sentinel
	}
	return err
}

// generateCartID generates a cryptographically secure opaque cart token.
func generateCartID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
