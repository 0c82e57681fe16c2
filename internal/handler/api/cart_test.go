package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brookins/tradewind/internal/cookie"
	"github.com/brookins/tradewind/internal/domain"
	"github.com/brookins/tradewind/internal/service"
)

type mockCartService struct {
	createFn func(ctx context.Context) (*domain.Cart, error)
	getFn    func(ctx context.Context, cartID string) (*domain.Cart, error)
	addFn    func(ctx context.Context, cartID, productID string, quantity int) (*domain.Cart, error)
	updateFn func(ctx context.Context, cartID, productID string, quantity int) (*domain.Cart, error)
	removeFn func(ctx context.Context, cartID, productID string) (*domain.Cart, error)
}

func (m *mockCartService) Create(ctx context.Context) (*domain.Cart, error) {
	return m.createFn(ctx)
}

func (m *mockCartService) Get(ctx context.Context, cartID string) (*domain.Cart, error) {
	return m.getFn(ctx, cartID)
}

func (m *mockCartService) Add(ctx context.Context, cartID, productID string, quantity int) (*domain.Cart, error) {
	return m.addFn(ctx, cartID, productID, quantity)
}

func (m *mockCartService) UpdateQuantity(ctx context.Context, cartID, productID string, quantity int) (*domain.Cart, error) {
	return m.updateFn(ctx, cartID, productID, quantity)
}

func (m *mockCartService) Remove(ctx context.Context, cartID, productID string) (*domain.Cart, error) {
	return m.removeFn(ctx, cartID, productID)
}

func newTestHandler(svc service.CartService) *CartHandler {
	return NewCartHandler(svc, cookie.NewConfig(false), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func withCartCookie(r *http.Request, cartID string) *http.Request {
	r.AddCookie(&http.Cookie{Name: cookie.CartCookieName, Value: cartID})
	return r
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) *domain.Cart {
	t.Helper()
	var body struct {
		Cart *domain.Cart `json:"cart"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.NotNil(t, body.Cart)
	return body.Cart
}

func TestCartHandler_Get_ExistingCart(t *testing.T) {
	svc := &mockCartService{
		getFn: func(ctx context.Context, cartID string) (*domain.Cart, error) {
			assert.Equal(t, "cart-1", cartID)
			return &domain.Cart{ID: "cart-1", Subtotal: 19.99}, nil
		},
	}
	h := newTestHandler(svc)

	req := withCartCookie(httptest.NewRequest(http.MethodGet, "/api/cart", nil), "cart-1")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cart := decodeCart(t, rec)
	assert.Equal(t, "cart-1", cart.ID)
	assert.Equal(t, 19.99, cart.Subtotal)
}

func TestCartHandler_Get_NoCookieCreatesCart(t *testing.T) {
	svc := &mockCartService{
		createFn: func(ctx context.Context) (*domain.Cart, error) {
			return &domain.Cart{ID: "fresh-cart"}, nil
		},
	}
	h := newTestHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cart := decodeCart(t, rec)
	assert.Equal(t, "fresh-cart", cart.ID)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, cookie.CartCookieName, cookies[0].Name)
	assert.Equal(t, "fresh-cart", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestCartHandler_Get_StaleCookieCreatesCart(t *testing.T) {
	svc := &mockCartService{
		getFn: func(ctx context.Context, cartID string) (*domain.Cart, error) {
			return nil, service.ErrCartNotFound
		},
		createFn: func(ctx context.Context) (*domain.Cart, error) {
			return &domain.Cart{ID: "replacement"}, nil
		},
	}
	h := newTestHandler(svc)

	req := withCartCookie(httptest.NewRequest(http.MethodGet, "/api/cart", nil), "gone")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "replacement", decodeCart(t, rec).ID)
}

func TestCartHandler_Add(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		addErr         error
		expectedStatus int
	}{
		{
			name:           "valid add",
			body:           `{"productId": "prod-1", "quantity": 2}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing product id",
			body:           `{"quantity": 2}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "zero quantity",
			body:           `{"productId": "prod-1", "quantity": 0}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "quantity beyond int32",
			body:           `{"productId": "prod-1", "quantity": 4294967297}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed json",
			body:           `{"productId":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown product",
			body:           `{"productId": "nope", "quantity": 1}`,
			addErr:         service.ErrProductNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "insufficient stock",
			body:           `{"productId": "prod-1", "quantity": 500}`,
			addErr:         service.ErrInsufficientStock,
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockCartService{
				getFn: func(ctx context.Context, cartID string) (*domain.Cart, error) {
					return &domain.Cart{ID: cartID}, nil
				},
				addFn: func(ctx context.Context, cartID, productID string, quantity int) (*domain.Cart, error) {
					if tt.addErr != nil {
						return nil, tt.addErr
					}
					return &domain.Cart{ID: cartID, Items: []domain.CartItem{{ProductID: productID, Quantity: int32(quantity)}}}, nil
				},
			}
			h := newTestHandler(svc)

			req := withCartCookie(httptest.NewRequest(http.MethodPost, "/api/cart", strings.NewReader(tt.body)), "cart-1")
			rec := httptest.NewRecorder()
			h.Add(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestCartHandler_Update_ZeroQuantityAllowed(t *testing.T) {
	var gotQuantity int
	svc := &mockCartService{
		updateFn: func(ctx context.Context, cartID, productID string, quantity int) (*domain.Cart, error) {
			gotQuantity = quantity
			return &domain.Cart{ID: cartID}, nil
		},
	}
	h := newTestHandler(svc)

	body := `{"productId": "prod-1", "quantity": 0}`
	req := withCartCookie(httptest.NewRequest(http.MethodPut, "/api/cart", strings.NewReader(body)), "cart-1")
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, gotQuantity)
}

func TestCartHandler_Update_NoCookie(t *testing.T) {
	h := newTestHandler(&mockCartService{})

	body := `{"productId": "prod-1", "quantity": 3}`
	req := httptest.NewRequest(http.MethodPut, "/api/cart", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartHandler_Remove(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		withCookie     bool
		expectedStatus int
	}{
		{
			name:           "valid remove",
			target:         "/api/cart?productId=prod-1",
			withCookie:     true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing productId",
			target:         "/api/cart",
			withCookie:     true,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "no cart cookie",
			target:         "/api/cart?productId=prod-1",
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockCartService{
				removeFn: func(ctx context.Context, cartID, productID string) (*domain.Cart, error) {
					return &domain.Cart{ID: cartID}, nil
				},
			}
			h := newTestHandler(svc)

			req := httptest.NewRequest(http.MethodDelete, tt.target, nil)
			if tt.withCookie {
				req = withCartCookie(req, "cart-1")
			}
			rec := httptest.NewRecorder()
			h.Remove(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}
