package storefront

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/brookins/tradewind/internal/cookie"
	"github.com/brookins/tradewind/internal/domain"
	"github.com/brookins/tradewind/internal/handler"
	"github.com/brookins/tradewind/internal/shipping"
)

type mockProductService struct {
	listFn       func(ctx context.Context, q domain.ProductQuery) (*domain.ProductPage, error)
	getFn        func(ctx context.Context, id string) (*domain.Product, error)
	getBySlugFn  func(ctx context.Context, slug string) (*domain.Product, error)
	relatedFn    func(ctx context.Context, productID string, limit int) ([]domain.Product, error)
	categoriesFn func(ctx context.Context) ([]string, error)
}

func (m *mockProductService) List(ctx context.Context, q domain.ProductQuery) (*domain.ProductPage, error) {
	return m.listFn(ctx, q)
}

func (m *mockProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return m.getFn(ctx, id)
}

func (m *mockProductService) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return m.getBySlugFn(ctx, slug)
}

func (m *mockProductService) Related(ctx context.Context, productID string, limit int) ([]domain.Product, error) {
	return m.relatedFn(ctx, productID, limit)
}

func (m *mockProductService) Categories(ctx context.Context) ([]string, error) {
	return m.categoriesFn(ctx)
}

type mockCartService struct {
	createFn func(ctx context.Context) (*domain.Cart, error)
	getFn    func(ctx context.Context, cartID string) (*domain.Cart, error)
}

func (m *mockCartService) Create(ctx context.Context) (*domain.Cart, error) {
	return m.createFn(ctx)
}

func (m *mockCartService) Get(ctx context.Context, cartID string) (*domain.Cart, error) {
	return m.getFn(ctx, cartID)
}

func (m *mockCartService) Add(ctx context.Context, cartID, productID string, quantity int) (*domain.Cart, error) {
	panic("not expected in storefront tests")
}

func (m *mockCartService) UpdateQuantity(ctx context.Context, cartID, productID string, quantity int) (*domain.Cart, error) {
	panic("not expected in storefront tests")
}

func (m *mockCartService) Remove(ctx context.Context, cartID, productID string) (*domain.Cart, error) {
	panic("not expected in storefront tests")
}

// testTemplates is a minimal template set exercising the same layout/page
// structure as web/templates without depending on the real markup.
var testTemplates = fstest.MapFS{
	"layout.html": {Data: []byte(
		`{{define "base"}}<title>{{.Title}}</title>{{block "content" .}}{{end}}{{end}}`,
	)},
	"home.html": {Data: []byte(
		`{{define "content"}}{{range .Featured}}[{{.Name}}]{{end}}{{end}}`,
	)},
	"products.html": {Data: []byte(
		`{{define "content"}}total={{.Total}} page={{.Page}}/{{.TotalPages}}{{range .Products}}[{{.Name}}]{{end}}{{end}}`,
	)},
	"product.html": {Data: []byte(
		`{{define "content"}}{{.Product.Name}} {{formatPrice .Product.Price}} related={{len .Related}}{{end}}`,
	)},
	"cart.html": {Data: []byte(
		`{{define "content"}}{{if .IsEmpty}}empty{{else}}subtotal={{formatPrice .Cart.Subtotal}}{{end}}{{end}}`,
	)},
	"checkout.html": {Data: []byte(
		`{{define "content"}}shipping={{formatPrice .Shipping}} total={{formatPrice .Total}} options={{len .ShippingOptions}}{{end}}`,
	)},
	"checkout_success.html": {Data: []byte(
		`{{define "content"}}order={{.OrderNumber}}{{end}}`,
	)},
}

func newTestHandler(t *testing.T, products *mockProductService, carts *mockCartService) *Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	renderer, err := handler.NewRendererFS(testTemplates, logger)
	require.NoError(t, err)

	quoter := shipping.NewFlatRateQuoter([]shipping.FlatRate{
		{Code: "standard", Name: "Standard Shipping", Cost: 7.95, DaysMin: 5, DaysMax: 7},
	}, 50)

	return New(products, carts, quoter, renderer, cookie.NewConfig(false), Config{
		StoreName:     "Tradewind",
		FeaturedCount: 4,
	}, logger)
}
