package service

import (
	"context"

	"github.com/brookins/tradewind/internal/domain"
	"github.com/brookins/tradewind/internal/postgres"
)

// relatedLimit is how many same-category products the detail page shows.
const relatedLimit = 4

// ProductService provides the catalog's read paths.
type ProductService interface {
	List(ctx context.Context, q domain.ProductQuery) (*domain.ProductPage, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	Related(ctx context.Context, productID string, limit int) ([]domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
}

type productService struct {
	store *postgres.ProductStore
}

// NewProductService creates a new ProductService over the catalog store.
func NewProductService(store *postgres.ProductStore) ProductService {
	return &productService{store: store}
}

func (s *productService) List(ctx context.Context, q domain.ProductQuery) (*domain.ProductPage, error) {
	return s.store.List(ctx, q)
}

// Get returns the product, or ErrProductNotFound.
func (s *productService) Get(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrProductNotFound)
	}
	return p, nil
}

// GetBySlug returns the product by its URL-safe name, or ErrProductNotFound.
func (s *productService) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	p, err := s.store.GetBySlug(ctx, slug)
	if err != nil {
		return nil, mapNotFound(err, ErrProductNotFound)
	}
	return p, nil
}

// Related returns same-category products excluding productID itself, capped
// at limit (defaults to 4).
func (s *productService) Related(ctx context.Context, productID string, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = relatedLimit
	}
	return s.store.Related(ctx, productID, limit)
}

func (s *productService) Categories(ctx context.Context) ([]string, error) {
	return s.store.Categories(ctx)
}
