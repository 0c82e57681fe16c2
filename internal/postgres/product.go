package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/brookins/tradewind/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// productColumns is the select list shared by every product query. IDs are
// cast to text so rows scan straight into the application model.
const productColumns = `id::text, name, description, price, images, category, attributes, inventory, slug, created_at, updated_at`

// sortColumns is the allow-list for the client-supplied sort key. The key is
// resolved to a fixed column name here and never spliced from input.
// Both camelCase and column spellings are accepted.
var sortColumns = map[string]string{
	"name":       "name",
	"price":      "price",
	"inventory":  "inventory",
	"createdAt":  "created_at",
	"created_at": "created_at",
	"updatedAt":  "updated_at",
	"updated_at": "updated_at",
}

// ProductStore provides read-only catalog queries.
type ProductStore struct {
	db           *DB
	defaultLimit int
	maxLimit     int
}

func NewProductStore(db *DB, defaultLimit, maxLimit int) *ProductStore {
	return &ProductStore{
		db:           db,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// List returns one page of products matching the query plus the total count
// for the same predicate. The count is an exact second query, not an
// approximation.
func (s *ProductStore) List(ctx context.Context, q domain.ProductQuery) (*domain.ProductPage, error) {
	where, params := buildProductFilter(q)

	var total int
	countSQL := "SELECT COUNT(*) FROM products" + where
	if err := s.db.Pool().QueryRow(ctx, countSQL, params...).Scan(&total); err != nil {
		return nil, domain.Internal(err, "product.list", "failed to count products")
	}

	orderBy, err := resolveSort(q.Sort)
	if err != nil {
		return nil, err
	}

	limit := q.Limit
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	listSQL := fmt.Sprintf(
		"SELECT %s FROM products%s ORDER BY %s LIMIT $%d OFFSET $%d",
		productColumns, where, orderBy, len(params)+1, len(params)+2,
	)
	rows, err := s.db.Pool().Query(ctx, listSQL, append(params, limit, offset)...)
	if err != nil {
		return nil, domain.Internal(err, "product.list", "failed to list products")
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, domain.Internal(err, "product.list", "failed to scan products")
	}

	return &domain.ProductPage{Products: products, Total: total, Page: page, Limit: limit}, nil
}

// GetByID returns one product, or ErrProductNotFound.
func (s *ProductStore) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return s.getOne(ctx, "product.get", "SELECT "+productColumns+" FROM products WHERE id = $1", id)
}

// GetBySlug returns one product by its URL-safe name, or ErrProductNotFound.
func (s *ProductStore) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return s.getOne(ctx, "product.get_by_slug", "SELECT "+productColumns+" FROM products WHERE slug = $1", slug)
}

// Related returns up to limit products from the same category as productID,
// excluding the product itself, newest first. Ordering by recency instead of
// RANDOM() keeps the query cheap on large catalogs.
func (s *ProductStore) Related(ctx context.Context, productID string, limit int) ([]domain.Product, error) {
	rows, err := s.db.Pool().Query(ctx,
		`SELECT `+productColumns+` FROM products
		 WHERE category = (SELECT category FROM products WHERE id = $1)
		 AND id != $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		productID, limit)
	if err != nil {
		return nil, domain.Internal(err, "product.related", "failed to query related products")
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, domain.Internal(err, "product.related", "failed to scan related products")
	}
	return products, nil
}

// Categories returns the distinct category tags in use, for the listing
// page's filter sidebar.
func (s *ProductStore) Categories(ctx context.Context) ([]string, error) {
	rows, err := s.db.Pool().Query(ctx,
		"SELECT DISTINCT category FROM products WHERE category != '' ORDER BY category")
	if err != nil {
		return nil, domain.Internal(err, "product.categories", "failed to query categories")
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, domain.Internal(err, "product.categories", "failed to scan category")
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "product.categories", "failed to read categories")
	}
	return categories, nil
}

// GetForUpdate reads a product's snapshot fields inside tx while locking the
// row, serializing the inventory check against concurrent cart mutations of
// the same product.
func GetForUpdate(ctx context.Context, tx Queryable, productID string) (*domain.Product, error) {
	row := tx.QueryRow(ctx,
		"SELECT id::text, name, price, images, inventory FROM products WHERE id = $1 FOR UPDATE",
		productID)

	var (
		p     domain.Product
		price pgtype.Numeric
	)
	if err := row.Scan(&p.ID, &p.Name, &price, &p.Images, &p.Inventory); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("product.lock", "product", productID)
		}
		return nil, domain.Internal(err, "product.lock", "failed to lock product row")
	}

	var err error
	p.Price, err = numericToFloat(price)
	if err != nil {
		return nil, domain.Internal(err, "product.lock", "failed to convert product price")
	}
	return &p, nil
}

func (s *ProductStore) getOne(ctx context.Context, op, sql string, arg any) (*domain.Product, error) {
	rows, err := s.db.Pool().Query(ctx, sql, arg)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to query product")
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to scan product")
	}
	if len(products) == 0 {
		return nil, domain.NotFound(op, "product", fmt.Sprint(arg))
	}
	return &products[0], nil
}

// buildProductFilter builds the WHERE clause conjunctively from the optional
// category equality and the optional case-insensitive substring match on
// name or description. All user input travels as parameters.
func buildProductFilter(q domain.ProductQuery) (string, []any) {
	var (
		conds  []string
		params []any
	)

	if q.Category != "" {
		params = append(params, q.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(params)))
	}
	if q.Search != "" {
		params = append(params, "%"+q.Search+"%")
		n := len(params)
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", n, n))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), params
}

// resolveSort validates the sort key against the allow-list. A leading "-"
// marks descending order. Unknown fields are rejected, never interpolated.
func resolveSort(sort string) (string, error) {
	if sort == "" {
		sort = "createdAt"
	}

	dir := "ASC"
	field := sort
	if strings.HasPrefix(sort, "-") {
		dir = "DESC"
		field = sort[1:]
	}

	column, ok := sortColumns[field]
	if !ok {
		return "", domain.Invalid("product.list", fmt.Sprintf("unsupported sort field: %s", field))
	}
	return column + " " + dir, nil
}

func scanProducts(rows pgx.Rows) ([]domain.Product, error) {
	products := []domain.Product{}
	for rows.Next() {
		var (
			p     domain.Product
			price pgtype.Numeric
			attrs []byte
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &price, &p.Images, &p.Category,
			&attrs, &p.Inventory, &p.Slug, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}

		var err error
		p.Price, err = numericToFloat(price)
		if err != nil {
			return nil, err
		}

		p.Attributes = map[string]string{}
		if len(attrs) > 0 {
			if err := json.Unmarshal(attrs, &p.Attributes); err != nil {
				return nil, fmt.Errorf("decode product attributes: %w", err)
			}
		}
		if p.Images == nil {
			p.Images = []string{}
		}

		products = append(products, p)
	}
	return products, rows.Err()
}

// numericToFloat coerces a stored decimal to a number at the boundary, since
// the wire format for NUMERIC is a decimal string.
func numericToFloat(n pgtype.Numeric) (float64, error) {
	if !n.Valid {
		return 0, nil
	}
	f, err := n.Float64Value()
	if err != nil {
		return 0, err
	}
	return f.Float64, nil
}
