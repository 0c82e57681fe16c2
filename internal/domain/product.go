package domain

import "time"

// Product is a catalog item as exposed to the application.
// Prices arrive from storage as decimals and are coerced to float64 at the
// row-mapping boundary. The cart never re-reads a product after snapshotting
// its price/name/image into a line item.
type Product struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Price       float64           `json:"price"`
	Images      []string          `json:"images"`
	Category    string            `json:"category"`
	Attributes  map[string]string `json:"attributes"`
	Inventory   int32             `json:"inventory"`
	Slug        string            `json:"slug"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// PrimaryImage returns the first image URL, or empty string if the product
// has no images.
func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// ProductQuery describes a product listing request: optional filters,
// a sort key, and offset pagination.
type ProductQuery struct {
	// Category filters on exact category match when non-empty.
	Category string

	// Search filters on a case-insensitive substring match against
	// name or description when non-empty.
	Search string

	// Sort is a whitelisted field name, optionally prefixed with "-" for
	// descending order. Accepts camelCase ("createdAt") or the column name
	// ("created_at"). Empty means "createdAt".
	Sort string

	// Page is 1-based. Values below 1 are treated as 1.
	Page int

	// Limit is the page size. Zero means the default; values above the
	// configured maximum are clamped.
	Limit int
}

// ProductPage is one page of a product listing along with the total number
// of rows matching the same predicate. Page and Limit are the effective
// values after defaulting and clamping, which callers need for pagination.
type ProductPage struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
}
