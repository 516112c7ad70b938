package catalog

import "context"

// ProductCatalogService serves the public, read-only view of the catalog.
// Inactive products are never returned.
type ProductCatalogService interface {
	// List returns active products matching the query.
	List(ctx context.Context, query *ProductQuery) ([]*Product, error)
	// GetByID returns an active product by ID.
	GetByID(ctx context.Context, productID string) (*Product, error)
	// GetBySlug returns an active product by slug.
	GetBySlug(ctx context.Context, slug string) (*Product, error)
}

// ProductAdminService manages the catalog from the back-office.
type ProductAdminService interface {
	Create(ctx context.Context, product *Product) (*Product, error)
	List(ctx context.Context, query *ProductQuery) ([]*Product, error)
	GetByID(ctx context.Context, productID string) (*Product, error)
	Update(ctx context.Context, product *Product) (*Product, error)
	SetActive(ctx context.Context, productID string, active bool) (*Product, error)
	// AdjustStock adds delta (may be negative) to the stock; the result must stay >= 0.
	AdjustStock(ctx context.Context, productID string, delta int) (*Product, error)
	DeleteByID(ctx context.Context, productID string) error
	// Import upserts products by slug and reports how many were created and updated.
	Import(ctx context.Context, products []*Product) (created int, updated int, err error)
}

// ProductRepository defines the interface for Product-related operations
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	List(ctx context.Context, query *ProductQuery) ([]*Product, error)
	GetByID(ctx context.Context, productID string) (*Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	UpdateByID(ctx context.Context, product *Product) error
	// AdjustStock applies delta atomically and fails with ErrInsufficientStock
	// when the stock would become negative.
	AdjustStock(ctx context.Context, productID string, delta int) error
	DeleteByID(ctx context.Context, productID string) error
}
