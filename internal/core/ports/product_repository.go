package ports

import (
	"context"

	"github.com/sabor/restaurant-orders/internal/core/domain"
)

// ProductRepository is the read side of the catalog.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	// FindByIDs returns the products that exist among ids. Missing IDs are
	// simply absent from the result.
	FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
}

// ProductCache holds a copy of the full catalog listing.
type ProductCache interface {
	// Get reports ok=false on a cache miss.
	Get(ctx context.Context) (products []domain.Product, ok bool, err error)
	Set(ctx context.Context, products []domain.Product) error
}

// CatalogService exposes the catalog to handlers and to the order lifecycle.
type CatalogService interface {
	List(ctx context.Context) ([]domain.Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
}
