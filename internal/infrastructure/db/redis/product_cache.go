package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/sabor/restaurant-orders/internal/core/domain"
	"github.com/sabor/restaurant-orders/internal/core/ports"
)

const (
	defaultCatalogTTL = 5 * time.Minute
	catalogKey        = "catalog:products:v1"
)

var _ ports.ProductCache = (*ProductCache)(nil)

// ProductCache keeps the full catalog listing under a single key with a TTL.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProductCache creates a ProductCache wrapping the given Redis client.
// A non-positive ttl falls back to defaultCatalogTTL.
func NewProductCache(client *redis.Client, ttl time.Duration) *ProductCache {
	if ttl <= 0 {
		ttl = defaultCatalogTTL
	}
	return &ProductCache{client: client, ttl: ttl}
}

type cachedProduct struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
}

// Get reports ok=false when the key is absent or expired.
func (c *ProductCache) Get(ctx context.Context) ([]domain.Product, bool, error) {
	raw, err := c.client.Get(ctx, catalogKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("catalog cache get: %w", err)
	}

	var cached []cachedProduct
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, false, fmt.Errorf("catalog cache decode: %w", err)
	}

	products := make([]domain.Product, len(cached))
	for i, p := range cached {
		products[i] = domain.Product{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Category:    p.Category,
		}
	}
	return products, true, nil
}

func (c *ProductCache) Set(ctx context.Context, products []domain.Product) error {
	cached := make([]cachedProduct, len(products))
	for i, p := range products {
		cached[i] = cachedProduct{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Category:    p.Category,
		}
	}

	raw, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("catalog cache encode: %w", err)
	}
	if err := c.client.Set(ctx, catalogKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("catalog cache set: %w", err)
	}
	return nil
}

// Invalidate drops the cached listing, typically after the catalog is reseeded.
func (c *ProductCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, catalogKey).Err()
}
