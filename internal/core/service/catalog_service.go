package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sabor/restaurant-orders/internal/core/domain"
	"github.com/sabor/restaurant-orders/internal/core/ports"
	"github.com/sabor/restaurant-orders/internal/pkg/metrics"
)

var _ ports.CatalogService = (*CatalogService)(nil)

// CatalogService serves the product listing from cache when possible.
// Lookups used for order validation always hit the store.
type CatalogService struct {
	repo  ports.ProductRepository
	cache ports.ProductCache
	log   zerolog.Logger
}

// NewCatalogService wires the catalog. cache may be nil.
func NewCatalogService(repo ports.ProductRepository, cache ports.ProductCache, log zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, cache: cache, log: log}
}

func (s *CatalogService) List(ctx context.Context) ([]domain.Product, error) {
	if s.cache != nil {
		products, ok, err := s.cache.Get(ctx)
		switch {
		case err != nil:
			metrics.CatalogCacheTotal.WithLabelValues("error").Inc()
			s.log.Warn().Err(err).Msg("catalog cache read failed, falling back to store")
		case ok:
			metrics.CatalogCacheTotal.WithLabelValues("hit").Inc()
			return products, nil
		default:
			metrics.CatalogCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, products); err != nil {
			s.log.Warn().Err(err).Msg("failed to populate catalog cache")
		}
	}
	return products, nil
}

func (s *CatalogService) FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	products, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	return products, nil
}
