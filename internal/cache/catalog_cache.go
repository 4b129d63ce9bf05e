package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"glamify/internal/domain"

	"github.com/redis/go-redis/v9"
)

const catalogKeyPrefix = "catalog:products:"

// ErrCacheMiss is returned when no cached listing exists for a filter
var ErrCacheMiss = errors.New("catalog cache miss")

// CatalogCache stores storefront product listings keyed by filter
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache creates a catalog cache backed by client
func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{client: client, ttl: ttl}
}

// Get returns the cached listing for filter, or ErrCacheMiss
func (c *CatalogCache) Get(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	payload, err := c.client.Get(ctx, listingKey(filter)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to read catalog cache: %w", err)
	}

	var products []*domain.Product
	if err := json.Unmarshal(payload, &products); err != nil {
		return nil, fmt.Errorf("failed to decode catalog cache entry: %w", err)
	}
	return products, nil
}

// Set caches a listing for filter
func (c *CatalogCache) Set(ctx context.Context, filter domain.ProductFilter, products []*domain.Product) error {
	payload, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to encode catalog cache entry: %w", err)
	}

	if err := c.client.Set(ctx, listingKey(filter), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write catalog cache: %w", err)
	}
	return nil
}

// Invalidate drops every cached listing
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	var keys []string
	iter := c.client.Scan(ctx, 0, catalogKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan catalog cache: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate catalog cache: %w", err)
	}
	return nil
}

func listingKey(filter domain.ProductFilter) string {
	featured := "all"
	if filter.FeaturedOnly {
		featured = "featured"
	}
	return catalogKeyPrefix + featured + ":" + filter.Category
}
