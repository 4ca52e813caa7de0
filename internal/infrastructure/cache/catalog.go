package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"learnhub/internal/domain"
)

const catalogKey = "catalog:snapshot"

type store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// CatalogCache keeps a JSON snapshot of the catalog so restarts and extra
// replicas skip the database.
type CatalogCache struct {
	client store
	ttl    time.Duration
}

func NewCatalogCache(client store, ttl time.Duration) *CatalogCache {
	return &CatalogCache{client: client, ttl: ttl}
}

// Get returns the cached catalog. ok is false on a miss.
func (c *CatalogCache) Get(ctx context.Context) (catalog domain.Catalog, ok bool, err error) {
	val, err := c.client.Get(ctx, catalogKey).Result()
	if errors.Is(err, redis.Nil) {
		return catalog, false, nil
	}
	if err != nil {
		return catalog, false, fmt.Errorf("get catalog: %w", err)
	}
	if err := json.Unmarshal([]byte(val), &catalog); err != nil {
		return catalog, false, fmt.Errorf("decode catalog: %w", err)
	}
	return catalog, true, nil
}

func (c *CatalogCache) Save(ctx context.Context, catalog domain.Catalog) error {
	data, err := json.Marshal(catalog)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return c.client.Set(ctx, catalogKey, data, c.ttl).Err()
}

func (c *CatalogCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, catalogKey).Err()
}
