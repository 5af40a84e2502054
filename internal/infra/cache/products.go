package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/daiya0277-lgtm/gyoza-app/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
)

const productListKey = "catalog:products"

// ProductCache is a cache-aside layer for the public product list. Failures
// degrade to a miss; the database stays authoritative.
type ProductCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewProductCache(rdb *redis.Client, ttl time.Duration) *ProductCache {
	return &ProductCache{rdb: rdb, ttl: ttl}
}

func (c *ProductCache) GetProducts(ctx context.Context) ([]*shared.ProductSnapshot, bool) {
	payload, err := c.rdb.Get(ctx, productListKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("product cache read failed", "error", err.Error())
		}
		return nil, false
	}

	var products []*shared.ProductSnapshot
	if err := json.Unmarshal(payload, &products); err != nil {
		slog.Warn("product cache payload corrupt, dropping", "error", err.Error())
		c.InvalidateProducts(ctx)
		return nil, false
	}

	return products, true
}

func (c *ProductCache) SetProducts(ctx context.Context, products []*shared.ProductSnapshot) {
	payload, err := json.Marshal(products)
	if err != nil {
		slog.Warn("product cache marshal failed", "error", err.Error())
		return
	}

	if err := c.rdb.Set(ctx, productListKey, payload, c.ttl).Err(); err != nil {
		slog.Warn("product cache write failed", "error", err.Error())
	}
}

// InvalidateProducts drops the cached list after any stock write so the next
// reader refreshes from the database.
func (c *ProductCache) InvalidateProducts(ctx context.Context) {
	if err := c.rdb.Del(ctx, productListKey).Err(); err != nil {
		slog.Warn("product cache invalidation failed", "error", err.Error())
	}
}
