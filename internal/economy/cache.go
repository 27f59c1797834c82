package economy

import (
	"slices"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/PointStore_Go/internal/domain"
	"github.com/osse101/PointStore_Go/internal/metrics"
)

const catalogKey = "catalog:" + CacheSchemaVersion

// iconCache keeps the immutable icon catalog in memory with time-based expiry.
// The full list and a per-id index expire together.
type iconCache struct {
	catalog *expirable.LRU[string, []domain.Icon]
	byID    *expirable.LRU[int64, domain.Icon]
}

func newIconCache(size int, ttl time.Duration) *iconCache {
	return &iconCache{
		catalog: expirable.NewLRU[string, []domain.Icon](1, nil, ttl),
		byID:    expirable.NewLRU[int64, domain.Icon](size, nil, ttl),
	}
}

// Catalog returns a copy of the cached catalog
func (c *iconCache) Catalog() ([]domain.Icon, bool) {
	icons, ok := c.catalog.Get(catalogKey)
	if !ok {
		metrics.IconCacheLookups.WithLabelValues(metrics.CacheMiss).Inc()
		return nil, false
	}
	metrics.IconCacheLookups.WithLabelValues(metrics.CacheHit).Inc()
	return slices.Clone(icons), true
}

// Icon looks up one catalog icon by id
func (c *iconCache) Icon(id int64) (domain.Icon, bool) {
	return c.byID.Get(id)
}

func (c *iconCache) Set(icons []domain.Icon) {
	c.catalog.Add(catalogKey, slices.Clone(icons))
	for _, icon := range icons {
		c.byID.Add(icon.ID, icon)
	}
}

// Clear removes all entries from the cache
func (c *iconCache) Clear() {
	c.catalog.Purge()
	c.byID.Purge()
}
