package pricing

import (
	"context"
	"sync"
	"time"

	"github.com/opscart/cluster-cost-advisor/pkg/models"
)

// CachedProvider wraps another provider and caches rates to reduce
// upstream lookups.
type CachedProvider struct {
	upstream Provider
	ttl      time.Duration
	data     map[models.CloudProvider]*cacheEntry
	mutex    sync.RWMutex
}

type cacheEntry struct {
	rate      float64
	expiresAt time.Time
}

func NewCachedProvider(upstream Provider, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		upstream: upstream,
		ttl:      ttl,
		data:     make(map[models.CloudProvider]*cacheEntry),
	}
}

func (c *CachedProvider) UnitRate(ctx context.Context, cloud models.CloudProvider) (float64, error) {
	c.mutex.RLock()
	entry, exists := c.data[cloud]
	c.mutex.RUnlock()

	if exists && time.Now().Before(entry.expiresAt) {
		return entry.rate, nil
	}

	rate, err := c.upstream.UnitRate(ctx, cloud)
	if err != nil {
		return 0, err
	}

	c.mutex.Lock()
	c.data[cloud] = &cacheEntry{
		rate:      rate,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.mutex.Unlock()

	return rate, nil
}

func (c *CachedProvider) Name() string { return c.upstream.Name() + " (cached)" }

func (c *CachedProvider) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data = make(map[models.CloudProvider]*cacheEntry)
}
