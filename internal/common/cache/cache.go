package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jgirmay/fps-trainer/internal/common/events"
	"github.com/jgirmay/fps-trainer/pkg/metrics"
)

// ViewCache stores rendered view payloads. Lookups never fail a request: a
// backend error is reported as a miss.
type ViewCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, keys ...string)
	Close() error
}

// CacheEntry represents a cached value with TTL
type CacheEntry struct {
	Value     []byte
	ExpiresAt time.Time
}

// IsExpired checks if the cache entry has expired
func (ce *CacheEntry) IsExpired(now time.Time) bool {
	return now.After(ce.ExpiresAt)
}

// CacheStats tracks cache performance metrics
type CacheStats struct {
	Hits    int64
	Misses  int64
	Sets    int64
	Deletes int64
	Expires int64
}

// HitRate returns the cache hit rate as a percentage
func (cs CacheStats) HitRate() float64 {
	total := cs.Hits + cs.Misses
	if total == 0 {
		return 0
	}
	return float64(cs.Hits) / float64(total) * 100
}

// LocalCache implements an in-memory cache with TTL support
type LocalCache struct {
	mu    sync.Mutex
	data  map[string]*CacheEntry
	stats CacheStats
	now   func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewLocalCache creates a new in-memory cache that sweeps expired entries
// every sweepInterval. A non-positive interval disables the sweeper.
func NewLocalCache(sweepInterval time.Duration) *LocalCache {
	lc := &LocalCache{
		data: make(map[string]*CacheEntry),
		now:  time.Now,
		stop: make(chan struct{}),
	}
	if sweepInterval > 0 {
		go lc.sweep(sweepInterval)
	}
	return lc
}

// Get retrieves a value from the cache
func (lc *LocalCache) Get(_ context.Context, key string) ([]byte, bool) {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	entry, ok := lc.data[key]
	if !ok {
		lc.stats.Misses++
		metrics.ViewCacheMiss()
		return nil, false
	}
	if entry.IsExpired(lc.now()) {
		delete(lc.data, key)
		lc.stats.Expires++
		lc.stats.Misses++
		metrics.ViewCacheMiss()
		return nil, false
	}

	lc.stats.Hits++
	metrics.ViewCacheHit()
	return entry.Value, true
}

// Set stores a value in the cache with TTL
func (lc *LocalCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	lc.mu.Lock()
	lc.data[key] = &CacheEntry{Value: value, ExpiresAt: lc.now().Add(ttl)}
	lc.stats.Sets++
	lc.mu.Unlock()
}

// Delete removes values from the cache
func (lc *LocalCache) Delete(_ context.Context, keys ...string) {
	lc.mu.Lock()
	for _, key := range keys {
		if _, ok := lc.data[key]; ok {
			delete(lc.data, key)
			lc.stats.Deletes++
		}
	}
	lc.mu.Unlock()
}

// Size returns the number of entries in the cache
func (lc *LocalCache) Size() int {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return len(lc.data)
}

// Stats returns a copy of the cache statistics
func (lc *LocalCache) Stats() CacheStats {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.stats
}

// Close stops the sweeper.
func (lc *LocalCache) Close() error {
	lc.stopOnce.Do(func() { close(lc.stop) })
	return nil
}

func (lc *LocalCache) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-lc.stop:
			return
		case <-ticker.C:
			lc.removeExpired()
		}
	}
}

func (lc *LocalCache) removeExpired() {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	now := lc.now()
	for key, entry := range lc.data {
		if entry.IsExpired(now) {
			delete(lc.data, key)
			lc.stats.Expires++
		}
	}
}

// NopCache never stores anything; every view is rendered fresh.
type NopCache struct{}

func (NopCache) Get(context.Context, string) ([]byte, bool)         { return nil, false }
func (NopCache) Set(context.Context, string, []byte, time.Duration) {}
func (NopCache) Delete(context.Context, ...string)                   {}
func (NopCache) Close() error                                        { return nil }

// Generation counts invalidations. A view rendered while the generation moved
// may predate a write and must not stay cached.
type Generation struct {
	n atomic.Uint64
}

// Current returns the number of invalidations seen so far. A nil Generation
// is always zero.
func (g *Generation) Current() uint64 {
	if g == nil {
		return 0
	}
	return g.n.Load()
}

// InvalidateOn subscribes c to bus so every event's stale views are evicted.
// The generation is bumped before the keys are deleted.
func InvalidateOn(bus events.EventDispatcher, c ViewCache) *Generation {
	gen := &Generation{}
	bus.Subscribe(func(e events.Event) {
		if len(e.StaleViews) == 0 {
			return
		}
		gen.n.Add(1)
		c.Delete(context.Background(), e.StaleViews...)
		metrics.ViewsInvalidated(len(e.StaleViews))
	})
	return gen
}
