package analytics

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// SnapshotCache memoizes computed snapshots per period label for a short
// TTL, so repeated dashboard refreshes don't reissue the same computation.
// Concurrent requests for the same period share one in-flight computation.
// The cache wraps the engine; the engine itself stays stateless.
type SnapshotCache struct {
	engine *Engine
	ttl    time.Duration
	now    func() time.Time

	mu    sync.RWMutex
	data  map[string]cachedSnapshot
	group singleflight.Group
}

type cachedSnapshot struct {
	snapshot *MetricsSnapshot
	storedAt time.Time
}

func NewSnapshotCache(engine *Engine, ttl time.Duration) *SnapshotCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &SnapshotCache{
		engine: engine,
		ttl:    ttl,
		now:    time.Now,
		data:   make(map[string]cachedSnapshot),
	}
}

// Metrics returns the cached snapshot for the period, recomputing when the
// entry is missing or stale. Failures are not cached.
func (c *SnapshotCache) Metrics(ctx context.Context, p Period) (*MetricsSnapshot, error) {
	c.mu.RLock()
	entry, ok := c.data[p.Label]
	c.mu.RUnlock()
	if ok && c.now().Sub(entry.storedAt) < c.ttl {
		return entry.snapshot, nil
	}

	v, err, _ := c.group.Do(p.Label, func() (any, error) {
		snap, err := c.engine.ComputeMetrics(ctx, p)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.data[p.Label] = cachedSnapshot{snapshot: snap, storedAt: c.now()}
		c.mu.Unlock()
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*MetricsSnapshot), nil
}

// Invalidate drops cached snapshots; called after a trade import so the
// next refresh sees the new window.
func (c *SnapshotCache) Invalidate() {
	c.mu.Lock()
	c.data = make(map[string]cachedSnapshot)
	c.mu.Unlock()
}
