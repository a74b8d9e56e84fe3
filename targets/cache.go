package targets

import (
	"context"
	"sync"
)

// Cache holds at most one current snapshot. It has two states, empty and
// populated; Ensure performs a discovery pass from the empty state and
// Invalidate returns to it. There is no expiry: staleness is resolved
// only by explicit invalidation.
//
// Ensure is single-flight: concurrent callers observing an empty cache
// share one in-flight discovery pass, with late arrivals awaiting its
// result rather than starting their own.
type Cache struct {
	discoverer *Discoverer

	mu       sync.Mutex
	snapshot *Snapshot
	pending  *inflight
}

// inflight is one in-progress discovery pass shared by its waiters.
type inflight struct {
	done     chan struct{}
	snapshot *Snapshot
	err      error
}

// NewCache creates an empty cache backed by the given discoverer.
func NewCache(discoverer *Discoverer) *Cache {
	return &Cache{discoverer: discoverer}
}

// Ensure returns the current snapshot, performing a discovery pass first
// if the cache is empty. A populated cache returns its snapshot without
// re-querying.
func (c *Cache) Ensure(ctx context.Context) (*Snapshot, error) {
	c.mu.Lock()
	if c.snapshot != nil {
		snap := c.snapshot
		c.mu.Unlock()
		return snap, nil
	}
	if c.pending != nil {
		p := c.pending
		c.mu.Unlock()
		select {
		case <-p.done:
			return p.snapshot, p.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	p := &inflight{done: make(chan struct{})}
	c.pending = p
	c.mu.Unlock()

	snap, err := c.discoverer.Discover(ctx)

	c.mu.Lock()
	if err == nil {
		c.snapshot = snap
	}
	c.pending = nil
	c.mu.Unlock()

	p.snapshot, p.err = snap, err
	close(p.done)
	return snap, err
}

// Invalidate empties the cache. It is idempotent on an empty cache. An
// in-flight discovery pass is unaffected: its result is fresh by
// definition and still populates the cache.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.snapshot = nil
	c.mu.Unlock()
}

// Current returns the cached snapshot without triggering discovery, or
// nil when the cache is empty.
func (c *Cache) Current() *Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}
