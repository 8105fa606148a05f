package realtime

import (
	"context"
	"log"
	"sync"
	"time"
)

// DefaultFeedTTL is how long a fetched snapshot is served before the
// upstream is asked again.
const DefaultFeedTTL = 60 * time.Second

// Fetch pulls one fresh value from the upstream feed.
type Fetch[T any] func(ctx context.Context) (T, error)

// FeedCache is a single-slot cache over one upstream feed. Within the TTL
// every caller gets the cached value. Past the TTL the next caller
// refreshes it; if the refresh fails, the stale value is served instead,
// and an error propagates only when there has never been a successful
// fetch.
type FeedCache[T any] struct {
	mu    sync.Mutex
	fetch Fetch[T]
	ttl   time.Duration

	value     T
	fetchedAt time.Time
	cached    bool

	now func() time.Time
}

// FeedStats describes the cache slot for health reporting.
type FeedStats struct {
	Cached bool
	Age    time.Duration
	TTL    time.Duration
}

// NewFeedCache builds a cache over fetch. ttl <= 0 selects
// DefaultFeedTTL.
func NewFeedCache[T any](fetch Fetch[T], ttl time.Duration) *FeedCache[T] {
	if ttl <= 0 {
		ttl = DefaultFeedTTL
	}
	return &FeedCache[T]{
		fetch: fetch,
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get returns the cached value, refreshing it first when the TTL has
// lapsed.
func (c *FeedCache[T]) Get(ctx context.Context) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached && c.now().Sub(c.fetchedAt) < c.ttl {
		return c.value, nil
	}

	value, err := c.fetch(ctx)
	if err != nil {
		if c.cached {
			log.Printf("feed refresh failed, serving stale data (age %v): %v", c.now().Sub(c.fetchedAt), err)
			return c.value, nil
		}
		var zero T
		return zero, err
	}

	c.value = value
	c.fetchedAt = c.now()
	c.cached = true
	return c.value, nil
}

// Invalidate drops the cached value so the next Get hits the upstream.
func (c *FeedCache[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	c.value = zero
	c.cached = false
}

// Stats reports the slot state.
func (c *FeedCache[T]) Stats() FeedStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := FeedStats{Cached: c.cached, TTL: c.ttl}
	if c.cached {
		s.Age = c.now().Sub(c.fetchedAt)
	}
	return s
}
