package cache

import (
	"sync"
	"time"
)

// DefaultSweepInterval is how often the background sweep evicts expired
// entries. It is deliberately decoupled from any individual entry's TTL.
const DefaultSweepInterval = 60 * time.Second

// Cache is a TTL'd key/value store. All methods are safe for concurrent
// use; a Get immediately following a Set for the same key observes the
// just-set value.
type Cache[V any] struct {
	mu        sync.Mutex
	entries   map[string]entry[V]
	done      chan struct{}
	destroyed bool

	// now is swappable for tests.
	now func() time.Time
}

// New creates a cache and starts its periodic sweep. A non-positive
// sweepInterval falls back to DefaultSweepInterval.
func New[V any](sweepInterval time.Duration) *Cache[V] {
	if sweepInterval <= 0 {
		sweepInterval = DefaultSweepInterval
	}
	c := &Cache[V]{
		entries: map[string]entry[V]{},
		done:    make(chan struct{}),
		now:     time.Now,
	}
	go c.sweepLoop(sweepInterval)
	return c
}

// Set stores value under key for ttlSeconds. A non-positive TTL makes Set a
// no-op rather than an error: callers treat a misconfigured TTL as "do not
// cache". An existing entry for the key is overwritten unconditionally.
func (c *Cache[V]) Set(key Key, value V, ttlSeconds int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, err := newEntry(value, ttlSeconds, c.now())
	if err != nil {
		return
	}
	c.entries[key.String()] = e
}

// Get returns the value stored under key. Reading an expired entry evicts
// it and reports a miss.
func (c *Cache[V]) Get(key Key) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.entries[key.String()]
	if !ok {
		return zero, false
	}
	if e.expired(c.now()) {
		delete(c.entries, key.String())
		return zero, false
	}
	return e.value, true
}

// Has reports whether a live entry exists for key, without evicting.
func (c *Cache[V]) Has(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key.String()]
	return ok && !e.expired(c.now())
}

// Delete removes the entry for key, if any.
func (c *Cache[V]) Delete(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key.String())
}

// Clear drops all entries.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]entry[V]{}
}

// Size returns the number of stored entries, expired ones included until
// the next read or sweep touches them.
func (c *Cache[V]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Destroy clears the cache and stops the periodic sweep. It is safe to
// call more than once.
func (c *Cache[V]) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.destroyed {
		return
	}
	c.destroyed = true
	close(c.done)
	c.entries = map[string]entry[V]{}
}

func (c *Cache[V]) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.done:
			return
		}
	}
}

// sweep evicts every expired entry in one pass.
func (c *Cache[V]) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, k)
		}
	}
}
