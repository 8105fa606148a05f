package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func mustKey(t *testing.T, parts ...string) Key {
	t.Helper()
	k, err := NewKey(parts...)
	if err != nil {
		t.Fatalf("building key %v: %v", parts, err)
	}
	return k
}

func newTestCache[V any](t *testing.T) (*Cache[V], *time.Time) {
	t.Helper()
	c := New[V](time.Hour) // sweep far away; tests drive time by hand
	t.Cleanup(c.Destroy)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestSetGet(t *testing.T) {
	c, _ := newTestCache[string](t)
	k := mustKey(t, "trip_1", "par_4_1")

	c.Set(k, "08:03:00", 30)
	got, ok := c.Get(k)
	if !ok {
		t.Fatalf("expected a hit")
	}
	if got != "08:03:00" {
		t.Fatalf("wrong value: %q", got)
	}
}

func TestGetMiss(t *testing.T) {
	c, _ := newTestCache[string](t)
	if _, ok := c.Get(mustKey(t, "absent")); ok {
		t.Fatalf("expected a miss")
	}
}

func TestExpiredEntryEvictedOnRead(t *testing.T) {
	c, now := newTestCache[int](t)
	k := mustKey(t, "trip_1")

	c.Set(k, 42, 30)
	*now = now.Add(31 * time.Second)

	if _, ok := c.Get(k); ok {
		t.Fatalf("expected expiry")
	}
	if c.Size() != 0 {
		t.Fatalf("expired entry not evicted, size %d", c.Size())
	}
	t.Logf("✓ read-through eviction")
}

func TestSetNonPositiveTTLIsNoOp(t *testing.T) {
	c, _ := newTestCache[int](t)
	k := mustKey(t, "trip_1")

	c.Set(k, 1, 0)
	c.Set(k, 2, -5)
	if _, ok := c.Get(k); ok {
		t.Fatalf("non-positive TTL must not store")
	}
}

func TestSetOverwrites(t *testing.T) {
	c, now := newTestCache[int](t)
	k := mustKey(t, "trip_1")

	c.Set(k, 1, 5)
	c.Set(k, 2, 60)
	*now = now.Add(10 * time.Second)

	// The rewrite's TTL governs, not the original's.
	got, ok := c.Get(k)
	if !ok || got != 2 {
		t.Fatalf("expected overwritten value, got %d ok=%v", got, ok)
	}
}

func TestHasDoesNotEvict(t *testing.T) {
	c, now := newTestCache[int](t)
	k := mustKey(t, "trip_1")

	c.Set(k, 1, 30)
	if !c.Has(k) {
		t.Fatalf("expected Has to report the live entry")
	}

	*now = now.Add(time.Minute)
	if c.Has(k) {
		t.Fatalf("expected Has to report expiry")
	}
	if c.Size() != 1 {
		t.Fatalf("Has must not evict, size %d", c.Size())
	}
}

func TestDeleteAndClear(t *testing.T) {
	c, _ := newTestCache[int](t)
	a, b := mustKey(t, "a"), mustKey(t, "b")

	c.Set(a, 1, 30)
	c.Set(b, 2, 30)

	c.Delete(a)
	if _, ok := c.Get(a); ok {
		t.Fatalf("deleted entry still present")
	}
	if _, ok := c.Get(b); !ok {
		t.Fatalf("delete removed the wrong entry")
	}

	c.Clear()
	if c.Size() != 0 {
		t.Fatalf("clear left %d entries", c.Size())
	}
}

func TestSweepEvictsExpired(t *testing.T) {
	c, now := newTestCache[int](t)

	c.Set(mustKey(t, "short"), 1, 10)
	c.Set(mustKey(t, "long"), 2, 3600)

	*now = now.Add(time.Minute)
	c.sweep()

	if c.Size() != 1 {
		t.Fatalf("expected sweep to keep only the live entry, size %d", c.Size())
	}
	if _, ok := c.Get(mustKey(t, "long")); !ok {
		t.Fatalf("sweep evicted a live entry")
	}
}

func TestDestroyIdempotent(t *testing.T) {
	c := New[int](time.Hour)
	c.Set(Key{value: "k"}, 1, 30)

	c.Destroy()
	c.Destroy() // second call must not panic on the closed channel

	if c.Size() != 0 {
		t.Fatalf("destroy left entries behind")
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New[int](time.Hour)
	defer c.Destroy()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				k := mustKey(t, "worker", fmt.Sprint(n), fmt.Sprint(j%10))
				c.Set(k, j, 60)
				c.Get(k)
				if j%50 == 0 {
					c.Delete(k)
				}
			}
		}(i)
	}
	wg.Wait()
}
