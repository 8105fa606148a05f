package cache

import (
	"errors"
	"time"
)

// ErrInvalidTTL is returned when an entry is constructed with a
// non-positive TTL.
var ErrInvalidTTL = errors.New("ttl must be greater than 0")

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

func newEntry[V any](value V, ttlSeconds int, now time.Time) (entry[V], error) {
	if ttlSeconds <= 0 {
		return entry[V]{}, ErrInvalidTTL
	}
	return entry[V]{
		value:     value,
		expiresAt: now.Add(time.Duration(ttlSeconds) * time.Second),
	}, nil
}

func (e entry[V]) expired(now time.Time) bool {
	return now.After(e.expiresAt)
}
