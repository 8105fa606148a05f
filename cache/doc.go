// Package cache provides a generic in-memory key/value cache with
// per-entry time-to-live, used by the mode pipelines to avoid hitting
// upstream provider APIs more often than the configured TTL allows.
//
// Expired entries are evicted lazily on read and proactively by a periodic
// sweep, so the cache stays bounded even when cold keys are never read
// again. Keys are normalized colon-joined composites, e.g.
// "metro:arrivals:1234".
package cache
