// Package realtime fetches and caches live vehicle position feeds.
//
// A Client pulls the protobuf feed over HTTP and distills it into flat
// VehiclePosition records. A FeedCache sits in front of a fetch function
// and serves one shared snapshot per feed: fresh data within the TTL, and
// the last good snapshot when the upstream is down, so a flaky feed
// degrades to stale answers instead of errors.
package realtime
