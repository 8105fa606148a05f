// Package catalog holds the in-memory, per-network index of stops and
// routes, and resolves free-form user queries against it.
//
// An Index is built once from the schedule store at startup and is
// read-only afterwards, so all lookups are safe for concurrent use. The
// resolver tries progressively looser matches: exact stop code, exact
// name, accent-insensitive substring, and finally returns a
// StopNotFoundError carrying the closest-name suggestions.
package catalog
