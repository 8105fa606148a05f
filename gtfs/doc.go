/*
Package gtfs provides durable, indexed storage for the static schedule
dataset (stops, routes, trips, stop times, transfers).

The Store parses the five GTFS text files into SQLite and answers point
and range queries against it. Parse once at startup: with an on-disk
database file, later startups detect existing data and skip the CSV load
entirely.

	store, err := gtfs.Open("data/gtfs", "data/gtfs.db")
	if err != nil {
	    log.Fatal(err)
	}
	if err := store.Initialize(ctx); err != nil {
	    log.Fatal(err)
	}

	stops, err := store.TripStops(ctx, "trip_123")

The four single-trip lookups (TripStops, ArrivalTime, TripGoesToStation,
TripDestination) are guarded by small bounded LRU caches because bursts of
user requests hit the same trip repeatedly. Absence of a requested record
is reported as ErrNotFound, never as a query failure.
*/
package gtfs
