package gtfs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bluele/gcache"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Store is the durable, queryable index over the static schedule dataset.
// It owns every record it creates; callers receive copies.
type Store struct {
	db  *sqlx.DB
	dir string

	initialized bool

	// Bounded caches for the single-trip lookups that get hammered during
	// a burst of requests for the same trip.
	destinations gcache.Cache
	tripStops    gcache.Cache
	arrivalTimes gcache.Cache
	goesTo       gcache.Cache
}

// Open connects to the backing SQLite database. dbPath may be a file path
// (reused across restarts) or empty for an in-memory database. dataDir is
// the directory holding the schedule text files.
func Open(dataDir, dbPath string) (*Store, error) {
	inMemory := dbPath == ""
	if inMemory {
		dbPath = ":memory:"
	}

	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening schedule database: %w", err)
	}
	if inMemory {
		// Every pooled connection to :memory: is its own database, so an
		// in-memory store must stay on a single connection.
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec(`PRAGMA journal_mode = WAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting journal mode: %w", err)
	}

	return &Store{
		db:           db,
		dir:          dataDir,
		destinations: gcache.New(1000).LRU().Expiration(time.Hour).Build(),
		tripStops:    gcache.New(500).LRU().Expiration(time.Hour).Build(),
		arrivalTimes: gcache.New(2000).LRU().Expiration(30 * time.Minute).Build(),
		goesTo:       gcache.New(2000).LRU().Expiration(time.Hour).Build(),
	}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Initialize creates the schema and, when the store is empty, bulk-loads
// the schedule text files and builds secondary indexes. It is idempotent:
// a store that already contains data skips the load, so repeated startups
// against the same database file pay the parse cost only once.
func (s *Store) Initialize(ctx context.Context) error {
	if s.initialized {
		return nil
	}

	if err := s.createTables(ctx); err != nil {
		return &StoreInitError{Step: "schema", Err: err}
	}

	hasData, err := s.hasData(ctx)
	if err != nil {
		return &StoreInitError{Step: "schema", Err: err}
	}

	if hasData {
		log.Printf("schedule store already populated, skipping load")
	} else {
		if err := s.loadAll(ctx); err != nil {
			return err
		}
		if err := s.createIndexes(ctx); err != nil {
			return &StoreInitError{Step: "indexes", Err: err}
		}
	}

	s.initialized = true
	return nil
}

func (s *Store) createTables(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS stops (
			stop_id TEXT PRIMARY KEY,
			stop_code TEXT NOT NULL DEFAULT '',
			stop_name TEXT NOT NULL,
			stop_lat REAL,
			stop_lon REAL,
			parent_station TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS routes (
			route_id TEXT PRIMARY KEY,
			route_short_name TEXT NOT NULL,
			route_long_name TEXT NOT NULL DEFAULT '',
			route_type INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS trips (
			trip_id TEXT PRIMARY KEY,
			route_id TEXT NOT NULL,
			service_id TEXT NOT NULL DEFAULT '',
			trip_headsign TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS stop_times (
			trip_id TEXT NOT NULL,
			stop_id TEXT NOT NULL,
			stop_sequence INTEGER NOT NULL,
			arrival_time TEXT NOT NULL,
			departure_time TEXT NOT NULL,
			PRIMARY KEY (trip_id, stop_sequence)
		);

		CREATE TABLE IF NOT EXISTS transfers (
			from_stop_id TEXT NOT NULL,
			to_stop_id TEXT NOT NULL,
			transfer_type INTEGER NOT NULL,
			min_transfer_time INTEGER,
			PRIMARY KEY (from_stop_id, to_stop_id)
		);
	`)
	return err
}

func (s *Store) createIndexes(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_stop_times_trip ON stop_times(trip_id);
		CREATE INDEX IF NOT EXISTS idx_stop_times_stop ON stop_times(stop_id);
		CREATE INDEX IF NOT EXISTS idx_stop_times_trip_stop ON stop_times(trip_id, stop_id);
		CREATE INDEX IF NOT EXISTS idx_transfers_from ON transfers(from_stop_id);
		CREATE INDEX IF NOT EXISTS idx_transfers_to ON transfers(to_stop_id);
	`)
	return err
}

func (s *Store) hasData(ctx context.Context) (bool, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM stops`); err != nil {
		return false, err
	}
	return count > 0, nil
}

// TripStops returns a trip's full stop sequence ordered by stop_sequence
// ascending, with stop names joined in.
func (s *Store) TripStops(ctx context.Context, tripID string) ([]TripStop, error) {
	if v, err := s.tripStops.Get(tripID); err == nil {
		return v.([]TripStop), nil
	}

	var stops []TripStop
	err := s.db.SelectContext(ctx, &stops, `
		SELECT
			st.trip_id,
			st.stop_id,
			st.stop_sequence,
			st.arrival_time,
			st.departure_time,
			COALESCE(s.stop_name, '') AS stop_name
		FROM stop_times st
		LEFT JOIN stops s ON st.stop_id = s.stop_id
		WHERE st.trip_id = ?
		ORDER BY st.stop_sequence
	`, tripID)
	if err != nil {
		return nil, fmt.Errorf("querying trip stops for %s: %w", tripID, err)
	}

	_ = s.tripStops.Set(tripID, stops)
	return stops, nil
}

// ArrivalTime returns the scheduled arrival time of tripID at stopID.
func (s *Store) ArrivalTime(ctx context.Context, tripID, stopID string) (string, error) {
	key := tripID + ":" + stopID
	if v, err := s.arrivalTimes.Get(key); err == nil {
		return v.(string), nil
	}

	var arrival string
	err := s.db.GetContext(ctx, &arrival, `
		SELECT arrival_time
		FROM stop_times
		WHERE trip_id = ? AND stop_id = ?
	`, tripID, stopID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("querying arrival time for %s at %s: %w", tripID, stopID, err)
	}

	_ = s.arrivalTimes.Set(key, arrival)
	return arrival, nil
}

// TripGoesToStation reports whether tripID calls at stopID.
func (s *Store) TripGoesToStation(ctx context.Context, tripID, stopID string) (bool, error) {
	key := tripID + ":" + stopID
	if v, err := s.goesTo.Get(key); err == nil {
		return v.(bool), nil
	}

	var count int
	err := s.db.GetContext(ctx, &count, `
		SELECT COUNT(*)
		FROM stop_times
		WHERE trip_id = ? AND stop_id = ?
	`, tripID, stopID)
	if err != nil {
		return false, fmt.Errorf("checking trip %s against stop %s: %w", tripID, stopID, err)
	}

	goes := count > 0
	_ = s.goesTo.Set(key, goes)
	return goes, nil
}

// TripDestination returns the display name of the trip's final stop.
func (s *Store) TripDestination(ctx context.Context, tripID string) (string, error) {
	if v, err := s.destinations.Get(tripID); err == nil {
		return v.(string), nil
	}

	var name string
	err := s.db.GetContext(ctx, &name, `
		SELECT s.stop_name
		FROM stop_times st
		JOIN stops s ON st.stop_id = s.stop_id
		WHERE st.trip_id = ?
		ORDER BY st.stop_sequence DESC
		LIMIT 1
	`, tripID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("querying destination for %s: %w", tripID, err)
	}

	_ = s.destinations.Set(tripID, name)
	return name, nil
}

// FutureStops returns the trip's remaining stops strictly after
// fromSequence, ordered by stop_sequence ascending.
func (s *Store) FutureStops(ctx context.Context, tripID string, fromSequence int) ([]TripStop, error) {
	var stops []TripStop
	err := s.db.SelectContext(ctx, &stops, `
		SELECT
			st.trip_id,
			st.stop_id,
			st.stop_sequence,
			st.arrival_time,
			st.departure_time,
			COALESCE(s.stop_name, '') AS stop_name
		FROM stop_times st
		LEFT JOIN stops s ON st.stop_id = s.stop_id
		WHERE st.trip_id = ? AND st.stop_sequence > ?
		ORDER BY st.stop_sequence
	`, tripID, fromSequence)
	if err != nil {
		return nil, fmt.Errorf("querying future stops for %s: %w", tripID, err)
	}
	return stops, nil
}

// TripsByRoute returns every trip scheduled on routeID.
func (s *Store) TripsByRoute(ctx context.Context, routeID string) ([]Trip, error) {
	var trips []Trip
	err := s.db.SelectContext(ctx, &trips, `
		SELECT trip_id, route_id, service_id, trip_headsign
		FROM trips
		WHERE route_id = ?
	`, routeID)
	if err != nil {
		return nil, fmt.Errorf("querying trips for route %s: %w", routeID, err)
	}
	return trips, nil
}

// AllTrips returns every trip in the dataset.
func (s *Store) AllTrips(ctx context.Context) ([]Trip, error) {
	var trips []Trip
	err := s.db.SelectContext(ctx, &trips, `
		SELECT trip_id, route_id, service_id, trip_headsign
		FROM trips
	`)
	if err != nil {
		return nil, fmt.Errorf("querying all trips: %w", err)
	}
	return trips, nil
}

// AllStops returns every stop in the dataset with its mode tag derived
// from the stop ID.
func (s *Store) AllStops(ctx context.Context) ([]Stop, error) {
	var stops []Stop
	err := s.db.SelectContext(ctx, &stops, `
		SELECT stop_id, stop_code, stop_name, stop_lat, stop_lon, parent_station
		FROM stops
	`)
	if err != nil {
		return nil, fmt.Errorf("querying all stops: %w", err)
	}
	for i := range stops {
		stops[i].Mode = ModeFromStopID(stops[i].ID)
	}
	return stops, nil
}

// AllRoutes returns every route in the dataset.
func (s *Store) AllRoutes(ctx context.Context) ([]Route, error) {
	var routes []Route
	err := s.db.SelectContext(ctx, &routes, `
		SELECT route_id, route_short_name, route_long_name, route_type
		FROM routes
	`)
	if err != nil {
		return nil, fmt.Errorf("querying all routes: %w", err)
	}
	return routes, nil
}

// AllTransfers returns every inter-stop transfer. The transfers file is
// optional, so an empty result is common.
func (s *Store) AllTransfers(ctx context.Context) ([]Transfer, error) {
	var transfers []Transfer
	err := s.db.SelectContext(ctx, &transfers, `
		SELECT from_stop_id, to_stop_id, transfer_type, min_transfer_time
		FROM transfers
	`)
	if err != nil {
		return nil, fmt.Errorf("querying all transfers: %w", err)
	}
	return transfers, nil
}
