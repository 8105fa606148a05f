package gtfs

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
)

// Rows per insert transaction. Large feeds have millions of stop_times
// rows, so loading row-by-row in autocommit mode is unusably slow.
const batchSize = 10000

// loadAll parses the schedule text files from the data directory into the
// database. transfers.txt is optional per the format and is skipped when
// absent.
func (s *Store) loadAll(ctx context.Context) error {
	start := time.Now()

	steps := []struct {
		name     string
		load     func(context.Context, string) error
		optional bool
	}{
		{"stops.txt", s.loadStops, false},
		{"routes.txt", s.loadRoutes, false},
		{"trips.txt", s.loadTrips, false},
		{"stop_times.txt", s.loadStopTimes, false},
		{"transfers.txt", s.loadTransfers, true},
	}

	for _, step := range steps {
		path := filepath.Join(s.dir, step.name)
		if err := step.load(ctx, path); err != nil {
			if step.optional && os.IsNotExist(err) {
				log.Printf("no %s in %s, skipping", step.name, s.dir)
				continue
			}
			return &StoreInitError{Step: step.name, Err: err}
		}
	}

	log.Printf("schedule data loaded in %v", time.Since(start))
	return nil
}

// header maps column names to their index in each record.
type header map[string]int

func readHeader(r *csv.Reader) (header, error) {
	row, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	h := header{}
	for i, name := range row {
		// Strip the UTF-8 BOM some feed exporters prepend.
		if i == 0 && len(name) >= 3 && name[:3] == "\xef\xbb\xbf" {
			name = name[3:]
		}
		h[name] = i
	}
	return h, nil
}

func (h header) get(row []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func openCSV(path string) (*os.File, *csv.Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	r := csv.NewReader(f)
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	return f, r, nil
}

// batcher accumulates rows and flushes them in one transaction per batch
// using a prepared statement.
type batcher struct {
	db    *sqlx.DB
	query string
	rows  [][]interface{}
	total int
}

func (b *batcher) add(ctx context.Context, args ...interface{}) error {
	b.rows = append(b.rows, args)
	if len(b.rows) >= batchSize {
		return b.flush(ctx)
	}
	return nil
}

func (b *batcher) flush(ctx context.Context) error {
	if len(b.rows) == 0 {
		return nil
	}

	tx, err := b.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning batch: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, b.query)
	if err != nil {
		return fmt.Errorf("preparing batch insert: %w", err)
	}
	defer stmt.Close()

	for _, args := range b.rows {
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("inserting row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing batch: %w", err)
	}

	b.total += len(b.rows)
	b.rows = b.rows[:0]
	return nil
}

func (s *Store) loadStops(ctx context.Context, path string) error {
	f, r, err := openCSV(path)
	if err != nil {
		return err
	}
	defer f.Close()

	h, err := readHeader(r)
	if err != nil {
		return err
	}

	b := &batcher{db: s.db, query: `
		INSERT OR IGNORE INTO stops
			(stop_id, stop_code, stop_name, stop_lat, stop_lon, parent_station)
		VALUES (?, ?, ?, ?, ?, ?)
	`}

	skipped := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		lat, latErr := strconv.ParseFloat(h.get(row, "stop_lat"), 64)
		lon, lonErr := strconv.ParseFloat(h.get(row, "stop_lon"), 64)
		if latErr != nil || lonErr != nil {
			lat, lon = 0, 0
		}

		stop, err := NewStop(
			h.get(row, "stop_id"),
			h.get(row, "stop_code"),
			h.get(row, "stop_name"),
			lat, lon,
			h.get(row, "parent_station"),
		)
		if err != nil {
			skipped++
			continue
		}

		if err := b.add(ctx, stop.ID, stop.Code, stop.Name, stop.Lat, stop.Lon, stop.ParentStation); err != nil {
			return err
		}
	}
	if err := b.flush(ctx); err != nil {
		return err
	}

	log.Printf("loaded %d stops (%d skipped)", b.total, skipped)
	return nil
}

func (s *Store) loadRoutes(ctx context.Context, path string) error {
	f, r, err := openCSV(path)
	if err != nil {
		return err
	}
	defer f.Close()

	h, err := readHeader(r)
	if err != nil {
		return err
	}

	b := &batcher{db: s.db, query: `
		INSERT OR IGNORE INTO routes
			(route_id, route_short_name, route_long_name, route_type)
		VALUES (?, ?, ?, ?)
	`}

	skipped := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		routeType, err := strconv.Atoi(h.get(row, "route_type"))
		if err != nil {
			skipped++
			continue
		}

		route, err := NewRoute(
			h.get(row, "route_id"),
			h.get(row, "route_short_name"),
			h.get(row, "route_long_name"),
			routeType,
		)
		if err != nil {
			skipped++
			continue
		}

		if err := b.add(ctx, route.ID, route.ShortName, route.LongName, route.Type); err != nil {
			return err
		}
	}
	if err := b.flush(ctx); err != nil {
		return err
	}

	log.Printf("loaded %d routes (%d skipped)", b.total, skipped)
	return nil
}

func (s *Store) loadTrips(ctx context.Context, path string) error {
	f, r, err := openCSV(path)
	if err != nil {
		return err
	}
	defer f.Close()

	h, err := readHeader(r)
	if err != nil {
		return err
	}

	b := &batcher{db: s.db, query: `
		INSERT OR IGNORE INTO trips
			(trip_id, route_id, service_id, trip_headsign)
		VALUES (?, ?, ?, ?)
	`}

	skipped := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		tripID := h.get(row, "trip_id")
		routeID := h.get(row, "route_id")
		if tripID == "" || routeID == "" {
			skipped++
			continue
		}

		if err := b.add(ctx, tripID, routeID, h.get(row, "service_id"), h.get(row, "trip_headsign")); err != nil {
			return err
		}
	}
	if err := b.flush(ctx); err != nil {
		return err
	}

	log.Printf("loaded %d trips (%d skipped)", b.total, skipped)
	return nil
}

func (s *Store) loadStopTimes(ctx context.Context, path string) error {
	f, r, err := openCSV(path)
	if err != nil {
		return err
	}
	defer f.Close()

	h, err := readHeader(r)
	if err != nil {
		return err
	}

	b := &batcher{db: s.db, query: `
		INSERT OR IGNORE INTO stop_times
			(trip_id, stop_id, stop_sequence, arrival_time, departure_time)
		VALUES (?, ?, ?, ?, ?)
	`}

	skipped := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		tripID := h.get(row, "trip_id")
		stopID := h.get(row, "stop_id")
		seq, seqErr := strconv.Atoi(h.get(row, "stop_sequence"))
		if tripID == "" || stopID == "" || seqErr != nil {
			skipped++
			continue
		}

		arrival := h.get(row, "arrival_time")
		departure := h.get(row, "departure_time")
		if _, err := ClockTimeToSeconds(arrival); err != nil {
			skipped++
			continue
		}
		if departure == "" {
			departure = arrival
		}

		if err := b.add(ctx, tripID, stopID, seq, arrival, departure); err != nil {
			return err
		}
	}
	if err := b.flush(ctx); err != nil {
		return err
	}

	log.Printf("loaded %d stop times (%d skipped)", b.total, skipped)
	return nil
}

func (s *Store) loadTransfers(ctx context.Context, path string) error {
	f, r, err := openCSV(path)
	if err != nil {
		return err
	}
	defer f.Close()

	h, err := readHeader(r)
	if err != nil {
		return err
	}

	b := &batcher{db: s.db, query: `
		INSERT OR IGNORE INTO transfers
			(from_stop_id, to_stop_id, transfer_type, min_transfer_time)
		VALUES (?, ?, ?, ?)
	`}

	skipped := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		from := h.get(row, "from_stop_id")
		to := h.get(row, "to_stop_id")
		if from == "" || to == "" {
			skipped++
			continue
		}

		transferType, err := strconv.Atoi(h.get(row, "transfer_type"))
		if err != nil {
			transferType = 0
		}

		var minTime interface{}
		if v, err := strconv.Atoi(h.get(row, "min_transfer_time")); err == nil {
			minTime = v
		}

		if err := b.add(ctx, from, to, transferType, minTime); err != nil {
			return err
		}
	}
	if err := b.flush(ctx); err != nil {
		return err
	}

	log.Printf("loaded %d transfers (%d skipped)", b.total, skipped)
	return nil
}
