package gtfs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

// fixtureDir writes a small but fully-linked dataset: three stops across
// two networks, two routes, two trips, and a stop sequence for each trip.
func fixtureDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeFixture(t, dir, "stops.txt", `stop_id,stop_code,stop_name,stop_lat,stop_lon,parent_station
par_4_1,101,Sol,40.4169,-3.7035,est_4_1
par_4_2,102,Gran Vía,40.4203,-3.7058,est_4_2
par_6_9,210,Atocha,40.4065,-3.6895,
`)
	writeFixture(t, dir, "routes.txt", `route_id,route_short_name,route_long_name,route_type
4__1,1,Pinar de Chamartín - Valdecarros,1
6__27,27,Embajadores - Plaza Castilla,3
`)
	writeFixture(t, dir, "trips.txt", `trip_id,route_id,service_id,trip_headsign
trip_1,4__1,WD,Valdecarros
trip_2,6__27,WD,Plaza Castilla
`)
	writeFixture(t, dir, "stop_times.txt", `trip_id,stop_id,stop_sequence,arrival_time,departure_time
trip_1,par_4_1,1,08:00:00,08:00:30
trip_1,par_4_2,2,08:03:00,08:03:30
trip_1,par_6_9,3,08:10:00,08:10:00
trip_2,par_6_9,1,09:00:00,09:00:00
`)
	writeFixture(t, dir, "transfers.txt", `from_stop_id,to_stop_id,transfer_type,min_transfer_time
par_4_1,par_4_2,2,180
`)

	return dir
}

func openFixture(t *testing.T) *Store {
	t.Helper()
	store, err := Open(fixtureDir(t), "")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Initialize(context.Background()))
	return store
}

func TestInitializeLoadsDataset(t *testing.T) {
	store := openFixture(t)
	ctx := context.Background()

	stops, err := store.AllStops(ctx)
	require.NoError(t, err)
	assert.Len(t, stops, 3)

	routes, err := store.AllRoutes(ctx)
	require.NoError(t, err)
	assert.Len(t, routes, 2)

	trips, err := store.AllTrips(ctx)
	require.NoError(t, err)
	assert.Len(t, trips, 2)

	transfers, err := store.AllTransfers(ctx)
	require.NoError(t, err)
	require.Len(t, transfers, 1)
	assert.Equal(t, "par_4_1", transfers[0].FromStopID)
	assert.True(t, transfers[0].MinTransferTime.Valid)
	assert.EqualValues(t, 180, transfers[0].MinTransferTime.Int64)
}

func TestInitializeIdempotent(t *testing.T) {
	dir := fixtureDir(t)
	dbPath := filepath.Join(t.TempDir(), "schedule.db")
	ctx := context.Background()

	store, err := Open(dir, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Initialize(ctx))
	require.NoError(t, store.Close())

	// Reopening against the same file must skip the load rather than
	// duplicate or fail on existing rows.
	store, err = Open(dir, dbPath)
	require.NoError(t, err)
	defer store.Close()
	require.NoError(t, store.Initialize(ctx))

	stops, err := store.AllStops(ctx)
	require.NoError(t, err)
	assert.Len(t, stops, 3)
}

func TestInitializeMissingFile(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "stops.txt", "stop_id,stop_name\npar_4_1,Sol\n")

	store, err := Open(dir, "")
	require.NoError(t, err)
	defer store.Close()

	err = store.Initialize(context.Background())
	require.Error(t, err)

	var initErr *StoreInitError
	require.True(t, errors.As(err, &initErr))
	assert.Equal(t, "routes.txt", initErr.Step)
}

func TestTripStopsOrdered(t *testing.T) {
	store := openFixture(t)

	stops, err := store.TripStops(context.Background(), "trip_1")
	require.NoError(t, err)
	require.Len(t, stops, 3)

	assert.Equal(t, "Sol", stops[0].StopName)
	assert.Equal(t, "Gran Vía", stops[1].StopName)
	assert.Equal(t, "Atocha", stops[2].StopName)
	for i := 1; i < len(stops); i++ {
		assert.Greater(t, stops[i].StopSequence, stops[i-1].StopSequence)
	}
}

func TestTripStopsUnknownTrip(t *testing.T) {
	store := openFixture(t)

	stops, err := store.TripStops(context.Background(), "nope")
	require.NoError(t, err)
	assert.Empty(t, stops)
}

func TestArrivalTime(t *testing.T) {
	store := openFixture(t)
	ctx := context.Background()

	arrival, err := store.ArrivalTime(ctx, "trip_1", "par_4_2")
	require.NoError(t, err)
	assert.Equal(t, "08:03:00", arrival)

	_, err = store.ArrivalTime(ctx, "trip_1", "par_5_99")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTripGoesToStation(t *testing.T) {
	store := openFixture(t)
	ctx := context.Background()

	goes, err := store.TripGoesToStation(ctx, "trip_1", "par_6_9")
	require.NoError(t, err)
	assert.True(t, goes)

	goes, err = store.TripGoesToStation(ctx, "trip_2", "par_4_1")
	require.NoError(t, err)
	assert.False(t, goes)
}

func TestTripDestination(t *testing.T) {
	store := openFixture(t)
	ctx := context.Background()

	dest, err := store.TripDestination(ctx, "trip_1")
	require.NoError(t, err)
	assert.Equal(t, "Atocha", dest)

	_, err = store.TripDestination(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFutureStops(t *testing.T) {
	store := openFixture(t)

	stops, err := store.FutureStops(context.Background(), "trip_1", 1)
	require.NoError(t, err)
	require.Len(t, stops, 2)
	assert.Equal(t, "par_4_2", stops[0].StopID)
	assert.Equal(t, "par_6_9", stops[1].StopID)
}

func TestTripsByRoute(t *testing.T) {
	store := openFixture(t)

	trips, err := store.TripsByRoute(context.Background(), "4__1")
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Equal(t, "trip_1", trips[0].ID)
	assert.Equal(t, "Valdecarros", trips[0].Headsign)
}

func TestAllStopsModeDerived(t *testing.T) {
	store := openFixture(t)

	stops, err := store.AllStops(context.Background())
	require.NoError(t, err)

	modes := map[string]Mode{}
	for _, s := range stops {
		modes[s.ID] = s.Mode
	}
	assert.Equal(t, ModeMetro, modes["par_4_1"])
	assert.Equal(t, ModeBus, modes["par_6_9"])
}
