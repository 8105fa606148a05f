package catalog

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/theoremus-urban-solutions/transit-arrivals/gtfs"
)

// Index is the read-only lookup structure for one transit network. Stops
// keep their dataset order, which makes substring matches deterministic.
type Index struct {
	mode gtfs.Mode

	stops      []gtfs.Stop
	byID       map[string]int
	byCode     map[string]int
	normalized []string

	routes      []gtfs.Route
	byShortName map[string][]int
}

// FromStore builds the index for one network from the schedule store,
// keeping only the stops and routes belonging to that mode.
func FromStore(ctx context.Context, store *gtfs.Store, mode gtfs.Mode) (*Index, error) {
	allStops, err := store.AllStops(ctx)
	if err != nil {
		return nil, fmt.Errorf("building %s index: %w", mode, err)
	}
	allRoutes, err := store.AllRoutes(ctx)
	if err != nil {
		return nil, fmt.Errorf("building %s index: %w", mode, err)
	}

	idx := New(mode, allStops, allRoutes)
	log.Printf("%s index built: %d stops, %d routes", mode, len(idx.stops), len(idx.routes))
	return idx, nil
}

// New builds an index over the given stops and routes, keeping only those
// belonging to mode. ModeUnknown keeps everything.
func New(mode gtfs.Mode, allStops []gtfs.Stop, allRoutes []gtfs.Route) *Index {
	idx := &Index{
		mode:        mode,
		byID:        map[string]int{},
		byCode:      map[string]int{},
		byShortName: map[string][]int{},
	}

	for _, stop := range allStops {
		if mode != gtfs.ModeUnknown && stop.Mode != mode {
			continue
		}
		i := len(idx.stops)
		idx.stops = append(idx.stops, stop)
		idx.normalized = append(idx.normalized, Normalize(stop.Name))
		idx.byID[stop.ID] = i
		if stop.Code != "" {
			// First stop wins when codes collide across the dataset.
			if _, ok := idx.byCode[stop.Code]; !ok {
				idx.byCode[stop.Code] = i
			}
		}
	}

	for _, route := range allRoutes {
		if mode != gtfs.ModeUnknown && route.Mode() != mode {
			continue
		}
		i := len(idx.routes)
		idx.routes = append(idx.routes, route)
		key := Normalize(route.ShortName)
		idx.byShortName[key] = append(idx.byShortName[key], i)
	}

	return idx
}

// Mode returns the network this index covers.
func (idx *Index) Mode() gtfs.Mode { return idx.mode }

// ByID returns the stop with the given dataset ID.
func (idx *Index) ByID(stopID string) (gtfs.Stop, bool) {
	i, ok := idx.byID[stopID]
	if !ok {
		return gtfs.Stop{}, false
	}
	return idx.stops[i], true
}

// ByCode returns the stop with the given rider-facing code.
func (idx *Index) ByCode(code string) (gtfs.Stop, bool) {
	i, ok := idx.byCode[code]
	if !ok {
		return gtfs.Stop{}, false
	}
	return idx.stops[i], true
}

// FindByName returns the first stop whose name matches the query exactly,
// ignoring case and accents.
func (idx *Index) FindByName(name string) (gtfs.Stop, bool) {
	q := Normalize(name)
	for i, n := range idx.normalized {
		if n == q {
			return idx.stops[i], true
		}
	}
	return gtfs.Stop{}, false
}

// FindByNameSubstring returns every stop whose normalized name contains
// the normalized query, in dataset order. An empty query matches nothing.
func (idx *Index) FindByNameSubstring(query string) []gtfs.Stop {
	q := Normalize(query)
	if q == "" {
		return nil
	}
	var matches []gtfs.Stop
	for i, n := range idx.normalized {
		if strings.Contains(n, q) {
			matches = append(matches, idx.stops[i])
		}
	}
	return matches
}

// Stops returns all stops in dataset order. The slice is shared; callers
// must not modify it.
func (idx *Index) Stops() []gtfs.Stop { return idx.stops }

// Routes returns all routes of the network.
func (idx *Index) Routes() []gtfs.Route { return idx.routes }

// RouteByID returns the route with the given dataset ID.
func (idx *Index) RouteByID(routeID string) (gtfs.Route, bool) {
	for _, r := range idx.routes {
		if r.ID == routeID {
			return r, true
		}
	}
	return gtfs.Route{}, false
}

// RoutesByShortName returns the routes with the given rider-facing line
// name, ignoring case and accents.
func (idx *Index) RoutesByShortName(shortName string) []gtfs.Route {
	indexes := idx.byShortName[Normalize(shortName)]
	if len(indexes) == 0 {
		return nil
	}
	routes := make([]gtfs.Route, len(indexes))
	for i, j := range indexes {
		routes[i] = idx.routes[j]
	}
	return routes
}

// StopCount returns the number of stops in the index.
func (idx *Index) StopCount() int { return len(idx.stops) }

// RouteCount returns the number of routes in the index.
func (idx *Index) RouteCount() int { return len(idx.routes) }
