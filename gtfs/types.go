package gtfs

import (
	"database/sql"
	"strings"
)

// Stop is a physical boarding location. Stops are immutable once
// constructed and live for the process lifetime.
type Stop struct {
	ID            string  `db:"stop_id"`
	Code          string  `db:"stop_code"`
	Name          string  `db:"stop_name"`
	Lat           float64 `db:"stop_lat"`
	Lon           float64 `db:"stop_lon"`
	ParentStation string  `db:"parent_station"`
	Mode          Mode    `db:"-"`
}

// NewStop validates and constructs a Stop. The mode tag is derived from
// the stop ID.
func NewStop(id, code, name string, lat, lon float64, parentStation string) (Stop, error) {
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)
	if id == "" {
		return Stop{}, ErrNoID
	}
	if name == "" {
		return Stop{}, ErrNoName
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return Stop{}, ErrInvalidCoordinates
	}
	return Stop{
		ID:            id,
		Code:          strings.TrimSpace(code),
		Name:          name,
		Lat:           lat,
		Lon:           lon,
		ParentStation: strings.TrimSpace(parentStation),
		Mode:          ModeFromStopID(id),
	}, nil
}

// Route is one line of a transit network.
type Route struct {
	ID        string `db:"route_id"`
	ShortName string `db:"route_short_name"`
	LongName  string `db:"route_long_name"`
	Type      int    `db:"route_type"`
}

// NewRoute validates and constructs a Route.
func NewRoute(id, shortName, longName string, routeType int) (Route, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Route{}, ErrNoID
	}
	return Route{
		ID:        id,
		ShortName: strings.TrimSpace(shortName),
		LongName:  strings.TrimSpace(longName),
		Type:      routeType,
	}, nil
}

// Mode returns the transit mode classified from the route_type code.
func (r Route) Mode() Mode { return ModeFromRouteType(r.Type) }

// Trip is one scheduled run of a vehicle along an ordered stop sequence.
type Trip struct {
	ID        string `db:"trip_id"`
	RouteID   string `db:"route_id"`
	ServiceID string `db:"service_id"`
	Headsign  string `db:"trip_headsign"`
}

// TripStop is one entry of a trip's ordered stop sequence. Arrival and
// departure are wall-clock-of-day strings and may exceed 24:00:00 for
// post-midnight service.
type TripStop struct {
	TripID        string `db:"trip_id"`
	StopID        string `db:"stop_id"`
	StopSequence  int    `db:"stop_sequence"`
	ArrivalTime   string `db:"arrival_time"`
	DepartureTime string `db:"departure_time"`
	StopName      string `db:"stop_name"`
}

// Transfer is a directed connection between two stops.
type Transfer struct {
	FromStopID      string        `db:"from_stop_id"`
	ToStopID        string        `db:"to_stop_id"`
	TransferType    int           `db:"transfer_type"`
	MinTransferTime sql.NullInt64 `db:"min_transfer_time"`
}
