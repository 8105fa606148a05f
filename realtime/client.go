package realtime

import (
	"context"
	"fmt"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/theoremus-urban-solutions/transit-arrivals/httpclient"
)

// VehiclePosition is one vehicle's live state, flattened from the feed
// entity. Zero values mean the feed omitted the field.
type VehiclePosition struct {
	TripID    string
	RouteID   string
	VehicleID string
	Lat       float64
	Lon       float64
	Bearing   float64
	StopID    string
	Timestamp int64
}

// Snapshot is one decoded pull of a feed.
type Snapshot struct {
	// HeaderTimestamp is the feed-reported generation time, unix seconds.
	HeaderTimestamp int64
	Vehicles        []VehiclePosition
}

// Client fetches and decodes vehicle position feeds.
type Client struct {
	http *httpclient.Client
	url  string
}

// NewClient builds a feed client for the given feed URL. httpClient
// carries the retry and timeout policy.
func NewClient(httpClient *httpclient.Client, url string) *Client {
	return &Client{http: httpClient, url: url}
}

// FetchVehiclePositions pulls the feed once and decodes it. Every field
// in the feed is optional, so extraction guards each pointer; entities
// without a trip ID are dropped.
func (c *Client) FetchVehiclePositions(ctx context.Context) (*Snapshot, error) {
	body, err := c.http.Get(ctx, c.url)
	if err != nil {
		return nil, fmt.Errorf("fetching vehicle positions: %w", err)
	}

	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(body, &fm); err != nil {
		return nil, fmt.Errorf("decoding vehicle positions: %w", err)
	}

	snap := &Snapshot{}
	if fm.Header != nil && fm.Header.Timestamp != nil {
		snap.HeaderTimestamp = int64(*fm.Header.Timestamp)
	}

	for _, e := range fm.Entity {
		v := e.Vehicle
		if v == nil || v.Trip == nil || v.Trip.TripId == nil {
			continue
		}

		pos := VehiclePosition{TripID: *v.Trip.TripId}
		if v.Trip.RouteId != nil {
			pos.RouteID = *v.Trip.RouteId
		}
		if v.Vehicle != nil && v.Vehicle.Id != nil {
			pos.VehicleID = *v.Vehicle.Id
		}
		if v.Position != nil {
			if v.Position.Latitude != nil {
				pos.Lat = float64(*v.Position.Latitude)
			}
			if v.Position.Longitude != nil {
				pos.Lon = float64(*v.Position.Longitude)
			}
			if v.Position.Bearing != nil {
				pos.Bearing = float64(*v.Position.Bearing)
			}
		}
		if v.StopId != nil {
			pos.StopID = *v.StopId
		}
		if v.Timestamp != nil {
			pos.Timestamp = int64(*v.Timestamp)
		}

		snap.Vehicles = append(snap.Vehicles, pos)
	}

	return snap, nil
}
