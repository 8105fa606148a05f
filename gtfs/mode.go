package gtfs

import "strings"

// Mode tags a stop or route with the transit network it belongs to.
type Mode string

const (
	ModeMetro     Mode = "metro"
	ModeBus       Mode = "bus"
	ModeTrain     Mode = "train"
	ModeLightRail Mode = "light_rail"
	ModeUnknown   Mode = ""
)

// ModeFromRouteType maps the GTFS route_type code to a Mode.
func ModeFromRouteType(routeType int) Mode {
	switch routeType {
	case 0:
		return ModeLightRail
	case 1:
		return ModeMetro
	case 2:
		return ModeTrain
	case 3:
		return ModeBus
	default:
		return ModeUnknown
	}
}

// ModeFromStopID classifies a stop by its ID prefix. The Madrid CRTM
// dataset encodes the network in the stop_id: par_4_* is metro, par_5_*
// commuter rail, par_6_* bus.
func ModeFromStopID(stopID string) Mode {
	switch {
	case strings.HasPrefix(stopID, "par_4_"):
		return ModeMetro
	case strings.HasPrefix(stopID, "par_5_"):
		return ModeTrain
	case strings.HasPrefix(stopID, "par_6_"):
		return ModeBus
	default:
		return ModeUnknown
	}
}

// ModeFromString parses user- and config-facing mode names, including the
// numeric network codes and local aliases used upstream.
func ModeFromString(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "metro", "4":
		return ModeMetro
	case "bus", "3":
		return ModeBus
	case "train", "cercanias", "5":
		return ModeTrain
	case "light_rail", "metro_ligero", "ml":
		return ModeLightRail
	default:
		return ModeUnknown
	}
}

func (m Mode) String() string { return string(m) }
