package catalog

import (
	"context"
	"fmt"

	"github.com/theoremus-urban-solutions/transit-arrivals/gtfs"
)

// Catalog groups the per-network indexes so callers can dispatch a query
// by mode.
type Catalog struct {
	indexes map[gtfs.Mode]*Index
}

// Build constructs an index for each requested mode from the schedule
// store. No modes means all three networks.
func Build(ctx context.Context, store *gtfs.Store, modes ...gtfs.Mode) (*Catalog, error) {
	if len(modes) == 0 {
		modes = []gtfs.Mode{gtfs.ModeMetro, gtfs.ModeBus, gtfs.ModeTrain}
	}

	c := &Catalog{indexes: make(map[gtfs.Mode]*Index, len(modes))}
	for _, m := range modes {
		idx, err := FromStore(ctx, store, m)
		if err != nil {
			return nil, err
		}
		c.indexes[m] = idx
	}
	return c, nil
}

// ByMode returns the index for one network.
func (c *Catalog) ByMode(mode gtfs.Mode) (*Index, error) {
	idx, ok := c.indexes[mode]
	if !ok {
		return nil, fmt.Errorf("no catalog for mode %q", mode)
	}
	return idx, nil
}

// StopsByMode returns the stops of one network in dataset order.
func (c *Catalog) StopsByMode(mode gtfs.Mode) ([]gtfs.Stop, error) {
	idx, err := c.ByMode(mode)
	if err != nil {
		return nil, err
	}
	return idx.Stops(), nil
}
