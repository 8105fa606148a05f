package catalog

import (
	"testing"

	"github.com/theoremus-urban-solutions/transit-arrivals/gtfs"
)

func TestFindByNameSubstring(t *testing.T) {
	idx := metroFixture()

	matches := idx.FindByNameSubstring("martinez")
	if len(matches) != 1 || matches[0].ID != "par_4_3" {
		t.Fatalf("unexpected matches: %+v", matches)
	}

	if matches := idx.FindByNameSubstring("zzz"); matches != nil {
		t.Fatalf("expected no matches, got %+v", matches)
	}
	if matches := idx.FindByNameSubstring("   "); matches != nil {
		t.Fatalf("empty query must match nothing, got %+v", matches)
	}
}

func TestFindByNameSubstringDatasetOrder(t *testing.T) {
	stops := []gtfs.Stop{
		mustStop("par_4_1", "101", "Avenida de América"),
		mustStop("par_4_2", "102", "Avenida de la Paz"),
	}
	idx := New(gtfs.ModeMetro, stops, nil)

	matches := idx.FindByNameSubstring("avenida")
	if len(matches) != 2 {
		t.Fatalf("expected both stops, got %+v", matches)
	}
	if matches[0].ID != "par_4_1" || matches[1].ID != "par_4_2" {
		t.Fatalf("matches out of dataset order: %+v", matches)
	}
}

func TestCatalogByMode(t *testing.T) {
	stops := []gtfs.Stop{
		mustStop("par_4_1", "101", "Sol"),
		mustStop("par_6_9", "210", "Atocha"),
	}
	c := &Catalog{indexes: map[gtfs.Mode]*Index{
		gtfs.ModeMetro: New(gtfs.ModeMetro, stops, nil),
		gtfs.ModeBus:   New(gtfs.ModeBus, stops, nil),
	}}

	metro, err := c.ByMode(gtfs.ModeMetro)
	if err != nil {
		t.Fatalf("metro index missing: %v", err)
	}
	if metro.StopCount() != 1 {
		t.Fatalf("wrong metro stop count: %d", metro.StopCount())
	}

	busStops, err := c.StopsByMode(gtfs.ModeBus)
	if err != nil {
		t.Fatalf("bus stops missing: %v", err)
	}
	if len(busStops) != 1 || busStops[0].ID != "par_6_9" {
		t.Fatalf("wrong bus stops: %+v", busStops)
	}

	if _, err := c.ByMode(gtfs.ModeTrain); err == nil {
		t.Fatalf("expected an error for a mode without an index")
	}
}
