package catalog

import (
	"testing"

	"github.com/theoremus-urban-solutions/transit-arrivals/gtfs"
)

func metroFixture() *Index {
	stops := []gtfs.Stop{
		mustStop("par_4_1", "101", "Sol"),
		mustStop("par_4_2", "102", "Gran Vía"),
		mustStop("par_4_3", "103", "Alonso Martínez"),
		mustStop("par_4_4", "104", "Príncipe Pío"),
		mustStop("par_6_9", "210", "Atocha"), // bus, must be filtered out
	}
	routes := []gtfs.Route{
		{ID: "4__1", ShortName: "1", LongName: "Pinar de Chamartín - Valdecarros", Type: 1},
		{ID: "4__10", ShortName: "10", LongName: "Hospital Infanta Sofía - Puerta del Sur", Type: 1},
		{ID: "6__27", ShortName: "27", LongName: "Embajadores - Plaza Castilla", Type: 3},
	}
	return New(gtfs.ModeMetro, stops, routes)
}

func mustStop(id, code, name string) gtfs.Stop {
	stop, err := gtfs.NewStop(id, code, name, 40.4, -3.7, "")
	if err != nil {
		panic(err)
	}
	return stop
}

func TestIndexFiltersByMode(t *testing.T) {
	idx := metroFixture()

	if got := idx.StopCount(); got != 4 {
		t.Fatalf("expected 4 metro stops, got %d", got)
	}
	if got := idx.RouteCount(); got != 2 {
		t.Fatalf("expected 2 metro routes, got %d", got)
	}
	if _, ok := idx.ByID("par_6_9"); ok {
		t.Fatalf("bus stop leaked into metro index")
	}
	t.Logf("✓ non-metro entries filtered")
}

func TestIndexByID(t *testing.T) {
	idx := metroFixture()

	stop, ok := idx.ByID("par_4_2")
	if !ok {
		t.Fatalf("expected to find par_4_2")
	}
	if stop.Name != "Gran Vía" {
		t.Fatalf("wrong stop: %+v", stop)
	}
	if _, ok := idx.ByID("par_4_999"); ok {
		t.Fatalf("found a stop that does not exist")
	}
}

func TestIndexByCode(t *testing.T) {
	idx := metroFixture()

	stop, ok := idx.ByCode("103")
	if !ok {
		t.Fatalf("expected to find code 103")
	}
	if stop.ID != "par_4_3" {
		t.Fatalf("wrong stop for code 103: %+v", stop)
	}
}

func TestIndexFindByNameIgnoresAccents(t *testing.T) {
	idx := metroFixture()

	for _, q := range []string{"Gran Vía", "gran via", "GRAN VIA", "  gran vía  "} {
		stop, ok := idx.FindByName(q)
		if !ok {
			t.Fatalf("expected %q to match", q)
		}
		if stop.ID != "par_4_2" {
			t.Fatalf("query %q matched wrong stop %+v", q, stop)
		}
	}
	t.Logf("✓ name matching is case- and accent-insensitive")
}

func TestIndexRoutesByShortName(t *testing.T) {
	idx := metroFixture()

	routes := idx.RoutesByShortName("10")
	if len(routes) != 1 || routes[0].ID != "4__10" {
		t.Fatalf("unexpected routes for line 10: %+v", routes)
	}
	if routes := idx.RoutesByShortName("27"); routes != nil {
		t.Fatalf("bus route leaked into metro index: %+v", routes)
	}
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"  Gran Vía ":      "gran via",
		"Alonso Martínez":  "alonso martinez",
		"PRÍNCIPE PÍO":     "principe pio",
		"sol":              "sol",
		"Begoña":           "begona",
		"Ciudad Lineal":    "ciudad lineal",
		"CAÑO ROTO (ávila": "cano roto (avila",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Fatalf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}
