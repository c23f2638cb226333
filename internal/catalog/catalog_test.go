package catalog

import (
	"math"
	"testing"

	"github.com/hayqway/waybot/internal/geo"
)

func f(v float64) *float64 { return &v }

// latOffset returns the latitude delta in degrees that corresponds to the
// given meridian distance in meters on the mean-radius sphere.
func latOffset(meters float64) float64 {
	return meters / 6371000.0 * 180 / math.Pi
}

func testRoutes() []Route {
	origin := geo.Point{Lat: 40.0, Lng: 44.5}
	return []Route{
		{
			Number: "12",
			Start:  Name{"hy": "Կենտրոն", "en": "Center"},
			End:    Name{"hy": "Աջափնյակ", "en": "Ajapnyak"},
			Stops: []Stop{
				{Name: Name{"hy": "Մաշտոց", "en": "Mashtots"}, Coords: &Coordinate{Lat: f(origin.Lat + latOffset(50)), Lng: f(origin.Lng)}},
				{Name: Name{"hy": "Օպերա", "en": "Opera"}, Coords: &Coordinate{Lat: f(origin.Lat + latOffset(4000)), Lng: f(origin.Lng)}},
			},
		},
		{
			Number: "44",
			Start:  Name{"hy": "Զեյթուն", "en": "Zeytun"},
			End:    Name{"hy": "Էրեբունի", "en": "Erebuni"},
			Stops: []Stop{
				{Name: Name{"hy": "Կայարան", "en": "Station"}, Coords: &Coordinate{Lat: f(origin.Lat + latOffset(900000)), Lng: f(origin.Lng)}},
				{Name: Name{"hy": "Անհասցե"}, Coords: nil},
			},
		},
	}
}

func TestNearestStopPicksClosest(t *testing.T) {
	c := New(testRoutes())
	origin := geo.Point{Lat: 40.0, Lng: 44.5}

	e, dist, ok := c.NearestStop(origin)
	if !ok {
		t.Fatal("expected a nearest stop")
	}
	if got := e.Stop.Name.In("en"); got != "Mashtots" {
		t.Fatalf("nearest stop = %q, want Mashtots", got)
	}
	if dist < 45 || dist > 55 {
		t.Fatalf("nearest distance = %v, want ~50", dist)
	}
	if e.Route.Label() != "12" {
		t.Fatalf("owning route = %q, want 12", e.Route.Label())
	}
}

func TestNearestStopEmptyCatalog(t *testing.T) {
	c := New([]Route{{Number: "1", Stops: []Stop{{Name: Name{"hy": "x"}}}}})
	_, dist, ok := c.NearestStop(geo.Point{Lat: 40, Lng: 44.5})
	if ok {
		t.Fatal("expected no locatable stop")
	}
	if !math.IsInf(dist, 1) {
		t.Fatalf("distance = %v, want +Inf", dist)
	}
}

func TestRoutesWithinRadiusBoundary(t *testing.T) {
	origin := geo.Point{Lat: 40.0, Lng: 44.5}
	near := Route{Number: "1", Stops: []Stop{
		{Name: Name{"hy": "a"}, Coords: &Coordinate{Lat: f(origin.Lat + latOffset(999)), Lng: f(origin.Lng)}},
	}}
	far := Route{Number: "2", Stops: []Stop{
		{Name: Name{"hy": "b"}, Coords: &Coordinate{Lat: f(origin.Lat + latOffset(1001)), Lng: f(origin.Lng)}},
	}}
	c := New([]Route{near, far})

	// The boundary is inclusive: a stop at exactly the radius qualifies.
	boundary := geo.DistanceMeters(origin, geo.Point{Lat: origin.Lat + latOffset(999), Lng: origin.Lng})
	found := c.RoutesWithinRadius(origin, boundary)
	if len(found) != 1 || found[0].Label() != "1" {
		t.Fatalf("routes within exact boundary = %v, want just route 1", labels(found))
	}

	found = c.RoutesWithinRadius(origin, 1000)
	if len(found) != 1 || found[0].Label() != "1" {
		t.Fatalf("routes within 1000m = %v, want just route 1", labels(found))
	}
}

func TestRoutesWithinRadiusKeepsCatalogOrder(t *testing.T) {
	origin := geo.Point{Lat: 40.0, Lng: 44.5}
	farButFirst := Route{Number: "9", Stops: []Stop{
		{Name: Name{"hy": "a"}, Coords: &Coordinate{Lat: f(origin.Lat + latOffset(900)), Lng: f(origin.Lng)}},
	}}
	closeButSecond := Route{Number: "3", Stops: []Stop{
		{Name: Name{"hy": "b"}, Coords: &Coordinate{Lat: f(origin.Lat + latOffset(10)), Lng: f(origin.Lng)}},
	}}
	c := New([]Route{farButFirst, closeButSecond})

	found := c.RoutesWithinRadius(origin, 1000)
	if len(found) != 2 || found[0].Label() != "9" || found[1].Label() != "3" {
		t.Fatalf("routes = %v, want load order [9 3], not distance order", labels(found))
	}
}

func TestSearchStopsByName(t *testing.T) {
	c := New(testRoutes())

	found := c.SearchStopsByName("մաշ", "hy")
	if len(found) != 1 || found[0].Stop.Name.In("hy") != "Մաշտոց" {
		t.Fatalf("search 'մաշ' found %d entries", len(found))
	}

	if found := c.SearchStopsByName("MASHTOTS", "en"); len(found) != 1 {
		t.Fatalf("case-insensitive search found %d entries", len(found))
	}

	if found := c.SearchStopsByName("   ", "hy"); found != nil {
		t.Fatalf("whitespace query must match nothing, got %d entries", len(found))
	}
	if found := c.SearchStopsByName("", "hy"); found != nil {
		t.Fatalf("empty query must match nothing, got %d entries", len(found))
	}
}

func TestSearchRoutesByQueryDigitBranch(t *testing.T) {
	c := New(testRoutes())

	found := c.SearchRoutesByQuery("12", "hy")
	if len(found) != 1 || found[0].Label() != "12" {
		t.Fatalf("digit query found %v, want [12]", labels(found))
	}

	// A numeric query never falls back to substring search, even with no hit.
	if found := c.SearchRoutesByQuery("999", "hy"); len(found) != 0 {
		t.Fatalf("unmatched digit query found %v, want nothing", labels(found))
	}
}

func TestSearchRoutesByQueryLeadingZeros(t *testing.T) {
	c := New([]Route{
		{Number: "7", Stops: []Stop{{Name: Name{"hy": "a"}}}},
		{Number: "07", Stops: []Stop{{Name: Name{"hy": "b"}}}},
	})
	found := c.SearchRoutesByQuery("07", "hy")
	if len(found) != 1 || found[0].Label() != "07" {
		t.Fatalf("query '07' found %v, comparison must be textual", labels(found))
	}
}

func TestSearchRoutesByQueryTextBranch(t *testing.T) {
	c := New(testRoutes())

	if found := c.SearchRoutesByQuery("կենտրոն", "hy"); len(found) != 1 || found[0].Label() != "12" {
		t.Fatalf("start-name query found %v, want [12]", labels(found))
	}
	if found := c.SearchRoutesByQuery("կայարան", "hy"); len(found) != 1 || found[0].Label() != "44" {
		t.Fatalf("stop-name query found %v, want [44]", labels(found))
	}
	if found := c.SearchRoutesByQuery("գոյություն-չունի", "hy"); len(found) != 0 {
		t.Fatalf("miss query found %v, want nothing", labels(found))
	}
}

func TestRouteByNumberFirstMatchWins(t *testing.T) {
	c := New([]Route{
		{Number: "5", Start: Name{"hy": "առաջին"}, Stops: []Stop{{Name: Name{"hy": "a"}}}},
		{Number: "5", Start: Name{"hy": "երկրորդ"}, Stops: []Stop{{Name: Name{"hy": "b"}}}},
	})
	r, ok := c.RouteByNumber("5")
	if !ok {
		t.Fatal("route 5 not found")
	}
	if r.Start.In("hy") != "առաջին" {
		t.Fatalf("duplicate label resolved to %q, want the first in load order", r.Start.In("hy"))
	}
}

func TestRouteByNumberFallsBackToID(t *testing.T) {
	c := New([]Route{{ID: "r-17", Stops: []Stop{{Name: Name{"hy": "a"}}}}})
	if _, ok := c.RouteByNumber("r-17"); !ok {
		t.Fatal("route lookup by id failed")
	}
	if _, ok := c.RouteByNumber("none"); ok {
		t.Fatal("unknown route must be a not-found value")
	}
}

func labels(routes []*Route) []string {
	out := make([]string, len(routes))
	for i, r := range routes {
		out[i] = r.Label()
	}
	return out
}
