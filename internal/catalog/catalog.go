package catalog

import (
	"math"
	"strings"
	"unicode"

	"github.com/hayqway/waybot/internal/geo"
)

// Entry pairs a stop with its owning route in flattened catalog order.
type Entry struct {
	Stop  *Stop
	Route *Route
}

// Catalog is the immutable queryable view over the loaded routes.
// All query methods are safe for concurrent use.
type Catalog struct {
	routes  []*Route
	entries []Entry
}

// New builds a Catalog from routes, flattening stops in traversal order.
func New(routes []Route) *Catalog {
	c := &Catalog{routes: make([]*Route, len(routes))}
	for i := range routes {
		r := &routes[i]
		c.routes[i] = r
		for j := range r.Stops {
			c.entries = append(c.entries, Entry{Stop: &r.Stops[j], Route: r})
		}
	}
	return c
}

// Routes returns all routes in load order. Callers must not mutate them.
func (c *Catalog) Routes() []*Route {
	return c.routes
}

// Stops returns the flattened (stop, route) sequence in load order.
func (c *Catalog) Stops() []Entry {
	return c.entries
}

// NearestStop scans every locatable stop and returns the one closest to
// origin together with its distance. When no stop is locatable the distance
// is +Inf and ok is false. Ties keep the first stop in flattened order.
func (c *Catalog) NearestStop(origin geo.Point) (Entry, float64, bool) {
	best := Entry{}
	minDist := math.Inf(1)
	for _, e := range c.entries {
		p := e.Stop.Coords.Point()
		if p == nil {
			continue
		}
		if d := geo.DistanceMeters(origin, *p); d < minDist {
			minDist = d
			best = e
		}
	}
	return best, minDist, !math.IsInf(minDist, 1)
}

// RoutesWithinRadius returns every route owning at least one locatable stop
// within radiusMeters of origin (boundary inclusive). Each route qualifies on
// its first matching stop; the result follows catalog load order.
func (c *Catalog) RoutesWithinRadius(origin geo.Point, radiusMeters float64) []*Route {
	var found []*Route
	for _, r := range c.routes {
		for i := range r.Stops {
			p := r.Stops[i].Coords.Point()
			if p == nil {
				continue
			}
			if geo.DistanceMeters(origin, *p) <= radiusMeters {
				found = append(found, r)
				break
			}
		}
	}
	return found
}

// SearchStopsByName finds stops whose localized name contains the query,
// case-insensitively. An empty or whitespace-only query matches nothing.
// Results keep catalog order; there is no relevance ranking.
func (c *Catalog) SearchStopsByName(query, locale string) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var found []Entry
	for _, e := range c.entries {
		name := strings.ToLower(e.Stop.Name.In(locale))
		if name != "" && strings.Contains(name, q) {
			found = append(found, e)
		}
	}
	return found
}

// SearchRoutesByQuery resolves a free-text route search. An all-digits query
// is an exact textual match on route number or id and never falls back to
// substring search. Anything else substring-matches the route start name,
// end name, or any owned stop name in the given locale.
func (c *Catalog) SearchRoutesByQuery(query, locale string) []*Route {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	if allDigits(q) {
		var found []*Route
		for _, r := range c.routes {
			if r.Matches(q) {
				found = append(found, r)
			}
		}
		return found
	}

	var found []*Route
	for _, r := range c.routes {
		if strings.Contains(strings.ToLower(r.Start.In(locale)), q) ||
			strings.Contains(strings.ToLower(r.End.In(locale)), q) {
			found = append(found, r)
			continue
		}
		for i := range r.Stops {
			name := strings.ToLower(r.Stops[i].Name.In(locale))
			if name != "" && strings.Contains(name, q) {
				found = append(found, r)
				break
			}
		}
	}
	return found
}

// RouteByNumber returns the first route whose number or id equals the input.
// Duplicate labels in the data resolve deterministically to the first match
// in load order.
func (c *Catalog) RouteByNumber(numberOrID string) (*Route, bool) {
	q := strings.TrimSpace(numberOrID)
	if q == "" {
		return nil, false
	}
	for _, r := range c.routes {
		if r.Matches(q) {
			return r, true
		}
	}
	return nil, false
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
