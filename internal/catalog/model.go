// Package catalog holds the in-memory route/stop data set and its read-only
// query primitives. A Catalog is immutable after construction; reloads build
// a whole new Catalog and swap it in via Provider.
package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/hayqway/waybot/internal/geo"
)

// Label is a route identifier that arrives as either a JSON string or a
// number. Comparisons are always textual, so "07" and "7" stay distinct.
type Label string

// UnmarshalJSON accepts strings, numbers, and null.
func (l *Label) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = Label(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*l = Label(n.String())
		return nil
	}
	return fmt.Errorf("label: cannot parse %s", string(data))
}

// Name maps a language code to a localized display string.
type Name map[string]string

// In returns the name in the given locale, or empty when missing.
func (n Name) In(locale string) string {
	if n == nil {
		return ""
	}
	return n[locale]
}

// InOr returns the name in the given locale with an explicit fallback.
func (n Name) InOr(locale, fallback string) string {
	if v := n.In(locale); v != "" {
		return v
	}
	return fallback
}

// Coordinate is a possibly-incomplete geographic position. The source data
// carries explicit nulls for unknown positions.
type Coordinate struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// Locatable reports whether both latitude and longitude are present.
func (c *Coordinate) Locatable() bool {
	return c != nil && c.Lat != nil && c.Lng != nil
}

// Point converts a locatable coordinate to a geo.Point, or nil otherwise.
func (c *Coordinate) Point() *geo.Point {
	if !c.Locatable() {
		return nil
	}
	return &geo.Point{Lat: *c.Lat, Lng: *c.Lng}
}

// Stop is a boarding point on a route. ETAMin, when positive, is a
// precomputed arrival estimate that overrides any computed one.
type Stop struct {
	Name   Name        `json:"name" validate:"required,min=1"`
	Coords *Coordinate `json:"coords"`
	Time   string      `json:"time"`
	ETAMin float64     `json:"eta_min"`
}

// Route is an ordered sequence of stops with a rider-facing label.
type Route struct {
	ID     Label  `json:"id"`
	Number Label  `json:"number"`
	Start  Name   `json:"start"`
	End    Name   `json:"end"`
	Stops  []Stop `json:"stops" validate:"dive"`
}

// Label returns the rider-facing route identifier: the number when present,
// the id as a fallback, and "N/A" when the data carries neither.
func (r *Route) Label() string {
	if r.Number != "" {
		return string(r.Number)
	}
	if r.ID != "" {
		return string(r.ID)
	}
	return "N/A"
}

// Matches reports whether the given text equals the route number or id.
func (r *Route) Matches(q string) bool {
	return (r.Number != "" && string(r.Number) == q) || (r.ID != "" && string(r.ID) == q)
}
