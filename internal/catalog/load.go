package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(coordinatePairing, Coordinate{})
	return v
}

// coordinatePairing enforces that latitude and longitude are either both
// present or both absent; the loader never lets a half-known position in.
func coordinatePairing(sl validator.StructLevel) {
	c := sl.Current().Interface().(Coordinate)
	if (c.Lat == nil) != (c.Lng == nil) {
		if c.Lat == nil {
			sl.ReportError(c.Lat, "Lat", "lat", "pairedcoord", "")
		} else {
			sl.ReportError(c.Lng, "Lng", "lng", "pairedcoord", "")
		}
	}
}

// LoadFile reads and validates the route data set. Any read, parse, or
// validation failure is returned as an error without partial results, so a
// caller holding a previous catalog can keep serving it.
func LoadFile(path string) ([]Route, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates raw route JSON.
func Parse(data []byte) ([]Route, error) {
	var routes []Route
	if err := json.Unmarshal(data, &routes); err != nil {
		return nil, fmt.Errorf("catalog: parse routes: %w", err)
	}
	for i := range routes {
		if err := validate.Struct(&routes[i]); err != nil {
			return nil, fmt.Errorf("catalog: route %s invalid: %w", routes[i].Label(), err)
		}
		for j := range routes[i].Stops {
			s := &routes[i].Stops[j]
			if s.Coords != nil {
				if err := validate.Struct(s.Coords); err != nil {
					return nil, fmt.Errorf("catalog: route %s stop %d has a half-known coordinate: %w",
						routes[i].Label(), j, err)
				}
			}
		}
	}
	return routes, nil
}
