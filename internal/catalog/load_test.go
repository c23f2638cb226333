package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const sampleJSON = `[
  {
    "id": 101,
    "number": "12",
    "start": {"hy": "Կենտրոն"},
    "end": {"hy": "Աջափնյակ"},
    "stops": [
      {"name": {"hy": "Մաշտոց"}, "coords": {"lat": 40.18, "lng": 44.51}, "time": "06:30", "eta_min": 3},
      {"name": {"hy": "Օպերա"}, "coords": null}
    ]
  }
]`

func TestParseSample(t *testing.T) {
	routes, err := Parse([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(routes) != 1 {
		t.Fatalf("routes = %d, want 1", len(routes))
	}
	r := routes[0]
	if r.ID != "101" {
		t.Fatalf("numeric id decoded as %q, want \"101\"", r.ID)
	}
	if r.Label() != "12" {
		t.Fatalf("label = %q, want 12", r.Label())
	}
	if !r.Stops[0].Coords.Locatable() {
		t.Fatal("first stop must be locatable")
	}
	if r.Stops[1].Coords.Locatable() {
		t.Fatal("null coords must not be locatable")
	}
	if r.Stops[0].ETAMin != 3 {
		t.Fatalf("eta_min = %v, want 3", r.Stops[0].ETAMin)
	}
}

func TestParseRejectsHalfKnownCoordinate(t *testing.T) {
	bad := `[{"number": "5", "stops": [{"name": {"hy": "x"}, "coords": {"lat": 40.1, "lng": null}}]}]`
	if _, err := Parse([]byte(bad)); err == nil {
		t.Fatal("a coordinate with only latitude must fail validation")
	}
}

func TestParseRejectsUnnamedStop(t *testing.T) {
	bad := `[{"number": "5", "stops": [{"coords": {"lat": 40.1, "lng": 44.5}}]}]`
	if _, err := Parse([]byte(bad)); err == nil {
		t.Fatal("a stop without a name must fail validation")
	}
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	if _, err := Parse([]byte(`{"not": "an array"`)); err == nil {
		t.Fatal("malformed input must fail")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routes.json")
	if err := os.WriteFile(path, []byte(sampleJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	routes, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(routes) != 1 {
		t.Fatalf("routes = %d, want 1", len(routes))
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("missing file must fail")
	}
}

func TestProviderKeepsPreviousOnFailedReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routes.json")
	if err := os.WriteFile(path, []byte(sampleJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	p := NewProvider(path)
	if _, ok := p.Current(); ok {
		t.Fatal("provider must be empty before the first reload")
	}
	ctx := context.Background()
	if err := p.Reload(ctx); err != nil {
		t.Fatalf("first reload: %v", err)
	}
	first, ok := p.Current()
	if !ok {
		t.Fatal("catalog missing after successful reload")
	}

	if err := os.WriteFile(path, []byte(`not json`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := p.Reload(ctx); err == nil {
		t.Fatal("reload of broken data must fail")
	}
	cur, ok := p.Current()
	if !ok || cur != first {
		t.Fatal("failed reload must keep the previous catalog active")
	}
}
