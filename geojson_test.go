package main

import (
	"encoding/json"
	"testing"
)

func TestGeometryPolygons(t *testing.T) {
	tests := []struct {
		name      string
		geomType  string
		coords    string
		wantPolys int
		wantErr   bool
	}{
		{"Polygon", "Polygon", `[[[0,0],[1,0],[1,1],[0,0]]]`, 1, false},
		{"MultiPolygon", "MultiPolygon", `[[[[0,0],[1,0],[1,1],[0,0]]],[[[2,2],[3,2],[3,3],[2,2]]]]`, 2, false},
		{"Point", "Point", `[0,0]`, 0, true},
		{"Malformed Coordinates", "Polygon", `[0,0]`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Geometry{Type: tt.geomType, Coordinates: json.RawMessage(tt.coords)}
			polys, err := g.Polygons()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected Polygons() to fail")
				}
				return
			}
			if err != nil {
				t.Fatalf("Polygons() error: %v", err)
			}
			if len(polys) != tt.wantPolys {
				t.Errorf("got %d polygons, want %d", len(polys), tt.wantPolys)
			}
		})
	}
}

func TestNewPolygonGeometryRoundTrip(t *testing.T) {
	rings := [][][]float64{{{-5.6, 35.5}, {-5.6, 36.2}, {3.0, 43.5}, {-5.6, 35.5}}}

	g := NewPolygonGeometry(rings)
	if g.Type != "Polygon" {
		t.Fatalf("geometry type = %q, want Polygon", g.Type)
	}
	polys, err := g.Polygons()
	if err != nil {
		t.Fatalf("Polygons() error: %v", err)
	}
	if len(polys) != 1 || len(polys[0]) != 1 || len(polys[0][0]) != 4 {
		t.Fatalf("unexpected shape: %v", polys)
	}
	if polys[0][0][2][1] != 43.5 {
		t.Errorf("vertex round-trip mismatch: %v", polys[0][0][2])
	}
}

func TestFeatureRegionName(t *testing.T) {
	f := Feature{Properties: map[string]interface{}{"region": "Atl-North"}}
	if got := f.RegionName(); got != "Atl-North" {
		t.Errorf("RegionName() = %q, want Atl-North", got)
	}
	if got := (Feature{}).RegionName(); got != "" {
		t.Errorf("RegionName() on empty feature = %q, want empty", got)
	}
}
