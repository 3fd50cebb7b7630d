package main

import "fmt"

// CRS84 identifies the WGS84 longitude/latitude reference system
// (EPSG:4326) in the URN form GeoJSON uses for named CRS objects.
const CRS84 = "urn:ogc:def:crs:OGC:1.3:CRS84"

// InvalidInputError reports a coordinate table that violates the region
// builder's shape preconditions (fewer than 3 points, or a vertex without
// exactly two coordinates).
type InvalidInputError struct {
	Region string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid coordinate table for region %q: %s", e.Region, e.Reason)
}

// BuildRegion closes the given open ring and wraps it as a single labeled
// polygon feature tagged with the given CRS (CRS84 when empty).
//
// The input ring is copied, never mutated. The output ring always has
// len(ring)+1 vertices with the first repeated at the end. Ring simplicity
// is not validated: a self-intersecting input silently yields a
// structurally valid but malformed polygon.
func BuildRegion(ring Ring, name, crs string) (Feature, error) {
	if crs == "" {
		crs = CRS84
	}
	if len(ring) < 3 {
		return Feature{}, &InvalidInputError{
			Region: name,
			Reason: fmt.Sprintf("need at least 3 points, got %d", len(ring)),
		}
	}
	for i, pt := range ring {
		if len(pt) != 2 {
			return Feature{}, &InvalidInputError{
				Region: name,
				Reason: fmt.Sprintf("point %d has %d coordinates, want 2 (lon, lat)", i, len(pt)),
			}
		}
	}

	closed := make([][]float64, 0, len(ring)+1)
	for _, pt := range ring {
		closed = append(closed, []float64{pt[0], pt[1]})
	}
	closed = append(closed, []float64{ring[0][0], ring[0][1]})

	return Feature{
		Type:       "Feature",
		Properties: map[string]interface{}{"region": name},
		Geometry:   NewPolygonGeometry([][][]float64{closed}),
		CRS:        NamedCRS(crs),
	}, nil
}

// AssembleStudyAreas builds the three study regions in their fixed order
// (Mediterranean, Atl-South, Atl-North) and concatenates them into one
// collection. The first builder failure aborts the whole assembly; no
// partial collection is ever returned.
func AssembleStudyAreas() (*FeatureCollection, error) {
	fc := &FeatureCollection{
		Type: "FeatureCollection",
		CRS:  NamedCRS(CRS84),
	}
	for _, table := range studyAreaTables {
		feature, err := BuildRegion(table.Ring, table.Name, CRS84)
		if err != nil {
			return nil, fmt.Errorf("assembling study areas: %w", err)
		}
		fc.Features = append(fc.Features, feature)
	}
	return fc, nil
}
