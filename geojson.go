package main

import (
	"encoding/json"
	"fmt"
)

// GeoJSON structures shared between the study-area collection this service
// builds and the Natural Earth basemap it decodes. Only the subset of the
// format actually produced or read here is modeled.

// FeatureCollection represents a GeoJSON FeatureCollection with an optional
// named coordinate reference system.
type FeatureCollection struct {
	Type     string    `json:"type"`
	CRS      *CRS      `json:"crs,omitempty"`
	Features []Feature `json:"features"`
}

// Feature represents a single GeoJSON Feature. Study-area features carry a
// "region" property and their own CRS tag; basemap features keep whatever
// properties Natural Earth ships.
type Feature struct {
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties"`
	Geometry   Geometry               `json:"geometry"`
	CRS        *CRS                   `json:"crs,omitempty"`
}

// Geometry holds a GeoJSON geometry. Coordinates stay raw until a caller
// asks for a concrete shape, since Polygon and MultiPolygon nest
// differently.
type Geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// CRS represents a named Coordinate Reference System.
type CRS struct {
	Type       string   `json:"type"`
	Properties CRSProps `json:"properties"`
}

// CRSProps represents Coordinate Reference System properties.
type CRSProps struct {
	Name string `json:"name"`
}

// NamedCRS returns a GeoJSON named-CRS object for the given identifier.
func NamedCRS(name string) *CRS {
	return &CRS{Type: "name", Properties: CRSProps{Name: name}}
}

// NewPolygonGeometry builds a Polygon geometry from closed rings
// (outer ring first). Vertices are [lon, lat] pairs.
func NewPolygonGeometry(rings [][][]float64) Geometry {
	coords, _ := json.Marshal(rings)
	return Geometry{Type: "Polygon", Coordinates: coords}
}

// Polygons normalizes the geometry into a list of polygons, each a list of
// rings of [lon, lat] vertices. A Polygon yields one entry, a MultiPolygon
// one per member. Other geometry types are rejected.
func (g Geometry) Polygons() ([][][][]float64, error) {
	switch g.Type {
	case "Polygon":
		var rings [][][]float64
		if err := json.Unmarshal(g.Coordinates, &rings); err != nil {
			return nil, fmt.Errorf("decoding Polygon coordinates: %w", err)
		}
		return [][][][]float64{rings}, nil
	case "MultiPolygon":
		var polys [][][][]float64
		if err := json.Unmarshal(g.Coordinates, &polys); err != nil {
			return nil, fmt.Errorf("decoding MultiPolygon coordinates: %w", err)
		}
		return polys, nil
	default:
		return nil, fmt.Errorf("unsupported geometry type %q", g.Type)
	}
}

// RegionName returns the feature's "region" property, or "" when absent.
func (f Feature) RegionName() string {
	name, _ := f.Properties["region"].(string)
	return name
}
