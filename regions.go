package main

// Ring is an ordered open polygon boundary: a sequence of [longitude,
// latitude] vertices in which the first point is not repeated at the end.
// Closing the ring is the region builder's job, not the table's.
//
// A Ring is assumed (not checked) to describe a simple, non-self-
// intersecting boundary once closed.
type Ring [][]float64

// Names of the three study regions, used as the feature label, the fill
// color key, and the grouping key in the vertex store.
const (
	RegionMediterranean = "Mediterranean"
	RegionAtlSouth      = "Atl-South"
	RegionAtlNorth      = "Atl-North"
)

// MediterraneanRing outlines the Mediterranean basin study area, from the
// Strait of Gibraltar east to the Levantine coast.
//
// Vertices run counter-clockwise as [longitude, latitude] in WGS84.
var MediterraneanRing = Ring{
	{-5.6, 35.5}, // Strait of Gibraltar, south side
	{-5.6, 36.2}, // Strait of Gibraltar, north side
	{3.0, 43.5},  // Gulf of Lion
	{10.0, 44.2}, // Ligurian Sea
	{16.0, 45.8}, // northern Adriatic
	{22.5, 40.6}, // Thermaic Gulf
	{26.5, 40.5}, // Dardanelles approach
	{36.2, 36.5}, // Gulf of Iskenderun
	{36.2, 31.0}, // Levantine coast
	{25.0, 30.6}, // Gulf of Sidra
	{10.5, 33.2}, // Gulf of Gabes
	{-2.0, 35.1}, // Alboran Sea, African side
}

// AtlanticSouthRing outlines the southern Atlantic study area: the eastern
// Atlantic between the Canary Current region and the Gulf of Cadiz.
//
// Vertices run counter-clockwise as [longitude, latitude] in WGS84.
var AtlanticSouthRing = Ring{
	{-30.0, 10.0}, // south-west corner, open ocean
	{-5.6, 10.0},  // south-east corner, off the African coast
	{-5.6, 35.9},  // Gulf of Cadiz
	{-9.5, 36.8},  // Cape St. Vincent
	{-30.0, 36.0}, // north-west corner, open ocean
}

// AtlanticNorthRing outlines the northern Atlantic study area, from the
// Iberian shelf north past the British Isles to the Norwegian Sea.
//
// Vertices run counter-clockwise as [longitude, latitude] in WGS84.
var AtlanticNorthRing = Ring{
	{-30.0, 36.0}, // south-west corner, open ocean
	{-9.5, 36.8},  // Cape St. Vincent
	{-9.5, 43.8},  // Cape Finisterre
	{-5.6, 43.6},  // Cantabrian coast
	{-1.8, 48.6},  // Brittany
	{5.0, 52.0},   // southern North Sea
	{5.0, 62.0},   // Norwegian Sea approach
	{-8.0, 68.0},  // Iceland basin, north
	{-30.0, 65.0}, // Denmark Strait approach
}

// studyAreaTables fixes the assembly order of the study regions. The
// renderer legend and the vertex store both preserve this order.
var studyAreaTables = []struct {
	Name string
	Ring Ring
}{
	{RegionMediterranean, MediterraneanRing},
	{RegionAtlSouth, AtlanticSouthRing},
	{RegionAtlNorth, AtlanticNorthRing},
}
