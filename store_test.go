package main

import (
	"os"
	"testing"
)

func TestFlattenVertices(t *testing.T) {
	areas, err := AssembleStudyAreas()
	if err != nil {
		t.Fatalf("AssembleStudyAreas error: %v", err)
	}

	records, err := flattenVertices(areas)
	if err != nil {
		t.Fatalf("flattenVertices error: %v", err)
	}

	wantTotal := 0
	for _, table := range studyAreaTables {
		wantTotal += len(table.Ring) + 1 // closing vertex included
	}
	if len(records) != wantTotal {
		t.Fatalf("flattened %d records, want %d", len(records), wantTotal)
	}

	perRegion := make(map[string][]RegionVertex)
	for _, rec := range records {
		perRegion[rec.Region] = append(perRegion[rec.Region], rec)
	}
	for _, table := range studyAreaTables {
		recs := perRegion[table.Name]
		if len(recs) != len(table.Ring)+1 {
			t.Errorf("region %q has %d records, want %d", table.Name, len(recs), len(table.Ring)+1)
			continue
		}
		for i, rec := range recs {
			if rec.Seq != int32(i) {
				t.Errorf("region %q record %d has seq %d", table.Name, i, rec.Seq)
			}
		}
		first, last := recs[0], recs[len(recs)-1]
		if first.Lon != last.Lon || first.Lat != last.Lat {
			t.Errorf("region %q store is not closed: first (%v, %v), last (%v, %v)",
				table.Name, first.Lon, first.Lat, last.Lon, last.Lat)
		}
	}
}

func TestSaveVertexStore(t *testing.T) {
	chdirTemp(t)

	areas, err := AssembleStudyAreas()
	if err != nil {
		t.Fatalf("AssembleStudyAreas error: %v", err)
	}
	if err := SaveVertexStore(areas); err != nil {
		t.Fatalf("SaveVertexStore error: %v", err)
	}

	info, err := os.Stat(vertexStorePath)
	if err != nil {
		t.Fatalf("vertex store missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("vertex store is empty")
	}
}
