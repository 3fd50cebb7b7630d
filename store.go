package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
)

// RegionVertex is one closed-ring vertex of a study area, and the schema
// for the Parquet vertex store using `parquet-go` tags.
type RegionVertex struct {
	Region string  `parquet:"name=region, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN"`
	Seq    int32   `parquet:"name=seq, type=INT32"`
	Lon    float64 `parquet:"name=lon, type=DOUBLE"`
	Lat    float64 `parquet:"name=lat, type=DOUBLE"`
}

// Vertex store location. The file is rewritten on every startup and only
// read afterwards (by the DuckDB-backed stats endpoint).
const (
	vertexStoreDir  = "region_data"
	vertexStorePath = vertexStoreDir + "/study_areas.parquet"
)

// flattenVertices turns the assembled collection into per-region vertex
// records. Seq restarts at 0 for each region and follows closed-ring
// order, so the repeated closing vertex is included.
func flattenVertices(fc *FeatureCollection) ([]RegionVertex, error) {
	var records []RegionVertex
	for _, feature := range fc.Features {
		polygons, err := feature.Geometry.Polygons()
		if err != nil {
			return nil, fmt.Errorf("flattening region %q: %w", feature.RegionName(), err)
		}
		seq := int32(0)
		for _, rings := range polygons {
			for _, ring := range rings {
				for _, pt := range ring {
					if len(pt) < 2 {
						continue
					}
					records = append(records, RegionVertex{
						Region: feature.RegionName(),
						Seq:    seq,
						Lon:    pt[0],
						Lat:    pt[1],
					})
					seq++
				}
			}
		}
	}
	return records, nil
}

// SaveVertexStore serializes the study-area vertices into a compressed
// Parquet file using ZSTD codec, replacing any previous store.
func SaveVertexStore(fc *FeatureCollection) error {
	if err := os.MkdirAll(vertexStoreDir, os.ModePerm); err != nil {
		return fmt.Errorf("creating %s: %w", vertexStoreDir, err)
	}

	records, err := flattenVertices(fc)
	if err != nil {
		return err
	}

	fw, err := local.NewLocalFileWriter(vertexStorePath)
	if err != nil {
		return fmt.Errorf("creating Parquet file writer: %w", err)
	}

	pw, err := writer.NewParquetWriter(fw, new(RegionVertex), 4)
	if err != nil {
		fw.Close()
		return fmt.Errorf("initializing Parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_ZSTD

	startTime := time.Now()
	for _, rec := range records {
		if err := pw.Write(rec); err != nil {
			pw.WriteStop()
			fw.Close()
			return fmt.Errorf("writing vertex record: %w", err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		fw.Close()
		return fmt.Errorf("finalizing Parquet writer: %w", err)
	}
	if err := fw.Close(); err != nil {
		return fmt.Errorf("closing vertex store: %w", err)
	}

	log.Printf("Vertex store: %d records written to %s in %.2f seconds",
		len(records), filepath.Clean(vertexStorePath), time.Since(startTime).Seconds())
	return nil
}
