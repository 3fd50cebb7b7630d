package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/marcboeker/go-duckdb" // DuckDB SQL driver
)

// newDBConnection initializes a new DuckDB connection in in-memory mode.
// The stats endpoint queries the Parquet vertex store through it; no table
// state lives in the database itself.
func newDBConnection() (*sql.DB, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("DuckDB connection failed: %w", err)
	}
	return db, nil
}

func main() {
	// === Dependency Validation ===

	// All three capability providers (query engine, plotting, basemap
	// data) must be present before any geometry is built. The optional
	// hi-res basemap package is probed later and only affects the tier.
	if err := Preflight(); err != nil {
		log.Fatal(err)
	}

	fmt.Println("Starting Study-Area Map Service...")

	// === Geometry Assembly ===

	areas, err := AssembleStudyAreas()
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Assembled %d study areas", len(areas.Features))

	// === Basemap ===

	tier := SelectTier()
	log.Printf("Basemap resolution tier: %s", tier)
	basemap, err := FetchBasemap(tier)
	if err != nil {
		log.Fatal(err)
	}

	// === Rendering ===

	mapPNG, err := RenderMap(basemap, areas)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Rendered map: %d bytes", len(mapPNG))

	// Optional PNG export under outputs/, disabled unless the operator
	// sets MAP_EXPORT=1.
	if os.Getenv("MAP_EXPORT") == "1" {
		if err := ExportMap(mapPNG); err != nil {
			log.Fatal(err)
		}
	}

	// === Vertex Store ===

	if err := SaveVertexStore(areas); err != nil {
		log.Fatal(err)
	}

	// === Graceful Shutdown Setup ===

	// Create a context that listens for system interrupt or termination
	// signals, so the display server can be stopped cleanly.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// === Display Surface ===

	apiDB, err := newDBConnection()
	if err != nil {
		log.Fatal(err)
	}
	defer apiDB.Close()

	// Create a channel to synchronize the API goroutine shutdown.
	done := make(chan struct{})

	go func() {
		defer close(done)
		runAPI(apiDB, ctx, areas, mapPNG)
	}()

	// === Await Termination Signal ===

	// Block main thread until the user sends SIGINT or SIGTERM.
	<-ctx.Done()
	fmt.Println("Shutting down Study-Area Map Service...")

	// Wait for the API server to finish cleanup.
	<-done
	fmt.Println("Service stopped.")
}
