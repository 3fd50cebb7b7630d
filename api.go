package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	_ "github.com/marcboeker/go-duckdb" // DuckDB driver for Go's database/sql
)

// runAPI serves the rendered map and the study-area data over HTTP. This
// is the program's display surface: the map stays viewable until the
// process receives a termination signal.
//
// Graceful shutdown is ensured by monitoring context cancellation.
func runAPI(db *sql.DB, ctx context.Context, areas *FeatureCollection, mapPNG []byte) {
	router := gin.Default()

	// === API ROUTES ===

	// Example: GET /map
	// Returns the rendered study-area map as a PNG image
	router.GET("/map", func(c *gin.Context) {
		c.Data(http.StatusOK, "image/png", mapPNG)
	})

	// Example: GET /regions
	// Returns the assembled study-area collection as GeoJSON
	router.GET("/regions", func(c *gin.Context) {
		c.JSON(http.StatusOK, areas)
	})

	// Example: GET /regions/Mediterranean
	// Returns one named study-area feature, 404 for unknown names
	router.GET("/regions/:name", func(c *gin.Context) { getRegion(c, areas) })

	// Example: GET /stats
	// Returns per-region vertex counts and bounding boxes from the store
	router.GET("/stats", func(c *gin.Context) { getRegionStats(c, db) })

	// Run HTTP server asynchronously
	server := &http.Server{
		Addr:    ":8080",
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("API server error: %s", err)
		}
	}()

	// Wait for cancellation (e.g., SIGINT) to gracefully stop the server
	<-ctx.Done()
	log.Println("Shutting down API server...")
	server.Shutdown(context.Background())
}

// getRegion looks up a single study area by its region name.
//
// Example: GET /regions/Atl-South
func getRegion(c *gin.Context, areas *FeatureCollection) {
	name := c.Param("name")
	for _, feature := range areas.Features {
		if feature.RegionName() == name {
			c.JSON(http.StatusOK, feature)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown region %q", name)})
}

// getRegionStats summarizes the vertex store per region.
//
// DuckDB reads the Parquet store via `read_parquet(...)` and aggregates
// vertex counts and the bounding box of each closed ring.
//
// Example: GET /stats
func getRegionStats(c *gin.Context, db *sql.DB) {
	query := fmt.Sprintf(`
		SELECT region, COUNT(*), MIN(lon), MAX(lon), MIN(lat), MAX(lat)
		FROM read_parquet('%s')
		GROUP BY region
		ORDER BY region`, vertexStorePath)

	rows, err := db.Query(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer rows.Close()

	var results []map[string]interface{}
	for rows.Next() {
		var region string
		var vertices int
		var lonMin, lonMax, latMin, latMax float64
		rows.Scan(&region, &vertices, &lonMin, &lonMax, &latMin, &latMax)
		results = append(results, gin.H{
			"region":   region,
			"vertices": vertices,
			"bbox":     []float64{lonMin, latMin, lonMax, latMax},
		})
	}
	c.JSON(http.StatusOK, results)
}
