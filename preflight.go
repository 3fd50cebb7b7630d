package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MissingDependencyError lists the required capability providers that were
// found absent at startup. The program terminates before any geometry is
// built when this is returned.
type MissingDependencyError struct {
	Missing []string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("missing required dependencies: %s", strings.Join(e.Missing, ", "))
}

// requiredProviders are the capability checks run before any work: the
// spatial query engine, the plotting stack, and a resolvable basemap data
// source. Each carries an installation hint for the operator.
var requiredProviders = []struct {
	Name  string
	Hint  string
	Check func() error
}{
	{
		Name:  "duckdb",
		Hint:  "build with CGO_ENABLED=1 so the DuckDB driver can link",
		Check: checkQueryEngine,
	},
	{
		Name:  "plotting",
		Hint:  "run `go mod download golang.org/x/image` to restore the bundled font",
		Check: checkPlotting,
	},
	{
		Name:  "basemap-data",
		Hint:  "install the naturalearth_hires package or allow HTTPS access to the Natural Earth mirror",
		Check: checkBasemapSource,
	},
}

// Preflight verifies every required capability provider and returns a
// *MissingDependencyError naming all absent ones. The optional hi-res data
// package is deliberately not checked here: its absence only downgrades
// the basemap tier and is never fatal.
func Preflight() error {
	var missing []string
	for _, provider := range requiredProviders {
		if err := provider.Check(); err != nil {
			log.Printf("Dependency %q unavailable: %v (hint: %s)", provider.Name, err, provider.Hint)
			missing = append(missing, provider.Name)
		}
	}
	if len(missing) > 0 {
		return &MissingDependencyError{Missing: missing}
	}
	return nil
}

// checkQueryEngine opens and pings a throwaway in-memory DuckDB instance.
// The driver is cgo-backed, so this genuinely fails on builds without it.
func checkQueryEngine() error {
	db, err := newDBConnection()
	if err != nil {
		return err
	}
	defer db.Close()
	return db.Ping()
}

// checkPlotting parses the bundled font into a usable face.
func checkPlotting() error {
	_, err := loadFontFace(legendFontPt)
	return err
}

// checkBasemapSource reports whether at least one basemap source is
// resolvable: the local hi-res package, a warm medium-tier cache, or the
// download endpoint.
func checkBasemapSource() error {
	if HiResAvailable() {
		return nil
	}
	if _, err := os.Stat(filepath.Join(basemapCacheDir, mediumCountriesFile)); err == nil {
		return nil
	}
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Head(MediumCountriesURL)
	if err != nil {
		return fmt.Errorf("no local basemap data and endpoint unreachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("no local basemap data and endpoint returned %s", resp.Status)
	}
	return nil
}
