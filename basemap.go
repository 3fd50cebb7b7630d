package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Basemap resolution tiers. "medium" is the Natural Earth 1:50m admin-0
// countries layer fetched over HTTPS; "large" is the 1:10m layer, supplied
// only by the optional locally installed hi-res data package.
const (
	TierMedium = "medium"
	TierLarge  = "large"
)

// MediumCountriesURL is the download endpoint for the medium-tier world
// countries layer.
const MediumCountriesURL = "https://raw.githubusercontent.com/nvkelso/natural-earth-vector/master/geojson/ne_50m_admin_0_countries.geojson"

const (
	basemapCacheDir = "basemap_data"
	hiresPackageDir = "naturalearth_hires"

	mediumCountriesFile = "ne_50m_admin_0_countries.geojson"
	hiresCountriesFile  = "ne_10m_admin_0_countries.geojson"
)

// downloadTimeout bounds the one-shot basemap download. There is no retry:
// a failed download is fatal for the program.
const downloadTimeout = 60 * time.Second

// ExternalDataError reports that the basemap provider could not supply the
// requested resolution tier. There is no fallback beyond the medium/large
// choice already made before the fetch.
type ExternalDataError struct {
	Tier   string
	Source string
	Err    error
}

func (e *ExternalDataError) Error() string {
	return fmt.Sprintf("basemap tier %q unavailable from %s: %v", e.Tier, e.Source, e.Err)
}

func (e *ExternalDataError) Unwrap() error { return e.Err }

// HiResAvailable reports whether the optional hi-res data package is
// installed. The package is resolved at runtime and never installed by
// this program; its absence only downgrades the resolution tier.
func HiResAvailable() bool {
	info, err := os.Stat(filepath.Join(hiresPackageDir, hiresCountriesFile))
	return err == nil && !info.IsDir()
}

// SelectTier picks the basemap resolution: "large" when the hi-res data
// package is installed, "medium" otherwise. Deterministic given package
// availability.
func SelectTier() string {
	if HiResAvailable() {
		return TierLarge
	}
	return TierMedium
}

// FetchBasemap returns the world countries layer for the given tier.
//
// The large tier reads the hi-res package file. The medium tier prefers
// the on-disk cache and downloads once when the cache is cold. Any failure
// to supply the selected tier is an *ExternalDataError; the caller treats
// it as fatal.
func FetchBasemap(tier string) (*FeatureCollection, error) {
	switch tier {
	case TierLarge:
		path := filepath.Join(hiresPackageDir, hiresCountriesFile)
		return loadBasemapFile(tier, path)
	case TierMedium:
		path := filepath.Join(basemapCacheDir, mediumCountriesFile)
		if _, err := os.Stat(path); err == nil {
			return loadBasemapFile(tier, path)
		}
		return downloadMediumBasemap(path)
	default:
		return nil, &ExternalDataError{
			Tier:   tier,
			Source: "tier selection",
			Err:    fmt.Errorf("unknown resolution tier"),
		}
	}
}

// loadBasemapFile reads and decodes a countries GeoJSON layer from disk.
func loadBasemapFile(tier, path string) (*FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ExternalDataError{Tier: tier, Source: path, Err: err}
	}
	fc, err := decodeBasemap(data)
	if err != nil {
		return nil, &ExternalDataError{Tier: tier, Source: path, Err: err}
	}
	log.Printf("Loaded basemap (%s tier): %d countries from %s", tier, len(fc.Features), path)
	return fc, nil
}

// downloadMediumBasemap fetches the medium-tier layer over HTTPS and fills
// the on-disk cache so later runs stay offline.
func downloadMediumBasemap(cachePath string) (*FeatureCollection, error) {
	log.Printf("Basemap cache cold, downloading %s", MediumCountriesURL)

	client := &http.Client{Timeout: downloadTimeout}
	resp, err := client.Get(MediumCountriesURL)
	if err != nil {
		return nil, &ExternalDataError{Tier: TierMedium, Source: MediumCountriesURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ExternalDataError{
			Tier:   TierMedium,
			Source: MediumCountriesURL,
			Err:    fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ExternalDataError{Tier: TierMedium, Source: MediumCountriesURL, Err: err}
	}

	fc, err := decodeBasemap(data)
	if err != nil {
		return nil, &ExternalDataError{Tier: TierMedium, Source: MediumCountriesURL, Err: err}
	}

	// Cache write failures are logged, not fatal: the layer is already in
	// memory and the next run can download again.
	if err := os.MkdirAll(basemapCacheDir, os.ModePerm); err != nil {
		log.Println("Could not create basemap cache directory:", err)
	} else if err := os.WriteFile(cachePath, data, 0o644); err != nil {
		log.Println("Could not write basemap cache:", err)
	} else {
		log.Printf("Basemap cached at %s (%.2f MB)", cachePath, float64(len(data))/1024/1024)
	}

	log.Printf("Loaded basemap (%s tier): %d countries", TierMedium, len(fc.Features))
	return fc, nil
}

// decodeBasemap parses a countries layer and rejects obviously empty or
// non-FeatureCollection payloads.
func decodeBasemap(data []byte) (*FeatureCollection, error) {
	var fc FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("decoding countries layer: %w", err)
	}
	if fc.Type != "FeatureCollection" || len(fc.Features) == 0 {
		return nil, fmt.Errorf("countries layer is not a non-empty FeatureCollection")
	}
	return &fc, nil
}
