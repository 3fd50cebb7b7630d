package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// countriesFixture is a minimal valid countries layer: one square country.
const countriesFixture = `{
	"type": "FeatureCollection",
	"features": [
		{
			"type": "Feature",
			"properties": {"NAME": "Testland"},
			"geometry": {"type": "Polygon", "coordinates": [[[0,40],[10,40],[10,50],[0,50],[0,40]]]}
		}
	]
}`

// chdirTemp moves the test into a fresh directory so the fixed relative
// data paths (basemap cache, hi-res package, stores) start empty.
func chdirTemp(t *testing.T) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd error: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir error: %v", err)
	}
	t.Cleanup(func() { os.Chdir(orig) })
}

// installHiResPackage simulates the optional hi-res data package.
func installHiResPackage(t *testing.T) {
	t.Helper()
	if err := os.MkdirAll(hiresPackageDir, 0o755); err != nil {
		t.Fatalf("creating hi-res package dir: %v", err)
	}
	path := filepath.Join(hiresPackageDir, hiresCountriesFile)
	if err := os.WriteFile(path, []byte(countriesFixture), 0o644); err != nil {
		t.Fatalf("writing hi-res package file: %v", err)
	}
}

func TestSelectTier(t *testing.T) {
	chdirTemp(t)

	if got := SelectTier(); got != TierMedium {
		t.Errorf("without hi-res package: tier = %q, want %q", got, TierMedium)
	}

	installHiResPackage(t)
	if got := SelectTier(); got != TierLarge {
		t.Errorf("with hi-res package: tier = %q, want %q", got, TierLarge)
	}
}

func TestFetchBasemapLarge(t *testing.T) {
	chdirTemp(t)
	installHiResPackage(t)

	fc, err := FetchBasemap(TierLarge)
	if err != nil {
		t.Fatalf("FetchBasemap error: %v", err)
	}
	if len(fc.Features) != 1 {
		t.Errorf("got %d countries, want 1", len(fc.Features))
	}
}

func TestFetchBasemapLargeWithoutPackage(t *testing.T) {
	chdirTemp(t)

	_, err := FetchBasemap(TierLarge)
	var external *ExternalDataError
	if !errors.As(err, &external) {
		t.Fatalf("error %T is not *ExternalDataError", err)
	}
	if external.Tier != TierLarge {
		t.Errorf("error tier = %q, want %q", external.Tier, TierLarge)
	}
}

func TestFetchBasemapMediumUsesCache(t *testing.T) {
	chdirTemp(t)

	if err := os.MkdirAll(basemapCacheDir, 0o755); err != nil {
		t.Fatalf("creating cache dir: %v", err)
	}
	path := filepath.Join(basemapCacheDir, mediumCountriesFile)
	if err := os.WriteFile(path, []byte(countriesFixture), 0o644); err != nil {
		t.Fatalf("writing cache file: %v", err)
	}

	fc, err := FetchBasemap(TierMedium)
	if err != nil {
		t.Fatalf("FetchBasemap error: %v", err)
	}
	if len(fc.Features) != 1 {
		t.Errorf("got %d countries, want 1", len(fc.Features))
	}
}

func TestFetchBasemapUnknownTier(t *testing.T) {
	chdirTemp(t)

	_, err := FetchBasemap("gigantic")
	var external *ExternalDataError
	if !errors.As(err, &external) {
		t.Fatalf("error %T is not *ExternalDataError", err)
	}
}

func TestDecodeBasemapRejectsBadPayloads(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"Invalid JSON", "{not json"},
		{"Empty Collection", `{"type": "FeatureCollection", "features": []}`},
		{"Wrong Type", `{"type": "Feature", "features": [{}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := decodeBasemap([]byte(tt.data)); err == nil {
				t.Fatal("expected decodeBasemap to fail")
			}
		})
	}
}
