package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func regionRouter(t *testing.T) *gin.Engine {
	t.Helper()
	areas, err := AssembleStudyAreas()
	if err != nil {
		t.Fatalf("AssembleStudyAreas error: %v", err)
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/regions", func(c *gin.Context) { c.JSON(http.StatusOK, areas) })
	router.GET("/regions/:name", func(c *gin.Context) { getRegion(c, areas) })
	return router
}

func TestGetRegions(t *testing.T) {
	router := regionRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/regions", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var fc FeatureCollection
	if err := json.Unmarshal(rec.Body.Bytes(), &fc); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(fc.Features) != 3 {
		t.Errorf("got %d features, want 3", len(fc.Features))
	}
}

func TestGetRegionByName(t *testing.T) {
	router := regionRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/regions/Mediterranean", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var feature Feature
	if err := json.Unmarshal(rec.Body.Bytes(), &feature); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if got := feature.RegionName(); got != RegionMediterranean {
		t.Errorf("region name = %q, want %q", got, RegionMediterranean)
	}
}

func TestGetRegionUnknownName(t *testing.T) {
	router := regionRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/regions/Pacific", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
