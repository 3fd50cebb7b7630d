package main

import (
	"bytes"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Canvas layout: a 10x6 inch figure at 300 DPI with a fixed geographic
// viewport. The viewport maps onto the plot area exactly, with no
// automatic padding.
const (
	mapDPI      = 300
	mapWidthIn  = 10
	mapHeightIn = 6
	mapWidthPx  = mapWidthIn * mapDPI
	mapHeightPx = mapHeightIn * mapDPI

	ViewportLonMin = -30.0
	ViewportLonMax = 45.0
	ViewportLatMin = 5.0
	ViewportLatMax = 75.0

	// Margins reserve a title band at the top and a legend band at the
	// bottom; the plot area fills the rest.
	plotMarginLeft   = 75.0
	plotMarginRight  = 75.0
	plotMarginTop    = 150.0
	plotMarginBottom = 210.0

	titleFontPt  = 16.0
	legendFontPt = 9.0

	// Study-area outline width: 0.4 pt converted to device pixels.
	outlineWidthPx = 0.4 / 72.0 * mapDPI
)

// MapTitle is the fixed title drawn above the plot area.
const MapTitle = "Study areas in the Mediterranean and North-East Atlantic"

// legendTitle labels the bottom legend.
const legendTitle = "Region"

// Basemap styling.
var (
	basemapFill   = color.RGBA{0xf2, 0xf2, 0xf2, 0xff}
	basemapBorder = color.RGBA{0xd9, 0xd9, 0xd9, 0xff}
)

// regionFillColors keys the study-area fill by region name (ColorBrewer
// Set1). A name outside this map is drawn outline-only.
var regionFillColors = map[string]color.RGBA{
	RegionMediterranean: {0xe4, 0x1a, 0x1c, 0xff},
	RegionAtlSouth:      {0x37, 0x7e, 0xb8, 0xff},
	RegionAtlNorth:      {0x4d, 0xaf, 0x4a, 0xff},
}

// regionFillAlpha is the uniform study-area transparency.
const regionFillAlpha = 0.5

// project maps a WGS84 vertex into plot-area pixels. Equirectangular:
// linear in both axes, y inverted.
func project(lon, lat float64) (x, y float64) {
	plotWidth := float64(mapWidthPx) - plotMarginLeft - plotMarginRight
	plotHeight := float64(mapHeightPx) - plotMarginTop - plotMarginBottom
	x = plotMarginLeft + (lon-ViewportLonMin)/(ViewportLonMax-ViewportLonMin)*plotWidth
	y = plotMarginTop + (ViewportLatMax-lat)/(ViewportLatMax-ViewportLatMin)*plotHeight
	return x, y
}

// loadFontFace parses the bundled Go Regular face at the given point size,
// scaled for the map DPI.
func loadFontFace(points float64) (font.Face, error) {
	parsed, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing bundled font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    points,
		DPI:     mapDPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("building font face: %w", err)
	}
	return face, nil
}

// RenderMap composes the basemap and the study-area collection into one
// PNG: basemap first (light gray fill, lighter border), study areas on top
// with per-region fills at uniform transparency and a thin black outline,
// then the fixed title and a bottom legend.
func RenderMap(basemap, areas *FeatureCollection) ([]byte, error) {
	titleFace, err := loadFontFace(titleFontPt)
	if err != nil {
		return nil, err
	}
	legendFace, err := loadFontFace(legendFontPt)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(mapWidthPx, mapHeightPx)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFillRule(gg.FillRuleEvenOdd)

	// Everything geographic is clipped to the plot area; the viewport has
	// no padding.
	plotWidth := float64(mapWidthPx) - plotMarginLeft - plotMarginRight
	plotHeight := float64(mapHeightPx) - plotMarginTop - plotMarginBottom
	dc.DrawRectangle(plotMarginLeft, plotMarginTop, plotWidth, plotHeight)
	dc.Clip()

	for _, country := range basemap.Features {
		if err := tracePolygons(dc, country); err != nil {
			log.Printf("Skipping unrenderable basemap feature: %v", err)
			continue
		}
		dc.SetColor(basemapFill)
		dc.FillPreserve()
		dc.SetColor(basemapBorder)
		dc.SetLineWidth(1)
		dc.Stroke()
	}

	for _, area := range areas.Features {
		if err := tracePolygons(dc, area); err != nil {
			return nil, fmt.Errorf("rendering region %q: %w", area.RegionName(), err)
		}
		if fill, ok := regionFillColors[area.RegionName()]; ok {
			dc.SetRGBA(float64(fill.R)/255, float64(fill.G)/255, float64(fill.B)/255, regionFillAlpha)
			dc.FillPreserve()
		}
		dc.SetRGB(0, 0, 0)
		dc.SetLineWidth(outlineWidthPx)
		dc.Stroke()
	}

	dc.ResetClip()

	// Plot frame.
	dc.SetColor(basemapBorder)
	dc.SetLineWidth(2)
	dc.DrawRectangle(plotMarginLeft, plotMarginTop, plotWidth, plotHeight)
	dc.Stroke()

	dc.SetRGB(0, 0, 0)
	dc.SetFontFace(titleFace)
	dc.DrawStringAnchored(MapTitle, float64(mapWidthPx)/2, plotMarginTop/2, 0.5, 0.5)

	drawLegend(dc, legendFace, areas)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encoding map PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// tracePolygons appends every ring of the feature's polygons to the
// current path, projected into plot coordinates.
func tracePolygons(dc *gg.Context, f Feature) error {
	polygons, err := f.Geometry.Polygons()
	if err != nil {
		return err
	}
	for _, rings := range polygons {
		for _, ring := range rings {
			for i, pt := range ring {
				if len(pt) < 2 {
					continue
				}
				x, y := project(pt[0], pt[1])
				if i == 0 {
					dc.NewSubPath()
					dc.MoveTo(x, y)
				} else {
					dc.LineTo(x, y)
				}
			}
			dc.ClosePath()
		}
	}
	return nil
}

// drawLegend draws a horizontal legend centered in the bottom band:
// the legend title followed by one color swatch and label per study area,
// in collection order.
func drawLegend(dc *gg.Context, face font.Face, areas *FeatureCollection) {
	const swatchSize = 40.0
	const itemGap = 60.0
	const labelGap = 14.0

	dc.SetFontFace(face)

	titleWidth, _ := dc.MeasureString(legendTitle)
	total := titleWidth
	for _, area := range areas.Features {
		labelWidth, _ := dc.MeasureString(area.RegionName())
		total += itemGap + swatchSize + labelGap + labelWidth
	}

	x := (float64(mapWidthPx) - total) / 2
	y := float64(mapHeightPx) - plotMarginBottom/2

	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(legendTitle, x+titleWidth/2, y, 0.5, 0.35)
	x += titleWidth

	for _, area := range areas.Features {
		x += itemGap
		if fill, ok := regionFillColors[area.RegionName()]; ok {
			dc.SetRGBA(float64(fill.R)/255, float64(fill.G)/255, float64(fill.B)/255, regionFillAlpha)
			dc.DrawRectangle(x, y-swatchSize/2, swatchSize, swatchSize)
			dc.Fill()
		}
		dc.SetRGB(0, 0, 0)
		dc.SetLineWidth(outlineWidthPx)
		dc.DrawRectangle(x, y-swatchSize/2, swatchSize, swatchSize)
		dc.Stroke()
		x += swatchSize + labelGap

		labelWidth, _ := dc.MeasureString(area.RegionName())
		dc.DrawStringAnchored(area.RegionName(), x+labelWidth/2, y, 0.5, 0.35)
		x += labelWidth
	}
}

// outputsDir receives the optional PNG export.
const outputsDir = "outputs"

// exportFileName is the fixed export path under outputsDir.
const exportFileName = "study_areas_map.png"

// ExportMap writes the rendered PNG under outputs/. Only called when the
// operator enables the export toggle; the bytes are identical to the ones
// served at /map.
func ExportMap(png []byte) error {
	if err := os.MkdirAll(outputsDir, os.ModePerm); err != nil {
		return fmt.Errorf("creating %s: %w", outputsDir, err)
	}
	path := filepath.Join(outputsDir, exportFileName)
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return fmt.Errorf("writing map export: %w", err)
	}
	log.Printf("Map exported to %s (%.2f MB)", path, float64(len(png))/1024/1024)
	return nil
}
