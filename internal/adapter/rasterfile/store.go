// Package rasterfile adapts the raster package to the local
// filesystem: mask rasters are read as ESRI ASCII grids and output
// grids are written as ASCII or GeoJSON.
package rasterfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/riverbend-gis/suitability-grid/internal/domain"
	"github.com/riverbend-gis/suitability-grid/internal/raster"
)

// Store reads and writes grids on the local filesystem.
// It implements pipeline.RasterStore.
type Store struct{}

// Load reads the ESRI ASCII grid at path.
func (Store) Load(path string) (*raster.Grid, error) {
	return raster.ReadASCFile(path)
}

// Write stores g at path in the given format, creating parent
// directories as needed.
func (Store) Write(path, format string, g *raster.Grid) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	switch format {
	case domain.FormatASC:
		return raster.WriteASCFile(path, g)
	case domain.FormatGeoJSON:
		return raster.WriteGeoJSONFile(path, g)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
