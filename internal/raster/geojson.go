package raster

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// FeatureCollection exports the valid cells of g as point features at
// cell centers, each carrying the cell value under the given property
// name. NoData cells are omitted.
func FeatureCollection(g *Grid, property string) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	cols, rows := g.Dims()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if g.IsNoData(c, r) {
				continue
			}
			f := geojson.NewFeature(orb.Point{g.X(c), g.Y(r)})
			f.Properties[property] = g.Z(c, r)
			fc.Append(f)
		}
	}
	return fc
}

// WriteGeoJSON writes the valid cells of g as a GeoJSON
// FeatureCollection with a "suitability" property per cell.
func WriteGeoJSON(w io.Writer, g *Grid) error {
	data, err := json.Marshal(FeatureCollection(g, "suitability"))
	if err != nil {
		return fmt.Errorf("encode geojson: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// WriteGeoJSONFile writes g to disk as GeoJSON.
func WriteGeoJSONFile(path string, g *Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create geojson: %w", err)
	}
	if err := WriteGeoJSON(f, g); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
