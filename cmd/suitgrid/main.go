// Command suitgrid runs one suitability interpolation from the command
// line: score a sample CSV, interpolate onto the mask raster's grid, and
// write the masked surface.
//
// Usage:
//
//	go run ./cmd/suitgrid \
//	  -samples data/mock/survey_samples.csv \
//	  -mask data/mock/study_area.asc \
//	  -out out/suitability.asc
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/riverbend-gis/suitability-grid/internal/adapter/csvsource"
	"github.com/riverbend-gis/suitability-grid/internal/adapter/rasterfile"
	"github.com/riverbend-gis/suitability-grid/internal/config"
	"github.com/riverbend-gis/suitability-grid/internal/domain"
	"github.com/riverbend-gis/suitability-grid/internal/interp"
	"github.com/riverbend-gis/suitability-grid/internal/pipeline"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "suitgrid: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	samples := flag.String("samples", "", "path to sample CSV (x, y, ffreq, landuse, lead, cadmium, elev)")
	mask := flag.String("mask", "", "path to reference mask raster (ESRI ASCII)")
	out := flag.String("out", "", "output path (default: out/<run-id>.<format>)")
	format := flag.String("format", domain.FormatASC, "output format: asc or geojson")
	neighbors := flag.Int("k", interp.DefaultNeighbors, "number of nearest neighbors")
	power := flag.Float64("power", interp.DefaultPower, "inverse-distance weighting exponent")
	weights := flag.String("weights", "", "factor weights, e.g. flood=1,landuse=2,lead=1,cadmium=1,elev=1")
	flag.Parse()

	if *samples == "" || *mask == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -samples, -mask")
	}
	if !domain.ValidFormat(*format) {
		return fmt.Errorf("unsupported format %q", *format)
	}

	w, err := parseWeights(*weights)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	cfg := &config.Config{
		OutputDir:    "out",
		OutputFormat: *format,
		IDWNeighbors: *neighbors,
		IDWPower:     *power,
	}

	eng := pipeline.NewEngine(csvsource.Loader{}, rasterfile.Store{}, cfg, logger)
	summary, err := eng.Execute(context.Background(), domain.RunRequest{
		SamplesPath: *samples,
		MaskPath:    *mask,
		OutputPath:  *out,
		Format:      *format,
		Neighbors:   *neighbors,
		Power:       *power,
		Weights:     w,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}

// parseWeights parses "name=value" pairs separated by commas.
func parseWeights(s string) (map[string]float64, error) {
	if s == "" {
		return nil, nil
	}
	out := make(map[string]float64)
	for _, pair := range strings.Split(s, ",") {
		name, val, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			return nil, fmt.Errorf("malformed weight %q (want name=value)", pair)
		}
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, fmt.Errorf("weight %q: %w", name, err)
		}
		out[name] = f
	}
	return out, nil
}
