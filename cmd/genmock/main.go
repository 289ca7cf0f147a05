// Command genmock generates deterministic mock fixtures for the test
// suites and for local runs: a survey sample CSV and a matching study
// area mask raster. The samples use the real lookup codes so a run over
// the fixtures exercises the whole scoring path.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -samples-out data/mock/survey_samples.csv \
//	  -mask-out data/mock/study_area.asc
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/riverbend-gis/suitability-grid/internal/domain"
	"github.com/riverbend-gis/suitability-grid/internal/raster"
)

// Fixed seed keeps the fixtures byte-stable across regenerations.
const seed = 20260820

const (
	maskCols     = 40
	maskRows     = 50
	maskCellSize = 40.0
	maskXll      = 178000.0
	maskYll      = 329000.0
	sampleCount  = 155
)

var (
	floodCodes   = []string{"1", "2", "3"}
	landUseCodes = []string{
		"W", "Ah", "Am", "Ab", "Ag", "Aa", "Fw", "Fh", "Ga", "Bw", "SPO", "STA", "DEN",
	}
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	samplesOut := flag.String("samples-out", "", "output path for sample CSV")
	maskOut := flag.String("mask-out", "", "output path for mask raster")
	flag.Parse()

	if *samplesOut == "" || *maskOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -samples-out, -mask-out")
	}

	rng := rand.New(rand.NewSource(seed))

	mask, err := buildMask(rng)
	if err != nil {
		return fmt.Errorf("build mask: %w", err)
	}
	samples := buildSamples(rng, mask)

	if err := writeMask(*maskOut, mask); err != nil {
		return fmt.Errorf("write mask: %w", err)
	}
	log.Printf("wrote mask: %s (%dx%d cells)", *maskOut, maskCols, maskRows)

	if err := writeSamples(*samplesOut, samples); err != nil {
		return fmt.Errorf("write samples: %w", err)
	}
	log.Printf("wrote samples: %s (%d points)", *samplesOut, len(samples))

	return nil
}

// buildMask produces a river-valley footprint: a meandering band of
// valid cells, NoData outside it.
func buildMask(rng *rand.Rand) (*raster.Grid, error) {
	g, err := raster.New(maskCols, maskRows, maskXll, maskYll, maskCellSize, raster.DefaultNoData)
	if err != nil {
		return nil, err
	}
	for r := 0; r < maskRows; r++ {
		// Band center drifts across the grid with a gentle sine wobble.
		center := float64(maskCols)/2 + 8*math.Sin(float64(r)/7)
		halfWidth := 10 + rng.Float64()*4
		for c := 0; c < maskCols; c++ {
			if math.Abs(float64(c)-center) <= halfWidth {
				g.SetZ(c, r, 1)
			}
		}
	}
	return g, nil
}

// buildSamples scatters sample points over valid mask cells, jittered
// off cell centers like field observations.
func buildSamples(rng *rand.Rand, mask *raster.Grid) []domain.SamplePoint {
	cols, rows := mask.Dims()
	samples := make([]domain.SamplePoint, 0, sampleCount)
	for len(samples) < sampleCount {
		c := rng.Intn(cols)
		r := rng.Intn(rows)
		if mask.IsNoData(c, r) {
			continue
		}
		jitter := mask.CellSize() * 0.4
		samples = append(samples, domain.SamplePoint{
			X:         mask.X(c) + (rng.Float64()*2-1)*jitter,
			Y:         mask.Y(r) + (rng.Float64()*2-1)*jitter,
			FloodFreq: floodCodes[rng.Intn(len(floodCodes))],
			LandUse:   landUseCodes[rng.Intn(len(landUseCodes))],
			Lead:      math.Round(rng.Float64()*600+30) + 7,
			Cadmium:   math.Round(rng.Float64()*170)/10 + 0.2,
			Elev:      math.Round((rng.Float64()*5+5)*100) / 100,
		})
	}
	return samples
}

func writeMask(path string, g *raster.Grid) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return raster.WriteASCFile(path, g)
}

func writeSamples(path string, samples []domain.SamplePoint) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"x", "y", "ffreq", "landuse", "lead", "cadmium", "elev"}); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			strconv.FormatFloat(s.X, 'f', 1, 64),
			strconv.FormatFloat(s.Y, 'f', 1, 64),
			s.FloodFreq,
			s.LandUse,
			strconv.FormatFloat(s.Lead, 'f', -1, 64),
			strconv.FormatFloat(s.Cadmium, 'f', -1, 64),
			strconv.FormatFloat(s.Elev, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
