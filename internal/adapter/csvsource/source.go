// Package csvsource loads sample points from CSV files.
package csvsource

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/riverbend-gis/suitability-grid/internal/domain"
)

// Required header columns, matched case-insensitively in any order.
var requiredColumns = []string{"x", "y", "ffreq", "landuse", "lead", "cadmium", "elev"}

// Loader reads sample CSV files from the local filesystem.
// It implements pipeline.SampleLoader.
type Loader struct{}

// Load reads the sample file at path.
func (Loader) Load(ctx context.Context, path string) ([]domain.SamplePoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open samples: %w", err)
	}
	defer f.Close()

	samples, err := Read(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return samples, nil
}

// Read parses sample points from CSV data. The first record must be a
// header containing at least the columns x, y, ffreq, landuse, lead,
// cadmium, and elev; extra columns are ignored. Numeric fields that
// fail to parse are row-level errors, not silent zeros — a survey
// file with a mangled concentration should fail loudly.
func Read(ctx context.Context, r io.Reader) ([]domain.SamplePoint, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var samples []domain.SamplePoint
	for row := 2; ; row++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		s := domain.SamplePoint{
			FloodFreq: strings.TrimSpace(rec[cols["ffreq"]]),
			LandUse:   strings.TrimSpace(rec[cols["landuse"]]),
		}
		for _, f := range []struct {
			name string
			dst  *float64
		}{
			{"x", &s.X},
			{"y", &s.Y},
			{"lead", &s.Lead},
			{"cadmium", &s.Cadmium},
			{"elev", &s.Elev},
		} {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[cols[f.name]]), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: column %s: %w", row, f.name, err)
			}
			*f.dst = v
		}
		samples = append(samples, s)
	}
	return samples, nil
}

func mapColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing column %q in header", name)
		}
	}
	return cols, nil
}
