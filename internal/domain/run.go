package domain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// Output formats accepted in run requests and the CLI.
const (
	FormatASC     = "asc"
	FormatGeoJSON = "geojson"
)

// ValidFormat reports whether f names a supported output format.
func ValidFormat(f string) bool {
	return f == FormatASC || f == FormatGeoJSON
}

// RunRequest describes one suitability run. It is the JSON payload on
// the request topic and the parameter set of a CLI invocation.
// Zero-valued Neighbors/Power/Format fall back to configured defaults.
type RunRequest struct {
	ID          string             `json:"id,omitempty"`
	SamplesPath string             `json:"samples_path"`
	MaskPath    string             `json:"mask_path"`
	OutputPath  string             `json:"output_path,omitempty"`
	Format      string             `json:"format,omitempty"`
	Neighbors   int                `json:"neighbors,omitempty"`
	Power       float64            `json:"power,omitempty"`
	Weights     map[string]float64 `json:"weights,omitempty"`
}

// RunEnvelope wraps an unparsed run request read from the source
// topic, together with enough metadata to log and commit it.
type RunEnvelope struct {
	Key       []byte
	Value     []byte
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// ParseRunRequest deserializes an envelope's payload.
func ParseRunRequest(env RunEnvelope) (RunRequest, error) {
	var req RunRequest
	if err := json.Unmarshal(env.Value, &req); err != nil {
		return RunRequest{}, fmt.Errorf("parse run request: %w", err)
	}
	if req.SamplesPath == "" {
		return RunRequest{}, fmt.Errorf("run request missing samples_path")
	}
	if req.MaskPath == "" {
		return RunRequest{}, fmt.Errorf("run request missing mask_path")
	}
	return req, nil
}

// GridStats summarizes the interpolated, masked output grid.
type GridStats struct {
	Ncols       int     `json:"ncols"`
	Nrows       int     `json:"nrows"`
	CellSize    float64 `json:"cell_size"`
	ValidCells  int     `json:"valid_cells"`
	NoDataCells int     `json:"nodata_cells"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Mean        float64 `json:"mean"`
}

// RunSummary is the record published for a completed run.
type RunSummary struct {
	RunID       string   `json:"run_id"`
	SamplesPath string   `json:"samples_path"`
	MaskPath    string   `json:"mask_path"`
	OutputPath  string   `json:"output_path"`
	Format      string   `json:"format"`
	SampleCount int      `json:"sample_count"`
	Neighbors   int      `json:"neighbors"`
	Power       float64  `json:"power"`
	Unmatched   []string `json:"unmatched_categories,omitempty"`

	Grid GridStats `json:"grid"`

	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
}

// NewRunID produces a deterministic ID from a request's key fields.
// The same inputs and parameters always hash to the same ID, so
// replayed requests are recognizable downstream.
func NewRunID(req RunRequest) string {
	input := fmt.Sprintf("%s|%s|%d|%g|%s",
		req.SamplesPath, req.MaskPath, req.Neighbors, req.Power, canonicalWeights(req.Weights))
	hash := sha256.Sum256([]byte(input))
	return "run-" + hex.EncodeToString(hash[:8])
}

// canonicalWeights renders a weight map in sorted key order so map
// iteration order cannot change the hash.
func canonicalWeights(weights map[string]float64) string {
	if len(weights) == 0 {
		return ""
	}
	keys := make([]string, 0, len(weights))
	for k := range weights {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	s := ""
	for _, k := range keys {
		s += fmt.Sprintf("%s=%g,", k, weights[k])
	}
	return s
}
