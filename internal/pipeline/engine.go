package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/ctessum/geom"

	"github.com/riverbend-gis/suitability-grid/internal/config"
	"github.com/riverbend-gis/suitability-grid/internal/domain"
	"github.com/riverbend-gis/suitability-grid/internal/interp"
	"github.com/riverbend-gis/suitability-grid/internal/raster"
)

// SampleLoader supplies the sample point set for a run.
type SampleLoader interface {
	Load(ctx context.Context, path string) ([]domain.SamplePoint, error)
}

// RasterStore loads reference rasters and persists output grids.
type RasterStore interface {
	Load(path string) (*raster.Grid, error)
	Write(path, format string, g *raster.Grid) error
}

// Engine executes one suitability run: load samples and mask, score,
// interpolate, mask, write, summarize. It holds no per-run state and
// is safe to reuse across runs.
type Engine struct {
	samples SampleLoader
	rasters RasterStore
	score   domain.ScoreConfig
	logger  *slog.Logger

	defaultNeighbors int
	defaultPower     float64
	defaultFormat    string
	outputDir        string
}

// NewEngine wires an engine with the shipped scoring tables and the
// configured interpolation/output defaults.
func NewEngine(samples SampleLoader, rasters RasterStore, cfg *config.Config, logger *slog.Logger) *Engine {
	return &Engine{
		samples:          samples,
		rasters:          rasters,
		score:            domain.DefaultScoreConfig(),
		logger:           logger,
		defaultNeighbors: cfg.IDWNeighbors,
		defaultPower:     cfg.IDWPower,
		defaultFormat:    cfg.OutputFormat,
		outputDir:        cfg.OutputDir,
	}
}

// Execute runs the full pipeline for one request. The returned
// summary describes the written grid; on error nothing is written.
func (e *Engine) Execute(ctx context.Context, req domain.RunRequest) (domain.RunSummary, error) {
	req = e.applyDefaults(req)
	startedAt := domain.Now()

	samples, err := e.samples.Load(ctx, req.SamplesPath)
	if err != nil {
		return domain.RunSummary{}, fmt.Errorf("load samples: %w", err)
	}
	if len(samples) == 0 {
		return domain.RunSummary{}, fmt.Errorf("samples %s: %w", req.SamplesPath, domain.ErrEmptyInput)
	}

	scoreCfg := e.score
	scoreCfg.Weights = req.Weights
	scores, err := domain.ScoreSamples(samples, scoreCfg)
	if err != nil {
		return domain.RunSummary{}, fmt.Errorf("score samples: %w", err)
	}
	if len(scores.Unmatched) > 0 {
		e.logger.Warn("categorical codes fell back to lookup default",
			"run_id", req.ID,
			"codes", scores.Unmatched,
		)
	}

	mask, err := e.rasters.Load(req.MaskPath)
	if err != nil {
		return domain.RunSummary{}, fmt.Errorf("load mask raster: %w", err)
	}

	pts := make([]interp.Sample, len(samples))
	for i, s := range samples {
		pts[i] = interp.Sample{
			Point: geom.Point{X: s.X, Y: s.Y},
			Score: scores.Values[i],
		}
	}
	idw, err := interp.NewIDW(pts, req.Neighbors, req.Power)
	if err != nil {
		return domain.RunSummary{}, fmt.Errorf("interpolate: %w", err)
	}
	out := idw.Grid(mask)

	if err := raster.Mask(out, mask); err != nil {
		return domain.RunSummary{}, err
	}

	if err := e.rasters.Write(req.OutputPath, req.Format, out); err != nil {
		return domain.RunSummary{}, fmt.Errorf("write output: %w", err)
	}

	cols, rows := out.Dims()
	stats := out.Stats()
	summary := domain.RunSummary{
		RunID:       req.ID,
		SamplesPath: req.SamplesPath,
		MaskPath:    req.MaskPath,
		OutputPath:  req.OutputPath,
		Format:      req.Format,
		SampleCount: len(samples),
		Neighbors:   req.Neighbors,
		Power:       req.Power,
		Unmatched:   scores.Unmatched,
		Grid: domain.GridStats{
			Ncols:       cols,
			Nrows:       rows,
			CellSize:    out.CellSize(),
			ValidCells:  stats.Valid,
			NoDataCells: stats.NoData,
			Min:         stats.Min,
			Max:         stats.Max,
			Mean:        stats.Mean,
		},
		StartedAt:   startedAt,
		CompletedAt: domain.Now(),
	}

	e.logger.Info("run completed",
		"run_id", summary.RunID,
		"samples", summary.SampleCount,
		"valid_cells", summary.Grid.ValidCells,
		"output", summary.OutputPath,
	)
	return summary, nil
}

// applyDefaults fills unset request fields from the engine defaults
// and assigns the deterministic run ID.
func (e *Engine) applyDefaults(req domain.RunRequest) domain.RunRequest {
	if req.Neighbors <= 0 {
		req.Neighbors = e.defaultNeighbors
	}
	if req.Power <= 0 {
		req.Power = e.defaultPower
	}
	if req.Format == "" {
		req.Format = e.defaultFormat
	}
	if req.ID == "" {
		req.ID = domain.NewRunID(req)
	}
	if req.OutputPath == "" {
		req.OutputPath = filepath.Join(e.outputDir, req.ID+"."+req.Format)
	}
	return req
}
