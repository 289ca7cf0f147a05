// Package pipeline orchestrates suitability runs: a reusable engine
// for single runs and a request-consuming loop for the service.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/riverbend-gis/suitability-grid/internal/domain"
	"github.com/riverbend-gis/suitability-grid/internal/observability"
)

// RequestSource supplies run-request envelopes from the source topic.
type RequestSource interface {
	Fetch(ctx context.Context) (domain.RunEnvelope, error)
}

// Runner executes one suitability run.
type Runner interface {
	Execute(ctx context.Context, req domain.RunRequest) (domain.RunSummary, error)
}

// SummarySink publishes completed-run summaries.
type SummarySink interface {
	Publish(ctx context.Context, summary domain.RunSummary) error
}

// Pipeline is the fetch-execute-publish loop of the service.
type Pipeline struct {
	source  RequestSource
	runner  Runner
	sink    SummarySink
	logger  *slog.Logger
	metrics *observability.Metrics
	ready   atomic.Bool
}

// New creates a Pipeline with the given stages and observability.
func New(source RequestSource, runner Runner, sink SummarySink, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		source:  source,
		runner:  runner,
		sink:    sink,
		logger:  logger,
		metrics: metrics,
	}
}

// CheckReadiness returns nil once the pipeline has completed at least
// one run, or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not completed any runs yet")
	}
	return nil
}

// Run executes the loop until the context is cancelled.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started")
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	// Exponential backoff: start at 200ms, double each retry, cap at
	// 5s. Keeps retry storms short without tight-looping during
	// broker outages.
	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		default:
		}

		if !p.processOne(ctx, &backoff, maxBackoff) {
			return nil
		}
	}
}

// processOne handles a single request envelope. Returns false if the
// pipeline should stop.
func (p *Pipeline) processOne(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	env, err := p.source.Fetch(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		p.logger.Error("fetch run request failed", "error", err)
		return p.backoffOrStop(ctx, backoff, maxBackoff)
	}
	p.metrics.RequestsConsumed.Inc()
	*backoff = 200 * time.Millisecond

	req, err := domain.ParseRunRequest(env)
	if err != nil {
		p.logger.Warn("malformed run request, skipping",
			"error", err,
			"topic", env.Topic,
			"partition", env.Partition,
			"offset", env.Offset,
		)
		p.metrics.RunErrors.Inc()
		p.commit(ctx, env)
		return true
	}

	start := time.Now()
	summary, err := p.runner.Execute(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		p.logger.Error("run failed, skipping request",
			"error", err,
			"samples_path", req.SamplesPath,
			"mask_path", req.MaskPath,
			"offset", env.Offset,
		)
		p.metrics.RunErrors.Inc()
		p.commit(ctx, env)
		return true
	}

	p.metrics.RunDuration.Observe(time.Since(start).Seconds())
	p.metrics.SamplesPerRun.Observe(float64(summary.SampleCount))
	p.metrics.CellsInterpolated.Add(float64(summary.Grid.ValidCells))
	p.metrics.UnmatchedCategories.Add(float64(len(summary.Unmatched)))

	if err := p.sink.Publish(ctx, summary); err != nil {
		p.logger.Error("publish run summary failed", "error", err, "run_id", summary.RunID)
		return p.backoffOrStop(ctx, backoff, maxBackoff)
	}
	p.metrics.SummariesProduced.Inc()

	p.commit(ctx, env)
	p.ready.Store(true)
	return true
}

// backoffOrStop sleeps with the current backoff and advances it.
// Returns false if the pipeline should stop.
func (p *Pipeline) backoffOrStop(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	if !sleepWithContext(ctx, *backoff) {
		return false
	}
	*backoff = nextBackoff(*backoff, maxBackoff)
	return true
}

// commit commits the envelope's offset if a commit function is available.
func (p *Pipeline) commit(ctx context.Context, env domain.RunEnvelope) {
	if env.Commit == nil {
		return
	}
	if err := env.Commit(ctx); err != nil {
		p.logger.Warn("commit offset failed", "error", err,
			"topic", env.Topic, "partition", env.Partition, "offset", env.Offset)
	}
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
