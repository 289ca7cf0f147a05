package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for
// the suitability pipeline.
type Metrics struct {
	RequestsConsumed  prometheus.Counter
	SummariesProduced prometheus.Counter
	RunErrors         prometheus.Counter
	PipelineRunning   prometheus.Gauge

	RunDuration       prometheus.Histogram
	SamplesPerRun     prometheus.Histogram
	CellsInterpolated prometheus.Counter

	// Data-quality signal: categorical codes that fell back to a
	// lookup-table default during scoring.
	UnmatchedCategories prometheus.Counter
}

// NewMetrics creates and registers all pipeline metrics with the
// default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RequestsConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "suitability",
			Name:      "run_requests_consumed_total",
			Help:      "Total run requests read from the source topic.",
		}),
		SummariesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "suitability",
			Name:      "run_summaries_produced_total",
			Help:      "Total run summaries written to the sink topic.",
		}),
		RunErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "suitability",
			Name:      "run_errors_total",
			Help:      "Total failed suitability runs.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "suitability",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "suitability",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete load-score-interpolate-mask-write run.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		SamplesPerRun: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "suitability",
			Name:      "samples_per_run",
			Help:      "Number of sample points loaded per run.",
			Buckets:   []float64{10, 25, 50, 100, 250, 500, 1000, 2500},
		}),
		CellsInterpolated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "suitability",
			Name:      "cells_interpolated_total",
			Help:      "Total grid cells filled by interpolation.",
		}),
		UnmatchedCategories: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "suitability",
			Name:      "unmatched_categories_total",
			Help:      "Distinct categorical codes per run that fell back to a lookup default.",
		}),
	}

	prometheus.MustRegister(
		m.RequestsConsumed,
		m.SummariesProduced,
		m.RunErrors,
		m.PipelineRunning,
		m.RunDuration,
		m.SamplesPerRun,
		m.CellsInterpolated,
		m.UnmatchedCategories,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, so
// parallel tests cannot hit "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RequestsConsumed:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "suitability", Name: "run_requests_consumed_total"}),
		SummariesProduced:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "suitability", Name: "run_summaries_produced_total"}),
		RunErrors:           prometheus.NewCounter(prometheus.CounterOpts{Namespace: "suitability", Name: "run_errors_total"}),
		PipelineRunning:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "suitability", Name: "pipeline_running"}),
		RunDuration:         prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "suitability", Name: "run_duration_seconds"}),
		SamplesPerRun:       prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "suitability", Name: "samples_per_run"}),
		CellsInterpolated:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "suitability", Name: "cells_interpolated_total"}),
		UnmatchedCategories: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "suitability", Name: "unmatched_categories_total"}),
	}
}
