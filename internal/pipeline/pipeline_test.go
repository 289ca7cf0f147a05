package pipeline_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riverbend-gis/suitability-grid/internal/domain"
	"github.com/riverbend-gis/suitability-grid/internal/observability"
	"github.com/riverbend-gis/suitability-grid/internal/pipeline"
)

// --- mocks ---

type mockSource struct {
	envelopes []domain.RunEnvelope
	index     atomic.Int64
}

func (m *mockSource) Fetch(ctx context.Context) (domain.RunEnvelope, error) {
	i := int(m.index.Add(1) - 1)
	if i >= len(m.envelopes) {
		// Block until the context is cancelled to simulate waiting
		// for requests.
		<-ctx.Done()
		return domain.RunEnvelope{}, ctx.Err()
	}
	return m.envelopes[i], nil
}

type mockRunner struct {
	err      error
	executed []domain.RunRequest
}

func (m *mockRunner) Execute(_ context.Context, req domain.RunRequest) (domain.RunSummary, error) {
	m.executed = append(m.executed, req)
	if m.err != nil {
		return domain.RunSummary{}, m.err
	}
	return domain.RunSummary{
		RunID:       "run-test",
		SamplesPath: req.SamplesPath,
		SampleCount: 4,
		Grid:        domain.GridStats{ValidCells: 9},
	}, nil
}

type mockSink struct {
	published []domain.RunSummary
}

func (m *mockSink) Publish(_ context.Context, s domain.RunSummary) error {
	m.published = append(m.published, s)
	return nil
}

func makeEnvelope(t *testing.T, req domain.RunRequest, commit func(ctx context.Context) error) domain.RunEnvelope {
	t.Helper()
	value, err := json.Marshal(req)
	require.NoError(t, err)
	return domain.RunEnvelope{
		Key:    []byte(req.SamplesPath),
		Value:  value,
		Topic:  "suitability-run-requests",
		Offset: 42,
		Commit: commit,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// --- tests ---

func TestPipeline_Run_HappyPath(t *testing.T) {
	var committed atomic.Int64
	env := makeEnvelope(t, domain.RunRequest{SamplesPath: "s.csv", MaskPath: "m.asc"},
		func(context.Context) error { committed.Add(1); return nil })

	src := &mockSource{envelopes: []domain.RunEnvelope{env}}
	run := &mockRunner{}
	sink := &mockSink{}
	p := pipeline.New(src, run, sink, discardLogger(), observability.NewMetricsForTesting())

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	require.NoError(t, p.Run(ctx))

	require.Len(t, run.executed, 1)
	assert.Equal(t, "s.csv", run.executed[0].SamplesPath)
	require.Len(t, sink.published, 1)
	assert.Equal(t, "run-test", sink.published[0].RunID)
	assert.Equal(t, int64(1), committed.Load())
	assert.NoError(t, p.CheckReadiness(ctx))
}

func TestPipeline_Run_ContextCancellation(t *testing.T) {
	src := &mockSource{} // no envelopes, Fetch blocks
	p := pipeline.New(src, &mockRunner{}, &mockSink{}, discardLogger(), observability.NewMetricsForTesting())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, p.Run(ctx))
	assert.Error(t, p.CheckReadiness(context.Background()))
}

func TestPipeline_Run_MalformedRequestSkippedAndCommitted(t *testing.T) {
	var committed atomic.Int64
	env := domain.RunEnvelope{
		Value:  []byte("not json"),
		Commit: func(context.Context) error { committed.Add(1); return nil },
	}

	src := &mockSource{envelopes: []domain.RunEnvelope{env}}
	run := &mockRunner{}
	sink := &mockSink{}
	p := pipeline.New(src, run, sink, discardLogger(), observability.NewMetricsForTesting())

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	require.NoError(t, p.Run(ctx))

	assert.Empty(t, run.executed)
	assert.Empty(t, sink.published)
	// Bad payloads are committed so they are not redelivered forever.
	assert.Equal(t, int64(1), committed.Load())
	assert.Error(t, p.CheckReadiness(ctx))
}

func TestPipeline_Run_FailedRunSkippedAndCommitted(t *testing.T) {
	var committed atomic.Int64
	env := makeEnvelope(t, domain.RunRequest{SamplesPath: "s.csv", MaskPath: "m.asc"},
		func(context.Context) error { committed.Add(1); return nil })

	src := &mockSource{envelopes: []domain.RunEnvelope{env}}
	run := &mockRunner{err: errors.New("mask misaligned")}
	sink := &mockSink{}
	p := pipeline.New(src, run, sink, discardLogger(), observability.NewMetricsForTesting())

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	require.NoError(t, p.Run(ctx))

	require.Len(t, run.executed, 1)
	assert.Empty(t, sink.published)
	assert.Equal(t, int64(1), committed.Load())
	assert.Error(t, p.CheckReadiness(ctx))
}

func TestPipeline_Run_ProcessesAllRequests(t *testing.T) {
	envs := []domain.RunEnvelope{
		makeEnvelope(t, domain.RunRequest{SamplesPath: "a.csv", MaskPath: "m.asc"}, nil),
		makeEnvelope(t, domain.RunRequest{SamplesPath: "b.csv", MaskPath: "m.asc"}, nil),
	}

	src := &mockSource{envelopes: envs}
	run := &mockRunner{}
	sink := &mockSink{}
	p := pipeline.New(src, run, sink, discardLogger(), observability.NewMetricsForTesting())

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	require.NoError(t, p.Run(ctx))

	require.Len(t, sink.published, 2)
	assert.Equal(t, "a.csv", sink.published[0].SamplesPath)
	assert.Equal(t, "b.csv", sink.published[1].SamplesPath)
}
