// Command suitgridd runs the suitability-grid service: it consumes run
// requests from Kafka, executes the scoring and interpolation pipeline,
// writes the output grid, and publishes run summaries.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/riverbend-gis/suitability-grid/internal/adapter/csvsource"
	httpadapter "github.com/riverbend-gis/suitability-grid/internal/adapter/http"
	kafkaadapter "github.com/riverbend-gis/suitability-grid/internal/adapter/kafka"
	"github.com/riverbend-gis/suitability-grid/internal/adapter/rasterfile"
	"github.com/riverbend-gis/suitability-grid/internal/config"
	"github.com/riverbend-gis/suitability-grid/internal/observability"
	"github.com/riverbend-gis/suitability-grid/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)

	engine := pipeline.NewEngine(csvsource.Loader{}, rasterfile.Store{}, cfg, logger)
	p := pipeline.New(reader, engine, writer, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start run pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
