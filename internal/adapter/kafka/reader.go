// Package kafka adapts the pipeline to Kafka topics: run requests in,
// run summaries out.
package kafka

import (
	"context"
	"fmt"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/riverbend-gis/suitability-grid/internal/config"
	"github.com/riverbend-gis/suitability-grid/internal/domain"
)

// Reader consumes run-request messages from the source topic.
// It implements pipeline.RequestSource.
type Reader struct {
	reader *kafkago.Reader
	logger *slog.Logger
}

// NewReader creates a consumer-group reader for the configured source
// topic.
func NewReader(cfg *config.Config, logger *slog.Logger) *Reader {
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.KafkaSourceTopic,
		GroupID: cfg.KafkaGroupID,
	})
	return &Reader{reader: r, logger: logger}
}

// Fetch blocks until the next run request arrives or the context is
// cancelled. Offsets are committed explicitly through the envelope's
// Commit so a crash mid-run redelivers the request.
func (r *Reader) Fetch(ctx context.Context) (domain.RunEnvelope, error) {
	msg, err := r.reader.FetchMessage(ctx)
	if err != nil {
		return domain.RunEnvelope{}, fmt.Errorf("fetch run request: %w", err)
	}
	env := mapMessageToEnvelope(msg)
	env.Commit = func(ctx context.Context) error {
		return r.reader.CommitMessages(ctx, msg)
	}
	return env, nil
}

func (r *Reader) Close() error {
	return r.reader.Close()
}

// mapMessageToEnvelope converts a Kafka message into a run envelope.
func mapMessageToEnvelope(msg kafkago.Message) domain.RunEnvelope {
	return domain.RunEnvelope{
		Key:       msg.Key,
		Value:     msg.Value,
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Timestamp: msg.Time,
	}
}
