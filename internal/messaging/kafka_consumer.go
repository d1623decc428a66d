package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/cypherlabdev/match-predictor-service/internal/metrics"
	"github.com/cypherlabdev/match-predictor-service/internal/models"
	"github.com/cypherlabdev/match-predictor-service/internal/service"
)

// KafkaConsumer consumes fixture batches from Kafka, predicts them and
// publishes the predictions
type KafkaConsumer struct {
	reader    *kafka.Reader
	predictor service.BatchPredictor
	publisher service.Publisher
	logger    zerolog.Logger
}

// KafkaConsumerConfig holds Kafka consumer configuration
type KafkaConsumerConfig struct {
	Brokers []string // e.g., ["localhost:9092"]
	Topic   string   // e.g., "fixtures"
	GroupID string   // e.g., "match-predictor"
}

// NewKafkaConsumer creates a new Kafka consumer
func NewKafkaConsumer(
	config KafkaConsumerConfig,
	predictor service.BatchPredictor,
	publisher service.Publisher,
	logger zerolog.Logger,
) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        config.Brokers,
		Topic:          config.Topic,
		GroupID:        config.GroupID,
		MinBytes:       1e3,  // 1KB
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
	})

	return &KafkaConsumer{
		reader:    reader,
		predictor: predictor,
		publisher: publisher,
		logger:    logger.With().Str("component", "kafka_consumer").Logger(),
	}
}

// Start begins consuming messages from Kafka
func (c *KafkaConsumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("topic", c.reader.Config().Topic).
		Str("group_id", c.reader.Config().GroupID).
		Msg("started consuming from Kafka")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info().Msg("stopping Kafka consumer")
			return c.reader.Close()

		default:
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				c.logger.Error().Err(err).Msg("failed to fetch message")
				continue
			}

			if err := c.processMessage(ctx, msg); err != nil {
				metrics.RecordKafkaMessage("failed")
				c.logger.Error().
					Err(err).
					Int64("offset", msg.Offset).
					Str("key", string(msg.Key)).
					Msg("failed to process message")
				// Don't commit if processing failed
				continue
			}
			metrics.RecordKafkaMessage("processed")

			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error().Err(err).Msg("failed to commit message")
			}
		}
	}
}

// processMessage predicts one fixture batch and publishes the result
func (c *KafkaConsumer) processMessage(ctx context.Context, msg kafka.Message) error {
	var batch models.KafkaFixtureBatchMessage
	if err := json.Unmarshal(msg.Value, &batch); err != nil {
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}
	if batch.League == "" {
		return fmt.Errorf("batch %s: %w: league is required", batch.BatchID, models.ErrInvalidParameters)
	}

	c.logger.Debug().
		Int("fixture_count", len(batch.Fixtures)).
		Str("batch_id", batch.BatchID).
		Str("league", batch.League).
		Msg("processing fixture batch")

	predictions, err := c.predictor.PredictBatch(ctx, batch.League, batch.Fixtures)
	if err != nil {
		return fmt.Errorf("failed to predict fixtures: %w", err)
	}

	out := &models.KafkaPredictionBatchMessage{
		BatchID:     batch.BatchID,
		League:      batch.League,
		Predictions: predictions,
		Timestamp:   time.Now().UTC(),
	}
	if err := c.publisher.Publish(ctx, out); err != nil {
		return fmt.Errorf("failed to publish predictions: %w", err)
	}

	c.logger.Info().
		Int("input_count", len(batch.Fixtures)).
		Int("output_count", len(predictions)).
		Str("batch_id", batch.BatchID).
		Msg("processed and published fixture predictions")

	return nil
}

// Close closes the Kafka reader
func (c *KafkaConsumer) Close() error {
	return c.reader.Close()
}
