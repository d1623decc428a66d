package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/cypherlabdev/match-predictor-service/internal/models"
)

// messageWriter is the subset of *kafka.Writer the producer needs
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaProducer publishes prediction batches to Kafka
type KafkaProducer struct {
	writer messageWriter
	topic  string
	logger zerolog.Logger
}

// KafkaProducerConfig holds Kafka producer configuration
type KafkaProducerConfig struct {
	Brokers []string // e.g., ["localhost:9092"]
	Topic   string   // e.g., "match_predictions"
}

// NewKafkaProducer creates a new Kafka producer.
// Messages are keyed by league so a league's batches stay on one partition.
func NewKafkaProducer(config KafkaProducerConfig, logger zerolog.Logger) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(config.Brokers...),
		Topic:        config.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
	}

	return newKafkaProducer(writer, config.Topic, logger)
}

func newKafkaProducer(writer messageWriter, topic string, logger zerolog.Logger) *KafkaProducer {
	return &KafkaProducer{
		writer: writer,
		topic:  topic,
		logger: logger.With().Str("component", "kafka_producer").Logger(),
	}
}

// Publish writes one prediction batch
func (p *KafkaProducer) Publish(ctx context.Context, msg *models.KafkaPredictionBatchMessage) error {
	value, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal prediction batch: %w", err)
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.League),
		Value: value,
		Time:  msg.Timestamp,
	}); err != nil {
		return fmt.Errorf("failed to write prediction batch %s: %w", msg.BatchID, err)
	}

	p.logger.Debug().
		Str("topic", p.topic).
		Str("batch_id", msg.BatchID).
		Str("league", msg.League).
		Int("prediction_count", len(msg.Predictions)).
		Msg("published prediction batch")

	return nil
}

// Close flushes pending messages and closes the writer
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
