// Package metrics provides Prometheus metrics for the match predictor.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "match_predictor"

var (
	// PredictionsTotal counts fixture predictions by result status
	PredictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "predictions_total",
		Help:      "Total number of fixture predictions by status",
	}, []string{"league", "status"})

	// PredictionDuration observes engine time per fixture
	PredictionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "prediction_duration_seconds",
		Help:      "Time spent computing a single fixture prediction",
		Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
	})

	// CacheRequestsTotal counts cache lookups by result (hit, miss, error)
	CacheRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_requests_total",
		Help:      "Total number of prediction cache lookups by result",
	}, []string{"result"})

	// BatchSize observes the number of fixtures per batch
	BatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "batch_fixtures",
		Help:      "Number of fixtures per prediction batch",
		Buckets:   prometheus.LinearBuckets(0, 10, 10),
	})

	// KafkaMessagesTotal counts consumed fixture messages by outcome
	KafkaMessagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "kafka_messages_total",
		Help:      "Total number of fixture batch messages consumed by outcome",
	}, []string{"outcome"})
)

// RecordPrediction increments the prediction counter for a status
func RecordPrediction(league, status string) {
	PredictionsTotal.WithLabelValues(league, status).Inc()
}

// RecordCacheResult increments the cache lookup counter
func RecordCacheResult(result string) {
	CacheRequestsTotal.WithLabelValues(result).Inc()
}

// RecordKafkaMessage increments the consumed message counter
func RecordKafkaMessage(outcome string) {
	KafkaMessagesTotal.WithLabelValues(outcome).Inc()
}
