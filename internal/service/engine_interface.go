package service

import (
	"context"

	"github.com/cypherlabdev/match-predictor-service/internal/models"
	"github.com/cypherlabdev/match-predictor-service/pkg/predictor"
)

// Engine is an interface that abstracts match prediction operations
// This allows for easier testing and mocking
type Engine interface {
	PredictFixture(lookup predictor.RatingLookup, homeTeam, awayTeam string, baseline models.LeagueBaseline) (*models.MatchPrediction, error)
}

// BatchPredictor predicts an ordered batch of fixtures for one league
type BatchPredictor interface {
	PredictBatch(ctx context.Context, league string, fixtures []models.Fixture) ([]*models.FixturePrediction, error)
}

// Publisher delivers prediction batches to downstream consumers
type Publisher interface {
	Publish(ctx context.Context, msg *models.KafkaPredictionBatchMessage) error
	Close() error
}
