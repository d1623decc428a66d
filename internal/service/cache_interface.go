package service

import (
	"context"

	"github.com/cypherlabdev/match-predictor-service/internal/models"
)

// Cache is an interface that abstracts prediction cache operations
// This allows for easier testing and mocking
type Cache interface {
	Set(ctx context.Context, prediction *models.FixturePrediction) error
	Get(ctx context.Context, league, homeTeam, awayTeam string) (*models.FixturePrediction, error)
	SetBatch(ctx context.Context, predictions []*models.FixturePrediction) error
	GetByLeague(ctx context.Context, league string) ([]*models.FixturePrediction, error)
	Ping(ctx context.Context) error
	Close() error
}
