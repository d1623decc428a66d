package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/cypherlabdev/match-predictor-service/internal/metrics"
	"github.com/cypherlabdev/match-predictor-service/internal/models"
	"github.com/cypherlabdev/match-predictor-service/internal/ratings"
	"github.com/cypherlabdev/match-predictor-service/pkg/predictor"
)

// PredictionService orchestrates rating lookup, prediction and caching
type PredictionService struct {
	engine  Engine
	catalog *ratings.Catalog
	cache   Cache
	params  models.PredictionParams
	logger  zerolog.Logger
}

// NewPredictionService creates a new prediction service
func NewPredictionService(
	engine Engine,
	catalog *ratings.Catalog,
	cache Cache,
	params models.PredictionParams,
	logger zerolog.Logger,
) *PredictionService {
	if params.Workers < 1 {
		params.Workers = 1
	}
	return &PredictionService{
		engine:  engine,
		catalog: catalog,
		cache:   cache,
		params:  params,
		logger:  logger.With().Str("component", "prediction_service").Logger(),
	}
}

// Predict returns the prediction for one fixture with cache-first strategy.
// Unrated teams surface as an unrated_team DomainError.
func (s *PredictionService) Predict(ctx context.Context, league, homeTeam, awayTeam string) (*models.FixturePrediction, error) {
	if league == "" || homeTeam == "" || awayTeam == "" {
		return nil, fmt.Errorf("%w: league, home team and away team are required", models.ErrInvalidParameters)
	}
	if homeTeam == awayTeam {
		return nil, fmt.Errorf("%w: %s cannot play itself", models.ErrInvalidParameters, homeTeam)
	}
	league = s.ResolveLeague(league)

	// Try cache first
	cached, err := s.cache.Get(ctx, league, homeTeam, awayTeam)
	if err == nil && cached != nil {
		metrics.RecordCacheResult("hit")
		s.logger.Debug().
			Str("league", league).
			Str("home_team", homeTeam).
			Str("away_team", awayTeam).
			Msg("cache hit for prediction")
		return cached, nil
	}

	// Log cache errors (but don't fail on them)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		metrics.RecordCacheResult("error")
		s.logger.Warn().
			Err(err).
			Str("league", league).
			Str("home_team", homeTeam).
			Str("away_team", awayTeam).
			Msg("cache error, computing prediction")
	} else {
		metrics.RecordCacheResult("miss")
	}

	fixture := models.Fixture{HomeTeam: homeTeam, AwayTeam: awayTeam}
	prediction, err := s.predictFixture(league, fixture)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, prediction); err != nil {
		s.logger.Warn().
			Err(err).
			Str("league", league).
			Str("home_team", homeTeam).
			Str("away_team", awayTeam).
			Msg("failed to cache prediction")
		// Don't fail the request on cache errors
	}

	s.logger.Info().
		Str("league", league).
		Str("home_team", homeTeam).
		Str("away_team", awayTeam).
		Float64("home_win", prediction.Prediction.HomeWinProbability).
		Float64("draw", prediction.Prediction.DrawProbability).
		Float64("away_win", prediction.Prediction.AwayWinProbability).
		Msg("predicted and cached fixture")

	return prediction, nil
}

// PredictBatch predicts fixtures concurrently and returns results in input
// order. Fixtures that cannot be predicted are flagged with a status instead
// of being dropped; only genuine predictions are cached.
func (s *PredictionService) PredictBatch(ctx context.Context, league string, fixtures []models.Fixture) ([]*models.FixturePrediction, error) {
	if len(fixtures) == 0 {
		return nil, nil
	}
	metrics.BatchSize.Observe(float64(len(fixtures)))
	league = s.ResolveLeague(league)

	results := make([]*models.FixturePrediction, len(fixtures))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.params.Workers)

	for i, fixture := range fixtures {
		i, fixture := i, fixture
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			prediction, err := s.predictFixture(league, fixture)
			if err != nil {
				if _, ok := models.AsDomainError(err); !ok {
					return err
				}
				results[i] = s.newFixturePrediction(league, fixture, models.StatusForError(err), nil)
				results[i].Error = err.Error()
				return nil
			}
			results[i] = prediction
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch prediction failed: %w", err)
	}

	genuine := make([]*models.FixturePrediction, 0, len(results))
	for _, r := range results {
		if r.Genuine() {
			genuine = append(genuine, r)
		}
	}

	// Cache all genuine predictions in batch
	if err := s.cache.SetBatch(ctx, genuine); err != nil {
		s.logger.Warn().
			Err(err).
			Int("count", len(genuine)).
			Msg("failed to cache batch of predictions")
		// Don't fail the request on cache errors
	}

	s.logger.Info().
		Str("league", league).
		Int("input_count", len(fixtures)).
		Int("predicted_count", len(genuine)).
		Msg("predicted and cached batch")

	return results, nil
}

// SamplePrediction returns a placeholder prediction flagged with the sample status.
// Callers must opt into it; Predict and PredictBatch never substitute it.
func (s *PredictionService) SamplePrediction(league string, fixture models.Fixture) *models.FixturePrediction {
	league = s.ResolveLeague(league)
	sample := predictor.SamplePrediction()
	if s.params.Renormalize {
		sample = sample.Renormalized()
	}
	metrics.RecordPrediction(league, string(models.StatusSample))
	return s.newFixturePrediction(league, fixture, models.StatusSample, sample)
}

// GetCachedByLeague retrieves all cached predictions for a league
func (s *PredictionService) GetCachedByLeague(ctx context.Context, league string) ([]*models.FixturePrediction, error) {
	league = s.ResolveLeague(league)
	predictions, err := s.cache.GetByLeague(ctx, league)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve predictions for league: %w", err)
	}

	s.logger.Debug().
		Str("league", league).
		Int("count", len(predictions)).
		Msg("retrieved cached predictions by league")

	return predictions, nil
}

// Teams returns the rated team names of a league
func (s *PredictionService) Teams(league string) []string {
	return s.catalog.League(s.ResolveLeague(league)).Teams()
}

// ResolveLeague maps a country name ("England") to its league id; any other
// value is returned as is
func (s *PredictionService) ResolveLeague(league string) string {
	if id, ok := ratings.LeagueIDForCountry(league); ok {
		return id
	}
	return league
}

// Ping checks the cache backend
func (s *PredictionService) Ping(ctx context.Context) error {
	return s.cache.Ping(ctx)
}

// predictFixture runs the engine for one fixture and wraps the result
func (s *PredictionService) predictFixture(league string, fixture models.Fixture) (*models.FixturePrediction, error) {
	start := time.Now()
	prediction, err := s.engine.PredictFixture(
		s.catalog.League(league),
		fixture.HomeTeam,
		fixture.AwayTeam,
		s.params.BaselineFor(league),
	)
	metrics.PredictionDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.RecordPrediction(league, string(models.StatusForError(err)))
		s.logger.Debug().
			Err(err).
			Str("league", league).
			Str("home_team", fixture.HomeTeam).
			Str("away_team", fixture.AwayTeam).
			Msg("fixture not predicted")
		return nil, err
	}

	if s.params.Renormalize {
		prediction = prediction.Renormalized()
	}
	metrics.RecordPrediction(league, string(models.StatusPredicted))

	return s.newFixturePrediction(league, fixture, models.StatusPredicted, prediction), nil
}

func (s *PredictionService) newFixturePrediction(
	league string,
	fixture models.Fixture,
	status models.PredictionStatus,
	prediction *models.MatchPrediction,
) *models.FixturePrediction {
	return &models.FixturePrediction{
		ID:          uuid.New(),
		League:      league,
		Fixture:     fixture,
		Status:      status,
		Prediction:  prediction,
		PredictedAt: time.Now().UTC(),
	}
}
