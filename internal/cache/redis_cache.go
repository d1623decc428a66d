package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/match-predictor-service/internal/models"
)

// RedisCache caches fixture predictions in Redis
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// RedisCacheConfig holds Redis cache configuration
type RedisCacheConfig struct {
	Addr     string // e.g., "localhost:6379"
	Password string
	DB       int
	TTL      time.Duration // e.g., 15 * time.Minute
}

// NewRedisCache creates a new Redis cache
func NewRedisCache(config RedisCacheConfig, logger zerolog.Logger) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	return &RedisCache{
		client: client,
		ttl:    config.TTL,
		logger: logger.With().Str("component", "redis_cache").Logger(),
	}
}

// predictionKey builds the Redis key: prediction:{league}:{home}:{away}.
// Components are query-escaped, so they never contain ':' or glob metacharacters.
func predictionKey(league, homeTeam, awayTeam string) string {
	return leaguePrefix(league) + url.QueryEscape(homeTeam) + ":" + url.QueryEscape(awayTeam)
}

// leaguePrefix is the key prefix shared by every prediction of a league
func leaguePrefix(league string) string {
	return "prediction:" + url.QueryEscape(league) + ":"
}

func keyFor(p *models.FixturePrediction) string {
	return predictionKey(p.League, p.Fixture.HomeTeam, p.Fixture.AwayTeam)
}

// Set caches a fixture prediction
func (c *RedisCache) Set(ctx context.Context, prediction *models.FixturePrediction) error {
	key := keyFor(prediction)

	data, err := json.Marshal(prediction)
	if err != nil {
		return fmt.Errorf("failed to marshal prediction: %w", err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in Redis: %w", err)
	}

	c.logger.Debug().
		Str("key", key).
		Dur("ttl", c.ttl).
		Msg("cached prediction")

	return nil
}

// Get retrieves a cached fixture prediction
func (c *RedisCache) Get(ctx context.Context, league, homeTeam, awayTeam string) (*models.FixturePrediction, error) {
	key := predictionKey(league, homeTeam, awayTeam)

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("prediction %s: %w", key, models.ErrNotFound)
	} else if err != nil {
		return nil, fmt.Errorf("failed to get from Redis: %w", err)
	}

	var prediction models.FixturePrediction
	if err := json.Unmarshal(data, &prediction); err != nil {
		return nil, fmt.Errorf("failed to unmarshal prediction: %w", err)
	}

	return &prediction, nil
}

// SetBatch caches multiple fixture predictions
func (c *RedisCache) SetBatch(ctx context.Context, predictions []*models.FixturePrediction) error {
	if len(predictions) == 0 {
		return nil
	}

	// Use pipeline for batch operations
	pipe := c.client.Pipeline()

	for _, prediction := range predictions {
		data, err := json.Marshal(prediction)
		if err != nil {
			c.logger.Error().Err(err).Msg("failed to marshal prediction")
			continue
		}
		pipe.Set(ctx, keyFor(prediction), data, c.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to execute pipeline: %w", err)
	}

	c.logger.Info().
		Int("count", len(predictions)).
		Msg("cached batch of predictions")

	return nil
}

// GetByLeague retrieves all cached predictions for a league
func (c *RedisCache) GetByLeague(ctx context.Context, league string) ([]*models.FixturePrediction, error) {
	pattern := leaguePrefix(league) + "*"

	// Scan for keys matching pattern
	var cursor uint64
	var keys []string

	for {
		var scanKeys []string
		var err error
		scanKeys, cursor, err = c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan keys: %w", err)
		}

		keys = append(keys, scanKeys...)

		if cursor == 0 {
			break
		}
	}

	predictions := make([]*models.FixturePrediction, 0, len(keys))
	for _, key := range keys {
		data, err := c.client.Get(ctx, key).Bytes()
		if err != nil {
			c.logger.Warn().Err(err).Str("key", key).Msg("failed to get key")
			continue
		}

		var prediction models.FixturePrediction
		if err := json.Unmarshal(data, &prediction); err != nil {
			c.logger.Warn().Err(err).Str("key", key).Msg("failed to unmarshal prediction")
			continue
		}

		predictions = append(predictions, &prediction)
	}

	return predictions, nil
}

// Ping checks Redis connection
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}
