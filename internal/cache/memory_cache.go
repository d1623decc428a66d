package cache

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/match-predictor-service/internal/models"
)

// MemoryCache caches fixture predictions in process memory.
// Used when no Redis is available, e.g. local runs.
type MemoryCache struct {
	cache  *gocache.Cache
	ttl    time.Duration
	logger zerolog.Logger
}

// NewMemoryCache creates a new in-process cache
func NewMemoryCache(ttl, cleanupInterval time.Duration, logger zerolog.Logger) *MemoryCache {
	return &MemoryCache{
		cache:  gocache.New(ttl, cleanupInterval),
		ttl:    ttl,
		logger: logger.With().Str("component", "memory_cache").Logger(),
	}
}

// Set caches a fixture prediction
func (c *MemoryCache) Set(ctx context.Context, prediction *models.FixturePrediction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.cache.Set(keyFor(prediction), prediction, c.ttl)
	return nil
}

// Get retrieves a cached fixture prediction
func (c *MemoryCache) Get(ctx context.Context, league, homeTeam, awayTeam string) (*models.FixturePrediction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := predictionKey(league, homeTeam, awayTeam)
	item, found := c.cache.Get(key)
	if !found {
		return nil, fmt.Errorf("prediction %s: %w", key, models.ErrNotFound)
	}

	prediction, ok := item.(*models.FixturePrediction)
	if !ok {
		return nil, fmt.Errorf("unexpected cache entry type %T for %s", item, key)
	}
	return prediction, nil
}

// SetBatch caches multiple fixture predictions
func (c *MemoryCache) SetBatch(ctx context.Context, predictions []*models.FixturePrediction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, prediction := range predictions {
		c.cache.Set(keyFor(prediction), prediction, c.ttl)
	}

	c.logger.Debug().
		Int("count", len(predictions)).
		Msg("cached batch of predictions")

	return nil
}

// GetByLeague retrieves all unexpired predictions for a league, ordered by key
func (c *MemoryCache) GetByLeague(ctx context.Context, league string) ([]*models.FixturePrediction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := leaguePrefix(league)
	items := c.cache.Items()

	keys := make([]string, 0, len(items))
	for key := range items {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	predictions := make([]*models.FixturePrediction, 0, len(keys))
	for _, key := range keys {
		if prediction, ok := items[key].Object.(*models.FixturePrediction); ok {
			predictions = append(predictions, prediction)
		}
	}
	return predictions, nil
}

// Ping always succeeds for the in-process cache
func (c *MemoryCache) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close drops every cached entry
func (c *MemoryCache) Close() error {
	c.cache.Flush()
	return nil
}
