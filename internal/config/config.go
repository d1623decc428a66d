package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cypherlabdev/match-predictor-service/internal/models"
	"github.com/cypherlabdev/match-predictor-service/internal/ratings"
)

// Config holds all configuration for match-predictor-service
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Kafka      KafkaConfig      `mapstructure:"kafka"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Prediction PredictionConfig `mapstructure:"prediction"`
	Ratings    RatingsConfig    `mapstructure:"ratings"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         int           `mapstructure:"port" validate:"min=1,max=65535"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	RateLimit    float64       `mapstructure:"rate_limit" validate:"gte=0"` // API requests per second, 0 = unlimited
	RateBurst    int           `mapstructure:"rate_burst" validate:"gte=0"`
}

// KafkaConfig holds Kafka configuration
type KafkaConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	Brokers          []string `mapstructure:"brokers" validate:"required_if=Enabled true"`
	FixturesTopic    string   `mapstructure:"fixtures_topic"`    // Topic to consume fixture batches from
	PredictionsTopic string   `mapstructure:"predictions_topic"` // Topic to publish predictions to
	GroupID          string   `mapstructure:"group_id"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"min=0"`
}

// CacheConfig selects the prediction cache backend
type CacheConfig struct {
	Backend         string        `mapstructure:"backend" validate:"oneof=redis memory"`
	TTL             time.Duration `mapstructure:"ttl" validate:"gt=0"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"` // memory backend only
}

// PredictionConfig holds prediction engine parameters
type PredictionConfig struct {
	MaxGoals        int              `mapstructure:"max_goals" validate:"min=3,max=10"`
	Renormalize     bool             `mapstructure:"renormalize"`
	Workers         int              `mapstructure:"workers" validate:"min=1"`
	AvgHomeGoals    float64          `mapstructure:"avg_home_goals" validate:"gt=0"`
	AvgAwayGoals    float64          `mapstructure:"avg_away_goals" validate:"gt=0"`
	LeagueBaselines []LeagueBaseline `mapstructure:"league_baselines" validate:"dive"`
}

// LeagueBaseline overrides the default goal averages for one league
type LeagueBaseline struct {
	League       string  `mapstructure:"league" validate:"required"`
	AvgHomeGoals float64 `mapstructure:"avg_home_goals" validate:"gt=0"`
	AvgAwayGoals float64 `mapstructure:"avg_away_goals" validate:"gt=0"`
}

// RatingsConfig holds the team rating source.
// Teams are a list because viper lower-cases map keys.
type RatingsConfig struct {
	UseSampleCatalog bool          `mapstructure:"use_sample_catalog"`
	Teams            []RatingEntry `mapstructure:"teams" validate:"dive"`
}

// RatingEntry is one team's rating
type RatingEntry struct {
	League  string  `mapstructure:"league" validate:"required"`
	Team    string  `mapstructure:"team" validate:"required"`
	Attack  float64 `mapstructure:"attack" validate:"gte=0"`
	Defense float64 `mapstructure:"defense" validate:"gt=0"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"loglevel"` // debug, info, warn, error
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("server.port", 8082)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.rate_limit", 0)
	v.SetDefault("server.rate_burst", 20)

	v.SetDefault("kafka.enabled", true)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.fixtures_topic", "fixtures")
	v.SetDefault("kafka.predictions_topic", "match_predictions")
	v.SetDefault("kafka.group_id", "match-predictor")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("cache.backend", "redis")
	v.SetDefault("cache.ttl", 15*time.Minute)
	v.SetDefault("cache.cleanup_interval", 30*time.Minute)

	v.SetDefault("prediction.max_goals", 6)
	v.SetDefault("prediction.renormalize", true)
	v.SetDefault("prediction.workers", 4)
	v.SetDefault("prediction.avg_home_goals", 1.6)
	v.SetDefault("prediction.avg_away_goals", 1.2)

	v.SetDefault("ratings.use_sample_catalog", true)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Read config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Override with environment variables
	v.SetEnvPrefix("MATCH_PREDICTOR")
	v.AutomaticEnv()
	// Replace . with _ for environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Unmarshal to struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// ToPredictionParams converts config to prediction parameters
func (c *PredictionConfig) ToPredictionParams() models.PredictionParams {
	baselines := make(map[string]models.LeagueBaseline, len(c.LeagueBaselines))
	for _, b := range c.LeagueBaselines {
		baselines[b.League] = models.LeagueBaseline{
			AvgHomeGoals: b.AvgHomeGoals,
			AvgAwayGoals: b.AvgAwayGoals,
		}
	}

	return models.PredictionParams{
		MaxGoals:    c.MaxGoals,
		Renormalize: c.Renormalize,
		Workers:     c.Workers,
		DefaultBaseline: models.LeagueBaseline{
			AvgHomeGoals: c.AvgHomeGoals,
			AvgAwayGoals: c.AvgAwayGoals,
		},
		LeagueBaselines: baselines,
	}
}

// BuildCatalog creates the rating catalog: the sample tables when enabled,
// with configured teams applied on top
func (c *RatingsConfig) BuildCatalog() (*ratings.Catalog, error) {
	catalog := ratings.NewCatalog()
	if c.UseSampleCatalog {
		catalog = ratings.SampleCatalog()
	}

	entries := make([]ratings.Entry, len(c.Teams))
	for i, t := range c.Teams {
		entries[i] = ratings.Entry{
			League:  t.League,
			Team:    t.Team,
			Attack:  t.Attack,
			Defense: t.Defense,
		}
	}

	if err := catalog.Load(entries); err != nil {
		return nil, err
	}
	return catalog, nil
}
