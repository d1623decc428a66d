package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cypherlabdev/match-predictor-service/internal/cache"
	"github.com/cypherlabdev/match-predictor-service/internal/config"
	httpHandler "github.com/cypherlabdev/match-predictor-service/internal/handler/http"
	"github.com/cypherlabdev/match-predictor-service/internal/messaging"
	"github.com/cypherlabdev/match-predictor-service/internal/service"
	"github.com/cypherlabdev/match-predictor-service/pkg/predictor"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Setup logger
	logger := setupLogger(cfg.Logging)
	logger.Info().Msg("starting match-predictor-service")

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create prediction cache
	predictionCache, err := setupCache(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to set up prediction cache")
	}
	defer predictionCache.Close()

	// Load team ratings
	catalog, err := cfg.Ratings.BuildCatalog()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load team ratings")
	}
	logger.Info().Strs("leagues", catalog.Leagues()).Msg("team ratings loaded")

	// Create predictor
	params := cfg.Prediction.ToPredictionParams()
	engine := predictor.NewPredictor(params, logger)
	logger.Info().Int("max_goals", engine.MaxGoals()).Msg("predictor initialized")

	// Create prediction service layer
	predictionService := service.NewPredictionService(engine, catalog, predictionCache, params, logger)
	logger.Info().Msg("prediction service initialized")

	if cfg.Kafka.Enabled {
		producer := messaging.NewKafkaProducer(
			messaging.KafkaProducerConfig{
				Brokers: cfg.Kafka.Brokers,
				Topic:   cfg.Kafka.PredictionsTopic,
			},
			logger,
		)
		defer producer.Close()

		consumer := messaging.NewKafkaConsumer(
			messaging.KafkaConsumerConfig{
				Brokers: cfg.Kafka.Brokers,
				Topic:   cfg.Kafka.FixturesTopic,
				GroupID: cfg.Kafka.GroupID,
			},
			predictionService,
			producer,
			logger,
		)

		// Start Kafka consumer in goroutine
		go func() {
			if err := consumer.Start(ctx); err != nil {
				logger.Error().Err(err).Msg("Kafka consumer failed")
			}
		}()
	} else {
		logger.Info().Msg("Kafka disabled, serving HTTP only")
	}

	// Initialize HTTP handler
	predictionHandler := httpHandler.NewPredictionHandler(predictionService, logger)
	predictionHandler.SetRateLimit(cfg.Server.RateLimit, cfg.Server.RateBurst)
	logger.Info().Msg("HTTP handler initialized")

	// Setup HTTP server routes
	mux := http.NewServeMux()

	// Health and monitoring endpoints
	mux.HandleFunc("/health", healthHandler)
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		readyHandler(w, r, predictionService)
	})
	mux.Handle("/metrics", promhttp.Handler())

	// Register API routes
	predictionHandler.RegisterRoutes(mux)
	logger.Info().Msg("API routes registered")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start HTTP server in goroutine
	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info().Msg("shutting down gracefully...")

	// Cancel context to stop consumer
	cancel()

	// Shutdown HTTP server
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	logger.Info().Msg("shutdown complete")
}

// setupCache creates the configured cache backend
func setupCache(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (service.Cache, error) {
	if cfg.Cache.Backend == "memory" {
		logger.Info().Dur("ttl", cfg.Cache.TTL).Msg("using in-memory prediction cache")
		return cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval, logger), nil
	}

	redisCache := cache.NewRedisCache(
		cache.RedisCacheConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Cache.TTL,
		},
		logger,
	)

	// Test Redis connection
	if err := redisCache.Ping(ctx); err != nil {
		redisCache.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Redis.Addr, err)
	}
	logger.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")

	return redisCache, nil
}

// setupLogger configures the logger based on config
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Set format
	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	return log.Logger.With().Str("service", "match-predictor").Logger()
}

// healthHandler returns 200 if service is running
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// readyHandler returns 200 if the prediction cache is reachable
func readyHandler(w http.ResponseWriter, r *http.Request, svc *service.PredictionService) {
	if err := svc.Ping(r.Context()); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("cache unavailable"))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("READY"))
}
