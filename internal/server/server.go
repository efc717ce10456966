// Package server composes the application's shared dependencies and owns
// their lifecycle: config, loggers, the database pool, Redis, the cache
// backend, the background job service and the HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/magnetco/enthusiastauto-sub003/internal/cache"
	"github.com/magnetco/enthusiastauto-sub003/internal/config"
	"github.com/magnetco/enthusiastauto-sub003/internal/database"
	"github.com/magnetco/enthusiastauto-sub003/internal/lib/job"
	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	loggerPkg "github.com/magnetco/enthusiastauto-sub003/internal/logger"
)

type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService
	DB            *database.Database
	Redis         *redis.Client
	Job           *job.JobService

	// Cache backs recommendation candidates, session lookups and rate-limit
	// counters.
	Cache cache.Backend

	httpServer *http.Server
	sweeper    *cache.Memory
}

// New connects to Postgres and Redis, builds the cache backend and starts the
// job workers. A Redis outage is logged but does not stop startup unless
// Redis is the configured cache backend.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
	})

	if loggerService != nil && loggerService.GetApplication() != nil {
		redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	redisErr := redisClient.Ping(ctx).Err()
	if redisErr != nil {
		logger.Error().Err(redisErr).Msg("Failed to connect to Redis, continuing without Redis")
	}

	s := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
		Redis:         redisClient,
	}

	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		if redisErr != nil {
			return nil, fmt.Errorf("redis cache backend unavailable: %w", redisErr)
		}
		s.Cache = cache.NewRedis(redisClient, cfg.Cache.KeyPrefix, cfg.Cache.DefaultTTL)
	default:
		memory := cache.NewMemory(cfg.Cache.DefaultTTL, cfg.Cache.SweepInterval, cache.WithLogger(logger))
		memory.Start(context.Background())
		s.Cache = memory
		s.sweeper = memory
	}

	logger.Info().Str("backend", cfg.Cache.Backend).Msg("cache ready")

	jobService := job.NewJobService(logger, cfg)
	if err := jobService.InitHandlers(cfg, logger); err != nil {
		return nil, err
	}
	if err := jobService.Start(); err != nil {
		return nil, err
	}
	s.Job = jobService

	return s, nil
}

func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests, then stops workers and closes the
// cache, Redis and the database pool.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	if s.Job != nil {
		s.Job.Stop()
	}

	if s.Cache != nil {
		if err := s.Cache.Close(); err != nil {
			s.Logger.Warn().Err(err).Msg("failed to close cache")
		}
		if s.sweeper != nil {
			s.sweeper.Wait()
		}
	}

	if err := s.Redis.Close(); err != nil {
		s.Logger.Warn().Err(err).Msg("failed to close redis client")
	}

	if err := s.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	return nil
}
