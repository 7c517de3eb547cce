// Package main is the entry point for the contractor-directory API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"contractor-directory/internal/app/service"
	"contractor-directory/internal/config"
	"contractor-directory/internal/distance"
	"contractor-directory/internal/domain"
	rediscache "contractor-directory/internal/infra/redis"
	"contractor-directory/internal/infra/wordpress"
	"contractor-directory/internal/job"
	"contractor-directory/internal/logger"
	"contractor-directory/internal/transport/httpserver"
	"contractor-directory/internal/validator"
	"contractor-directory/pkg/locker"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(
		logger.Config{
			Level:  cfg.Logger.Level,
			Format: cfg.Logger.Format,
			Output: cfg.Logger.Output,
		},
		logger.SentryConfig{
			Enabled:     cfg.Sentry.Enabled,
			DSN:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			SampleRate:  cfg.Sentry.SampleRate,
		},
	)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting contractor-directory",
		zap.String("env", cfg.App.Env),
		zap.Int("port", cfg.App.Port),
		zap.String("wordpress_base_url", cfg.WordPress.BaseURL),
	)

	// Create the WordPress contractor source
	source := wordpress.New(
		wordpress.ClientConfig{
			BaseURL: cfg.WordPress.BaseURL,
			Timeout: cfg.WordPress.Timeout,
			Retry: wordpress.RetryConfig{
				MaxAttempts: cfg.WordPress.Retry.MaxAttempts,
				WaitTime:    cfg.WordPress.Retry.WaitTime,
				MaxWaitTime: cfg.WordPress.Retry.MaxWaitTime,
			},
			CB: wordpress.CBConfig{
				MaxRequests:  cfg.WordPress.CB.MaxRequests,
				Interval:     cfg.WordPress.CB.Interval,
				Timeout:      cfg.WordPress.CB.Timeout,
				FailureRatio: cfg.WordPress.CB.FailureRatio,
			},
		},
		log.Logger,
	)

	// Distance annotation step (identity until a geocoding backend exists)
	annotator := distance.New(log.Logger)

	// Optional Redis-backed search cache
	var cache domain.Cache
	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("failed to connect to Redis", zap.Error(err))
		}
		defer func() { _ = redisClient.Close() }()

		cache = rediscache.NewCache(redisClient, log.Logger, cfg.Cache.KeyPrefix)
		log.Info("search cache enabled",
			zap.Duration("search_ttl", cfg.Cache.SearchTTL),
			zap.String("key_prefix", cfg.Cache.KeyPrefix),
		)
	} else {
		log.Info("search cache disabled, every search hits the CMS")
	}

	// Create the directory service
	directorySvc := service.NewDirectoryService(source, annotator, cache, cfg.Cache.SearchTTL, log.Logger)

	// Create validator
	v := validator.New()

	// Readiness: the CMS must be reachable, and Redis when caching is on.
	ready := func(c *fiber.Ctx) bool {
		if redisClient != nil {
			if err := redisClient.Ping(c.Context()).Err(); err != nil {
				return false
			}
		}

		return directorySvc.HealthCheck(c.Context()) == nil
	}

	// Create HTTP server
	server := httpserver.NewServer(
		httpserver.ServerConfig{
			Port:      cfg.App.Port,
			BodyLimit: 1024 * 1024, // 1MB
			Debug:     cfg.App.Debug,
		},
		directorySvc,
		v,
		ready,
		log.Logger,
	)

	// Start cache warm scheduler when caching is on
	var scheduler *job.WarmScheduler
	if cfg.Cache.Enabled {
		distLocker := locker.NewRedisLocker(redisClient, log.Logger)
		scheduler = job.NewWarmScheduler(
			directorySvc,
			job.WarmConfig{
				Interval:  cfg.Warm.Interval,
				Timeout:   cfg.Warm.Timeout,
				OnStartup: cfg.Warm.OnStartup,
			},
			log.Logger,
			distLocker,
		)
		scheduler.Start(cfg.Warm.OnStartup)
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutdown signal received")

		if scheduler != nil {
			scheduler.Stop()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.App.ShutdownWithContext(ctx); err != nil {
			log.Error("server shutdown error", zap.Error(err))
		}
	}()

	// Start server
	if err := server.Start(cfg.App.Port); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
