package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.uber.org/multierr"

	"github.com/quanganh208/hotel-management-front-end-sub002/internal/apiclient"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/cache"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/captcha"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/config"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/database"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/handlers"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/jobs"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/log"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/metrics"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/queue"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/repository"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/server"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/service"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/session"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment)

	ctx := context.Background()

	dbPool, err := database.NewPostgresPool(ctx, cfg.Postgres, "hotelhub-web")
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect postgres")
	}

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis, "hotelhub-web")
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect redis")
	}

	objectStore, err := storage.NewObjectStore(cfg.Storage)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init object store")
	}
	if err := objectStore.EnsureBucket(ctx); err != nil {
		logger.Warn().Err(err).Msg("ensure bucket failed")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	sessions := repository.NewSessionRepository(dbPool)
	var sessionTTL time.Duration
	if cfg.Redis.SessionCache {
		sessionTTL = cfg.Redis.SessionTTL
	}
	sessionCache := cache.NewSessionCache(redisClient, sessions, sessionTTL, logger)
	decoder := session.NewDecoder(cfg.Security.SessionSecret, cfg.Security.CookieName, sessionCache, logger)

	api := apiclient.New(cfg.Backend, logger, m)
	producer := queue.NewProducer(redisClient, cfg.Queue.Stream)

	handlerSet := handlers.NewHandlerSet(handlers.Deps{
		Log:          logger,
		Config:       cfg,
		API:          api,
		Auth:         service.NewAuthService(api, sessions, sessionCache, cfg.Security, logger),
		Images:       objectStore,
		Tasks:        producer,
		Captcha:      captcha.NewVerifier(cfg.Captcha),
		LoginLimiter: cache.NewRateLimiter(redisClient, "login", cfg.RateLimit.LoginAttempts, cfg.RateLimit.LoginWindow),
		DB:           dbPool,
		Cache:        redisClient,
	})
	httpServer := server.NewHTTPServer(cfg, logger, handlerSet, server.Options{
		Tokens:   decoder,
		Metrics:  m,
		Gatherer: registry,
	})

	scheduler := jobs.NewScheduler(producer, cfg.Jobs.SessionCleanup, logger)
	if err := scheduler.Start(); err != nil {
		logger.Error().Err(err).Msg("scheduler start failed")
	}

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	waitForShutdown(logger, httpServer, scheduler, dbPool, redisClient)
}

func waitForShutdown(logger zerolog.Logger, srv *server.HTTPServer, scheduler *jobs.Scheduler, db *pgxpool.Pool, redisClient *redis.Client) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errs error
	if err := srv.Shutdown(shutdownCtx); err != nil {
		errs = multierr.Append(errs, err)
	}

	scheduler.Stop()

	db.Close()
	errs = multierr.Append(errs, redisClient.Close())

	for _, err := range multierr.Errors(errs) {
		logger.Error().Err(err).Msg("shutdown error")
	}
	logger.Info().Msg("server exited")
}
