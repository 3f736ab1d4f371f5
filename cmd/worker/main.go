package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/quanganh208/hotel-management-front-end-sub002/internal/cache"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/config"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/database"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/log"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/metrics"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/queue"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/repository"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/storage"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/tasks"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment).With().Str("component", "worker").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPostgresPool(ctx, cfg.Postgres, "hotelhub-worker")
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect postgres")
	}

	client, err := cache.NewRedisClient(ctx, cfg.Redis, "hotelhub-worker")
	if err != nil {
		logger.Fatal().Err(err).Msg("redis connection failed")
	}

	objectStore, err := storage.NewObjectStore(cfg.Storage)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init object store")
	}

	processor := tasks.NewProcessor(
		repository.NewSessionRepository(dbPool),
		objectStore,
		metrics.New(nil),
		logger,
	)
	consumer := queue.NewConsumer(
		client,
		cfg.Queue.Stream,
		cfg.Queue.Group,
		cfg.Queue.Consumer,
		cfg.Queue.ClaimInterval,
		logger,
		processor,
	)

	done := make(chan error, 1)
	go func() {
		done <- consumer.Start(ctx)
	}()

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutdown signal received")
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("consumer stopped unexpectedly")
		}
		stop()
	}

	// Give an in-flight task a moment to finish its ack.
	select {
	case <-done:
	case <-time.After(5 * time.Second):
	}

	dbPool.Close()
	if err := client.Close(); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
	}
	logger.Info().Msg("worker exited")
}
