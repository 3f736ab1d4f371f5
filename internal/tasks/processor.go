package tasks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/quanganh208/hotel-management-front-end-sub002/internal/metrics"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/queue"
)

type SessionPurger interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

type ImageRemover interface {
	RemoveImage(ctx context.Context, key string) error
}

type Processor struct {
	sessions SessionPurger
	images   ImageRemover
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

func NewProcessor(sessions SessionPurger, images ImageRemover, m *metrics.Metrics, logger zerolog.Logger) *Processor {
	return &Processor{
		sessions: sessions,
		images:   images,
		metrics:  m,
		logger:   logger,
	}
}

func (p *Processor) Handle(ctx context.Context, task queue.Task) error {
	var err error
	switch task.Type {
	case queue.TaskSessionCleanup:
		err = p.handleSessionCleanup(ctx)
	case queue.TaskImageDelete:
		err = p.handleImageDelete(ctx, task)
	default:
		p.logger.Warn().Str("type", string(task.Type)).Msg("unknown task type")
		p.metrics.IncTask(string(task.Type), "skipped")
		return nil
	}

	if err != nil {
		p.metrics.IncTask(string(task.Type), "error")
		return err
	}
	p.metrics.IncTask(string(task.Type), "ok")
	return nil
}

func (p *Processor) handleSessionCleanup(ctx context.Context) error {
	if p.sessions == nil {
		return fmt.Errorf("session cleanup: no session store configured")
	}
	removed, err := p.sessions.DeleteExpired(ctx)
	if err != nil {
		return fmt.Errorf("session cleanup: %w", err)
	}
	p.logger.Info().Int64("removed", removed).Msg("expired sessions removed")
	return nil
}

func (p *Processor) handleImageDelete(ctx context.Context, task queue.Task) error {
	if task.ObjectKey == "" {
		p.logger.Warn().Str("task_id", task.ID).Msg("image delete task without object key")
		return nil
	}
	if p.images == nil {
		return fmt.Errorf("image delete: no object store configured")
	}
	if err := p.images.RemoveImage(ctx, task.ObjectKey); err != nil {
		return fmt.Errorf("image delete: %w", err)
	}
	p.logger.Info().Str("object_key", task.ObjectKey).Msg("orphaned image removed")
	return nil
}
