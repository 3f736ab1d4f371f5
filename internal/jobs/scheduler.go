package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/quanganh208/hotel-management-front-end-sub002/internal/queue"
)

type Enqueuer interface {
	Enqueue(ctx context.Context, task queue.Task) (string, error)
}

type Scheduler struct {
	cron           *cron.Cron
	queue          Enqueuer
	sessionCleanup string
	log            zerolog.Logger
}

// NewScheduler builds a seconds-resolution scheduler. An empty
// sessionCleanup spec disables the cleanup job.
func NewScheduler(queue Enqueuer, sessionCleanup string, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:           cron.New(cron.WithSeconds()),
		queue:          queue,
		sessionCleanup: sessionCleanup,
		log:            log,
	}
}

func (s *Scheduler) Start() error {
	if s.queue == nil {
		return nil
	}

	if s.sessionCleanup != "" {
		if _, err := s.cron.AddFunc(s.sessionCleanup, s.enqueueSessionCleanup); err != nil {
			return err
		}
	}

	s.cron.Start()
	return nil
}

// Stop halts the scheduler and waits up to five seconds for running jobs.
func (s *Scheduler) Stop() {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-time.After(5 * time.Second):
		s.log.Warn().Msg("scheduler stop timed out")
	}
}

func (s *Scheduler) enqueueSessionCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := s.queue.Enqueue(ctx, queue.Task{Type: queue.TaskSessionCleanup}); err != nil {
		s.log.Error().Err(err).Msg("enqueue session cleanup failed")
		return
	}
	s.log.Debug().Msg("session cleanup enqueued")
}
