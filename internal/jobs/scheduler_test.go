package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quanganh208/hotel-management-front-end-sub002/internal/queue"
)

type fakeQueue struct {
	mu    sync.Mutex
	tasks []queue.Task
	err   error
}

func (q *fakeQueue) Enqueue(_ context.Context, task queue.Task) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, task)
	return "1-0", q.err
}

func (q *fakeQueue) count() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

func TestSchedulerEnqueuesCleanup(t *testing.T) {
	q := &fakeQueue{}
	s := NewScheduler(q, "* * * * * *", zerolog.Nop())
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool { return q.count() > 0 }, 3*time.Second, 50*time.Millisecond)
	q.mu.Lock()
	assert.Equal(t, queue.TaskSessionCleanup, q.tasks[0].Type)
	q.mu.Unlock()
}

func TestSchedulerRejectsBadSpec(t *testing.T) {
	s := NewScheduler(&fakeQueue{}, "every now and then", zerolog.Nop())
	assert.Error(t, s.Start())
}

func TestSchedulerWithoutQueueIsInert(t *testing.T) {
	s := NewScheduler(nil, "not even parsed", zerolog.Nop())
	assert.NoError(t, s.Start())
	s.Stop()
}

func TestEnqueueFailureIsLogged(t *testing.T) {
	q := &fakeQueue{err: errors.New("redis down")}
	s := NewScheduler(q, "", zerolog.Nop())

	assert.NotPanics(t, s.enqueueSessionCleanup)
	assert.Equal(t, 1, q.count())
}
