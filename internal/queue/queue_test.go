package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testStream = "hotelhub:tasks"
	testGroup  = "workers"
)

type recordingHandler struct {
	mu    sync.Mutex
	tasks []Task
	err   error
}

func (h *recordingHandler) Handle(_ context.Context, task Task) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.tasks = append(h.tasks, task)
	return h.err
}

func newClient(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func newTestConsumer(client redis.Cmdable, h Handler) *Consumer {
	c := NewConsumer(client, testStream, testGroup, "worker-1", time.Minute, zerolog.Nop(), h)
	c.block = 10 * time.Millisecond
	return c
}

func TestEnqueueWritesTask(t *testing.T) {
	client := newClient(t)
	p := NewProducer(client, testStream)
	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	p.now = func() time.Time { return at }

	id, err := p.Enqueue(context.Background(), Task{Type: TaskImageDelete, ObjectKey: "hotels/a.png"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	msgs, err := client.XRange(context.Background(), testStream, "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	task, err := TaskFromMessage(msgs[0])
	require.NoError(t, err)
	assert.Equal(t, TaskImageDelete, task.Type)
	assert.Equal(t, "hotels/a.png", task.ObjectKey)
	assert.NotEmpty(t, task.ID)
	assert.True(t, at.Equal(task.EnqueuedAt))
}

func TestTaskFromMessage(t *testing.T) {
	task, err := TaskFromMessage(redis.XMessage{ID: "1-0", Values: map[string]any{"type": "session_cleanup"}})
	require.NoError(t, err)
	assert.Equal(t, "1-0", task.ID)
	assert.Equal(t, TaskSessionCleanup, task.Type)
	assert.True(t, task.EnqueuedAt.IsZero())

	_, err = TaskFromMessage(redis.XMessage{ID: "2-0", Values: map[string]any{"id": "x"}})
	assert.Error(t, err)

	_, err = TaskFromMessage(redis.XMessage{ID: "3-0", Values: map[string]any{"type": "image_delete", "enqueuedAt": "yesterday"}})
	assert.Error(t, err)
}

func TestConsumerAcksHandledTasks(t *testing.T) {
	client := newClient(t)
	h := &recordingHandler{}
	c := newTestConsumer(client, h)
	ctx := context.Background()

	require.NoError(t, c.EnsureGroup(ctx))
	require.NoError(t, c.EnsureGroup(ctx))

	_, err := NewProducer(client, testStream).Enqueue(ctx, Task{Type: TaskSessionCleanup})
	require.NoError(t, err)

	require.NoError(t, c.read(ctx))
	require.Len(t, h.tasks, 1)
	assert.Equal(t, TaskSessionCleanup, h.tasks[0].Type)

	pending, err := client.XPending(ctx, testStream, testGroup).Result()
	require.NoError(t, err)
	assert.Zero(t, pending.Count)
}

func TestConsumerLeavesFailedTasksPending(t *testing.T) {
	client := newClient(t)
	h := &recordingHandler{err: errors.New("bucket unavailable")}
	c := newTestConsumer(client, h)
	ctx := context.Background()

	require.NoError(t, c.EnsureGroup(ctx))
	_, err := NewProducer(client, testStream).Enqueue(ctx, Task{Type: TaskImageDelete, ObjectKey: "k"})
	require.NoError(t, err)

	require.NoError(t, c.read(ctx))
	pending, err := client.XPending(ctx, testStream, testGroup).Result()
	require.NoError(t, err)
	assert.EqualValues(t, 1, pending.Count)
}

func TestConsumerDropsMalformedMessages(t *testing.T) {
	client := newClient(t)
	h := &recordingHandler{}
	c := newTestConsumer(client, h)
	ctx := context.Background()

	require.NoError(t, c.EnsureGroup(ctx))
	require.NoError(t, client.XAdd(ctx, &redis.XAddArgs{Stream: testStream, Values: map[string]any{"junk": "1"}}).Err())

	require.NoError(t, c.read(ctx))
	assert.Empty(t, h.tasks)

	pending, err := client.XPending(ctx, testStream, testGroup).Result()
	require.NoError(t, err)
	assert.Zero(t, pending.Count)
}

func TestConsumerStartStopsOnCancel(t *testing.T) {
	client := newClient(t)
	c := newTestConsumer(client, &recordingHandler{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop")
	}
}
