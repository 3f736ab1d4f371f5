package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quanganh208/hotel-management-front-end-sub002/internal/ids"
)

type Producer struct {
	client redis.Cmdable
	stream string
	now    func() time.Time
}

func NewProducer(client redis.Cmdable, stream string) *Producer {
	return &Producer{
		client: client,
		stream: stream,
		now:    time.Now,
	}
}

// Enqueue appends task to the stream and returns the stream entry id.
func (p *Producer) Enqueue(ctx context.Context, task Task) (string, error) {
	if task.ID == "" {
		task.ID = ids.New()
	}
	if task.EnqueuedAt.IsZero() {
		task.EnqueuedAt = p.now()
	}

	id, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: task.values(),
	}).Result()
	if err != nil {
		return "", fmt.Errorf("enqueue %s: %w", task.Type, err)
	}
	return id, nil
}
