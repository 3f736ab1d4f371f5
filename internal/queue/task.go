package queue

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type TaskType string

const (
	TaskSessionCleanup TaskType = "session_cleanup"
	TaskImageDelete    TaskType = "image_delete"
)

// Task is one unit of background work carried on the stream.
type Task struct {
	ID         string
	Type       TaskType
	ObjectKey  string
	EnqueuedAt time.Time
}

func (t Task) values() map[string]any {
	values := map[string]any{
		"id":         t.ID,
		"type":       string(t.Type),
		"enqueuedAt": t.EnqueuedAt.UTC().Format(time.RFC3339Nano),
	}
	if t.ObjectKey != "" {
		values["objectKey"] = t.ObjectKey
	}
	return values
}

// TaskFromMessage decodes a stream entry written by Producer.
func TaskFromMessage(msg redis.XMessage) (Task, error) {
	str := func(key string) string {
		if v, ok := msg.Values[key].(string); ok {
			return v
		}
		return ""
	}

	task := Task{
		ID:        str("id"),
		Type:      TaskType(str("type")),
		ObjectKey: str("objectKey"),
	}
	if task.Type == "" {
		return Task{}, fmt.Errorf("message %s: missing task type", msg.ID)
	}
	if task.ID == "" {
		task.ID = msg.ID
	}
	if raw := str("enqueuedAt"); raw != "" {
		at, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return Task{}, fmt.Errorf("message %s: enqueuedAt: %w", msg.ID, err)
		}
		task.EnqueuedAt = at
	}
	return task, nil
}
