package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/quanganh208/hotel-management-front-end-sub002/internal/models"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/session"
)

const sessionKeyPrefix = "session:"

// SessionCache is a read-through cache in front of the session repository.
// Redis errors degrade to a direct lookup.
type SessionCache struct {
	client redis.Cmdable
	next   session.Lookup
	ttl    time.Duration
	log    zerolog.Logger
	now    func() time.Time
}

func NewSessionCache(client redis.Cmdable, next session.Lookup, ttl time.Duration, log zerolog.Logger) *SessionCache {
	return &SessionCache{
		client: client,
		next:   next,
		ttl:    ttl,
		log:    log,
		now:    time.Now,
	}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func (c *SessionCache) GetByID(ctx context.Context, id string) (models.Session, error) {
	if c.client == nil || c.ttl <= 0 {
		return c.next.GetByID(ctx, id)
	}

	raw, err := c.client.Get(ctx, sessionKey(id)).Bytes()
	switch {
	case err == nil:
		var rec models.Session
		if jsonErr := json.Unmarshal(raw, &rec); jsonErr == nil {
			return rec, nil
		}
		c.log.Warn().Str("session_id", id).Msg("discarding corrupt cached session")
	case !errors.Is(err, redis.Nil):
		c.log.Warn().Err(err).Msg("session cache read failed")
	}

	rec, err := c.next.GetByID(ctx, id)
	if err != nil {
		return models.Session{}, err
	}
	c.store(ctx, rec)
	return rec, nil
}

func (c *SessionCache) store(ctx context.Context, rec models.Session) {
	ttl := c.ttl
	if remaining := rec.ExpiresAt.Sub(c.now()); remaining < ttl {
		ttl = remaining
	}
	if ttl <= 0 {
		return
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, sessionKey(rec.ID), payload, ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("session cache write failed")
	}
}

// Evict drops cached copies of the given sessions.
func (c *SessionCache) Evict(ctx context.Context, ids ...string) error {
	if c.client == nil || len(ids) == 0 {
		return nil
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, sessionKey(id))
	}
	return c.client.Del(ctx, keys...).Err()
}
