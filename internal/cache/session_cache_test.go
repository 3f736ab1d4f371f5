package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quanganh208/hotel-management-front-end-sub002/internal/models"
)

type countingLookup struct {
	records map[string]models.Session
	calls   int
}

func (l *countingLookup) GetByID(_ context.Context, id string) (models.Session, error) {
	l.calls++
	rec, ok := l.records[id]
	if !ok {
		return models.Session{}, errors.New("session not found")
	}
	return rec, nil
}

func newMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func sessionRecord(expires time.Time) models.Session {
	return models.Session{ID: "sess-1", UserID: "user-1", Role: models.UserRoleStaff, ExpiresAt: expires}
}

func TestSessionCacheReadThrough(t *testing.T) {
	mr, client := newMiniredis(t)
	rec := sessionRecord(time.Now().Add(time.Hour))
	next := &countingLookup{records: map[string]models.Session{rec.ID: rec}}
	c := NewSessionCache(client, next, 5*time.Minute, zerolog.Nop())

	got, err := c.GetByID(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)
	assert.True(t, mr.Exists("session:sess-1"))

	got, err = c.GetByID(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, 1, next.calls)
	assert.Equal(t, 5*time.Minute, mr.TTL("session:sess-1"))
}

func TestSessionCacheTTLCappedAtExpiry(t *testing.T) {
	mr, client := newMiniredis(t)
	now := time.Now()
	rec := sessionRecord(now.Add(30 * time.Second))
	c := NewSessionCache(client, &countingLookup{records: map[string]models.Session{rec.ID: rec}}, 5*time.Minute, zerolog.Nop())
	c.now = func() time.Time { return now }

	_, err := c.GetByID(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, mr.TTL("session:sess-1"))
}

func TestSessionCacheSkipsExpiredRecords(t *testing.T) {
	mr, client := newMiniredis(t)
	rec := sessionRecord(time.Now().Add(-time.Second))
	c := NewSessionCache(client, &countingLookup{records: map[string]models.Session{rec.ID: rec}}, time.Minute, zerolog.Nop())

	_, err := c.GetByID(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.False(t, mr.Exists("session:sess-1"))
}

func TestSessionCacheCorruptEntryFallsThrough(t *testing.T) {
	mr, client := newMiniredis(t)
	require.NoError(t, mr.Set("session:sess-1", "{not json"))
	rec := sessionRecord(time.Now().Add(time.Hour))
	next := &countingLookup{records: map[string]models.Session{rec.ID: rec}}
	c := NewSessionCache(client, next, time.Minute, zerolog.Nop())

	got, err := c.GetByID(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", got.ID)
	assert.Equal(t, 1, next.calls)
}

func TestSessionCacheRedisDownFallsThrough(t *testing.T) {
	mr, client := newMiniredis(t)
	mr.Close()
	rec := sessionRecord(time.Now().Add(time.Hour))
	next := &countingLookup{records: map[string]models.Session{rec.ID: rec}}
	c := NewSessionCache(client, next, time.Minute, zerolog.Nop())

	got, err := c.GetByID(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)
}

func TestSessionCacheDisabled(t *testing.T) {
	rec := sessionRecord(time.Now().Add(time.Hour))
	next := &countingLookup{records: map[string]models.Session{rec.ID: rec}}
	c := NewSessionCache(nil, next, time.Minute, zerolog.Nop())

	_, err := c.GetByID(context.Background(), rec.ID)
	require.NoError(t, err)
	_, err = c.GetByID(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls)
	assert.NoError(t, c.Evict(context.Background(), rec.ID))

	_, err = c.GetByID(context.Background(), "missing")
	assert.Error(t, err)
}

func TestSessionCacheEvict(t *testing.T) {
	mr, client := newMiniredis(t)
	rec := sessionRecord(time.Now().Add(time.Hour))
	next := &countingLookup{records: map[string]models.Session{rec.ID: rec}}
	c := NewSessionCache(client, next, time.Minute, zerolog.Nop())

	_, err := c.GetByID(context.Background(), rec.ID)
	require.NoError(t, err)
	require.NoError(t, c.Evict(context.Background(), rec.ID, "other"))
	assert.False(t, mr.Exists("session:sess-1"))

	_, err = c.GetByID(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls)
}
