package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/coachflow/internal/entity"
)

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedis(client, time.Minute, zerolog.Nop()), mr
}

func TestRedisKeyLayout(t *testing.T) {
	assert.Equal(t, "coachflow:records:{leads:u1}", redisKey("u1", entity.KindLeads))
	assert.Equal(t, "coachflow:records:{leads:u1}:version", versionKey("u1", entity.KindLeads))
}

func TestRedisGetAfterSet(t *testing.T) {
	c, mr := newTestRedis(t)
	ctx := context.Background()

	_, ok := c.Get(ctx, "u1", entity.KindLeads)
	assert.False(t, ok)

	fill(t, c, "u1", entity.KindLeads, `[1]`)
	v, ok := c.Get(ctx, "u1", entity.KindLeads)
	assert.True(t, ok)
	assert.Equal(t, []byte(`[1]`), v)
	assert.Greater(t, mr.TTL(redisKey("u1", entity.KindLeads)), time.Duration(0))
}

func TestRedisFillFromOtherReplicaBeforeInvalidateIsDropped(t *testing.T) {
	c, mr := newTestRedis(t)
	other := NewRedis(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute, zerolog.Nop())
	ctx := context.Background()

	v, ok := c.Version(ctx, "u1", entity.KindLeads)
	require.True(t, ok)

	other.Invalidate(ctx, "u1", entity.KindLeads)

	assert.False(t, c.SetIfVersion(ctx, "u1", entity.KindLeads, v, []byte(`["old"]`)))
	_, hit := c.Get(ctx, "u1", entity.KindLeads)
	assert.False(t, hit)

	fill(t, c, "u1", entity.KindLeads, `["new"]`)
	got, hit := other.Get(ctx, "u1", entity.KindLeads)
	assert.True(t, hit)
	assert.Equal(t, []byte(`["new"]`), got)
}

func TestRedisVersionUnavailableSkipsCaching(t *testing.T) {
	c, mr := newTestRedis(t)
	mr.Close()

	_, ok := c.Version(context.Background(), "u1", entity.KindLeads)
	assert.False(t, ok)
}
