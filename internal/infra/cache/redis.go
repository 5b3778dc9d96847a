package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/xavierca1/coachflow/internal/entity"
	"github.com/xavierca1/coachflow/internal/infra/metrics"
)

const (
	keyPrefix = "coachflow:records"

	// versionTTL outlives any fetch by a wide margin. An expired version
	// reads as zero, which only makes older readers skip their write.
	versionTTL = 24 * time.Hour
)

// setIfVersion stores ARGV[2] under KEYS[2] only while KEYS[1] still holds
// the version the reader started from.
var setIfVersion = redis.NewScript(`
local cur = redis.call('GET', KEYS[1])
if not cur then cur = '0' end
if cur ~= ARGV[1] then return 0 end
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
return 1
`)

// Redis is a QueryCache shared by every replica. Invalidation bumps a
// version key and deletes the data key in one transaction, so a stale entry
// is absent and a fetch started on any replica before the bump cannot put
// it back.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

func NewRedis(client *redis.Client, ttl time.Duration, log zerolog.Logger) *Redis {
	return &Redis{client: client, ttl: ttl, log: log}
}

// Both keys share a hash tag so the script and the transaction stay on one
// cluster slot.
func redisKey(owner string, kind entity.Kind) string {
	return fmt.Sprintf("%s:{%s:%s}", keyPrefix, kind, owner)
}

func versionKey(owner string, kind entity.Kind) string {
	return redisKey(owner, kind) + ":version"
}

func (c *Redis) Get(ctx context.Context, owner string, kind entity.Kind) ([]byte, bool) {
	val, err := c.client.Get(ctx, redisKey(owner, kind)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CacheMiss()
		return nil, false
	}
	if err != nil {
		c.log.Error().Err(err).Str("kind", kind.String()).Msg("redis read error")
		metrics.CacheMiss()
		return nil, false
	}
	metrics.CacheHit()
	return val, true
}

func (c *Redis) Version(ctx context.Context, owner string, kind entity.Kind) (uint64, bool) {
	v, err := c.client.Get(ctx, versionKey(owner, kind)).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, true
	}
	if err != nil {
		c.log.Error().Err(err).Str("kind", kind.String()).Msg("redis version read error")
		return 0, false
	}
	return v, true
}

func (c *Redis) SetIfVersion(ctx context.Context, owner string, kind entity.Kind, version uint64, value []byte) bool {
	keys := []string{versionKey(owner, kind), redisKey(owner, kind)}
	stored, err := setIfVersion.Run(ctx, c.client, keys,
		strconv.FormatUint(version, 10), value, c.ttl.Milliseconds()).Int()
	if err != nil {
		c.log.Error().Err(err).Str("kind", kind.String()).Msg("redis write error")
		return false
	}
	return stored == 1
}

func (c *Redis) Invalidate(ctx context.Context, owner string, kind entity.Kind) {
	vk := versionKey(owner, kind)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, vk)
		pipe.Expire(ctx, vk, versionTTL)
		pipe.Del(ctx, redisKey(owner, kind))
		return nil
	})
	if err != nil {
		c.log.Error().Err(err).Str("kind", kind.String()).Msg("redis invalidate error")
	}
}
