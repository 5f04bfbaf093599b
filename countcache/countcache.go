// Package countcache caches listing totals for a short time. A cached total
// may be up to one TTL stale.
package countcache

import (
	"context"
	"strings"
	"time"

	"github.com/friendsofgo/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// DefaultTTL is how long a total is served before it is recounted.
const DefaultTTL = 30 * time.Second

const keyPrefix = "videohub:count:"

// Cache stores listing totals by key.
type Cache interface {
	// Get returns the cached total and whether one was present.
	Get(ctx context.Context, key string) (int64, bool, error)
	Set(ctx context.Context, key string, n int64) error
	// Invalidate drops totals after a write that changes them.
	Invalidate(ctx context.Context, keys ...string) error
}

// Loader computes a total on a cache miss.
type Loader func(ctx context.Context) (int64, error)

// Key builds a cache key from its parts.
func Key(parts ...string) string {
	return keyPrefix + strings.Join(parts, ":")
}

// CommentsKey is the key of the comment total under parentID on a video.
// An empty parentID names the top-level comments.
func CommentsKey(videoID, parentID string) string {
	if parentID == "" {
		parentID = "root"
	}
	return Key("comments", videoID, parentID)
}

// GetOrLoad returns the cached total for key or loads and stores it.
// Cache failures are logged and never fail the request; load failures are
// returned unchanged.
func GetOrLoad(ctx context.Context, c Cache, key string, load Loader) (int64, error) {
	if c == nil {
		return load(ctx)
	}

	n, ok, err := c.Get(ctx, key)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("count cache read failed")
	}
	if ok {
		return n, nil
	}

	n, err = load(ctx)
	if err != nil {
		return 0, err
	}

	if err := c.Set(ctx, key, n); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("count cache write failed")
	}
	return n, nil
}

// Redis is a Cache backed by Redis string keys with a TTL.
type Redis struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedis returns a Redis cache. A non-positive ttl uses DefaultTTL.
func NewRedis(client redis.UniversalClient, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{client: client, ttl: ttl}
}

// NewRedisFromAddr connects to the Redis server at addr.
func NewRedisFromAddr(addr string, ttl time.Duration) *Redis {
	return NewRedis(redis.NewClient(&redis.Options{Addr: addr}), ttl)
}

func (r *Redis) Get(ctx context.Context, key string) (int64, bool, error) {
	n, err := r.client.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, errors.Wrapf(err, "countcache: get %s", key)
	}
	return n, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, n int64) error {
	if err := r.client.Set(ctx, key, n, r.ttl).Err(); err != nil {
		return errors.Wrapf(err, "countcache: set %s", key)
	}
	return nil
}

func (r *Redis) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return errors.Wrap(err, "countcache: invalidate")
	}
	return nil
}

// Ping checks the connection.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}

// Noop never caches.
type Noop struct{}

func (Noop) Get(context.Context, string) (int64, bool, error) { return 0, false, nil }

func (Noop) Set(context.Context, string, int64) error { return nil }

func (Noop) Invalidate(context.Context, ...string) error { return nil }
