package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds Redis cache settings.
type RedisConfig struct {
	// Prefix namespaces keys as "{prefix}:{key}".
	Prefix string
	// DefaultTTL applies when Set is called with a zero TTL. Default: 10 minutes.
	DefaultTTL time.Duration
}

// Redis is a cache shared between processes. Values are encoded with the
// configured Marshaler, JSON by default.
type Redis[V any] struct {
	client    redis.UniversalClient
	marshaler Marshaler[V]
	cfg       RedisConfig
}

// NewRedis wraps client. Pass a nil Marshaler for JSON encoding.
// The client is owned by the caller; Close does not close it.
//
//	client, err := redis.Open(ctx, os.Getenv("REDIS_URL"))
//	states := cache.NewRedis[string](client, nil, cache.RedisConfig{Prefix: "oauth1"})
func NewRedis[V any](client redis.UniversalClient, m Marshaler[V], cfg RedisConfig) *Redis[V] {
	if m == nil {
		m = jsonMarshaler[V]{}
	}
	if cfg.DefaultTTL == 0 {
		cfg.DefaultTTL = 10 * time.Minute
	}
	return &Redis[V]{client: client, marshaler: m, cfg: cfg}
}

// Get returns the value stored under key.
func (r *Redis[V]) Get(ctx context.Context, key string) (V, error) {
	return r.decode(r.client.Get(ctx, r.key(key)).Bytes())
}

// Take reads and deletes key with a single GETDEL.
func (r *Redis[V]) Take(ctx context.Context, key string) (V, error) {
	return r.decode(r.client.GetDel(ctx, r.key(key)).Bytes())
}

// Set stores value under key.
func (r *Redis[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	data, err := r.marshaler.Marshal(value)
	if err != nil {
		return err
	}
	if ttl == 0 {
		ttl = r.cfg.DefaultTTL
	}
	// Redis treats 0 as "no expiration".
	return r.client.Set(ctx, r.key(key), data, max(ttl, 0)).Err()
}

// Delete removes key.
func (r *Redis[V]) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

// Close is a no-op.
func (r *Redis[V]) Close() error { return nil }

func (r *Redis[V]) key(k string) string {
	if r.cfg.Prefix == "" {
		return k
	}
	return r.cfg.Prefix + ":" + k
}

func (r *Redis[V]) decode(data []byte, err error) (V, error) {
	var zero V
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return zero, ErrNotFound
		}
		return zero, err
	}
	return r.marshaler.Unmarshal(data)
}

var _ Cache[any] = (*Redis[any])(nil)
