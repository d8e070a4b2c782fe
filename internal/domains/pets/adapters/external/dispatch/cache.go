package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Apurer/go-gin-shelter-server/internal/domains/pets/ports"
)

const (
	defaultKeyPrefix = "shelter:dispatch:"
	// DefaultCacheTTL is how long dispatched values are kept when no TTL is configured.
	DefaultCacheTTL = 5 * time.Minute
)

// Cache is the subset of the redis client used by CachedDispatcher.
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// CachedDispatcher is a read-through Redis cache in front of another dispatcher.
// Cache failures are logged and bypassed.
type CachedDispatcher struct {
	next      ports.Dispatcher
	cache     Cache
	ttl       time.Duration
	keyPrefix string
	logger    *slog.Logger
}

type CacheOption func(*CachedDispatcher)

func WithTTL(ttl time.Duration) CacheOption {
	return func(d *CachedDispatcher) {
		if ttl > 0 {
			d.ttl = ttl
		}
	}
}

func WithKeyPrefix(prefix string) CacheOption {
	return func(d *CachedDispatcher) {
		if prefix != "" {
			d.keyPrefix = prefix
		}
	}
}

func WithLogger(logger *slog.Logger) CacheOption {
	return func(d *CachedDispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewCachedDispatcher wraps next with a cache. *redis.Client satisfies Cache.
func NewCachedDispatcher(next ports.Dispatcher, cache Cache, opts ...CacheOption) *CachedDispatcher {
	d := &CachedDispatcher{
		next:      next,
		cache:     cache,
		ttl:       DefaultCacheTTL,
		keyPrefix: defaultKeyPrefix,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

func (d *CachedDispatcher) Fetch(ctx context.Context, field, action string, key int64) (string, error) {
	cacheKey := fmt.Sprintf("%s%s:%s:%d", d.keyPrefix, field, action, key)

	value, err := d.cache.Get(ctx, cacheKey).Result()
	switch {
	case err == nil:
		return value, nil
	case !errors.Is(err, redis.Nil):
		d.logger.LogAttrs(ctx, slog.LevelWarn, "dispatch cache read failed",
			slog.String("key", cacheKey), slog.String("error", err.Error()))
	}

	value, err = d.next.Fetch(ctx, field, action, key)
	if err != nil {
		return "", err
	}
	if err := d.cache.Set(ctx, cacheKey, value, d.ttl).Err(); err != nil {
		d.logger.LogAttrs(ctx, slog.LevelWarn, "dispatch cache write failed",
			slog.String("key", cacheKey), slog.String("error", err.Error()))
	}
	return value, nil
}

var _ ports.Dispatcher = (*CachedDispatcher)(nil)
