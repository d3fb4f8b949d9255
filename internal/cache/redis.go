package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "nwave:cache:"

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisStore backs the cache with a shared Redis instance so several server
// processes see the same entries. Redis errors degrade to cache misses; the
// cache must never take an endpoint down with it.
type RedisStore struct {
	client *redislib.Client
	ttl    time.Duration
}

// NewRedisStore connects and pings the instance, retrying with backoff before
// giving up.
func NewRedisStore(cfg RedisConfig, ttl time.Duration) (*RedisStore, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	client := redislib.NewClient(&redislib.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	attempts := 5
	backoff := 200 * time.Millisecond

	var pingErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		pingErr = client.Ping(ctx).Err()
		cancel()

		if pingErr == nil {
			return &RedisStore{client: client, ttl: ttl}, nil
		}

		if attempt < attempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}

	_ = client.Close()
	return nil, fmt.Errorf("redis ping failed: %w", pingErr)
}

func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	raw, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if err != redislib.Nil {
			slog.Debug("redis get failed", "key", key, "error", err)
		}
		return nil, false
	}
	return raw, true
}

func (r *RedisStore) Set(ctx context.Context, key string, value []byte) {
	if err := r.client.Set(ctx, redisKeyPrefix+key, value, r.ttl).Err(); err != nil {
		slog.Debug("redis set failed", "key", key, "error", err)
	}
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
