package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"leadrelay/pkg/retry"
)

// RedisConfig carries the connection parameters for the remote backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisBackend stores lead entries in redis, with expiry enforced
// server-side via the SET TTL.
type RedisBackend struct {
	rdb *redis.Client
}

// NewRedisBackend connects to redis and verifies the connection with a
// retried ping. An error here means the caller should fall back to the
// in-memory backend.
func NewRedisBackend(ctx context.Context, cfg RedisConfig) (*RedisBackend, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	err := retry.Connect(ctx, func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		return rdb.Ping(pingCtx).Err()
	})
	if err != nil {
		_ = rdb.Close()
		return nil, err
	}

	return &RedisBackend{rdb: rdb}, nil
}

func (b *RedisBackend) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return b.rdb.Set(ctx, key, value, ttl).Err()
}

func (b *RedisBackend) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := b.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (b *RedisBackend) Name() string { return "redis" }

// Close releases the underlying connection pool.
func (b *RedisBackend) Close() error { return b.rdb.Close() }
