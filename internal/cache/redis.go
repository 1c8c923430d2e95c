package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const VisitsKey = "api_visits"

// Counter is the slice of Redis the service relies on.
type Counter interface {
	Incr(ctx context.Context, key string) (int64, error)
}

// NewRedisClient builds a client. Connections are dialed lazily, so a
// server that comes up later is picked up without a restart.
func NewRedisClient(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
}

// Ping reports whether the server answers right now.
func Ping(ctx context.Context, rdb redis.Cmdable) error {
	return rdb.Ping(ctx).Err()
}

type RedisCounter struct {
	rdb redis.Cmdable
}

func NewRedisCounter(rdb redis.Cmdable) *RedisCounter {
	return &RedisCounter{rdb: rdb}
}

func (c *RedisCounter) Incr(ctx context.Context, key string) (int64, error) {
	return c.rdb.Incr(ctx, key).Result()
}
