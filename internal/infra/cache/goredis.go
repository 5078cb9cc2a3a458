package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// GoRedisClient adapts github.com/redis/go-redis to the RedisClient
// interface used by StateCache.
type GoRedisClient struct {
	client *redis.Client
}

// ConnectRedis dials Redis from a URL (redis://...) or a bare host:port
// address and verifies the connection with a ping.
func ConnectRedis(ctx context.Context, redisURL string) (*GoRedisClient, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	client := redis.NewClient(opt)
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &GoRedisClient{client: client}, nil
}

func (g *GoRedisClient) Get(ctx context.Context, key string) (string, error) {
	return g.client.Get(ctx, key).Result()
}

func (g *GoRedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return g.client.Set(ctx, key, value, expiration).Err()
}

func (g *GoRedisClient) Del(ctx context.Context, keys ...string) error {
	return g.client.Del(ctx, keys...).Err()
}

// Close releases the underlying connection pool.
func (g *GoRedisClient) Close() error {
	return g.client.Close()
}
