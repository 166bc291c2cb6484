package nutrition

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client *redis.Client
}

func OpenRedis(ctx context.Context, addr string, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (cache *RedisCache) Get(ctx context.Context, key string) (Facts, bool, error) {
	raw, err := cache.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Facts{}, false, nil
	}
	if err != nil {
		return Facts{}, false, err
	}

	var facts Facts
	if err := json.Unmarshal(raw, &facts); err != nil {
		return Facts{}, false, err
	}
	return facts, true, nil
}

func (cache *RedisCache) Set(ctx context.Context, key string, facts Facts, ttl time.Duration) error {
	serialized, err := json.Marshal(facts)
	if err != nil {
		return err
	}
	return cache.client.Set(ctx, key, serialized, ttl).Err()
}
