package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"gamelength/internal/core"
	"gamelength/internal/titles"
)

// keyPrefix namespaces this service's keys in a shared Redis.
const keyPrefix = "gamelength:title:"

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	// URL is the Redis connection URL (e.g., "redis://localhost:6379" or "redis://:password@host:6379/0")
	URL string

	// TTL is the time-to-live for cached entries (defaults to DefaultTTL)
	TTL time.Duration
}

// RedisStore implements Store using Redis with native per-key expiry.
// This is suitable for multi-instance deployments behind a load balancer.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a new Redis-backed store.
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	slog.Info("redis cache connected", "ttl", ttl)

	return &RedisStore{
		client: client,
		ttl:    ttl,
	}, nil
}

// Get retrieves the cached estimate for a raw title from Redis. Expiry is
// delegated to Redis key TTLs.
func (s *RedisStore) Get(ctx context.Context, rawTitle string) (*core.PlaytimeEstimate, error) {
	data, err := s.client.Get(ctx, keyPrefix+titles.CacheKey(rawTitle)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get entry from redis: %w", err)
	}

	var value core.PlaytimeEstimate
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("failed to parse entry from redis: %w", err)
	}

	return &value, nil
}

// Set stores the estimate for a raw title in Redis with the configured TTL.
func (s *RedisStore) Set(ctx context.Context, rawTitle string, value *core.PlaytimeEstimate) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+titles.CacheKey(rawTitle), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set entry in redis: %w", err)
	}

	return nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}
