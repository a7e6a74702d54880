package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	applending "github.com/lendledger/backend/internal/application/lending"
	"github.com/lendledger/backend/internal/domain/lending"
	"github.com/lendledger/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

// RedisScheduleCache implements ScheduleCache using Redis. This is
// suitable for distributed deployments where multiple instances share
// the cache.
type RedisScheduleCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisScheduleCache creates a new Redis-based schedule cache
func NewRedisScheduleCache(cfg config.RedisConfig, ttl time.Duration) (*RedisScheduleCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisScheduleCacheWithClient(client, "", ttl), nil
}

// NewRedisScheduleCacheWithClient creates a cache with an existing Redis client.
// This is useful for testing or when sharing a client across components.
func NewRedisScheduleCacheWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisScheduleCache {
	if keyPrefix == "" {
		keyPrefix = "lendledger:"
	}
	if ttl <= 0 {
		ttl = DefaultScheduleTTL
	}
	return &RedisScheduleCache{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

// Get returns the cached schedule, or (nil, nil) on a miss
func (s *RedisScheduleCache) Get(ctx context.Context, key string) ([]lending.ScheduleRow, error) {
	payload, err := s.client.Get(ctx, s.keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached schedule: %w", err)
	}

	var rows []lending.ScheduleRow
	if err := json.Unmarshal(payload, &rows); err != nil {
		// A corrupt entry is a miss; the schedule is recomputable.
		return nil, nil
	}
	return rows, nil
}

// Set stores the schedule under the key with the configured TTL
func (s *RedisScheduleCache) Set(ctx context.Context, key string, rows []lending.ScheduleRow) error {
	payload, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to serialize schedule: %w", err)
	}
	if err := s.client.Set(ctx, s.keyPrefix+key, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache schedule: %w", err)
	}
	return nil
}

// Delete removes the schedule for the key
func (s *RedisScheduleCache) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to evict cached schedule: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (s *RedisScheduleCache) Close() error {
	return s.client.Close()
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (s *RedisScheduleCache) GetClient() *redis.Client {
	return s.client
}

// Ensure RedisScheduleCache implements ScheduleCache
var _ applending.ScheduleCache = (*RedisScheduleCache)(nil)
