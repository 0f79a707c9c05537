package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisCache stores interpreted AI responses keyed by a hash of the
// inputs that produced them. The original deployment ran without any
// caching; this layer is opt-in and off by default.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisCache creates a new RedisCache instance.
func NewRedisCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Set stores a value under a hash of keyPrefix and data.
func (c *RedisCache) Set(ctx context.Context, keyPrefix string, data map[string]any, value interface{}) error {
	cacheKey, err := generateCacheKey(keyPrefix, data)
	if err != nil {
		return fmt.Errorf("failed to generate cache key: %w", err)
	}

	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize value: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey, jsonData, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store value in Redis: %w", err)
	}

	return nil
}

// Get retrieves a value previously stored for keyPrefix and data. A
// miss or any Redis failure returns found=false; the caller falls
// through to the model.
func (c *RedisCache) Get(ctx context.Context, keyPrefix string, data map[string]any, value interface{}) (bool, error) {
	cacheKey, err := generateCacheKey(keyPrefix, data)
	if err != nil {
		return false, nil
	}

	cachedData, err := c.client.Get(ctx, cacheKey).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Failed to get cached value from Redis", zap.Error(err))
		}
		return false, nil
	}

	if err := json.Unmarshal([]byte(cachedData), value); err != nil {
		c.logger.Warn("Failed to deserialize cached value", zap.Error(err))
		return false, nil
	}

	c.logger.Info("Cache hit", zap.String("cacheKey", cacheKey))
	return true, nil
}

// ClearByPrefix clears all cached responses with the given prefix.
func (c *RedisCache) ClearByPrefix(ctx context.Context, keyPrefix string) error {
	keys, err := c.client.Keys(ctx, keyPrefix+"*").Result()
	if err != nil {
		return fmt.Errorf("failed to get cache keys with prefix %s: %w", keyPrefix, err)
	}

	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("failed to clear cache with prefix %s: %w", keyPrefix, err)
		}
	}

	c.logger.Info("Cache cleared", zap.String("prefix", keyPrefix), zap.Int("keysDeleted", len(keys)))
	return nil
}

// GenerateCacheKey builds a stable key from the prefix and data map.
// Map keys are sorted so identical inputs always hash identically.
func GenerateCacheKey(keyPrefix string, data map[string]any) (string, error) {
	return generateCacheKey(keyPrefix, data)
}

func generateCacheKey(keyPrefix string, data map[string]any) (string, error) {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ordered := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		ordered = append(ordered, k, data[k])
	}

	serialized, err := json.Marshal(ordered)
	if err != nil {
		return "", fmt.Errorf("failed to serialize cache key data: %w", err)
	}

	hash := sha256.Sum256(serialized)
	return keyPrefix + ":" + hex.EncodeToString(hash[:]), nil
}
