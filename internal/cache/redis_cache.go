package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"assessment-service/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisCache is the production cache backend. Entries expire via Redis TTL.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, fingerprint string) (*models.AssessmentResult, bool) {
	data, err := c.client.Get(ctx, fingerprint).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("Assessment cache read failed, treating as miss", "fingerprint", fingerprint, "error", err)
		}
		return nil, false
	}

	var result models.AssessmentResult
	if err := json.Unmarshal(data, &result); err != nil {
		slog.Warn("Corrupt assessment cache entry, treating as miss", "fingerprint", fingerprint, "error", err)
		return nil, false
	}
	return &result, true
}

func (c *RedisCache) Set(ctx context.Context, fingerprint string, result *models.AssessmentResult, ttl time.Duration) {
	data, err := json.Marshal(result)
	if err != nil {
		slog.Warn("Failed to marshal assessment for cache", "fingerprint", fingerprint, "error", err)
		return
	}
	if err := c.client.Set(ctx, fingerprint, data, ttl).Err(); err != nil {
		slog.Warn("Assessment cache write failed", "fingerprint", fingerprint, "error", err)
	}
}
