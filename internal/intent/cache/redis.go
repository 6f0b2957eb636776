package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stevehamwu/BeverageIntentRecognition/internal/common/database"
	apperrors "github.com/stevehamwu/BeverageIntentRecognition/internal/common/errors"
	"github.com/stevehamwu/BeverageIntentRecognition/internal/models"
)

// RedisCache stores results as JSON strings with a Redis-side TTL, so expiry
// needs no cooperation from readers and entries are shared across instances.
type RedisCache struct {
	client *database.RedisClient
}

func NewRedis(client *database.RedisClient) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*models.IntentResult, bool, error) {
	payload, err := c.client.Get(ctx, key)
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, apperrors.NewCacheUnavailableError(fmt.Errorf("redis get: %w", err))
	}

	var result models.IntentResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		// A corrupt entry is treated as a miss; the next Put overwrites it.
		return nil, false, nil
	}
	// JSON decoding widens the quantity to float64; restore the int so a
	// cached result is identical to a freshly computed one.
	if q, ok := result.Entities[models.EntityQuantity].(float64); ok && q == float64(int(q)) {
		result.Entities[models.EntityQuantity] = int(q)
	}
	return &result, true, nil
}

func (c *RedisCache) Put(ctx context.Context, key string, result *models.IntentResult, ttl time.Duration) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal cached result: %w", err)
	}
	if err := c.client.Set(ctx, key, payload, ttl); err != nil {
		return apperrors.NewCacheUnavailableError(fmt.Errorf("redis set: %w", err))
	}
	return nil
}

func (c *RedisCache) Clear(ctx context.Context) error {
	if err := c.client.FlushDB(ctx); err != nil {
		return apperrors.NewCacheUnavailableError(fmt.Errorf("redis flush: %w", err))
	}
	return nil
}
