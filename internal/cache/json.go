package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"quiz-master/internal/domain"
	"quiz-master/internal/logger"

	"go.uber.org/zap"
)

// GetJSON loads key from c and decodes it into T. ok is false on a miss, on a
// cache failure, or when the payload cannot be decoded; failures are logged.
func GetJSON[T any](ctx context.Context, c domain.Cache, key string) (value T, ok bool) {
	if c == nil {
		return value, false
	}
	raw, err := c.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		}
		return value, false
	}
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		logger.Get().Warn("Discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
		return value, false
	}
	return value, true
}

// SetJSON encodes v and stores it under key. Errors are logged and swallowed.
func SetJSON(ctx context.Context, c domain.Cache, key string, v any, ttl time.Duration) {
	if c == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		logger.Get().Warn("Failed to encode cache entry", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.Set(ctx, key, string(data), ttl); err != nil {
		logger.Get().Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
}
