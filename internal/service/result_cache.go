package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quiz-master/internal/cache"
	"quiz-master/internal/domain"
	"quiz-master/internal/dto"
	"quiz-master/internal/logger"

	"go.uber.org/zap"
)

// ErrResultNotFound is returned when no completed result is cached for a session.
var ErrResultNotFound = errors.New("session result not found in cache")

// ResultCacheService keeps the results of completed sessions readable after the
// session itself has been evicted from memory.
type ResultCacheService interface {
	Put(ctx context.Context, sessionID string, result *dto.ResultResponse) error
	Get(ctx context.Context, sessionID string) (*dto.ResultResponse, error)
}

type resultCacheServiceImpl struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewResultCacheService returns a no-op service when c is nil.
func NewResultCacheService(c domain.Cache, ttl time.Duration) ResultCacheService {
	if c == nil {
		logger.Get().Warn("ResultCacheService initialized with nil cache. Service will be no-op.")
		return &noopResultCacheService{}
	}
	return &resultCacheServiceImpl{cache: c, ttl: ttl}
}

func (s *resultCacheServiceImpl) Put(ctx context.Context, sessionID string, result *dto.ResultResponse) error {
	if result == nil {
		return domain.NewInvalidInputError("cannot cache nil result")
	}

	key := cache.ResultKey(sessionID)
	data, err := json.Marshal(result)
	if err != nil {
		return domain.NewInternalError("failed to marshal result for caching", err)
	}
	if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
		logger.Get().Error("Failed to cache session result", zap.Error(err), zap.String("key", key))
		return domain.NewInternalError(fmt.Sprintf("failed to set session result for key %s", key), err)
	}
	logger.Get().Debug("Cached session result", zap.String("key", key), zap.Duration("ttl", s.ttl))
	return nil
}

func (s *resultCacheServiceImpl) Get(ctx context.Context, sessionID string) (*dto.ResultResponse, error) {
	key := cache.ResultKey(sessionID)
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, ErrResultNotFound
		}
		logger.Get().Error("Failed to get session result from cache", zap.Error(err), zap.String("key", key))
		return nil, domain.NewInternalError(fmt.Sprintf("failed to get session result for key %s", key), err)
	}
	if data == "" {
		return nil, ErrResultNotFound
	}

	var result dto.ResultResponse
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, domain.NewInternalError(fmt.Sprintf("failed to unmarshal session result for key %s", key), err)
	}
	return &result, nil
}

type noopResultCacheService struct{}

func (s *noopResultCacheService) Put(ctx context.Context, sessionID string, result *dto.ResultResponse) error {
	return nil
}

func (s *noopResultCacheService) Get(ctx context.Context, sessionID string) (*dto.ResultResponse, error) {
	return nil, ErrResultNotFound
}
