// Package app wires the storage, cache and progress sink shared by the API
// server and the quizctl CLI.
package app

import (
	"context"
	"fmt"

	"quiz-master/internal/adapter"
	"quiz-master/internal/cache"
	"quiz-master/internal/config"
	"quiz-master/internal/database"
	"quiz-master/internal/domain"
	"quiz-master/internal/logger"
	"quiz-master/internal/repository"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Components struct {
	Config     *config.Config
	DB         *sqlx.DB
	Redis      *redis.Client // nil when no Redis is configured or reachable
	Cache      domain.Cache  // nil when Redis is nil
	Store      domain.QuizStore
	Sink       domain.ProgressSink
	BankWriter domain.QuizBankWriter
}

// Bootstrap opens the database and, when configured, Redis. An unreachable
// Redis is logged and the components run without a cache.
func Bootstrap(ctx context.Context, cfg *config.Config) (*Components, error) {
	db, err := database.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	c := &Components{Config: cfg, DB: db}

	if cfg.Redis.Address != "" {
		client, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			logger.Get().Warn("Redis unavailable, running without cache", zap.Error(err))
		} else {
			logger.Get().Info("Successfully connected to Redis", zap.String("address", cfg.Redis.Address))
			c.Redis = client
			c.Cache = adapter.NewRedisCacheAdapter(client)
		}
	}

	c.Store = repository.NewCachedQuizRepository(repository.NewQuizRepository(db), c.Cache, cfg.Redis.TTL)
	c.Sink = repository.NewProgressSink(db)
	c.BankWriter = repository.NewQuizBankWriter(db, repository.NewTransactionManagerAdapter(db))
	return c, nil
}

// Close releases the database and Redis connections.
func (c *Components) Close() {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.Get().Warn("Failed to close Redis client", zap.Error(err))
		}
	}
	if err := c.DB.Close(); err != nil {
		logger.Get().Warn("Failed to close database", zap.Error(err))
	}
}
