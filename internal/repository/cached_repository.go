package repository

import (
	"context"
	"strings"
	"time"

	"quiz-master/internal/cache"
	"quiz-master/internal/domain"
	"quiz-master/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// cachedQuizRepository serves repeat reads of quiz definitions, id lists and
// question bodies from a domain.Cache. Cache failures fall through to the
// inner store; NotFound results are not cached.
type cachedQuizRepository struct {
	inner domain.QuizStore
	cache domain.Cache
	ttl   time.Duration
	group singleflight.Group
}

// NewCachedQuizRepository wraps inner. A nil cache returns inner unchanged.
func NewCachedQuizRepository(inner domain.QuizStore, c domain.Cache, ttl time.Duration) domain.QuizStore {
	if c == nil {
		return inner
	}
	return &cachedQuizRepository{inner: inner, cache: c, ttl: ttl}
}

func (r *cachedQuizRepository) GetQuizDefinitionBySlug(ctx context.Context, slug string) (*domain.QuizDefinition, error) {
	return r.definition(ctx, cache.QuizKey("slug", slug), func() (*domain.QuizDefinition, error) {
		return r.inner.GetQuizDefinitionBySlug(ctx, slug)
	})
}

func (r *cachedQuizRepository) GetQuizDefinitionByID(ctx context.Context, id string) (*domain.QuizDefinition, error) {
	return r.definition(ctx, cache.QuizKey("id", id), func() (*domain.QuizDefinition, error) {
		return r.inner.GetQuizDefinitionByID(ctx, id)
	})
}

func (r *cachedQuizRepository) definition(ctx context.Context, key string, load func() (*domain.QuizDefinition, error)) (*domain.QuizDefinition, error) {
	if def, ok := cache.GetJSON[domain.QuizDefinition](ctx, r.cache, key); ok {
		return &def, nil
	}

	v, err, _ := r.group.Do(key, func() (interface{}, error) {
		def, err := load()
		if err != nil {
			return nil, err
		}
		cache.SetJSON(ctx, r.cache, key, def, r.ttl)
		return def, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.QuizDefinition), nil
}

func (r *cachedQuizRepository) GetQuestionIDs(ctx context.Context, quizID string) ([]string, error) {
	key := cache.QuestionIDsKey(quizID)
	if ids, ok := cache.GetJSON[[]string](ctx, r.cache, key); ok {
		return ids, nil
	}

	v, err, _ := r.group.Do(key, func() (interface{}, error) {
		ids, err := r.inner.GetQuestionIDs(ctx, quizID)
		if err != nil {
			return nil, err
		}
		if len(ids) > 0 {
			cache.SetJSON(ctx, r.cache, key, ids, r.ttl)
		}
		return ids, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

// GetQuestionsByIDs answers cached ids from the cache and loads the rest in one call.
func (r *cachedQuizRepository) GetQuestionsByIDs(ctx context.Context, ids []string) ([]domain.Question, error) {
	out := make([]domain.Question, 0, len(ids))
	var missing []string
	for _, id := range ids {
		if q, ok := cache.GetJSON[domain.Question](ctx, r.cache, cache.QuestionKey(id)); ok {
			out = append(out, q)
			continue
		}
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return out, nil
	}

	v, err, _ := r.group.Do("questions:"+strings.Join(missing, ","), func() (interface{}, error) {
		loaded, err := r.inner.GetQuestionsByIDs(ctx, missing)
		if err != nil {
			return nil, err
		}
		for _, q := range loaded {
			cache.SetJSON(ctx, r.cache, cache.QuestionKey(q.ID), q, r.ttl)
		}
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	loaded := v.([]domain.Question)
	logger.Get().Debug("Question cache fill",
		zap.Int("requested", len(ids)),
		zap.Int("cached", len(out)),
		zap.Int("loaded", len(loaded)))
	return append(out, loaded...), nil
}

func (r *cachedQuizRepository) ListQuizzes(ctx context.Context, filter domain.QuizFilter) ([]domain.QuizDefinition, error) {
	return r.inner.ListQuizzes(ctx, filter)
}

func (r *cachedQuizRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	key := cache.GenerateCacheKey("catalog", "categories", "all")
	if cats, ok := cache.GetJSON[[]domain.Category](ctx, r.cache, key); ok {
		return cats, nil
	}
	cats, err := r.inner.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	cache.SetJSON(ctx, r.cache, key, cats, r.ttl)
	return cats, nil
}
