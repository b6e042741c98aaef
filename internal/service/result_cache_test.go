package service

import (
	"context"
	"testing"
	"time"

	"quiz-master/internal/cache"
	"quiz-master/internal/domain"
	"quiz-master/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultCacheService_PutGet(t *testing.T) {
	c := newMemoryCache()
	svc := NewResultCacheService(c, time.Hour)
	ctx := context.Background()

	result := &dto.ResultResponse{
		SessionID:        "session-1",
		QuizID:           "quiz-1",
		State:            "completed",
		Reason:           "finished",
		Summary:          dto.SummaryResponse{EarnedPoints: 4, TotalPoints: 5, Percentage: 80, Passed: true, PassScore: 70},
		TimeSpentSeconds: 75,
		TimeSpent:        "1:15",
	}
	require.NoError(t, svc.Put(ctx, "session-1", result))
	assert.True(t, c.Has(cache.ResultKey("session-1")))

	got, err := svc.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, result, got)
}

func TestResultCacheService_Miss(t *testing.T) {
	svc := NewResultCacheService(newMemoryCache(), time.Hour)
	_, err := svc.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrResultNotFound)
}

func TestResultCacheService_Errors(t *testing.T) {
	c := newMemoryCache()
	c.setErr = errSinkDown
	svc := NewResultCacheService(c, time.Hour)

	err := svc.Put(context.Background(), "session-1", &dto.ResultResponse{})
	assert.True(t, domain.IsCode(err, domain.CodeInternal))

	err = svc.Put(context.Background(), "session-1", nil)
	assert.True(t, domain.IsCode(err, domain.CodeInvalidInput))

	c.setErr = nil
	require.NoError(t, c.Set(context.Background(), cache.ResultKey("bad"), "{not json", time.Minute))
	_, err = svc.Get(context.Background(), "bad")
	assert.True(t, domain.IsCode(err, domain.CodeInternal))
}

func TestResultCacheService_NilCacheIsNoop(t *testing.T) {
	svc := NewResultCacheService(nil, time.Hour)
	assert.NoError(t, svc.Put(context.Background(), "session-1", &dto.ResultResponse{}))
	_, err := svc.Get(context.Background(), "session-1")
	assert.ErrorIs(t, err, ErrResultNotFound)
}
