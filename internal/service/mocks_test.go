package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"quiz-master/internal/domain"
	"quiz-master/internal/engine"

	"github.com/stretchr/testify/mock"
)

// --- MockQuizStore ---
type MockQuizStore struct {
	mock.Mock
}

func (m *MockQuizStore) GetQuizDefinitionBySlug(ctx context.Context, slug string) (*domain.QuizDefinition, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizDefinition), args.Error(1)
}

func (m *MockQuizStore) GetQuizDefinitionByID(ctx context.Context, id string) (*domain.QuizDefinition, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizDefinition), args.Error(1)
}

func (m *MockQuizStore) GetQuestionIDs(ctx context.Context, quizID string) ([]string, error) {
	args := m.Called(ctx, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockQuizStore) GetQuestionsByIDs(ctx context.Context, ids []string) ([]domain.Question, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Question), args.Error(1)
}

func (m *MockQuizStore) ListQuizzes(ctx context.Context, filter domain.QuizFilter) ([]domain.QuizDefinition, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuizDefinition), args.Error(1)
}

func (m *MockQuizStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

// --- fakeSink records advisory writes in arrival order ---
type fakeSink struct {
	mu       sync.Mutex
	calls    []string
	answers  []domain.AnswerLog
	finished []domain.AttemptResult
	startErr error
	attempts int
	// gate, when set, blocks every write until it is closed.
	gate chan struct{}
}

func (s *fakeSink) wait() {
	if s.gate != nil {
		<-s.gate
	}
}

func (s *fakeSink) RecordAttemptStart(ctx context.Context, quizID, sessionID string) (string, error) {
	s.wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "start:"+sessionID)
	if s.startErr != nil {
		return "", s.startErr
	}
	s.attempts++
	return "attempt-" + sessionID, nil
}

func (s *fakeSink) RecordAnswer(ctx context.Context, attemptID string, entry domain.AnswerLog) error {
	s.wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "answer:"+entry.QuestionID)
	s.answers = append(s.answers, entry)
	return nil
}

func (s *fakeSink) RecordAttemptFinish(ctx context.Context, attemptID string, result domain.AttemptResult) error {
	s.wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "finish:"+attemptID)
	s.finished = append(s.finished, result)
	return nil
}

func (s *fakeSink) IncrementAttemptCounter(ctx context.Context, quizID string) error {
	s.wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "count:"+quizID)
	return nil
}

func (s *fakeSink) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// --- memoryCache implements domain.Cache ---
type memoryCache struct {
	mu     sync.Mutex
	data   map[string]string
	setErr error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string]string{}}
}

func (c *memoryCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return "", domain.ErrCacheMiss
	}
	return v, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	c.data[key] = value
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memoryCache) Ping(ctx context.Context) error {
	return nil
}

func (c *memoryCache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

// --- fakeClock runs countdown ticks on demand ---
type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	pending []func()
}

type fakeStopper struct{}

func (fakeStopper) Stop() bool { return true }

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) engine.Stopper {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = append(c.pending, f)
	return fakeStopper{}
}

// Tick advances one second and runs the callbacks scheduled so far.
func (c *fakeClock) Tick() {
	c.mu.Lock()
	c.now = c.now.Add(time.Second)
	due := c.pending
	c.pending = nil
	c.mu.Unlock()
	for _, f := range due {
		f()
	}
}

var errSinkDown = errors.New("sink unavailable")

func testQuestions() []domain.Question {
	return []domain.Question{
		{
			ID: "q1", QuizID: "quiz-1", Type: domain.QuestionMultipleChoice, Text: "Capital of France?", Points: 2,
			Options: []domain.Option{
				{ID: "q1-a", Text: "Lyon", Order: 1},
				{ID: "q1-b", Text: "Paris", IsCorrect: true, Order: 2},
			},
			Explanation: "Paris has been the capital since 987.",
		},
		{
			ID: "q2", QuizID: "quiz-1", Type: domain.QuestionTrueFalse, Text: "The sun is a star.",
			Options: []domain.Option{
				{ID: "q2-t", Text: "True", IsCorrect: true, Order: 1},
				{ID: "q2-f", Text: "False", Order: 2},
			},
		},
		{
			ID: "q3", QuizID: "quiz-1", Type: domain.QuestionShortAnswer, Text: "Largest planet?",
			AnswerKeys: []domain.AnswerKey{{Text: "Jupiter"}},
		},
	}
}

// correctAnswers maps question id to an answer graded correct.
var correctAnswers = map[string]string{"q1": "q1-b", "q2": "q2-t", "q3": "jupiter"}
