package engine

import (
	"context"
	"sort"
	"sync"
	"time"

	"quiz-master/internal/domain"
)

// manualClock fires scheduled callbacks only when the test advances it.
type manualClock struct {
	mu      sync.Mutex
	now     time.Time
	pending []*manualTimer
}

type manualTimer struct {
	clock   *manualClock
	at      time.Time
	f       func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	was := !t.stopped
	t.stopped = true
	return was
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Stopper {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, at: c.now.Add(d), f: f}
	c.pending = append(c.pending, t)
	return t
}

// Advance moves time forward one second at a time, running due callbacks
// without holding the clock lock.
func (c *manualClock) Advance(seconds int) {
	for i := 0; i < seconds; i++ {
		c.mu.Lock()
		c.now = c.now.Add(time.Second)
		var due []*manualTimer
		rest := c.pending[:0]
		for _, t := range c.pending {
			if !t.at.After(c.now) {
				if !t.stopped {
					due = append(due, t)
				}
				continue
			}
			rest = append(rest, t)
		}
		c.pending = rest
		c.mu.Unlock()

		for _, t := range due {
			t.f()
		}
	}
}

// Capture returns the live callbacks without removing them, so a test can
// fire one late.
func (c *manualClock) Capture() []func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	var fs []func()
	for _, t := range c.pending {
		if !t.stopped {
			fs = append(fs, t.f)
		}
	}
	return fs
}

type stubSource struct {
	ids       []string
	questions map[string]domain.Question
	idsErr    error
	bodiesErr error
}

func newStubSource(questions ...domain.Question) *stubSource {
	s := &stubSource{questions: map[string]domain.Question{}}
	for _, q := range questions {
		s.ids = append(s.ids, q.ID)
		s.questions[q.ID] = q
	}
	return s
}

func (s *stubSource) GetQuestionIDs(_ context.Context, _ string) ([]string, error) {
	if s.idsErr != nil {
		return nil, s.idsErr
	}
	return append([]string(nil), s.ids...), nil
}

// GetQuestionsByIDs returns bodies sorted by id, not in the requested order.
func (s *stubSource) GetQuestionsByIDs(_ context.Context, ids []string) ([]domain.Question, error) {
	if s.bodiesErr != nil {
		return nil, s.bodiesErr
	}
	var out []domain.Question
	for _, id := range ids {
		if q, ok := s.questions[id]; ok {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type recordingRecorder struct {
	mu       sync.Mutex
	begins   []string
	answers  []domain.AnswerLog
	finishes []domain.AttemptResult
}

func (r *recordingRecorder) Begin(quizID, sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.begins = append(r.begins, quizID+"/"+sessionID)
}

func (r *recordingRecorder) Answer(entry domain.AnswerLog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.answers = append(r.answers, entry)
}

func (r *recordingRecorder) Finish(result domain.AttemptResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finishes = append(r.finishes, result)
}

func mcQuestion(id string, points int) domain.Question {
	return domain.Question{
		ID:     id,
		Type:   domain.QuestionMultipleChoice,
		Text:   "Question " + id,
		Points: points,
		Options: []domain.Option{
			{ID: id + "-a", Text: "Wrong", Order: 1},
			{ID: id + "-b", Text: "Right", IsCorrect: true, Order: 2},
			{ID: id + "-c", Text: "Also wrong", Order: 3},
		},
		Explanation: "Because " + id,
	}
}

func tfQuestion(id string, answer bool) domain.Question {
	return domain.Question{
		ID:   id,
		Type: domain.QuestionTrueFalse,
		Text: "Statement " + id,
		Options: []domain.Option{
			{ID: id + "-true", Text: "True", IsCorrect: answer, Order: 1},
			{ID: id + "-false", Text: "False", IsCorrect: !answer, Order: 2},
		},
	}
}

func saQuestion(id string, keys ...domain.AnswerKey) domain.Question {
	return domain.Question{
		ID:         id,
		Type:       domain.QuestionShortAnswer,
		Text:       "Prompt " + id,
		AnswerKeys: keys,
	}
}

// correctAnswer returns an answer that grades as correct for q.
func correctAnswer(q domain.Question) string {
	if q.Type.IsChoice() {
		return q.CorrectOption().ID
	}
	return q.AnswerKeys[0].Text
}
