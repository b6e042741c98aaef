package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quiz-master/internal/domain"
)

func tenQuestionBank() []domain.Question {
	var qs []domain.Question
	for i := 1; i <= 6; i++ {
		qs = append(qs, mcQuestion(fmt.Sprintf("mc%d", i), 1))
	}
	qs = append(qs, tfQuestion("tf1", true), tfQuestion("tf2", false))
	qs = append(qs,
		saQuestion("sa1", domain.AnswerKey{Text: "Paris"}),
		saQuestion("sa2", domain.AnswerKey{Text: "Jupiter", ExactMatch: true}),
	)
	return qs
}

type sessionFixture struct {
	session  *Session
	clock    *manualClock
	recorder *recordingRecorder
	source   *stubSource
	results  []Result
	mu       sync.Mutex
}

func newFixture(t *testing.T, quiz domain.QuizDefinition, seed int64, questions ...domain.Question) *sessionFixture {
	t.Helper()
	f := &sessionFixture{
		clock:    newManualClock(),
		recorder: &recordingRecorder{},
		source:   newStubSource(questions...),
	}
	n := 0
	f.session = NewSession("session-1", quiz, f.source,
		WithClock(f.clock),
		WithSampler(NewSampler(rand.NewSource(seed))),
		WithRecorder(f.recorder),
		WithIDGenerator(func() string { n++; return fmt.Sprintf("play-%d", n) }),
		OnComplete(func(r Result) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.results = append(f.results, r)
		}),
	)
	return f
}

func (f *sessionFixture) completions() []Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Result(nil), f.results...)
}

func answerAll(t *testing.T, s *Session, answer func(domain.Question) string) {
	t.Helper()
	for s.State() == StateActive {
		snap := s.Snapshot()
		require.NotNil(t, snap.Current)
		_, err := s.Submit(answer(*snap.Current))
		require.NoError(t, err)
		_, err = s.Advance()
		require.NoError(t, err)
	}
}

func TestSession_EndToEndAllCorrect(t *testing.T) {
	quiz := domain.QuizDefinition{ID: "quiz-1", Title: "Mixed"}
	f := newFixture(t, quiz, 11, tenQuestionBank()...)

	require.NoError(t, f.session.Start(context.Background(), 5))
	snap := f.session.Snapshot()
	assert.Equal(t, StateActive, snap.State)
	assert.Equal(t, 5, snap.QuestionCount)
	assert.False(t, snap.Timed)

	seen := map[string]bool{}
	answerAll(t, f.session, func(q domain.Question) string {
		assert.False(t, seen[q.ID], "question %s presented twice", q.ID)
		seen[q.ID] = true
		return correctAnswer(q)
	})
	assert.Len(t, seen, 5)

	sum := f.session.Summary()
	assert.Equal(t, 5, sum.EarnedPoints)
	assert.Equal(t, 5, sum.TotalPoints)
	assert.Equal(t, 100, sum.Percentage)
	assert.True(t, sum.Passed)
	assert.Equal(t, 70, sum.PassScore)

	results := f.completions()
	require.Len(t, results, 1)
	assert.Equal(t, ReasonFinished, results[0].Reason)
	assert.Equal(t, "play-1", results[0].PlayID)

	assert.Equal(t, []string{"quiz-1/play-1"}, f.recorder.begins)
	assert.Len(t, f.recorder.answers, 5)
	require.Len(t, f.recorder.finishes, 1)
	assert.Equal(t, 100, f.recorder.finishes[0].Percentage)
}

func TestSession_EndToEndOneShortAnswerMiss(t *testing.T) {
	quiz := domain.QuizDefinition{ID: "quiz-1"}

	for seed := int64(1); seed < 100; seed++ {
		f := newFixture(t, quiz, seed, tenQuestionBank()...)
		require.NoError(t, f.session.Start(context.Background(), 5))

		missed := ""
		answerAll(t, f.session, func(q domain.Question) string {
			if q.Type == domain.QuestionShortAnswer && missed == "" {
				missed = q.ID
				return "no idea"
			}
			return correctAnswer(q)
		})
		if missed == "" {
			continue
		}

		sum := f.session.Summary()
		assert.Equal(t, 5, sum.TotalPoints)
		assert.Equal(t, 4, sum.EarnedPoints)
		assert.Equal(t, 80, sum.Percentage)
		assert.Equal(t, 1, sum.WrongCount)
		return
	}
	t.Fatal("no seed produced a sample containing a short answer question")
}

func TestSession_TimerForcesCompletion(t *testing.T) {
	quiz := domain.QuizDefinition{ID: "quiz-t", TimeLimit: 60}
	f := newFixture(t, quiz, 3, mcQuestion("a", 2), mcQuestion("b", 3))

	require.NoError(t, f.session.Start(context.Background(), 2))
	snap := f.session.Snapshot()
	assert.True(t, snap.Timed)
	assert.Equal(t, 60, snap.Duration)
	assert.Equal(t, 60, snap.Remaining)

	f.clock.Advance(59)
	assert.Equal(t, StateActive, f.session.State())
	assert.Equal(t, 1, f.session.Snapshot().Remaining)

	f.clock.Advance(1)
	assert.Equal(t, StateCompleted, f.session.State())

	snap = f.session.Snapshot()
	assert.Equal(t, ReasonTimeExpired, snap.Reason)
	assert.Equal(t, 0, snap.Summary.EarnedPoints)
	assert.Equal(t, 5, snap.Summary.TotalPoints)

	results := f.completions()
	require.Len(t, results, 1)
	assert.Equal(t, 60, results[0].TimeSpent)

	f.clock.Advance(10)
	assert.Len(t, f.completions(), 1, "no further expiry after completion")
	assert.Empty(t, f.clock.Capture())
}

func TestSession_ProportionalDuration(t *testing.T) {
	quiz := domain.QuizDefinition{ID: "quiz-t", TimeLimit: 300}
	f := newFixture(t, quiz, 3, tenQuestionBank()...)

	require.NoError(t, f.session.Start(context.Background(), 4))
	assert.Equal(t, 120, f.session.Snapshot().Duration)
}

func TestSession_FinishingCancelsTimer(t *testing.T) {
	quiz := domain.QuizDefinition{ID: "quiz-t", TimeLimit: 30}
	q := mcQuestion("a", 1)
	f := newFixture(t, quiz, 1, q)

	require.NoError(t, f.session.Start(context.Background(), 1))
	f.clock.Advance(5)

	_, err := f.session.Submit(correctAnswer(q))
	require.NoError(t, err)
	state, err := f.session.Advance()
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, state)

	f.clock.Advance(60)
	results := f.completions()
	require.Len(t, results, 1)
	assert.Equal(t, ReasonFinished, results[0].Reason)
	assert.Equal(t, 5, results[0].TimeSpent)
	assert.Equal(t, 25, f.session.Snapshot().Remaining)
}

func TestSession_StaleTickAfterRestartIsDiscarded(t *testing.T) {
	quiz := domain.QuizDefinition{ID: "quiz-t", TimeLimit: 20}
	q := mcQuestion("a", 1)
	f := newFixture(t, quiz, 1, q)

	require.NoError(t, f.session.Start(context.Background(), 1))
	stale := f.clock.Capture()
	require.Len(t, stale, 1)

	_, err := f.session.Submit(correctAnswer(q))
	require.NoError(t, err)
	_, err = f.session.Advance()
	require.NoError(t, err)
	require.NoError(t, f.session.Restart())
	assert.Equal(t, StateSetup, f.session.State())

	require.NoError(t, f.session.Start(context.Background(), 1))
	before := f.session.Snapshot()
	assert.Equal(t, "play-2", before.PlayID)
	assert.Equal(t, 20, before.Remaining)

	// a tick from the first play-through arrives late
	stale[0]()

	after := f.session.Snapshot()
	assert.Equal(t, StateActive, after.State)
	assert.Equal(t, 20, after.Remaining)

	f.clock.Advance(1)
	assert.Equal(t, 19, f.session.Snapshot().Remaining)
}

func TestSession_LateTickAfterCompletionIsNoop(t *testing.T) {
	quiz := domain.QuizDefinition{ID: "quiz-t", TimeLimit: 2}
	q := mcQuestion("a", 1)
	f := newFixture(t, quiz, 1, q)

	require.NoError(t, f.session.Start(context.Background(), 1))
	pending := f.clock.Capture()
	_, _ = f.session.Submit(correctAnswer(q))
	_, _ = f.session.Advance()

	pending[0]()
	pending[0]()

	snap := f.session.Snapshot()
	assert.Equal(t, ReasonFinished, snap.Reason)
	assert.Len(t, f.completions(), 1)
}

func TestSession_AtMostOneAnswer(t *testing.T) {
	quiz := domain.QuizDefinition{ID: "quiz-1"}
	q := mcQuestion("a", 1)
	f := newFixture(t, quiz, 1, q, mcQuestion("b", 1))

	require.NoError(t, f.session.Start(context.Background(), 2))
	current := *f.session.Snapshot().Current

	first, err := f.session.Submit("wrong-id")
	require.NoError(t, err)
	assert.True(t, first.Accepted)
	assert.False(t, first.Record.IsCorrect)

	second, err := f.session.Submit(correctAnswer(current))
	require.NoError(t, err)
	assert.False(t, second.Accepted)
	assert.Equal(t, first.Record, second.Record)

	assert.Len(t, f.recorder.answers, 1)
	assert.Equal(t, 0, f.session.Summary().EarnedPoints)
}

func TestSession_RevealsCorrectAnswer(t *testing.T) {
	q := mcQuestion("a", 1)

	t.Run("enabled", func(t *testing.T) {
		f := newFixture(t, domain.QuizDefinition{ID: "quiz-1", ShowCorrectAnswer: true}, 1, q)
		require.NoError(t, f.session.Start(context.Background(), 1))
		sub, err := f.session.Submit("a-a")
		require.NoError(t, err)
		assert.Equal(t, "Right", sub.CorrectAnswer)
		assert.Equal(t, "Because a", sub.Explanation)
		assert.True(t, sub.IsLast)
	})

	t.Run("disabled", func(t *testing.T) {
		f := newFixture(t, domain.QuizDefinition{ID: "quiz-1"}, 1, q)
		require.NoError(t, f.session.Start(context.Background(), 1))
		sub, err := f.session.Submit("a-a")
		require.NoError(t, err)
		assert.Empty(t, sub.CorrectAnswer)
	})

	t.Run("not shown for correct answers", func(t *testing.T) {
		f := newFixture(t, domain.QuizDefinition{ID: "quiz-1", ShowCorrectAnswer: true}, 1, q)
		require.NoError(t, f.session.Start(context.Background(), 1))
		sub, err := f.session.Submit("a-b")
		require.NoError(t, err)
		assert.Empty(t, sub.CorrectAnswer)
	})
}

func TestSession_InvalidTransitions(t *testing.T) {
	quiz := domain.QuizDefinition{ID: "quiz-1"}
	q := mcQuestion("a", 1)
	f := newFixture(t, quiz, 1, q, mcQuestion("b", 1))
	s := f.session

	_, err := s.Submit("x")
	assert.True(t, domain.IsCode(err, domain.CodeInvalidState))
	_, err = s.Advance()
	assert.True(t, domain.IsCode(err, domain.CodeInvalidState))
	assert.True(t, domain.IsCode(s.Restart(), domain.CodeInvalidState))
	_, err = s.Review()
	assert.True(t, domain.IsCode(err, domain.CodeInvalidState))

	assert.True(t, domain.IsCode(s.Start(context.Background(), 0), domain.CodeInvalidInput))
	assert.Equal(t, StateSetup, s.State())

	require.NoError(t, s.Start(context.Background(), 2))
	assert.True(t, domain.IsCode(s.Start(context.Background(), 2), domain.CodeInvalidState))

	_, err = s.Advance()
	assert.True(t, domain.IsCode(err, domain.CodeInvalidState), "advance requires an answer")

}

func TestSession_BlankAnswers(t *testing.T) {
	t.Run("choice is graded incorrect", func(t *testing.T) {
		quiz := domain.QuizDefinition{ID: "quiz-1"}
		f := newFixture(t, quiz, 1, mcQuestion("a", 2), tfQuestion("b", true))
		require.NoError(t, f.session.Start(context.Background(), 2))

		for i := 0; i < 2; i++ {
			sub, err := f.session.Submit("   ")
			require.NoError(t, err)
			assert.True(t, sub.Accepted)
			assert.False(t, sub.Record.IsCorrect)
			assert.Zero(t, sub.Record.PointsEarned)
			_, err = f.session.Advance()
			require.NoError(t, err)
		}

		assert.Equal(t, StateCompleted, f.session.State())
		assert.Equal(t, 0, f.session.Summary().EarnedPoints)
		assert.Len(t, f.recorder.answers, 2)
	})

	t.Run("short answer is rejected", func(t *testing.T) {
		quiz := domain.QuizDefinition{ID: "quiz-1"}
		f := newFixture(t, quiz, 1, saQuestion("a", domain.AnswerKey{Text: "Paris"}))
		require.NoError(t, f.session.Start(context.Background(), 1))

		_, err := f.session.Submit(" \t")
		assert.True(t, domain.IsCode(err, domain.CodeInvalidInput))
		assert.Nil(t, f.session.Snapshot().CurrentRecord)
		assert.Empty(t, f.recorder.answers)

		sub, err := f.session.Submit("paris")
		require.NoError(t, err)
		assert.True(t, sub.Record.IsCorrect)
	})
}

func TestSession_StartNotFound(t *testing.T) {
	quiz := domain.QuizDefinition{ID: "empty"}

	t.Run("empty bank", func(t *testing.T) {
		f := newFixture(t, quiz, 1)
		err := f.session.Start(context.Background(), 3)
		assert.True(t, domain.IsNotFound(err))
		assert.Equal(t, StateSetup, f.session.State())
		assert.Empty(t, f.recorder.begins)
	})

	t.Run("bodies missing", func(t *testing.T) {
		f := newFixture(t, quiz, 1)
		f.source.ids = []string{"ghost-1", "ghost-2"}
		err := f.session.Start(context.Background(), 2)
		assert.True(t, domain.IsNotFound(err))
		assert.Equal(t, StateSetup, f.session.State())
	})

	t.Run("store error is returned", func(t *testing.T) {
		f := newFixture(t, quiz, 1, mcQuestion("a", 1))
		f.source.idsErr = errors.New("connection refused")
		err := f.session.Start(context.Background(), 1)
		assert.EqualError(t, err, "connection refused")
		assert.Equal(t, StateSetup, f.session.State())
	})
}

func TestSession_PartialBodiesKeepSampledOrder(t *testing.T) {
	quiz := domain.QuizDefinition{ID: "quiz-1"}
	f := newFixture(t, quiz, 5, mcQuestion("a", 1), mcQuestion("b", 1), mcQuestion("c", 1))
	f.source.ids = append(f.source.ids, "ghost")

	require.NoError(t, f.session.Start(context.Background(), 4))
	assert.Equal(t, 3, f.session.Snapshot().QuestionCount)
}

func TestSession_ClampsRequestedCount(t *testing.T) {
	quiz := domain.QuizDefinition{ID: "quiz-1"}
	f := newFixture(t, quiz, 5, mcQuestion("a", 1), mcQuestion("b", 1))

	require.NoError(t, f.session.Start(context.Background(), 50))
	assert.Equal(t, 2, f.session.Snapshot().QuestionCount)
}

func TestSession_Review(t *testing.T) {
	q1, q2 := mcQuestion("a", 1), tfQuestion("b", true)

	t.Run("allowed", func(t *testing.T) {
		f := newFixture(t, domain.QuizDefinition{ID: "quiz-1", AllowReview: true}, 1, q1, q2)
		require.NoError(t, f.session.Start(context.Background(), 2))
		answerAll(t, f.session, func(q domain.Question) string { return "wrong" })

		items, err := f.session.Review()
		require.NoError(t, err)
		require.Len(t, items, 2)
		for i, item := range items {
			assert.Equal(t, i, item.Index)
			require.NotNil(t, item.Record)
			assert.False(t, item.Record.IsCorrect)
			assert.NotEmpty(t, item.CorrectAnswer)
		}
	})

	t.Run("disallowed", func(t *testing.T) {
		f := newFixture(t, domain.QuizDefinition{ID: "quiz-1"}, 1, q1)
		require.NoError(t, f.session.Start(context.Background(), 1))
		answerAll(t, f.session, func(q domain.Question) string { return "wrong" })

		_, err := f.session.Review()
		assert.True(t, domain.IsCode(err, domain.CodeInvalidState))
	})
}

func TestSession_RestartResamples(t *testing.T) {
	quiz := domain.QuizDefinition{ID: "quiz-1", PassScore: 50}
	f := newFixture(t, quiz, 9, tenQuestionBank()...)

	require.NoError(t, f.session.Start(context.Background(), 3))
	answerAll(t, f.session, correctAnswer)
	assert.Equal(t, 50, f.session.Summary().PassScore)

	require.NoError(t, f.session.Restart())
	snap := f.session.Snapshot()
	assert.Equal(t, StateSetup, snap.State)
	assert.Zero(t, snap.QuestionCount)
	assert.Zero(t, snap.Summary.TotalPoints)

	require.NoError(t, f.session.Start(context.Background(), 3))
	assert.Equal(t, "play-2", f.session.Snapshot().PlayID)
	assert.Nil(t, f.session.Snapshot().CurrentRecord)
	assert.Len(t, f.recorder.begins, 2)
}

func TestSession_UntimedTimeSpentUsesWallClock(t *testing.T) {
	quiz := domain.QuizDefinition{ID: "quiz-1"}
	q := mcQuestion("a", 1)
	f := newFixture(t, quiz, 1, q)

	require.NoError(t, f.session.Start(context.Background(), 1))
	f.clock.Advance(42)
	_, _ = f.session.Submit(correctAnswer(q))
	_, _ = f.session.Advance()

	results := f.completions()
	require.Len(t, results, 1)
	assert.Equal(t, 42, results[0].TimeSpent)
}

func TestSession_CloseStopsTimer(t *testing.T) {
	quiz := domain.QuizDefinition{ID: "quiz-t", TimeLimit: 10}
	f := newFixture(t, quiz, 1, mcQuestion("a", 1))

	require.NoError(t, f.session.Start(context.Background(), 1))
	f.session.Close()
	f.clock.Advance(20)

	assert.Equal(t, StateActive, f.session.State())
	assert.Empty(t, f.completions())
}

func TestSession_ConcurrentSubmitsAcceptOne(t *testing.T) {
	quiz := domain.QuizDefinition{ID: "quiz-1"}
	q := mcQuestion("a", 1)
	f := newFixture(t, quiz, 1, q)
	require.NoError(t, f.session.Start(context.Background(), 1))

	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sub, err := f.session.Submit(correctAnswer(q))
			if err == nil && sub.Accepted {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, accepted)
}
