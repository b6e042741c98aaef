package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"quiz-master/internal/domain"
	"quiz-master/internal/logger"
	"quiz-master/internal/util"

	"go.uber.org/zap"
)

// TickInterval is the countdown resolution.
const TickInterval = time.Second

// State is the lifecycle state of a Session.
type State string

const (
	StateSetup     State = "setup"
	StateActive    State = "active"
	StateCompleted State = "completed"
)

// CompletionReason says why a session left Active.
type CompletionReason string

const (
	ReasonFinished    CompletionReason = "finished"
	ReasonTimeExpired CompletionReason = "time_expired"
)

// QuestionSource is the part of the question store a session reads from.
type QuestionSource interface {
	GetQuestionIDs(ctx context.Context, quizID string) ([]string, error)
	GetQuestionsByIDs(ctx context.Context, ids []string) ([]domain.Question, error)
}

// Recorder receives advisory progress events. Implementations must return
// without waiting on I/O.
type Recorder interface {
	Begin(quizID, sessionID string)
	Answer(entry domain.AnswerLog)
	Finish(result domain.AttemptResult)
}

type nopRecorder struct{}

func (nopRecorder) Begin(string, string)         {}
func (nopRecorder) Answer(domain.AnswerLog)      {}
func (nopRecorder) Finish(domain.AttemptResult) {}

// Result is handed to completion hooks when a session reaches Completed.
type Result struct {
	SessionID string
	PlayID    string
	QuizID    string
	Reason    CompletionReason
	Summary   Summary
	TimeSpent int
}

// Submission is what the caller learns after submitting an answer.
type Submission struct {
	Accepted      bool // false when the question already had an answer
	Index         int
	QuestionID    string
	Record        domain.AnswerRecord
	Explanation   string
	CorrectAnswer string // set only when the quiz reveals answers and this one was wrong
	IsLast        bool
}

// Snapshot is a read-only view of a session for presentation.
type Snapshot struct {
	SessionID     string
	PlayID        string
	State         State
	Reason        CompletionReason
	CurrentIndex  int
	QuestionCount int
	Current       *domain.Question
	CurrentRecord *domain.AnswerRecord
	Timed         bool
	Duration      int
	Remaining     int
	StartedAt     time.Time
	Summary       Summary
}

// ReviewItem is one question of a completed session with its outcome.
type ReviewItem struct {
	Index         int
	Question      domain.Question
	Record        *domain.AnswerRecord
	CorrectAnswer string
}

// Option configures a Session.
type Option func(*Session)

func WithClock(c Clock) Option {
	return func(s *Session) { s.clock = c }
}

func WithSampler(sm *Sampler) Option {
	return func(s *Session) { s.sampler = sm }
}

func WithRecorder(r Recorder) Option {
	return func(s *Session) { s.recorder = r }
}

// WithDefaultPassScore sets the threshold used when the quiz has none.
func WithDefaultPassScore(score int) Option {
	return func(s *Session) { s.defaultPassScore = score }
}

// WithIDGenerator replaces the play id generator.
func WithIDGenerator(f func() string) Option {
	return func(s *Session) { s.newID = f }
}

// OnComplete registers a hook run after the session reaches Completed.
// Hooks run outside the session lock but must not block.
func OnComplete(f func(Result)) Option {
	return func(s *Session) { s.hooks = append(s.hooks, f) }
}

// Session is one play-through of a quiz: Setup, then Active, then Completed.
// All methods are safe to call from the countdown goroutine and the caller at once;
// operations are serialized so a submit fully resolves before the next event.
type Session struct {
	mu sync.Mutex

	id               string
	quiz             domain.QuizDefinition
	source           QuestionSource
	sampler          *Sampler
	clock            Clock
	recorder         Recorder
	newID            func() string
	defaultPassScore int
	hooks            []func(Result)

	state     State
	reason    CompletionReason
	playID    string
	requested int
	bankSize  int
	questions []domain.Question
	current   int
	records   map[int]domain.AnswerRecord

	countdown Countdown
	duration  int
	timer     Stopper
	// epoch changes on every transition out of Active so a tick scheduled for
	// an earlier play-through is recognised and dropped.
	epoch uint64

	startedAt   time.Time
	completedAt time.Time
}

// NewSession creates a session in Setup for quiz.
func NewSession(id string, quiz domain.QuizDefinition, source QuestionSource, opts ...Option) *Session {
	s := &Session{
		id:               id,
		quiz:             quiz,
		source:           source,
		clock:            SystemClock(),
		recorder:         nopRecorder{},
		newID:            util.NewULID,
		defaultPassScore: domain.DefaultPassScore,
		state:            StateSetup,
		records:          map[int]domain.AnswerRecord{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.sampler == nil {
		s.sampler = NewTimeSeededSampler()
	}
	return s
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Quiz() domain.QuizDefinition {
	return s.quiz
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start samples count questions from the bank and moves Setup to Active.
func (s *Session) Start(ctx context.Context, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateSetup {
		return domain.NewInvalidStateError(fmt.Sprintf("cannot start a session in state %s", s.state))
	}
	if count < 1 {
		return domain.NewInvalidInputError("question count must be at least 1")
	}

	ids, err := s.source.GetQuestionIDs(ctx, s.quiz.ID)
	if err != nil {
		return err
	}
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return domain.NewNotFoundError(fmt.Sprintf("quiz %s has no questions", s.quiz.ID))
	}

	sampled := s.sampler.Sample(ids, count)
	bodies, err := s.source.GetQuestionsByIDs(ctx, sampled)
	if err != nil {
		return err
	}
	questions := orderByIDs(sampled, bodies)
	if len(questions) == 0 {
		return domain.NewNotFoundError(fmt.Sprintf("questions of quiz %s could not be loaded", s.quiz.ID))
	}
	if len(questions) < len(sampled) {
		logger.Get().Warn("Question store returned fewer questions than sampled",
			zap.String("session_id", s.id),
			zap.Int("sampled", len(sampled)),
			zap.Int("loaded", len(questions)))
	}

	s.playID = s.newID()
	s.requested = count
	s.bankSize = len(ids)
	s.questions = questions
	s.current = 0
	s.records = make(map[int]domain.AnswerRecord, len(questions))
	s.reason = ""
	s.startedAt = s.clock.Now()
	s.completedAt = time.Time{}
	s.epoch++
	s.state = StateActive

	s.duration = EffectiveDuration(s.quiz.TimeLimit, s.bankSize, len(questions))
	s.countdown = Countdown{}
	if s.duration > 0 {
		s.countdown.Start(s.duration)
		s.scheduleTickLocked()
	}

	s.recorder.Begin(s.quiz.ID, s.playID)

	logger.Get().Info("Quiz session started",
		zap.String("session_id", s.id),
		zap.String("play_id", s.playID),
		zap.String("quiz_id", s.quiz.ID),
		zap.Int("requested", count),
		zap.Int("selected", len(questions)),
		zap.Int("duration_seconds", s.duration))
	return nil
}

// Submit grades answer for the current question. A second submit for the same
// question is a no-op that returns the first record with Accepted=false.
// A blank short answer is rejected; a blank choice answer is graded incorrect.
func (s *Session) Submit(answer string) (Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateActive {
		return Submission{}, domain.NewInvalidStateError(fmt.Sprintf("cannot submit an answer in state %s", s.state))
	}
	if rec, ok := s.records[s.current]; ok {
		return s.submissionLocked(false, rec), nil
	}

	q := &s.questions[s.current]
	submitted := strings.TrimSpace(answer)
	if submitted == "" && q.Type == domain.QuestionShortAnswer {
		return Submission{}, domain.NewInvalidInputError("answer is required")
	}

	g := GradeAnswer(q, submitted)
	rec := domain.AnswerRecord{
		Answer:       submitted,
		IsCorrect:    g.Correct,
		PointsEarned: g.Points,
		AnsweredAt:   s.clock.Now(),
	}
	s.records[s.current] = rec

	s.recorder.Answer(domain.AnswerLog{
		QuestionID:   q.ID,
		QuestionType: q.Type,
		Answer:       submitted,
		IsCorrect:    g.Correct,
		PointsEarned: g.Points,
		AnsweredAt:   rec.AnsweredAt,
	})

	logger.Get().Debug("Answer graded",
		zap.String("session_id", s.id),
		zap.Int("index", s.current),
		zap.String("question_id", q.ID),
		zap.Bool("correct", g.Correct),
		zap.Int("points", g.Points))

	return s.submissionLocked(true, rec), nil
}

func (s *Session) submissionLocked(accepted bool, rec domain.AnswerRecord) Submission {
	q := &s.questions[s.current]
	sub := Submission{
		Accepted:    accepted,
		Index:       s.current,
		QuestionID:  q.ID,
		Record:      rec,
		Explanation: q.Explanation,
		IsLast:      s.current == len(s.questions)-1,
	}
	if s.quiz.ShowCorrectAnswer && !rec.IsCorrect {
		sub.CorrectAnswer = q.CorrectAnswerText()
	}
	return sub
}

// Advance moves to the next question, or completes the session after the last one.
// The current question must have been answered.
func (s *Session) Advance() (State, error) {
	s.mu.Lock()

	if s.state != StateActive {
		state := s.state
		s.mu.Unlock()
		return state, domain.NewInvalidStateError(fmt.Sprintf("cannot advance a session in state %s", state))
	}
	if _, ok := s.records[s.current]; !ok {
		s.mu.Unlock()
		return StateActive, domain.NewInvalidStateError("the current question has not been answered")
	}

	if s.current < len(s.questions)-1 {
		s.current++
		s.mu.Unlock()
		return StateActive, nil
	}

	res := s.completeLocked(ReasonFinished)
	s.mu.Unlock()
	s.notify(res)
	return StateCompleted, nil
}

// Restart discards the completed play-through and returns to Setup.
func (s *Session) Restart() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateCompleted {
		return domain.NewInvalidStateError(fmt.Sprintf("cannot restart a session in state %s", s.state))
	}
	s.stopTimerLocked()
	s.epoch++
	s.state = StateSetup
	s.reason = ""
	s.questions = nil
	s.records = map[int]domain.AnswerRecord{}
	s.current = 0
	s.duration = 0
	s.countdown = Countdown{}

	logger.Get().Info("Quiz session restarted", zap.String("session_id", s.id))
	return nil
}

// Close stops the countdown without completing the session. Used when a session
// is discarded.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimerLocked()
	s.epoch++
}

// Summary returns the current score. It is valid in every state.
func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summaryLocked()
}

func (s *Session) summaryLocked() Summary {
	return Summarize(s.questions, s.records, s.quiz.EffectivePassScore(s.defaultPassScore))
}

// Snapshot returns a copy of the presentable state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		SessionID:     s.id,
		PlayID:        s.playID,
		State:         s.state,
		Reason:        s.reason,
		CurrentIndex:  s.current,
		QuestionCount: len(s.questions),
		Timed:         s.duration > 0,
		Duration:      s.duration,
		Remaining:     s.countdown.Remaining(),
		StartedAt:     s.startedAt,
		Summary:       s.summaryLocked(),
	}
	if s.state == StateActive {
		q := s.questions[s.current]
		snap.Current = &q
		if rec, ok := s.records[s.current]; ok {
			snap.CurrentRecord = &rec
		}
	}
	return snap
}

// Review lists every selected question with its outcome. It requires a completed
// session of a quiz that allows review.
func (s *Session) Review() ([]ReviewItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateCompleted {
		return nil, domain.NewInvalidStateError("review is available only after the session is completed")
	}
	if !s.quiz.AllowReview {
		return nil, domain.NewInvalidStateError("this quiz does not allow review")
	}

	items := make([]ReviewItem, 0, len(s.questions))
	for i, q := range s.questions {
		item := ReviewItem{Index: i, Question: q, CorrectAnswer: q.CorrectAnswerText()}
		if rec, ok := s.records[i]; ok {
			item.Record = &rec
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *Session) scheduleTickLocked() {
	epoch := s.epoch
	s.timer = s.clock.AfterFunc(TickInterval, func() { s.onTick(epoch) })
}

func (s *Session) onTick(epoch uint64) {
	s.mu.Lock()
	if epoch != s.epoch || s.state != StateActive {
		s.mu.Unlock()
		logger.Get().Debug("Discarded stale countdown tick", zap.String("session_id", s.id))
		return
	}

	if _, expired := s.countdown.Tick(); !expired {
		s.scheduleTickLocked()
		s.mu.Unlock()
		return
	}

	res := s.completeLocked(ReasonTimeExpired)
	s.mu.Unlock()
	s.notify(res)
}

func (s *Session) stopTimerLocked() {
	s.countdown.Cancel()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Session) completeLocked(reason CompletionReason) Result {
	s.stopTimerLocked()
	s.epoch++
	s.state = StateCompleted
	s.reason = reason
	s.completedAt = s.clock.Now()

	summary := s.summaryLocked()
	spent := s.timeSpentLocked()
	s.recorder.Finish(domain.AttemptResult{
		EarnedPoints: summary.EarnedPoints,
		TotalPoints:  summary.TotalPoints,
		Percentage:   summary.Percentage,
		TimeSpent:    spent,
		CompletedAt:  s.completedAt,
	})

	logger.Get().Info("Quiz session completed",
		zap.String("session_id", s.id),
		zap.String("play_id", s.playID),
		zap.String("reason", string(reason)),
		zap.Int("earned", summary.EarnedPoints),
		zap.Int("total", summary.TotalPoints),
		zap.Int("percentage", summary.Percentage),
		zap.Bool("passed", summary.Passed))

	return Result{
		SessionID: s.id,
		PlayID:    s.playID,
		QuizID:    s.quiz.ID,
		Reason:    reason,
		Summary:   summary,
		TimeSpent: spent,
	}
}

func (s *Session) timeSpentLocked() int {
	if s.duration > 0 {
		return s.duration - s.countdown.Remaining()
	}
	return int(s.completedAt.Sub(s.startedAt) / time.Second)
}

func (s *Session) notify(res Result) {
	for _, hook := range s.hooks {
		hook(res)
	}
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// orderByIDs re-orders bodies to follow ids; ids without a body are skipped.
func orderByIDs(ids []string, bodies []domain.Question) []domain.Question {
	byID := make(map[string]domain.Question, len(bodies))
	for _, q := range bodies {
		byID[q.ID] = q
	}
	out := make([]domain.Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			out = append(out, q)
		}
	}
	return out
}
