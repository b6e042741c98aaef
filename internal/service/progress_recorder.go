package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"quiz-master/internal/domain"
	"quiz-master/internal/logger"

	"go.uber.org/zap"
)

const (
	defaultProgressTimeout   = 5 * time.Second
	defaultProgressQueueSize = 64
)

var errNoAttempt = errors.New("no attempt recorded for this play-through")

type progressJob struct {
	name string
	run  func(ctx context.Context, w *progressWorker) error
}

// progressWorker is the state owned by the recorder goroutine.
type progressWorker struct {
	quizID    string
	playID    string
	attemptID string
}

// AdvisoryRecorder forwards session events to a domain.ProgressSink on its own
// goroutine. Events of one session are written in order. Enqueueing never blocks:
// when the queue is full the event is dropped. Sink failures are logged and
// never retried. Writes that follow a failed attempt start are dropped.
type AdvisoryRecorder struct {
	sink      domain.ProgressSink
	sessionID string
	timeout   time.Duration

	mu     sync.Mutex
	closed bool
	jobs   chan progressJob
	done   chan struct{}
}

// NewAdvisoryRecorder starts the recorder goroutine for one session.
func NewAdvisoryRecorder(sink domain.ProgressSink, sessionID string, timeout time.Duration, queueSize int) *AdvisoryRecorder {
	if timeout <= 0 {
		timeout = defaultProgressTimeout
	}
	if queueSize <= 0 {
		queueSize = defaultProgressQueueSize
	}
	r := &AdvisoryRecorder{
		sink:      sink,
		sessionID: sessionID,
		timeout:   timeout,
		jobs:      make(chan progressJob, queueSize),
		done:      make(chan struct{}),
	}
	go r.loop()
	return r
}

// Begin opens a new attempt. Each play-through of a session is its own attempt.
func (r *AdvisoryRecorder) Begin(quizID, playID string) {
	r.enqueue(progressJob{name: "attempt_start", run: func(ctx context.Context, w *progressWorker) error {
		*w = progressWorker{quizID: quizID, playID: playID}
		attemptID, err := r.sink.RecordAttemptStart(ctx, quizID, playID)
		if err != nil {
			return err
		}
		w.attemptID = attemptID
		return nil
	}})
}

func (r *AdvisoryRecorder) Answer(entry domain.AnswerLog) {
	r.enqueue(progressJob{name: "answer", run: func(ctx context.Context, w *progressWorker) error {
		if w.attemptID == "" {
			return errNoAttempt
		}
		return r.sink.RecordAnswer(ctx, w.attemptID, entry)
	}})
}

// Finish stores the final score and bumps the quiz's attempt counter.
func (r *AdvisoryRecorder) Finish(result domain.AttemptResult) {
	r.enqueue(progressJob{name: "attempt_finish", run: func(ctx context.Context, w *progressWorker) error {
		if w.attemptID == "" {
			return errNoAttempt
		}
		if err := r.sink.RecordAttemptFinish(ctx, w.attemptID, result); err != nil {
			return err
		}
		return r.sink.IncrementAttemptCounter(ctx, w.quizID)
	}})
}

// Close stops accepting events and waits until queued ones have been written.
func (r *AdvisoryRecorder) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		<-r.done
		return
	}
	r.closed = true
	close(r.jobs)
	r.mu.Unlock()
	<-r.done
}

func (r *AdvisoryRecorder) enqueue(job progressJob) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	select {
	case r.jobs <- job:
	default:
		logger.Get().Warn("Progress queue full, dropping advisory write",
			zap.String("session_id", r.sessionID),
			zap.String("write", job.name))
	}
}

func (r *AdvisoryRecorder) loop() {
	defer close(r.done)
	var w progressWorker
	for job := range r.jobs {
		r.run(job, &w)
	}
}

func (r *AdvisoryRecorder) run(job progressJob, w *progressWorker) {
	defer func() {
		if p := recover(); p != nil {
			logger.Get().Error("Advisory write panicked",
				zap.String("session_id", r.sessionID),
				zap.String("write", job.name),
				zap.Any("panic", p))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := job.run(ctx, w); err != nil {
		log := logger.Get().Warn
		if errors.Is(err, errNoAttempt) {
			log = logger.Get().Debug
		}
		log("Advisory write dropped",
			zap.String("session_id", r.sessionID),
			zap.String("play_id", w.playID),
			zap.String("write", job.name),
			zap.Error(err))
	}
}
