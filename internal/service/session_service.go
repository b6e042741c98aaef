package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"quiz-master/internal/config"
	"quiz-master/internal/domain"
	"quiz-master/internal/dto"
	"quiz-master/internal/engine"
	"quiz-master/internal/logger"
	"quiz-master/internal/util"

	"go.uber.org/zap"
)

const resultCacheTimeout = 3 * time.Second

// SessionService drives quiz sessions held in a SessionRegistry.
type SessionService interface {
	Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	Get(ctx context.Context, sessionID string) (*dto.SessionResponse, error)
	Start(ctx context.Context, sessionID string, count int) (*dto.SessionResponse, error)
	Submit(ctx context.Context, sessionID, answer string) (*dto.SubmitAnswerResponse, error)
	Advance(ctx context.Context, sessionID string) (*dto.SessionResponse, error)
	Restart(ctx context.Context, sessionID string) (*dto.SessionResponse, error)
	Result(ctx context.Context, sessionID string) (*dto.ResultResponse, error)
	Review(ctx context.Context, sessionID string) (*dto.ReviewResponse, error)
	Close(ctx context.Context, sessionID string) error
}

type sessionService struct {
	store    domain.QuizStore
	sink     domain.ProgressSink
	results  ResultCacheService
	tokens   TokenIssuer
	registry *SessionRegistry
	cfg      config.QuizConfig
	opts     []engine.Option
}

// NewSessionService wires the session engine to its collaborators. sink may be nil,
// in which case no progress is persisted. opts are applied to every new session.
func NewSessionService(
	store domain.QuizStore,
	sink domain.ProgressSink,
	results ResultCacheService,
	tokens TokenIssuer,
	registry *SessionRegistry,
	cfg config.QuizConfig,
	opts ...engine.Option,
) SessionService {
	if results == nil {
		results = &noopResultCacheService{}
	}
	return &sessionService{
		store:    store,
		sink:     sink,
		results:  results,
		tokens:   tokens,
		registry: registry,
		cfg:      cfg,
		opts:     opts,
	}
}

func (s *sessionService) Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	var (
		def *domain.QuizDefinition
		err error
	)
	if slug := strings.TrimSpace(req.QuizSlug); slug != "" {
		def, err = s.store.GetQuizDefinitionBySlug(ctx, slug)
	} else {
		def, err = s.store.GetQuizDefinitionByID(ctx, strings.TrimSpace(req.QuizID))
	}
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, err
		}
		return nil, domain.NewInternalError("failed to load quiz", err)
	}

	id := util.NewULID()
	token, expiresAt, err := s.tokens.Issue(id, def.ID)
	if err != nil {
		return nil, err
	}

	entry := &sessionEntry{}
	opts := []engine.Option{
		engine.WithDefaultPassScore(s.cfg.DefaultPassScore),
		engine.OnComplete(func(res engine.Result) { s.onComplete(entry, res) }),
	}
	if s.sink != nil {
		entry.recorder = NewAdvisoryRecorder(s.sink, id, s.cfg.ProgressTimeout, s.cfg.ProgressQueueSize)
		opts = append(opts, engine.WithRecorder(entry.recorder))
	}
	opts = append(opts, s.opts...)
	entry.session = engine.NewSession(id, *def, s.store, opts...)
	s.registry.put(id, entry)

	logger.Get().Info("Quiz session created",
		zap.String("session_id", id),
		zap.String("quiz_id", def.ID),
		zap.String("slug", def.Slug))

	return &dto.CreateSessionResponse{
		SessionID: id,
		Token:     token,
		ExpiresAt: expiresAt,
		Session:   *toSessionResponse(*def, entry.session.Snapshot()),
	}, nil
}

// onComplete runs on the goroutine that completed the session, which may be the countdown.
func (s *sessionService) onComplete(entry *sessionEntry, res engine.Result) {
	entry.setResult(res)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), resultCacheTimeout)
		defer cancel()
		if err := s.results.Put(ctx, res.SessionID, toResultResponse(res)); err != nil {
			logger.Get().Warn("Failed to cache session result",
				zap.String("session_id", res.SessionID), zap.Error(err))
		}
	}()
}

func (s *sessionService) lookup(sessionID string) (*sessionEntry, error) {
	entry, ok := s.registry.get(sessionID)
	if !ok {
		return nil, domain.NewSessionNotFoundError(sessionID)
	}
	return entry, nil
}

func (s *sessionService) view(entry *sessionEntry) *dto.SessionResponse {
	return toSessionResponse(entry.session.Quiz(), entry.session.Snapshot())
}

func (s *sessionService) Get(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
	entry, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(entry), nil
}

func (s *sessionService) Start(ctx context.Context, sessionID string, count int) (*dto.SessionResponse, error) {
	if limit := s.cfg.MaxQuestionCount; limit > 0 && count > limit {
		return nil, domain.ValidationErrors{domain.NewOutOfRangeError("count", count, 1, limit)}
	}
	entry, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	if err := entry.session.Start(ctx, count); err != nil {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		return nil, domain.NewInternalError("failed to start session", err)
	}
	return s.view(entry), nil
}

func (s *sessionService) Submit(ctx context.Context, sessionID, answer string) (*dto.SubmitAnswerResponse, error) {
	entry, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	sub, err := entry.session.Submit(answer)
	if err != nil {
		return nil, err
	}
	return toSubmitAnswerResponse(sub), nil
}

func (s *sessionService) Advance(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
	entry, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	if _, err := entry.session.Advance(); err != nil {
		return nil, err
	}
	return s.view(entry), nil
}

func (s *sessionService) Restart(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
	entry, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	if err := entry.session.Restart(); err != nil {
		return nil, err
	}
	return s.view(entry), nil
}

// Result reports the live score of a session, or its final score once completed.
// Evicted sessions are answered from the result cache.
func (s *sessionService) Result(ctx context.Context, sessionID string) (*dto.ResultResponse, error) {
	entry, ok := s.registry.get(sessionID)
	if !ok {
		cached, err := s.results.Get(ctx, sessionID)
		if err != nil {
			if !errors.Is(err, ErrResultNotFound) {
				logger.Get().Warn("Result cache lookup failed", zap.String("session_id", sessionID), zap.Error(err))
			}
			return nil, domain.NewSessionNotFoundError(sessionID)
		}
		return cached, nil
	}

	snap := entry.session.Snapshot()
	if res := entry.lastResult(); snap.State == engine.StateCompleted && res != nil && res.PlayID == snap.PlayID {
		return toResultResponse(*res), nil
	}

	resp := &dto.ResultResponse{
		SessionID: sessionID,
		QuizID:    entry.session.Quiz().ID,
		State:     string(snap.State),
		Reason:    string(snap.Reason),
		Summary:   toSummaryResponse(snap.Summary),
	}
	if snap.Timed {
		resp.TimeSpentSeconds = snap.Duration - snap.Remaining
	} else if snap.State != engine.StateSetup {
		resp.TimeSpentSeconds = int(time.Since(snap.StartedAt) / time.Second)
	}
	resp.TimeSpent = engine.FormatClock(resp.TimeSpentSeconds)
	return resp, nil
}

func (s *sessionService) Review(ctx context.Context, sessionID string) (*dto.ReviewResponse, error) {
	entry, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	items, err := entry.session.Review()
	if err != nil {
		return nil, err
	}
	return toReviewResponse(sessionID, items), nil
}

func (s *sessionService) Close(ctx context.Context, sessionID string) error {
	if !s.registry.Remove(sessionID) {
		return domain.NewSessionNotFoundError(sessionID)
	}
	logger.Get().Info("Quiz session closed", zap.String("session_id", sessionID))
	return nil
}
