package service

import (
	"sync"
	"time"

	"quiz-master/internal/engine"
	"quiz-master/internal/logger"

	"go.uber.org/zap"
)

type sessionEntry struct {
	session  *engine.Session
	recorder *AdvisoryRecorder

	mu       sync.Mutex
	lastSeen time.Time
	result   *engine.Result
}

func (e *sessionEntry) setResult(res engine.Result) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.result = &res
}

func (e *sessionEntry) lastResult() *engine.Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.result
}

func (e *sessionEntry) touch(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastSeen = now
}

func (e *sessionEntry) idleSince() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastSeen
}

// release stops the countdown and flushes queued advisory writes, in the
// background unless wait is set.
func (e *sessionEntry) release(wait bool) {
	e.session.Close()
	if e.recorder == nil {
		return
	}
	if wait {
		e.recorder.Close()
		return
	}
	go e.recorder.Close()
}

// SessionRegistry keeps live sessions in memory. Sessions idle for longer than
// the TTL are evicted by Sweep.
type SessionRegistry struct {
	mu      sync.RWMutex
	entries map[string]*sessionEntry
	ttl     time.Duration
	now     func() time.Time

	stopOnce sync.Once
	stop     chan struct{}
}

func NewSessionRegistry(ttl time.Duration) *SessionRegistry {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &SessionRegistry{
		entries: make(map[string]*sessionEntry),
		ttl:     ttl,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
}

func (r *SessionRegistry) put(id string, e *sessionEntry) {
	e.touch(r.now())
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[id] = e
}

func (r *SessionRegistry) get(id string) (*sessionEntry, bool) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()
	if ok {
		e.touch(r.now())
	}
	return e, ok
}

// Remove evicts id and releases its resources. It reports whether id was present.
func (r *SessionRegistry) Remove(id string) bool {
	r.mu.Lock()
	e, ok := r.entries[id]
	delete(r.entries, id)
	r.mu.Unlock()
	if ok {
		e.release(false)
	}
	return ok
}

func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Sweep evicts every session idle for longer than the TTL and returns how many were removed.
func (r *SessionRegistry) Sweep() int {
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	var expired []*sessionEntry
	for id, e := range r.entries {
		if e.idleSince().Before(cutoff) {
			expired = append(expired, e)
			delete(r.entries, id)
		}
	}
	r.mu.Unlock()

	for _, e := range expired {
		e.release(false)
	}
	if len(expired) > 0 {
		logger.Get().Info("Evicted idle quiz sessions", zap.Int("count", len(expired)))
	}
	return len(expired)
}

// StartJanitor runs Sweep every interval until Close is called.
func (r *SessionRegistry) StartJanitor(interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.Sweep()
			case <-r.stop:
				return
			}
		}
	}()
}

// Close stops the janitor and releases every remaining session.
func (r *SessionRegistry) Close() {
	r.stopOnce.Do(func() { close(r.stop) })

	r.mu.Lock()
	entries := r.entries
	r.entries = make(map[string]*sessionEntry)
	r.mu.Unlock()

	for _, e := range entries {
		e.release(true)
	}
}
