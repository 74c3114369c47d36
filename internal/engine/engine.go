// Package engine orchestrates one conversational exchange: record the
// utterance, update the session context, classify, generate a reply,
// rank suggestions, record the reply.
package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campus-assistant-engine/internal/analytics"
	"github.com/campus-assistant-engine/internal/convo"
	"github.com/campus-assistant-engine/internal/history"
	"github.com/campus-assistant-engine/internal/intent"
	"github.com/campus-assistant-engine/internal/respond"
	"github.com/campus-assistant-engine/internal/suggest"
)

// ErrCommunication is the single failure kind the engine surfaces.
// Callers show a role-agnostic "assistant unavailable" message for it;
// stage detail stays in the wrapped error.
var ErrCommunication = errors.New("assistant communication failure")

const (
	// thinkDelayMin / thinkDelayMax bound the simulated thinking time
	// before a reply is produced.
	thinkDelayMin = 1000 * time.Millisecond
	thinkDelayMax = 3000 * time.Millisecond

	// replySuggestionCap is how many suggestion labels are embedded on
	// the reply message itself.
	replySuggestionCap = 3
)

// DelayFunc waits out the thinking time. Returning a non-nil error
// (typically ctx.Err) means the caller abandoned the request.
type DelayFunc func(ctx context.Context) error

// Config wires the engine's dependencies. Only Logger is required;
// zero values get working defaults (in-memory store, time-seeded rand,
// random 1-3s delay, no analytics).
type Config struct {
	Store       history.Store
	Analytics   analytics.Publisher
	Logger      *zap.Logger
	Rand        *rand.Rand
	Delay       DelayFunc
	MaxSessions int
	Now         func() time.Time
}

// Engine is the conversational facade consumed by the presentation
// layer.
type Engine struct {
	store      history.Store
	tracker    *convo.Tracker
	classifier *intent.Classifier
	generator  *respond.Generator
	ranker     *suggest.Ranker
	analytics  analytics.Publisher
	logger     *zap.Logger
	delay      DelayFunc
	now        func() time.Time

	locks sessionLocks

	totalMessages atomic.Int64
	failures      atomic.Int64
}

// New builds an engine from cfg.
func New(cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	store := cfg.Store
	if store == nil {
		store = history.NewMemoryStore(cfg.MaxSessions, logger)
	}

	classifier, err := intent.NewClassifier(logger)
	if err != nil {
		return nil, fmt.Errorf("create classifier: %w", err)
	}

	rnd := cfg.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	pub := cfg.Analytics
	if pub == nil {
		pub = analytics.Nop{}
	}

	// Each randomized component gets its own stream seeded from cfg.Rand
	// so they never contend on one rand.Rand across goroutines. Seeding
	// cfg.Rand still pins all of them for tests.
	e := &Engine{
		store:      store,
		tracker:    convo.NewTracker(cfg.MaxSessions, logger),
		classifier: classifier,
		generator:  respond.NewGenerator(rand.New(rand.NewSource(rnd.Int63())), logger),
		ranker:     suggest.NewRanker(rand.New(rand.NewSource(rnd.Int63())), logger),
		analytics:  pub,
		logger:     logger,
		now:        cfg.Now,
		locks:      sessionLocks{locks: make(map[string]*sync.Mutex)},
	}
	if e.now == nil {
		e.now = time.Now
	}

	e.delay = cfg.Delay
	if e.delay == nil {
		e.delay = thinkingDelay(rand.New(rand.NewSource(rnd.Int63())))
	}
	return e, nil
}

// SendMessage runs the full pipeline for one inbound utterance and
// returns the reply message plus ranked suggestions. Unknown sessions
// silently start fresh; unrecognized roles degrade to student. If the
// caller cancels ctx during the thinking delay, history keeps the
// already-recorded user message but no reply is delivered.
func (e *Engine) SendMessage(ctx context.Context, utterance, sessionID, roleStr string) (history.Message, []suggest.Suggestion, error) {
	start := e.now()

	role, known := convo.ParseRole(roleStr)
	if !known {
		e.logger.Warn("Unknown role, degrading to student",
			zap.String("role", roleStr),
			zap.String("session_id", sessionID))
		e.analytics.UnknownRole(roleStr)
	}

	lock := e.locks.acquire(sessionID)
	lock.Lock()
	defer lock.Unlock()

	userMsg := history.Message{
		ID:        uuid.New().String(),
		Content:   utterance,
		FromUser:  true,
		Timestamp: e.now().UnixMilli(),
	}
	if err := e.store.Append(ctx, sessionID, userMsg); err != nil {
		return e.fail("record message", err)
	}

	e.tracker.Update(sessionID, utterance, role)

	hist, err := e.store.History(ctx, sessionID)
	if err != nil {
		return e.fail("load history", err)
	}

	kind := e.classifier.Classify(utterance, len(hist))
	snapshot := e.tracker.Get(sessionID)
	replyText := e.generator.Generate(kind, role, utterance, snapshot, hist)
	suggestions := e.ranker.Rank(utterance, role)

	if err := e.delay(ctx); err != nil {
		// Caller gave up while we were "thinking". The user message
		// stays in history; the reply is never materialized.
		e.logger.Debug("Caller abandoned request during thinking delay",
			zap.String("session_id", sessionID))
		return history.Message{}, nil, err
	}

	reply := history.Message{
		ID:          uuid.New().String(),
		Content:     replyText,
		FromUser:    false,
		Timestamp:   e.now().UnixMilli(),
		Suggestions: suggestionLabels(suggestions),
	}
	if err := e.store.Append(ctx, sessionID, reply); err != nil {
		return e.fail("record reply", err)
	}

	e.totalMessages.Add(1)
	e.analytics.MessageProcessed(sessionID, string(role), string(kind), e.now().Sub(start))

	e.logger.Info("Message processed",
		zap.String("session_id", sessionID),
		zap.String("role", string(role)),
		zap.String("intent", string(kind)),
		zap.Int("suggestions", len(suggestions)))
	return reply, suggestions, nil
}

// GetSuggestions returns the role's base suggestion set with no
// contextual augmentation. Stateless; used to pre-populate a UI before
// the first utterance.
func (e *Engine) GetSuggestions(roleStr string) []suggest.Suggestion {
	role, known := convo.ParseRole(roleStr)
	if !known {
		e.analytics.UnknownRole(roleStr)
	}
	return suggest.BaseSet(role)
}

// History exposes the session log for the presentation layer.
func (e *Engine) History(ctx context.Context, sessionID string) ([]history.Message, error) {
	return e.store.History(ctx, sessionID)
}

// Stats reports engine counters for health reporting.
func (e *Engine) Stats() (processed, failures, classified, cacheHits int64) {
	classified, cacheHits = e.classifier.Stats()
	return e.totalMessages.Load(), e.failures.Load(), classified, cacheHits
}

// Close releases component resources.
func (e *Engine) Close() {
	e.classifier.Close()
	e.analytics.Close()
}

func (e *Engine) fail(stage string, err error) (history.Message, []suggest.Suggestion, error) {
	e.failures.Add(1)
	e.logger.Error("Pipeline stage failed", zap.String("stage", stage), zap.Error(err))
	return history.Message{}, nil, fmt.Errorf("%w: %s: %v", ErrCommunication, stage, err)
}

func suggestionLabels(suggestions []suggest.Suggestion) []string {
	n := len(suggestions)
	if n > replySuggestionCap {
		n = replySuggestionCap
	}
	labels := make([]string, 0, n)
	for _, s := range suggestions[:n] {
		labels = append(labels, s.Label)
	}
	return labels
}

// thinkingDelay samples a uniform delay in [thinkDelayMin,
// thinkDelayMax] and waits it out, or returns early with ctx.Err if the
// caller abandons the request.
func thinkingDelay(rnd *rand.Rand) DelayFunc {
	var mu sync.Mutex
	return func(ctx context.Context) error {
		mu.Lock()
		d := thinkDelayMin + time.Duration(rnd.Int63n(int64(thinkDelayMax-thinkDelayMin)+1))
		mu.Unlock()

		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-timer.C:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// sessionLocks hands out one mutex per session id so concurrent
// pipelines for the same session cannot interleave their writes.
// Sessions are independent; there is no cross-session locking.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (sl *sessionLocks) acquire(sessionID string) *sync.Mutex {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	lock, ok := sl.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		sl.locks[sessionID] = lock
	}
	return lock
}
