// Package history provides the per-session bounded message log.
// Each session keeps at most the 20 most recent messages; older
// entries are evicted oldest-first.
package history

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

const (
	// MaxMessagesPerSession is the per-session log cap.
	MaxMessagesPerSession = 20
	// DefaultMaxSessions bounds how many session logs are kept in
	// memory before the least recently used one is dropped.
	DefaultMaxSessions = 1000
)

// Message is one exchanged message, immutable once created.
// Suggestions carries the first follow-up chips of a reply (at most 3);
// it is empty on user messages.
type Message struct {
	ID          string   `json:"id"`
	Content     string   `json:"content"`
	FromUser    bool     `json:"from_user"`
	Timestamp   int64    `json:"timestamp_ms"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Store is the session message log contract. Unknown sessions are not
// an error: History returns an empty slice and Append starts a new log.
type Store interface {
	Append(ctx context.Context, sessionID string, msg Message) error
	History(ctx context.Context, sessionID string) ([]Message, error)
}

// MemoryStore keeps session logs in process memory. The number of
// tracked sessions is LRU-bounded; within a session the log is a FIFO
// window of MaxMessagesPerSession entries.
type MemoryStore struct {
	sessions *lru.Cache[string, *sessionLog]
	logger   *zap.Logger
	mu       sync.Mutex
}

type sessionLog struct {
	messages []Message
}

// NewMemoryStore creates an in-memory store bounded to maxSessions.
func NewMemoryStore(maxSessions int, logger *zap.Logger) *MemoryStore {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	sessions, _ := lru.New[string, *sessionLog](maxSessions)
	return &MemoryStore{
		sessions: sessions,
		logger:   logger,
	}
}

// Append records msg at the tail of the session's log, dropping the
// oldest entry once the cap is exceeded.
func (s *MemoryStore) Append(_ context.Context, sessionID string, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log, ok := s.sessions.Get(sessionID)
	if !ok {
		log = &sessionLog{}
		s.sessions.Add(sessionID, log)
	}

	log.messages = append(log.messages, msg)
	if len(log.messages) > MaxMessagesPerSession {
		log.messages = log.messages[len(log.messages)-MaxMessagesPerSession:]
	}

	s.logger.Debug("Message appended",
		zap.String("session_id", sessionID),
		zap.Bool("from_user", msg.FromUser),
		zap.Int("history_len", len(log.messages)))
	return nil
}

// History returns a copy of the session's log in insertion order.
func (s *MemoryStore) History(_ context.Context, sessionID string) ([]Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log, ok := s.sessions.Get(sessionID)
	if !ok {
		return []Message{}, nil
	}
	return append([]Message(nil), log.messages...), nil
}

// Sessions reports how many session logs are currently held.
func (s *MemoryStore) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions.Len()
}
