// Package convo maintains a rolling per-session conversation summary:
// recently discussed topics, a short trailing window of raw utterances,
// and the last-activity timestamp.
package convo

import (
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

const (
	// MaxRecentTopics caps the ordered set of topic labels per session.
	MaxRecentTopics = 5
	// MaxFlowEntries caps the trailing window of utterance snippets.
	MaxFlowEntries = 10
	// SnippetLen is the truncation length for flow entries.
	SnippetLen = 50

	// DefaultMaxSessions bounds how many session contexts are tracked
	// before the least recently used one is dropped.
	DefaultMaxSessions = 1000
)

// Context is the rolling summary for one session. It is mutated only by
// the Tracker; everyone else gets a snapshot copy.
type Context struct {
	SessionID        string    `json:"session_id"`
	UserRole         Role      `json:"user_role"`
	RecentTopics     []string  `json:"recent_topics"`
	ConversationFlow []string  `json:"conversation_flow"`
	LastActivity     time.Time `json:"last_activity"`
}

// topicSynonyms maps each topic label to the substrings that signal it.
// A single utterance may match zero, one, or several labels.
var topicSynonyms = []struct {
	label string
	words []string
}{
	{"course", []string{"cours", "course", "leçon", "lecon", "module", "chapitre"}},
	{"quiz", []string{"quiz", "examen", "évaluation", "evaluation", "qcm", "test"}},
	{"student", []string{"étudiant", "etudiant", "élève", "eleve", "student"}},
	{"teacher", []string{"enseignant", "professeur", "prof", "teacher", "formateur"}},
	{"statistics", []string{"statistique", "stats", "résultat", "resultat", "moyenne", "note"}},
	{"help", []string{"aide", "help", "assistance"}},
	{"problem", []string{"problème", "probleme", "erreur", "bug", "souci", "panne"}},
}

// Tracker owns the session id -> Context mapping. Idle sessions are
// evicted LRU once maxSessions is reached.
type Tracker struct {
	contexts *lru.Cache[string, *Context]
	logger   *zap.Logger
	now      func() time.Time
	mu       sync.Mutex
}

// NewTracker creates a tracker bounded to maxSessions contexts.
func NewTracker(maxSessions int, logger *zap.Logger) *Tracker {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	contexts, _ := lru.New[string, *Context](maxSessions)
	return &Tracker{
		contexts: contexts,
		logger:   logger,
		now:      time.Now,
	}
}

// SetClock overrides the time source. Intended for tests.
func (t *Tracker) SetClock(now func() time.Time) {
	t.mu.Lock()
	t.now = now
	t.mu.Unlock()
}

// Update folds one utterance into the session's rolling summary.
// Topics found in the utterance are appended to RecentTopics (unique,
// oldest evicted past the cap); the truncated utterance is always
// appended to ConversationFlow.
func (t *Tracker) Update(sessionID, utterance string, role Role) {
	t.mu.Lock()
	defer t.mu.Unlock()

	c := t.getLocked(sessionID)
	c.UserRole = role
	c.LastActivity = t.now()

	lower := strings.ToLower(utterance)
	for _, topic := range topicSynonyms {
		if !containsAny(lower, topic.words) {
			continue
		}
		if hasLabel(c.RecentTopics, topic.label) {
			continue
		}
		c.RecentTopics = append(c.RecentTopics, topic.label)
		if len(c.RecentTopics) > MaxRecentTopics {
			c.RecentTopics = c.RecentTopics[1:]
		}
	}

	c.ConversationFlow = append(c.ConversationFlow, snippet(utterance))
	if len(c.ConversationFlow) > MaxFlowEntries {
		c.ConversationFlow = c.ConversationFlow[1:]
	}

	t.logger.Debug("Context updated",
		zap.String("session_id", sessionID),
		zap.Strings("topics", c.RecentTopics))
}

// Get returns a snapshot of the session's context, lazily creating a
// default one (role student) for unknown sessions. It never fails.
func (t *Tracker) Get(sessionID string) Context {
	t.mu.Lock()
	defer t.mu.Unlock()

	c := t.getLocked(sessionID)
	out := *c
	out.RecentTopics = append([]string(nil), c.RecentTopics...)
	out.ConversationFlow = append([]string(nil), c.ConversationFlow...)
	return out
}

// Len reports how many session contexts are currently tracked.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.contexts.Len()
}

func (t *Tracker) getLocked(sessionID string) *Context {
	if c, ok := t.contexts.Get(sessionID); ok {
		return c
	}
	c := &Context{
		SessionID:    sessionID,
		UserRole:     RoleStudent,
		LastActivity: t.now(),
	}
	t.contexts.Add(sessionID, c)
	return c
}

func hasLabel(labels []string, label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}

func snippet(utterance string) string {
	runes := []rune(utterance)
	if len(runes) <= SnippetLen {
		return utterance
	}
	return string(runes[:SnippetLen])
}

// containsAny reports whether msg contains one of the given words.
// Words of three runes or fewer are matched on token boundaries so
// short markers like "qui" do not fire inside "quiz".
func containsAny(msg string, words []string) bool {
	for _, w := range words {
		if len([]rune(w)) <= 3 {
			if containsToken(msg, w) {
				return true
			}
			continue
		}
		if strings.Contains(msg, w) {
			return true
		}
	}
	return false
}

func containsToken(msg, word string) bool {
	for _, tok := range strings.FieldsFunc(msg, func(r rune) bool {
		return r == ' ' || r == ',' || r == '.' || r == '!' || r == '?' ||
			r == ';' || r == ':' || r == '\'' || r == '\n' || r == '\t'
	}) {
		if tok == word {
			return true
		}
	}
	return false
}
