// Package intent classifies user utterances into intent categories
// using fixed keyword sets tested in a fixed precedence order.
package intent

import (
	"strings"
	"sync/atomic"

	"github.com/dgraph-io/ristretto/v2"
	"go.uber.org/zap"
)

// Kind is the classified category of an utterance.
type Kind string

const (
	KindGreeting        Kind = "GREETING"
	KindQuestion        Kind = "QUESTION"
	KindHelpRequest     Kind = "HELP_REQUEST"
	KindDomainSpecific  Kind = "DOMAIN_SPECIFIC"
	KindFollowUp        Kind = "FOLLOW_UP"
	KindNeedsMotivation Kind = "NEEDS_MOTIVATION"
	KindDefault         Kind = "DEFAULT"
)

// followUpMaxLen is the utterance length ceiling for follow-up
// detection; longer messages are treated as new subjects.
const followUpMaxLen = 50

var (
	greetingWords = []string{"bonjour", "salut", "bonsoir", "coucou", "hello", "hey", "hi"}

	questionWords = []string{"comment", "pourquoi", "quand", "où", "quoi", "qui",
		"combien", "est-ce que", "what", "how", "why", "when", "where"}

	helpWords = []string{"aide", "help", "assistance", "support"}

	domainWords = []string{"cours", "course", "quiz", "examen", "étudiant", "etudiant",
		"élève", "eleve", "student", "enseignant", "professeur", "prof", "teacher",
		"statistique", "stats", "note", "problème", "probleme", "erreur", "bug", "admin"}

	followUpWords = []string{"oui", "non", "ok", "d'accord", "merci", "aussi",
		"ensuite", "encore", "continue", "yes", "thanks"}

	discouragementWords = []string{"difficile", "dur", "stressé", "stresse",
		"découragé", "decourage", "abandonner", "nul", "peur", "inquiet",
		"fatigué", "fatigue", "perdu"}
)

// Classifier maps utterances to intent kinds. Classification is a pure
// function of (utterance, history length), which makes results safe to
// memoize in a hot cache.
type Classifier struct {
	logger    *zap.Logger
	cache     *ristretto.Cache[string, Kind]
	requests  atomic.Int64
	cacheHits atomic.Int64
}

// NewClassifier creates a classifier with a small ristretto hot cache
// in front of the keyword scan.
func NewClassifier(logger *zap.Logger) (*Classifier, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[string, Kind]{
		NumCounters: 10000,
		MaxCost:     1000,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Classifier{
		logger: logger,
		cache:  cache,
	}, nil
}

// Classify returns exactly one Kind for the utterance. Keyword sets are
// tested in precedence order; the first match wins, so a greeting that
// is also a question still classifies as a greeting.
func (c *Classifier) Classify(utterance string, historyLen int) Kind {
	c.requests.Add(1)

	msg := strings.ToLower(strings.TrimSpace(utterance))
	key := cacheKey(msg, historyLen)
	if kind, ok := c.cache.Get(key); ok {
		c.cacheHits.Add(1)
		return kind
	}

	kind := classify(msg, historyLen)
	c.cache.Set(key, kind, 1)

	c.logger.Debug("Utterance classified",
		zap.String("intent", string(kind)),
		zap.Int("history_len", historyLen))
	return kind
}

// Stats returns classification counters.
func (c *Classifier) Stats() (total, cacheHits int64) {
	return c.requests.Load(), c.cacheHits.Load()
}

// Close releases the hot cache.
func (c *Classifier) Close() {
	c.cache.Close()
}

func classify(msg string, historyLen int) Kind {
	switch {
	case containsAny(msg, greetingWords):
		return KindGreeting
	case containsAny(msg, questionWords) || strings.HasSuffix(msg, "?"):
		return KindQuestion
	case containsAny(msg, helpWords):
		return KindHelpRequest
	case containsAny(msg, domainWords):
		return KindDomainSpecific
	case historyLen >= 2 && len([]rune(msg)) < followUpMaxLen &&
		containsAny(msg, followUpWords):
		return KindFollowUp
	case containsAny(msg, discouragementWords):
		return KindNeedsMotivation
	default:
		return KindDefault
	}
}

func cacheKey(msg string, historyLen int) string {
	// Follow-up eligibility is the only history-dependent branch.
	if historyLen >= 2 {
		return msg + "|f"
	}
	return msg + "|n"
}

// containsAny reports whether msg contains one of the given markers.
// Markers of three runes or fewer match on token boundaries only, so
// "qui" never fires inside "quiz" and "hi" never inside "chimie".
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
	for _, tok := range strings.FieldsFunc(msg, isSeparator) {
		if tok == word {
			return true
		}
	}
	return false
}

func isSeparator(r rune) bool {
	switch r {
	case ' ', ',', '.', '!', '?', ';', ':', '\'', '\n', '\t', '(', ')', '"':
		return true
	}
	return false
}
