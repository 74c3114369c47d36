// Package respond selects templated reply text for a classified
// utterance. Selection among a variant set is uniformly random; the
// random source is injectable so tests can pin it.
package respond

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/campus-assistant-engine/internal/convo"
	"github.com/campus-assistant-engine/internal/history"
	"github.com/campus-assistant-engine/internal/intent"
)

// longConversationThreshold is the history length past which the
// default intent answers with a closing prompt.
const longConversationThreshold = 10

// Generator produces reply text. It has no side effects: it only reads
// the context snapshot and history it is handed.
type Generator struct {
	logger *zap.Logger
	rnd    *rand.Rand
	mu     sync.Mutex
}

// NewGenerator creates a generator. A nil rnd gets a time-seeded one.
func NewGenerator(rnd *rand.Rand, logger *zap.Logger) *Generator {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{
		logger: logger,
		rnd:    rnd,
	}
}

// Generate selects the reply for one exchange. history is the session
// log including the just-recorded user message; ctx is a read-only
// snapshot of the session context.
func (g *Generator) Generate(kind intent.Kind, role convo.Role, utterance string, ctx convo.Context, hist []history.Message) string {
	msg := strings.ToLower(utterance)

	switch kind {
	case intent.KindGreeting:
		if len(hist) <= 1 {
			return g.pick(firstGreetings[role])
		}
		return g.pick(returnGreetings[role])

	case intent.KindQuestion:
		return g.question(role, msg)

	case intent.KindHelpRequest:
		return g.pick(helpReplies[role])

	case intent.KindDomainSpecific:
		return g.domain(role, msg)

	case intent.KindFollowUp:
		return g.pick(followUpReplies)

	case intent.KindNeedsMotivation:
		return g.pick(motivationReplies)

	default:
		return g.fallback(role, ctx, hist)
	}
}

func (g *Generator) question(role convo.Role, msg string) string {
	switch {
	case strings.Contains(msg, "comment") &&
		(strings.Contains(msg, "créer") || strings.Contains(msg, "creer") || strings.Contains(msg, "create")):
		return g.pick(howCreateReplies[role])
	case strings.Contains(msg, "pourquoi") || strings.Contains(msg, "why"):
		return g.pick(whyReplies)
	case strings.Contains(msg, "quand") || strings.Contains(msg, "when"):
		return g.pick(whenReplies)
	case strings.Contains(msg, "où") || strings.Contains(msg, "where"):
		return g.pick(whereReplies)
	default:
		return g.pick(genericQuestionReplies[role])
	}
}

func (g *Generator) domain(role convo.Role, msg string) string {
	switch {
	case strings.Contains(msg, "cours") || strings.Contains(msg, "course"):
		return g.pick(courseReplies[role])
	case strings.Contains(msg, "quiz") || strings.Contains(msg, "examen"):
		return g.pick(quizReplies[role])
	case strings.Contains(msg, "étudiant") || strings.Contains(msg, "etudiant") ||
		strings.Contains(msg, "élève") || strings.Contains(msg, "eleve") ||
		strings.Contains(msg, "student"):
		return g.pick(studentTopicReplies[role])
	case strings.Contains(msg, "statistique") || strings.Contains(msg, "stats") ||
		strings.Contains(msg, "note"):
		return g.pick(statsReplies[role])
	case strings.Contains(msg, "problème") || strings.Contains(msg, "probleme") ||
		strings.Contains(msg, "erreur") || strings.Contains(msg, "bug"):
		return g.pick(problemReplies[role])
	default:
		return g.pick(genericDomainReplies[role])
	}
}

func (g *Generator) fallback(role convo.Role, ctx convo.Context, hist []history.Message) string {
	if len(hist) > longConversationThreshold {
		return g.pick(longConversationReplies)
	}
	if len(ctx.RecentTopics) > 0 {
		last := ctx.RecentTopics[len(ctx.RecentTopics)-1]
		phrase, ok := topicPhrases[last]
		if !ok {
			phrase = last
		}
		return fmt.Sprintf("Nous parlions de %s à l'instant. Voulez-vous continuer sur ce sujet ?", phrase)
	}
	return g.pick(genericDefaultReplies[role])
}

func (g *Generator) pick(variants []string) string {
	if len(variants) == 0 {
		// Unknown role slips through as student elsewhere; this guard
		// keeps Generate total even if a table is missing an entry.
		g.logger.Warn("Empty template variant set")
		return "Je suis à votre écoute."
	}
	g.mu.Lock()
	i := g.rnd.Intn(len(variants))
	g.mu.Unlock()
	return variants[i]
}
