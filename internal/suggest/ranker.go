// Package suggest builds the follow-up action chips shown under a
// reply: contextual suggestions first, then a shuffled role base set,
// truncated to the display cap.
package suggest

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/campus-assistant-engine/internal/convo"
)

// MaxSuggestions is the display cap on a ranked suggestion list.
const MaxSuggestions = 6

// Suggestion is one follow-up action chip.
type Suggestion struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	ActionTag string `json:"action"`
	Icon      string `json:"icon"`
}

var baseSets = map[convo.Role][]Suggestion{
	convo.RoleAdmin: {
		{ID: "admin-users", Label: "Gérer les utilisateurs", ActionTag: "manage_users", Icon: "people"},
		{ID: "admin-stats", Label: "Statistiques globales", ActionTag: "view_global_stats", Icon: "bar_chart"},
		{ID: "admin-courses", Label: "Superviser les cours", ActionTag: "manage_courses", Icon: "school"},
		{ID: "admin-reports", Label: "Rapports d'activité", ActionTag: "view_reports", Icon: "description"},
		{ID: "admin-settings", Label: "Paramètres", ActionTag: "open_settings", Icon: "settings"},
	},
	convo.RoleTeacher: {
		{ID: "teacher-create-course", Label: "Créer un cours", ActionTag: "create_course", Icon: "add_circle"},
		{ID: "teacher-create-quiz", Label: "Créer un quiz", ActionTag: "create_quiz", Icon: "quiz"},
		{ID: "teacher-students", Label: "Mes étudiants", ActionTag: "view_students", Icon: "groups"},
		{ID: "teacher-stats", Label: "Statistiques de classe", ActionTag: "view_class_stats", Icon: "insights"},
		{ID: "teacher-courses", Label: "Mes cours", ActionTag: "view_courses", Icon: "menu_book"},
	},
	convo.RoleStudent: {
		{ID: "student-courses", Label: "Mes cours", ActionTag: "view_courses", Icon: "menu_book"},
		{ID: "student-quiz", Label: "Passer un quiz", ActionTag: "take_quiz", Icon: "quiz"},
		{ID: "student-results", Label: "Mes résultats", ActionTag: "view_results", Icon: "grade"},
		{ID: "student-catalog", Label: "Découvrir des cours", ActionTag: "browse_catalog", Icon: "explore"},
		{ID: "student-help", Label: "Obtenir de l'aide", ActionTag: "get_help", Icon: "help"},
	},
}

// Contextual suggestions. IDs carry a ctx- prefix so they never collide
// with base set IDs.
var (
	ctxCreateCourse  = Suggestion{ID: "ctx-create-course", Label: "Créer un cours", ActionTag: "create_course", Icon: "add_circle"}
	ctxBrowseCourses = Suggestion{ID: "ctx-browse-courses", Label: "Voir les cours", ActionTag: "browse_courses", Icon: "menu_book"}
	ctxCreateQuiz    = Suggestion{ID: "ctx-create-quiz", Label: "Créer un quiz", ActionTag: "create_quiz", Icon: "quiz"}
	ctxTakeQuiz      = Suggestion{ID: "ctx-take-quiz", Label: "Voir les quiz", ActionTag: "view_quizzes", Icon: "quiz"}
	ctxHelp          = Suggestion{ID: "ctx-help", Label: "Que sais-tu faire ?", ActionTag: "show_capabilities", Icon: "help"}
)

// Ranker assembles suggestion lists. The base set shuffle uses the
// injected random source so tests can pin ordering.
type Ranker struct {
	logger *zap.Logger
	rnd    *rand.Rand
	mu     sync.Mutex
}

// NewRanker creates a ranker. A nil rnd gets a time-seeded one.
func NewRanker(rnd *rand.Rand, logger *zap.Logger) *Ranker {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Ranker{
		logger: logger,
		rnd:    rnd,
	}
}

// Rank returns at most MaxSuggestions chips for the utterance:
// topic-contextual ones first (role-gated; students never see creation
// chips), then the role's base set in shuffled order.
func (r *Ranker) Rank(utterance string, role convo.Role) []Suggestion {
	msg := strings.ToLower(utterance)

	var contextual []Suggestion
	if strings.Contains(msg, "cours") || strings.Contains(msg, "course") {
		if role != convo.RoleStudent {
			contextual = append(contextual, ctxCreateCourse)
		}
		contextual = append(contextual, ctxBrowseCourses)
	}
	if strings.Contains(msg, "quiz") {
		if role != convo.RoleStudent {
			contextual = append(contextual, ctxCreateQuiz)
		}
		contextual = append(contextual, ctxTakeQuiz)
	}
	if strings.Contains(msg, "aide") || strings.Contains(msg, "help") {
		contextual = append(contextual, ctxHelp)
	}

	base := append([]Suggestion(nil), baseSets[role]...)
	r.mu.Lock()
	r.rnd.Shuffle(len(base), func(i, j int) {
		base[i], base[j] = base[j], base[i]
	})
	r.mu.Unlock()

	ranked := append(contextual, base...)
	if len(ranked) > MaxSuggestions {
		ranked = ranked[:MaxSuggestions]
	}
	return ranked
}

// BaseSet returns a copy of the role's base suggestion set, unshuffled
// and without contextual augmentation. Used to pre-populate a UI before
// the first utterance.
func BaseSet(role convo.Role) []Suggestion {
	return append([]Suggestion(nil), baseSets[role]...)
}
