package suggest

import (
	"math/rand"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/campus-assistant-engine/internal/convo"
)

func newTestRanker(t *testing.T) *Ranker {
	t.Helper()
	return NewRanker(rand.New(rand.NewSource(7)), zaptest.NewLogger(t))
}

func hasID(suggestions []Suggestion, id string) bool {
	for _, s := range suggestions {
		if s.ID == id {
			return true
		}
	}
	return false
}

func TestRankNeverExceedsCap(t *testing.T) {
	r := newTestRanker(t)

	utterances := []string{
		"", "bonjour", "je cherche un cours avec un quiz et de l'aide",
		"cours cours cours", "quiz help course aide",
	}
	for _, u := range utterances {
		for _, role := range []convo.Role{convo.RoleAdmin, convo.RoleTeacher, convo.RoleStudent} {
			got := r.Rank(u, role)
			if len(got) > MaxSuggestions {
				t.Errorf("Rank(%q, %s) returned %d suggestions, cap is %d", u, role, len(got), MaxSuggestions)
			}
		}
	}
}

func TestQuizCreationGatedByRole(t *testing.T) {
	r := newTestRanker(t)

	student := r.Rank("j'ai un quiz demain", convo.RoleStudent)
	if hasID(student, ctxCreateQuiz.ID) {
		t.Error("Student received a create-quiz suggestion")
	}

	teacher := r.Rank("j'ai un quiz demain", convo.RoleTeacher)
	if !hasID(teacher, ctxCreateQuiz.ID) {
		t.Error("Teacher missing the create-quiz suggestion")
	}
}

func TestCourseCreationGatedByRole(t *testing.T) {
	r := newTestRanker(t)

	student := r.Rank("parle-moi des cours", convo.RoleStudent)
	if hasID(student, ctxCreateCourse.ID) {
		t.Error("Student received a create-course suggestion")
	}
	if !hasID(student, ctxBrowseCourses.ID) {
		t.Error("Student missing the browse-courses suggestion")
	}

	admin := r.Rank("parle-moi des cours", convo.RoleAdmin)
	if !hasID(admin, ctxCreateCourse.ID) {
		t.Error("Admin missing the create-course suggestion")
	}
}

func TestContextualSuggestionsComeFirst(t *testing.T) {
	r := newTestRanker(t)

	got := r.Rank("de l'aide avec un quiz", convo.RoleTeacher)
	if len(got) < 3 {
		t.Fatalf("Expected at least 3 suggestions, got %d", len(got))
	}
	if got[0].ID != ctxCreateQuiz.ID || got[1].ID != ctxTakeQuiz.ID || got[2].ID != ctxHelp.ID {
		t.Errorf("Contextual suggestions not ranked first: %v", got[:3])
	}
}

func TestRankWithoutKeywordsIsBaseOnly(t *testing.T) {
	r := newTestRanker(t)

	got := r.Rank("bonjour", convo.RoleStudent)
	if len(got) != len(baseSets[convo.RoleStudent]) {
		t.Fatalf("Expected only base suggestions, got %d", len(got))
	}
	for _, s := range got {
		if !hasID(baseSets[convo.RoleStudent], s.ID) {
			t.Errorf("Unexpected non-base suggestion %s", s.ID)
		}
	}
}

func TestBaseSetIsStableAndCopied(t *testing.T) {
	first := BaseSet(convo.RoleTeacher)
	second := BaseSet(convo.RoleTeacher)

	for i := range first {
		if first[i].ID != second[i].ID {
			t.Error("BaseSet order is not stable")
		}
	}

	first[0].Label = "tampered"
	if BaseSet(convo.RoleTeacher)[0].Label == "tampered" {
		t.Error("BaseSet exposed internal storage to mutation")
	}
}
