package server

import (
	"context"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap/zaptest"

	"github.com/campus-assistant-engine/internal/engine"
	"github.com/campus-assistant-engine/internal/jsonx"
)

const testSecret = "test-secret-for-role-extraction-tests"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := zaptest.NewLogger(t)
	eng, err := engine.New(engine.Config{
		Logger: logger,
		Rand:   rand.New(rand.NewSource(3)),
		Delay:  func(ctx context.Context) error { return ctx.Err() },
	})
	if err != nil {
		t.Fatalf("engine.New failed: %v", err)
	}
	t.Cleanup(eng.Close)
	return New(eng, NewRoleMiddleware(testSecret, logger), logger)
}

func signToken(t *testing.T, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}
	return signed
}

func TestSendMessageEndpoint(t *testing.T) {
	srv := newTestServer(t)
	router := srv.Router()

	body := `{"content":"Bonjour","session_id":"s1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+signToken(t, "teacher"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp SendMessageResponse
	if err := jsonx.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Message.Content == "" {
		t.Error("Empty reply content")
	}
	if resp.Message.FromUser {
		t.Error("Reply marked as user message")
	}
}

func TestSendMessageRequiresSessionID(t *testing.T) {
	srv := newTestServer(t)
	router := srv.Router()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages", strings.NewReader(`{"content":"Bonjour"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
}

func TestSuggestionsEndpointRoleFromToken(t *testing.T) {
	srv := newTestServer(t)
	router := srv.Router()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/suggestions", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "teacher"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "teacher-create-quiz") {
		t.Errorf("Teacher base set missing from response: %s", rec.Body.String())
	}
}

func TestMissingTokenDefaultsToStudent(t *testing.T) {
	srv := newTestServer(t)
	router := srv.Router()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/suggestions", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "student-courses") {
		t.Errorf("Expected student base set, got: %s", body)
	}
	if strings.Contains(body, "teacher-create-quiz") {
		t.Error("Anonymous caller received teacher suggestions")
	}
}

func TestInvalidTokenDefaultsToStudent(t *testing.T) {
	srv := newTestServer(t)
	router := srv.Router()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/suggestions", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "student-courses") {
		t.Error("Invalid token did not degrade to student")
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)
	router := srv.Router()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "healthy") {
		t.Errorf("Unexpected health body: %s", rec.Body.String())
	}
}
