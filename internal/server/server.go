// Package server exposes the assistant engine over HTTP and WebSocket
// for the mobile client.
package server

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/campus-assistant-engine/internal/engine"
	"github.com/campus-assistant-engine/internal/history"
	"github.com/campus-assistant-engine/internal/jsonx"
	"github.com/campus-assistant-engine/internal/suggest"
)

// unavailableMessage is the role-agnostic failure text surfaced to the
// client whenever the pipeline reports a communication failure.
const unavailableMessage = "L'assistant est momentanément indisponible. Veuillez réessayer."

// Server wires HTTP routes onto the engine facade.
type Server struct {
	engine   *engine.Engine
	auth     *RoleMiddleware
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// New creates a server around the engine.
func New(eng *engine.Engine, auth *RoleMiddleware, logger *zap.Logger) *Server {
	return &Server{
		engine: eng,
		auth:   auth,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Router builds the HTTP route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.loggingMiddleware)
	r.Use(s.auth.Middleware)

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/messages", s.handleSendMessage).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/suggestions", s.handleSuggestions).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/sessions/{id}/history", s.handleHistory).Methods(http.MethodGet)
	r.HandleFunc("/ws/chat", s.handleWebSocketChat)
	return r
}

// SendMessageRequest is the POST /api/v1/messages payload.
type SendMessageRequest struct {
	Content   string `json:"content"`
	SessionID string `json:"session_id"`
}

// SendMessageResponse pairs the reply with its ranked suggestions.
type SendMessageResponse struct {
	Message     history.Message      `json:"message"`
	Suggestions []suggest.Suggestion `json:"suggestions"`
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req SendMessageRequest
	if err := jsonx.Decode(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	role := CallerRole(r.Context())
	reply, suggestions, err := s.engine.SendMessage(r.Context(), req.Content, req.SessionID, role)
	if err != nil {
		if errors.Is(err, engine.ErrCommunication) {
			writeError(w, http.StatusBadGateway, unavailableMessage)
			return
		}
		// Caller cancellation; nothing useful to write.
		return
	}

	writeJSON(w, http.StatusOK, SendMessageResponse{
		Message:     reply,
		Suggestions: suggestions,
	})
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	role := CallerRole(r.Context())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"suggestions": s.engine.GetSuggestions(role),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	messages, err := s.engine.History(r.Context(), sessionID)
	if err != nil {
		writeError(w, http.StatusBadGateway, unavailableMessage)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"messages": messages,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	processed, failures, classified, cacheHits := s.engine.Stats()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":           "healthy",
		"messages":         processed,
		"failures":         failures,
		"classified":       classified,
		"intent_cache_hit": cacheHits,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = jsonx.Write(w, v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
