package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/campus-assistant-engine/internal/engine"
	"github.com/campus-assistant-engine/internal/jsonx"
)

// WSMessage is the envelope exchanged over /ws/chat.
type WSMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// WSChatPayload is the payload of a "chat" message.
type WSChatPayload struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

func (s *Server) handleWebSocketChat(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("WebSocket upgrade failed", zap.Error(err))
		return
	}

	role := CallerRole(r.Context())
	defaultSession := uuid.New().String()

	s.logger.Info("WebSocket connected",
		zap.String("role", role),
		zap.String("session_id", defaultSession))

	go s.handleWSConnection(conn, role, defaultSession)
}

func (s *Server) handleWSConnection(conn *websocket.Conn, role, defaultSession string) {
	defer conn.Close()

	var writeMu sync.Mutex
	writeJSON := func(v interface{}) {
		writeMu.Lock()
		defer writeMu.Unlock()
		data, err := jsonx.Marshal(v)
		if err != nil {
			return
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			s.logger.Debug("WebSocket write error", zap.Error(err))
		}
	}

	for {
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			s.logger.Debug("WebSocket read error", zap.Error(err))
			return
		}

		switch msg.Type {
		case "chat":
			var payload WSChatPayload
			if err := jsonx.Unmarshal(msg.Payload, &payload); err != nil {
				continue
			}
			sessionID := payload.SessionID
			if sessionID == "" {
				sessionID = defaultSession
			}

			// Background context: a slow pipeline must not be tied to
			// the read loop.
			reply, suggestions, err := s.engine.SendMessage(context.Background(), payload.Message, sessionID, role)
			if err != nil {
				if errors.Is(err, engine.ErrCommunication) {
					writeJSON(map[string]string{
						"type":  "error",
						"error": unavailableMessage,
					})
				}
				continue
			}

			writeJSON(map[string]interface{}{
				"type": "response",
				"payload": SendMessageResponse{
					Message:     reply,
					Suggestions: suggestions,
				},
			})

		case "ping":
			writeJSON(map[string]string{"type": "pong"})
		}
	}
}
