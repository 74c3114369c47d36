// Package analytics publishes engine usage events to NATS so the rest
// of the platform can consume them. Publishing is fire-and-forget: a
// lost event never fails the conversation pipeline.
package analytics

import (
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/campus-assistant-engine/internal/jsonx"
)

const (
	EventMessageProcessed = "message_processed"
	EventUnknownRole      = "unknown_role"
)

// Event is one engine usage record.
type Event struct {
	Type           string `json:"type"`
	SessionID      string `json:"session_id,omitempty"`
	Role           string `json:"role,omitempty"`
	Intent         string `json:"intent,omitempty"`
	DurationMillis int64  `json:"duration_ms,omitempty"`
	At             int64  `json:"at"`
}

// Publisher is the engine's analytics sink.
type Publisher interface {
	MessageProcessed(sessionID, role, intent string, duration time.Duration)
	UnknownRole(raw string)
	Close()
}

// NATSPublisher sends events to a NATS subject.
type NATSPublisher struct {
	conn    *nats.Conn
	subject string
	logger  *zap.Logger
}

// Connect opens a NATS connection and returns a publisher on subject.
func Connect(url, subject string, logger *zap.Logger) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(10),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, err
	}
	return &NATSPublisher{
		conn:    conn,
		subject: subject,
		logger:  logger,
	}, nil
}

// MessageProcessed publishes one processed-message event.
func (p *NATSPublisher) MessageProcessed(sessionID, role, intent string, duration time.Duration) {
	p.publish(Event{
		Type:           EventMessageProcessed,
		SessionID:      sessionID,
		Role:           role,
		Intent:         intent,
		DurationMillis: duration.Milliseconds(),
		At:             time.Now().UnixMilli(),
	})
}

// UnknownRole records that a caller supplied an unrecognized role and
// was degraded to student.
func (p *NATSPublisher) UnknownRole(raw string) {
	p.publish(Event{
		Type: EventUnknownRole,
		Role: raw,
		At:   time.Now().UnixMilli(),
	})
}

// Close drains the connection.
func (p *NATSPublisher) Close() {
	p.conn.Close()
}

func (p *NATSPublisher) publish(ev Event) {
	data, err := jsonx.Marshal(ev)
	if err != nil {
		p.logger.Warn("Failed to encode analytics event", zap.Error(err))
		return
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		p.logger.Warn("Failed to publish analytics event",
			zap.String("type", ev.Type), zap.Error(err))
	}
}

// Nop is a Publisher that drops everything. Used when analytics is not
// configured.
type Nop struct{}

func (Nop) MessageProcessed(string, string, string, time.Duration) {}
func (Nop) UnknownRole(string)                                     {}
func (Nop) Close()                                                 {}
