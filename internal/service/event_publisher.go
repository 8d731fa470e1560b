package service

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// Event subjects published on the school bus.
const (
	SubjectAttemptGraded   = "cinofilo.casestudy.attempt.graded"
	SubjectStudentEnrolled = "cinofilo.class.student.enrolled"
)

// EventPublisher fans domain events out to NATS. A nil connection turns the
// publisher into a no-op so services never need to guard their calls.
type EventPublisher struct {
	conn   *nats.Conn
	logger zerolog.Logger
}

// NewEventPublisher constructs a publisher around an optional NATS connection.
func NewEventPublisher(conn *nats.Conn, logger zerolog.Logger) *EventPublisher {
	return &EventPublisher{
		conn:   conn,
		logger: logger.With().Str("component", "event_publisher").Logger(),
	}
}

type domainEvent struct {
	Subject string      `json:"subject"`
	Payload interface{} `json:"payload"`
	SentAt  time.Time   `json:"sent_at"`
}

// Publish emits the payload on the given subject. Failures are logged, not
// propagated: events are best-effort and must never fail the request.
func (p *EventPublisher) Publish(subject string, payload interface{}) {
	if p == nil || p.conn == nil {
		return
	}

	data, err := json.Marshal(domainEvent{Subject: subject, Payload: payload, SentAt: time.Now().UTC()})
	if err != nil {
		p.logger.Warn().Err(err).Str("subject", subject).Msg("failed to encode event")
		return
	}

	if err := p.conn.Publish(subject, data); err != nil {
		p.logger.Warn().Err(err).Str("subject", subject).Msg("failed to publish event")
	}
}
