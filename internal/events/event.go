// Package events declares the topics and payloads published through the
// transactional outbox.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Meta is embedded in every event. EventID doubles as the outbox row id so
// consumers can drop duplicate deliveries.
type Meta struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	ActorID    string    `json:"actor_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewMeta(eventType, requestID, actorID string) Meta {
	return Meta{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		RequestID:  requestID,
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
	}
}

// AuditTopics lists every topic the audit consumer subscribes to.
func AuditTopics() []string {
	return []string{
		SaleLifecycleTopic,
		CommissionResolvedTopic,
		LotClosedTopic,
		LotPaymentRecordedTopic,
		LotDeletedTopic,
	}
}
