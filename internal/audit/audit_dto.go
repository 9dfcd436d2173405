package audit

import (
	"encoding/json"
	"time"
)

type RecordRequest struct {
	EventID    string
	EntityType string
	EntityID   string
	Action     string
	ActorID    string
	RequestID  string
	Topic      string
	Payload    []byte
	OccurredAt time.Time
}

type ListFilter struct {
	EntityType string `form:"entity_type"`
	EntityID   string `form:"entity_id"`
	ActorID    string `form:"actor_id"`
	Page       int    `form:"-"`
	PageSize   int    `form:"-"`
}

type AuditLogResponse struct {
	ID         string          `json:"id"`
	EventID    string          `json:"event_id"`
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	Action     string          `json:"action"`
	ActorID    string          `json:"actor_id,omitempty"`
	RequestID  string          `json:"request_id,omitempty"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

func mapToResponse(l AuditLog) AuditLogResponse {
	var payload json.RawMessage
	if json.Valid([]byte(l.Payload)) {
		payload = json.RawMessage(l.Payload)
	}
	return AuditLogResponse{
		ID:         l.ID.String(),
		EventID:    l.EventID,
		EntityType: l.EntityType,
		EntityID:   l.EntityID,
		Action:     l.Action,
		ActorID:    l.ActorID,
		RequestID:  l.RequestID,
		Payload:    payload,
		OccurredAt: l.OccurredAt,
	}
}
