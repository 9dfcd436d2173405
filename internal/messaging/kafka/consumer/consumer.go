package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"go-commission/internal/audit"
	"go-commission/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumers need.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumeAuditEvents stores every sale and lot event as an audit log row.
// Undecodable messages are committed and skipped; storage failures are left
// uncommitted so the group redelivers them.
func ConsumeAuditEvents(
	ctx context.Context,
	reader MessageReader,
	auditService audit.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.audit")
	log.Info("audit consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("audit consumer stopped")
				return
			}
			log.Error("fetch audit message failed", zap.Error(err))
			continue
		}

		if err := handleAuditMessage(ctx, msg, auditService); err != nil {
			log.Error("handle audit message failed",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			if isPoison(err) {
				_ = reader.CommitMessages(ctx, msg)
			}
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit audit message failed", zap.Error(err))
		}
	}
}

type poisonError struct{ err error }

func (e poisonError) Error() string { return "undecodable message: " + e.err.Error() }
func (e poisonError) Unwrap() error { return e.err }

func isPoison(err error) bool {
	var p poisonError
	return errors.As(err, &p)
}

func handleAuditMessage(ctx context.Context, msg kafkago.Message, auditService audit.Service) error {
	var meta events.Meta
	if err := json.Unmarshal(msg.Value, &meta); err != nil {
		return poisonError{err: err}
	}

	eventID := meta.EventID
	if eventID == "" {
		eventID = header(msg, "event_id")
	}
	action := meta.EventType
	if action == "" {
		action = header(msg, "event_type")
	}

	_, err := auditService.Record(ctx, audit.RecordRequest{
		EventID:    eventID,
		EntityType: header(msg, "aggregate_type"),
		EntityID:   string(msg.Key),
		Action:     action,
		ActorID:    meta.ActorID,
		RequestID:  meta.RequestID,
		Topic:      msg.Topic,
		Payload:    msg.Value,
		OccurredAt: meta.OccurredAt,
	})
	if err != nil && eventID == "" {
		return poisonError{err: err}
	}
	return err
}

func header(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
