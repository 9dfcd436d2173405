package bootstrap

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"go-commission/internal/audit"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuditLog is a process lifecycle entry, such as a shutdown.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}

type StdoutAuditLogger struct{}

func NewStdoutAuditLogger() *StdoutAuditLogger {
	return &StdoutAuditLogger{}
}

func (l *StdoutAuditLogger) Log(ctx context.Context, entry AuditLog) {
	zap.L().Named("audit").Info("audit event",
		zap.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		zap.String("action", entry.Action),
		zap.String("message", entry.Message),
		zap.Any("meta", entry.Meta),
	)
}

// StoreAuditLogger writes lifecycle entries to the audit log table next to
// the domain events, falling back to another logger when that fails.
type StoreAuditLogger struct {
	service  audit.Service
	fallback AuditLogger
	host     string
}

func NewStoreAuditLogger(service audit.Service, fallback AuditLogger) *StoreAuditLogger {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "unknown"
	}
	return &StoreAuditLogger{service: service, fallback: fallback, host: host}
}

func (l *StoreAuditLogger) Log(ctx context.Context, entry AuditLog) {
	payload, err := json.Marshal(map[string]any{
		"message": entry.Message,
		"meta":    entry.Meta,
	})
	if err == nil {
		_, err = l.service.Record(ctx, audit.RecordRequest{
			EventID:    uuid.NewString(),
			EntityType: "server",
			EntityID:   l.host,
			Action:     entry.Action,
			Payload:    payload,
			OccurredAt: time.Now().UTC(),
		})
	}
	if err != nil {
		zap.L().Named("audit").Warn("store audit entry failed", zap.String("action", entry.Action), zap.Error(err))
		if l.fallback != nil {
			l.fallback.Log(ctx, entry)
		}
	}
}
