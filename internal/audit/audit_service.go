package audit

import (
	"context"
	"time"

	"go-commission/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=audit_service.go -destination=mock/audit_service_mock.go -package=mock
type Service interface {
	Record(ctx context.Context, req RecordRequest) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]AuditLogResponse, int64, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("audit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Record(ctx context.Context, req RecordRequest) (bool, error) {
	if req.EventID == "" {
		return false, apperror.RequiredField("event_id")
	}
	if req.EntityType == "" || req.EntityID == "" {
		return false, apperror.RequiredField("entity")
	}

	occurredAt := req.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	entry := &AuditLog{
		ID:         uuid.New(),
		EventID:    req.EventID,
		EntityType: req.EntityType,
		EntityID:   req.EntityID,
		Action:     req.Action,
		ActorID:    req.ActorID,
		RequestID:  req.RequestID,
		Topic:      req.Topic,
		Payload:    string(req.Payload),
		OccurredAt: occurredAt.UTC(),
	}

	inserted, err := s.repo.Create(ctx, entry)
	if err != nil {
		s.logger.Error("record audit log failed",
			zap.String("event_id", req.EventID),
			zap.String("request_id", req.RequestID),
			zap.Error(err),
		)
		return false, err
	}
	if !inserted {
		s.logger.Debug("duplicate audit event ignored", zap.String("event_id", req.EventID))
	}
	return inserted, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]AuditLogResponse, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	logs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("list audit logs failed", zap.Error(err))
		return nil, 0, err
	}

	out := make([]AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, mapToResponse(l))
	}
	return out, total, nil
}
