package access

import (
	"sync"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=access_service.go -destination=mock/access_service_mock.go -package=mock
type Service interface {
	Enforce(req EnforceRequest) (bool, error)
	Permissions(roles RoleSet) ([]PermissionResponse, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
	logger   *zap.Logger
}

func NewService(enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("access.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("access.service")
	}
	return &service{
		enforcer: enforcer,
		logger:   l,
	}
}

// Enforce allows the request when any of the caller's roles grants it.
func (s *service) Enforce(req EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, role := range req.Roles {
		allowed, err := s.enforcer.Enforce(role, req.Resource, req.Action)
		if err != nil {
			s.logger.Error("enforce failed",
				zap.String("role", role),
				zap.String("resource", req.Resource),
				zap.String("action", req.Action),
				zap.Error(err),
			)
			return false, err
		}
		if allowed {
			return true, nil
		}
	}

	s.logger.Debug("access denied",
		zap.Strings("roles", req.Roles),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
	)
	return false, nil
}

func (s *service) Permissions(roles RoleSet) ([]PermissionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]PermissionResponse, 0)
	for _, role := range roles {
		perms, err := s.enforcer.GetImplicitPermissionsForUser(string(role))
		if err != nil {
			return nil, err
		}
		for _, p := range perms {
			if len(p) < 3 {
				continue
			}
			out = append(out, PermissionResponse{Role: string(role), Resource: p[1], Action: p[2]})
		}
	}
	return out, nil
}
