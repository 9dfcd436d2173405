package middleware

import (
	"go-commission/internal/access"
	"go-commission/internal/shared/apperror"
	"go-commission/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Enforcer is satisfied by access.Service.
type Enforcer interface {
	Enforce(req access.EnforceRequest) (bool, error)
}

func RBACAuthorize(service Enforcer, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := access.ActorFromGin(c)
		if !ok {
			httpErr := apperror.ToHTTP(apperror.ErrUnauthorized)
			response.Error(c, httpErr.Status, httpErr.Code, "missing auth context", nil)
			c.Abort()
			return
		}

		allowed, err := service.Enforce(access.EnforceRequest{
			Roles:    actor.Roles.Strings(),
			Resource: resource,
			Action:   action,
		})
		if err != nil {
			zap.L().Named("middleware.rbac").Error("enforce failed", zap.Error(err))
			httpErr := apperror.ToHTTP(err)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, apperror.ErrForbidden.HTTPStatus, apperror.ErrForbidden.Code, apperror.ErrForbidden.Message,
				map[string]string{"required": resource + ":" + action})
			c.Abort()
			return
		}
		c.Next()
	}
}
