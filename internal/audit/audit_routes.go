package audit

import (
	"go-commission/internal/access"
	"go-commission/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, accessService access.Service, logger *zap.Logger) {
	logs := r.Group("/audit-logs")
	logs.Use(middleware.AuthMiddleware())
	logs.Use(middleware.ContextLogger(logger))
	{
		logs.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(accessService, access.ResourceAudit, access.ActionRead),
			handler.List,
		)
	}
}
