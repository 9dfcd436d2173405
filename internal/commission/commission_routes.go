package commission

import (
	"go-commission/internal/access"
	"go-commission/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	accessService access.Service,
	logger *zap.Logger,
) {
	exceptions := r.Group("/commission-exceptions")
	exceptions.Use(middleware.AuthMiddleware())
	exceptions.Use(middleware.ContextLogger(logger))
	{
		authorize := func(action string) gin.HandlerFunc {
			return middleware.RBACAuthorize(accessService, access.ResourceCommissionException, action)
		}

		exceptions.GET("", middleware.RateLimitByUser(3, 10), authorize(access.ActionRead), handler.GetAll)
		exceptions.GET("/:id", authorize(access.ActionRead), handler.GetByID)
		exceptions.POST("", middleware.RateLimitByUser(0.5, 3), authorize(access.ActionCreate), handler.Create)
		exceptions.PUT("/:id", middleware.RateLimitByUser(0.5, 3), authorize(access.ActionUpdate), handler.Update)
		exceptions.DELETE("/:id", authorize(access.ActionDelete), handler.Delete)
	}
}
