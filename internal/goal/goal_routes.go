package goal

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
	goals := r.Group("/goals")
	goals.Use(middleware.AuthMiddleware())
	goals.Use(middleware.ContextLogger(logger))
	{
		authorize := func(action string) gin.HandlerFunc {
			return middleware.RBACAuthorize(accessService, access.ResourceGoal, action)
		}

		goals.GET("", authorize(access.ActionRead), handler.GetAll)
		goals.GET("/progress", middleware.RateLimitByUser(2, 10), authorize(access.ActionRead), handler.Progress)
		goals.GET("/:id", authorize(access.ActionRead), handler.GetByID)
		goals.POST("", authorize(access.ActionCreate), handler.Create)
		goals.PUT("/:id", authorize(access.ActionUpdate), handler.Update)
		goals.DELETE("/:id", authorize(access.ActionDelete), handler.Delete)
	}
}
