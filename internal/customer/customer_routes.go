package customer

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
	customers := r.Group("/customers")
	customers.Use(middleware.AuthMiddleware())
	customers.Use(middleware.ContextLogger(logger))
	{
		read := middleware.RBACAuthorize(accessService, access.ResourceCustomer, access.ActionRead)

		customers.GET("/check", middleware.RateLimitByUser(5, 20), read, handler.Check)
		customers.GET("", middleware.RateLimitByUser(3, 10), read, handler.GetAll)
		customers.GET("/:id", read, handler.GetByID)
		customers.PUT("/:id",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(accessService, access.ResourceCustomer, access.ActionUpdate),
			handler.Update,
		)
	}
}
