package product

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
	products := r.Group("/products")
	products.Use(middleware.AuthMiddleware())
	products.Use(middleware.ContextLogger(logger))
	{
		read := middleware.RBACAuthorize(accessService, access.ResourceProduct, access.ActionRead)

		products.GET("", middleware.RateLimitByUser(3, 10), read, handler.GetAll)
		products.GET("/options", middleware.RateLimitByUser(5, 20), read, handler.Options)
		products.GET("/:id", read, handler.GetByID)
		products.GET("/:id/suggestion", middleware.RateLimitByUser(5, 20), read, handler.Suggestion)

		products.POST("",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(accessService, access.ResourceProduct, access.ActionCreate),
			handler.Create,
		)
		products.PUT("/:id",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(accessService, access.ResourceProduct, access.ActionUpdate),
			handler.Update,
		)
		products.DELETE("/:id",
			middleware.RBACAuthorize(accessService, access.ResourceProduct, access.ActionDelete),
			handler.Delete,
		)
	}
}
