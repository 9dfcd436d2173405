package sale

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
	sales := r.Group("/sales")
	sales.Use(middleware.AuthMiddleware())
	sales.Use(middleware.ContextLogger(logger))
	{
		authorize := func(action string) gin.HandlerFunc {
			return middleware.RBACAuthorize(accessService, access.ResourceSale, action)
		}

		sales.GET("", middleware.RateLimitByUser(3, 10), authorize(access.ActionRead), handler.GetAll)
		sales.GET("/summary", middleware.RateLimitByUser(1, 5), authorize(access.ActionRead), handler.Summary)
		sales.GET("/commission-summary", middleware.RateLimitByUser(1, 5), authorize(access.ActionRead), handler.CommissionSummary)
		sales.GET("/export", middleware.RateLimitByUser(0.2, 2), authorize(access.ActionExport), handler.Export)
		sales.GET("/:id", authorize(access.ActionRead), handler.GetByID)

		sales.POST("", middleware.RateLimitByUser(0.5, 3), authorize(access.ActionCreate), handler.Create)
		sales.PUT("/:id", middleware.RateLimitByUser(0.5, 3), authorize(access.ActionUpdate), handler.Update)
		sales.PUT("/:id/customer", middleware.RateLimitByUser(0.5, 3), authorize(access.ActionUpdate), handler.UpdateCustomer)
		sales.PATCH("/:id/status", middleware.RateLimitByUser(1, 5), authorize(access.ActionUpdate), handler.UpdateStatus)

		sales.POST("/:id/attachments", middleware.RateLimitByUser(0.5, 5), authorize(access.ActionAttach), handler.UploadAttachment)
		sales.DELETE("/:id/attachments/:attachmentId", authorize(access.ActionAttach), handler.DeleteAttachment)
	}
}
