package lot

import (
	"go-commission/internal/access"
	"go-commission/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	accessService access.Service,
	logger *zap.Logger,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	lots := r.Group("/commission-lots")
	lots.Use(middleware.AuthMiddleware())
	lots.Use(middleware.ContextLogger(logger))
	{
		authorize := func(action string) gin.HandlerFunc {
			return middleware.RBACAuthorize(accessService, access.ResourceLot, action)
		}

		lots.GET("", authorize(access.ActionRead), handler.GetAll)
		lots.GET("/dashboard", middleware.RateLimitByUser(1, 5), authorize(access.ActionRead), handler.Dashboard)
		lots.GET("/export", middleware.RateLimitByUser(0.2, 2), authorize(access.ActionExport), handler.Export)
		lots.GET("/preview", middleware.RateLimitByUser(1, 5), authorize(access.ActionClose), handler.Preview)
		lots.GET("/:id", authorize(access.ActionRead), handler.GetByID)

		lots.POST("/close", middleware.RateLimitByUser(0.2, 2), authorize(access.ActionClose), handler.Close)
		if redisClient != nil {
			lots.POST(
				"/:id/payments",
				middleware.Idempotency(redisClient),
				authorize(access.ActionPay),
				handler.RecordPayment,
			)
		} else {
			lots.POST("/:id/payments", authorize(access.ActionPay), handler.RecordPayment)
		}
		lots.POST("/:id/attachments", middleware.RateLimitByUser(0.5, 5), authorize(access.ActionAttach), handler.UploadAttachment)
		lots.DELETE("/:id", authorize(access.ActionDelete), handler.Delete)
	}
}
