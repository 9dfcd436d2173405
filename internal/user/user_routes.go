package user

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
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	users.Use(middleware.ContextLogger(logger))
	{
		users.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(accessService, access.ResourceUser, access.ActionRead),
			handler.GetAll,
		)
		users.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(accessService, access.ResourceUser, access.ActionRead),
			handler.GetByID,
		)
		users.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(accessService, access.ResourceUser, access.ActionCreate),
			handler.Create,
		)
		users.PATCH("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(accessService, access.ResourceUser, access.ActionUpdate),
			handler.Update,
		)
		users.POST("/:id/reset-password",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(accessService, access.ResourceUser, access.ActionUpdate),
			handler.ResetPassword,
		)
	}

	teams := r.Group("/teams")
	teams.Use(middleware.AuthMiddleware())
	teams.Use(middleware.ContextLogger(logger))
	{
		teams.GET("", middleware.RBACAuthorize(accessService, access.ResourceTeam, access.ActionRead), handler.GetTeams)
		teams.POST("", middleware.RBACAuthorize(accessService, access.ResourceTeam, access.ActionCreate), handler.CreateTeam)
		teams.POST("/:id/members", middleware.RBACAuthorize(accessService, access.ResourceTeam, access.ActionUpdate), handler.AddMember)
		teams.DELETE("/:id/members/:userId", middleware.RBACAuthorize(accessService, access.ResourceTeam, access.ActionUpdate), handler.RemoveMember)
	}
}
