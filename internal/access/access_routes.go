package access

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the access endpoints behind guards, which must
// authenticate the caller and put its Actor in the context.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, guards ...gin.HandlerFunc) {
	group := r.Group("/access")
	group.Use(guards...)
	{
		group.POST("/enforce", handler.Enforce)
		group.GET("/permissions", handler.MyPermissions)
	}
}
