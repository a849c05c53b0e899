package auth

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the auth endpoints
func RegisterRoutes(rg *gin.RouterGroup, ctrl *Controller, authMiddleware gin.HandlerFunc) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/login", ctrl.Login)
		authGroup.POST("/refresh", ctrl.Refresh)
		authGroup.POST("/change-password", authMiddleware, ctrl.ChangePassword)
	}
}
