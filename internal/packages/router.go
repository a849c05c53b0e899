package packages

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts public catalog routes and admin management routes
func RegisterRoutes(rg *gin.RouterGroup, ctrl *Controller, authMiddleware, adminMiddleware gin.HandlerFunc) {
	public := rg.Group("/packages")
	{
		public.GET("", ctrl.List)
		public.GET("/:slug", ctrl.Get)
	}

	admin := rg.Group("/admin/packages", authMiddleware, adminMiddleware)
	{
		admin.POST("", ctrl.Create)
		admin.PUT("/:id", ctrl.Update)
		admin.DELETE("/:id", ctrl.Delete)
	}
}
