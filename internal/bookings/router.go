package bookings

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts guest booking routes and admin management routes
func RegisterRoutes(rg *gin.RouterGroup, ctrl *Controller, authMiddleware, adminMiddleware gin.HandlerFunc) {
	public := rg.Group("/bookings")
	{
		public.POST("", ctrl.Create)
		public.POST("/lookup", ctrl.Lookup)
		public.POST("/cancel", ctrl.Cancel)
		public.POST("/pay", ctrl.Pay)
	}

	admin := rg.Group("/admin/bookings", authMiddleware, adminMiddleware)
	{
		admin.GET("", ctrl.AdminList)
		admin.PATCH("/:id/cancel", ctrl.AdminCancel)
		admin.PATCH("/:id/complete", ctrl.AdminComplete)
	}
}
