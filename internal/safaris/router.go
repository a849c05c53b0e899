package safaris

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts public safari routes and admin management routes
func RegisterRoutes(rg *gin.RouterGroup, ctrl *Controller, authMiddleware, adminMiddleware gin.HandlerFunc) {
	public := rg.Group("/safaris")
	{
		public.GET("", ctrl.ListTours)
		public.GET("/:slug", ctrl.GetTour)
		public.POST("/enquiries", ctrl.CreateEnquiry)
	}

	admin := rg.Group("/admin/safaris", authMiddleware, adminMiddleware)
	{
		admin.POST("", ctrl.CreateTour)
		admin.PUT("/:id", ctrl.UpdateTour)
		admin.DELETE("/:id", ctrl.DeleteTour)

		admin.GET("/enquiries", ctrl.ListEnquiries)
		admin.PATCH("/enquiries/:id/status", ctrl.UpdateEnquiryStatus)
	}
}
