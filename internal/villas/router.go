package villas

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts public catalog routes and admin management routes
func RegisterRoutes(rg *gin.RouterGroup, ctrl *Controller, authMiddleware, adminMiddleware gin.HandlerFunc) {
	public := rg.Group("/villas")
	{
		public.GET("", ctrl.ListVillas)
		public.GET("/:slug", ctrl.GetVilla)
		public.GET("/:slug/pricing", ctrl.GetPricing)
	}

	admin := rg.Group("/admin/villas", authMiddleware, adminMiddleware)
	{
		admin.POST("", ctrl.CreateVilla)
		admin.PUT("/:id", ctrl.UpdateVilla)
		admin.DELETE("/:id", ctrl.DeleteVilla)
	}

	pricing := rg.Group("/admin/pricing", authMiddleware, adminMiddleware)
	{
		pricing.GET("/rules", ctrl.ListRules)
		pricing.POST("/rules", ctrl.CreateRule)
		pricing.PUT("/rules/:id", ctrl.UpdateRule)
		pricing.DELETE("/rules/:id", ctrl.DeleteRule)

		pricing.GET("/overrides", ctrl.ListOverrides)
		pricing.POST("/overrides", ctrl.CreateOverride)
		pricing.DELETE("/overrides/:id", ctrl.DeleteOverride)
	}
}
