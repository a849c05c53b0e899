package holds

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the public hold endpoints
func RegisterRoutes(rg *gin.RouterGroup, ctrl *Controller) {
	group := rg.Group("/holds")
	{
		group.POST("", ctrl.Create)
		group.GET("/:id", ctrl.Get)
		group.DELETE("/:id", ctrl.Release)
	}
}
