package availability

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the public availability endpoints
func RegisterRoutes(rg *gin.RouterGroup, ctrl *Controller) {
	group := rg.Group("/availability")
	{
		group.GET("", ctrl.Check)
		group.GET("/villas", ctrl.ListVillas)
	}
}
