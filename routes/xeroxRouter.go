package routes

import (
	controller "campus-services-backend/controllers"
	"campus-services-backend/middleware"

	"github.com/gin-gonic/gin"
)

func XeroxRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.POST("/api/xerox", controller.PlaceXeroxOrder())
	incomingRoutes.GET("/api/xerox/my-orders", controller.GetMyXeroxOrders())
	incomingRoutes.GET("/api/xerox/admin/all", middleware.RequireAdmin(), controller.GetAllXeroxOrders())
	incomingRoutes.GET("/api/xerox/:order_id", controller.GetXeroxOrder())
	incomingRoutes.POST("/api/xerox/:order_id/cancel", controller.CancelXeroxOrder())
	incomingRoutes.PUT("/api/xerox/:order_id/status", middleware.RequireAdmin(), controller.UpdateXeroxOrderStatus())
}
