package routes

import (
	controller "campus-services-backend/controllers"
	"campus-services-backend/middleware"

	"github.com/gin-gonic/gin"
)

func OrderRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.POST("/api/orders", controller.PlaceOrder())
	incomingRoutes.GET("/api/orders/my-orders", controller.GetMyOrders())
	incomingRoutes.GET("/api/orders/admin/all", middleware.RequireAdmin(), controller.GetAllOrders())
	incomingRoutes.GET("/api/orders/:order_id", controller.GetOrder())
	incomingRoutes.POST("/api/orders/:order_id/cancel", controller.CancelOrder())
	incomingRoutes.GET("/api/orders/:order_id/qr", controller.GetOrderQR())
	incomingRoutes.PUT("/api/orders/:order_id/status", middleware.RequireAdmin(), controller.UpdateOrderStatus())
}
