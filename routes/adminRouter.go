package routes

import (
	controller "campus-services-backend/controllers"
	"campus-services-backend/middleware"

	"github.com/gin-gonic/gin"
)

func AdminRoutes(incomingRoutes *gin.Engine) {
	admin := incomingRoutes.Group("/api/admin")
	admin.Use(middleware.RequireAdmin())

	admin.GET("/dashboard", controller.GetDashboard())
	admin.GET("/reports/daily", controller.GetDailyReport())

	admin.POST("/menu", controller.CreateMenuItem())
	admin.PUT("/menu/:item_id", controller.UpdateMenuItem())
	admin.DELETE("/menu/:item_id", controller.DeleteMenuItem())

	admin.GET("/queues", controller.GetAllQueues())
	admin.POST("/queues", controller.CreateQueue())
	admin.PUT("/queues/:queue_id/status", controller.UpdateQueueStatus())
	admin.POST("/queues/:queue_id/call-next", controller.CallNextCustomer())
	admin.PUT("/queues/:queue_id/customers/:user_id/served", controller.MarkCustomerServed())

	admin.GET("/users", controller.GetUsers())
	admin.PUT("/users/:user_id/role", controller.UpdateUserRole())
}
