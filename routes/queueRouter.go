package routes

import (
	controller "campus-services-backend/controllers"

	"github.com/gin-gonic/gin"
)

func QueueRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/api/queue", controller.GetQueues())
	incomingRoutes.GET("/api/queue/user/active", controller.GetActiveQueues())
	incomingRoutes.GET("/api/queue/:queue_id", controller.GetQueue())
	incomingRoutes.POST("/api/queue/:queue_id/join", controller.JoinQueue())
	incomingRoutes.POST("/api/queue/:queue_id/leave", controller.LeaveQueue())
	incomingRoutes.GET("/api/queue/:queue_id/position", controller.GetQueuePosition())
}
