package routes

import (
	controller "campus-services-backend/controllers"
	"campus-services-backend/middleware"

	"github.com/gin-gonic/gin"
)

func AuthRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.POST("/api/auth/register", controller.Register())
	incomingRoutes.POST("/api/auth/login", controller.Login())
	incomingRoutes.GET("/api/auth/profile", middleware.Authentication(), controller.GetProfile())
}
