package routes

import (
	controller "campus-services-backend/controllers"

	"github.com/gin-gonic/gin"
)

func MenuRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/api/menu", controller.GetMenuItems())
	incomingRoutes.GET("/api/menu/categories/list", controller.GetCategories())
	incomingRoutes.GET("/api/menu/service/:service_type", controller.GetMenuByService())
	incomingRoutes.GET("/api/menu/search/:query", controller.SearchMenu())
	incomingRoutes.GET("/api/menu/:item_id", controller.GetMenuItem())
}
