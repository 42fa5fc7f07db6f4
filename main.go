package main

import (
	"context"
	"flag"
	"net/http"
	"time"

	"campus-services-backend/config"
	"campus-services-backend/database"
	"campus-services-backend/logger"
	"campus-services-backend/middleware"
	"campus-services-backend/routes"
	"campus-services-backend/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	seed := flag.Bool("seed", false, "wipe and reload demo data, then exit")
	flag.Parse()

	logger.Init(config.GetString("ENV", "development"))
	defer logger.Log.Sync()

	if *seed {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := database.Seed(ctx); err != nil {
			logger.Log.Fatalw("seeding failed", "error", err)
		}
		logger.Log.Info("database seeded")
		return
	}

	port := config.GetString("PORT", "8000")

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.GetString("CLIENT_URL", "http://localhost:3000")},
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.RateLimit(middleware.RateLimiterConfig{
		RequestsPerTimeFrame: config.GetInt("RATE_LIMIT_REQUESTS", 100),
		TimeFrame:            time.Duration(config.GetInt("RATE_LIMIT_WINDOW_SECONDS", 900)) * time.Second,
		Enabled:              config.GetBool("RATE_LIMIT_ENABLED", true),
	}))

	router.MaxMultipartMemory = 10 << 20

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "timestamp": time.Now().Format(time.RFC3339)})
	})

	// Uploaded xerox documents are served back to admins from disk.
	router.Static("/uploads", config.GetString("UPLOAD_DIR", "uploads"))

	// Public surface: auth and menu browsing.
	routes.AuthRoutes(router)
	routes.MenuRoutes(router)

	router.GET("/ws", ws.Serve())

	// Everything below requires a valid token.
	router.Use(middleware.Authentication())
	routes.OrderRoutes(router)
	routes.XeroxRoutes(router)
	routes.QueueRoutes(router)
	routes.AdminRoutes(router)

	logger.Log.Infow("server starting", "port", port)
	if err := router.Run(":" + port); err != nil {
		logger.Log.Fatalw("server stopped", "error", err)
	}
}
