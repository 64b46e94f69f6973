package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jianshanacademy/camp-portal/internal/api/middleware"
	"github.com/jianshanacademy/camp-portal/internal/api/routes"
	"github.com/jianshanacademy/camp-portal/internal/config"
	"github.com/jianshanacademy/camp-portal/internal/config/db"
)

func main() {
	// Load configuration from environment variables and .env file
	config.LoadConfig()

	// Initialize JWT signing key
	middleware.Init()

	// Initialize database connection and run migrations
	db.Init()

	if config.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())

	routes.RegisterRoutes(router, db.DB)

	port := ":" + config.ServerPort
	log.Printf("Starting API server on %s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
}
