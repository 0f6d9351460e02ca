package main

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/open-nie/events-backend/config"
	"github.com/open-nie/events-backend/controllers"
	"github.com/open-nie/events-backend/database"
	"github.com/open-nie/events-backend/logger"
	"github.com/open-nie/events-backend/routes"
	"github.com/open-nie/events-backend/utils"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.GinMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	utils.SetJWTSecret(cfg.JWTSecret)

	// Connect to database
	if err := database.Connect(cfg.DatabaseURL); err != nil {
		log.Fatal("failed to connect to database", "error", err)
	}

	// Auto-migrate models
	if err := database.Migrate(database.DB); err != nil {
		log.Fatal("failed to auto-migrate", "error", err)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatal("failed to create upload dir", "dir", cfg.UploadDir, "error", err)
	}

	controllers.Init(cfg, log)

	// Initialize Gin
	gin.SetMode(cfg.GinMode)
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.ClientOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Uploaded event images are served statically
	router.Static("/uploads", cfg.UploadDir)

	// Register routes
	routes.SetupRoutes(router)

	log.Info("server starting", "port", cfg.Port)
	if err := router.Run("0.0.0.0:" + cfg.Port); err != nil {
		log.Fatal("server exited", "error", err)
	}
}
