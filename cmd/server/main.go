package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"gym_backend/internal/clock"
	"gym_backend/internal/database"
	routerpkg "gym_backend/internal/router"
	"gym_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Initialize Logger
	utils.InitLogger()

	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		utils.LogInfo("Loaded configuration from .env file")
	}

	// JWT configuration
	jwtSecret := utils.Getenv("JWT_SECRET", "")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}
	utils.SetJWTSecret(jwtSecret)
	utils.SetAccessTokenTTL(time.Duration(utils.GetenvInt("JWT_EXPIRATION_HOURS", 12)) * time.Hour)

	// Operational clock: attendance and cash days are bucketed in the gym's
	// local timezone regardless of where the server runs.
	clk := clock.New(utils.Getenv("GYM_TZ", clock.DefaultZone))
	if clk.UsedFallback() {
		utils.LogInfo("Timezone database unavailable, using fixed UTC-3 offset", map[string]interface{}{"zone": utils.Getenv("GYM_TZ", clock.DefaultZone)})
	}

	// Initialize Database
	db, err := database.Connect(database.Config{
		Host:       utils.Getenv("DB_HOST", "localhost"),
		Port:       utils.Getenv("DB_PORT", "5432"),
		User:       utils.Getenv("DB_USER", "gym_user"),
		Password:   utils.Getenv("DB_PASSWORD", "gym_password"),
		Name:       utils.Getenv("DB_NAME", "gym_db"),
		SSLMode:    utils.Getenv("DB_SSLMODE", "disable"),
		SchemaPath: utils.Getenv("DB_SCHEMA_PATH", ""),
	})
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()
	utils.LogInfo("Database initialized")

	engine := gin.Default()

	// Add GinLogger middleware for request logging
	engine.Use(utils.GinLogger())

	// CORS configuration
	corsAllowedOriginsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	var allowedOrigins []string
	if corsAllowedOriginsEnv != "" {
		allowedOrigins = strings.Split(corsAllowedOriginsEnv, ",")
	} else {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:3001"}
	}

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowCredentials = true
	engine.Use(cors.New(config))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Setup all application routes
	routerpkg.Setup(engine, db, clk)

	// Server port configuration
	port := utils.Getenv("PORT", "8080")
	utils.LogInfo("Server starting", map[string]interface{}{"port": port})

	if err := engine.Run(":" + port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}
