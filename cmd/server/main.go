package main

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/bujo-tasks/internal/config"
	"github.com/yukikurage/bujo-tasks/internal/database"
	"github.com/yukikurage/bujo-tasks/internal/handlers"
	"github.com/yukikurage/bujo-tasks/internal/logger"
	"github.com/yukikurage/bujo-tasks/internal/middleware"
	"github.com/yukikurage/bujo-tasks/internal/repository"
	"github.com/yukikurage/bujo-tasks/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger.Init(cfg.LogLevel, cfg.LogPretty)
	log := logger.L()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,                        // Redis pool size
		"tcp",                     // network type
		redisAddr,                 // Redis address from config
		"",                        // username (empty for default user)
		"",                        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatal().Err(err).Str("addr", redisAddr).Msg("Failed to create Redis store")
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == gin.ReleaseMode
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("bujo_session", store))

	// Initialize services
	repoStore := repository.NewStore(database.GetDB())
	authz := services.NewAuthorizationService()
	svc := handlers.Services{
		Tasks:    services.NewTaskService(repoStore, authz),
		Projects: services.NewProjectService(repoStore, authz),
		Users:    services.NewUserService(repoStore.Repositories().Users),
		Notifier: services.LogNotifier{},
	}

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Bujo Tasks API is running",
		})
	})

	// API routes
	handlers.RegisterRoutes(r.Group("/api"), svc)

	// Start server
	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Msg("Server starting")
	if err := r.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
