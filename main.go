package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"leadrelay/pkg/api"
	"leadrelay/pkg/clients/retell"
	"leadrelay/pkg/clients/slack"
	"leadrelay/pkg/config"
	"leadrelay/pkg/logger"
	"leadrelay/pkg/metrics"
	"leadrelay/pkg/middleware"
	"leadrelay/pkg/store"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file")
	}

	// Initialize configuration
	cfg := config.LoadConfig()

	zlog := logger.Init("leadrelay", cfg.AppEnv)
	defer zlog.Sync()

	// Select the storage backend: redis when configured and reachable,
	// in-memory otherwise. Running degraded beats refusing to start.
	var backend store.Backend
	if cfg.RedisAddr != "" {
		rb, err := store.NewRedisBackend(context.Background(), store.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			zlog.Warnw("redis unreachable, falling back to in-memory lead cache", "addr", cfg.RedisAddr, "error", err)
			backend = store.NewMemoryBackend(nil)
		} else {
			backend = rb
		}
	} else {
		zlog.Infow("no redis configured, using in-memory lead cache")
		backend = store.NewMemoryBackend(nil)
	}

	leadStore := store.NewLeadStore(backend, cfg.LeadTTL, zlog)

	// Initialize vendor clients where configured
	var notifier slack.Client
	if cfg.SlackWebhookURL != "" {
		notifier = slack.NewClient(cfg.SlackWebhookURL)
	}

	var voice retell.Client
	if cfg.RetellAPIKey != "" {
		voice = retell.NewClient(cfg.RetellAPIKey, cfg.RetellAgentID)
	}

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create a new Gin router with default middleware
	router := gin.Default()

	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())

	// Initialize handlers
	handlers := api.NewHandlers(leadStore, backend.Name(), notifier, voice, cfg, zlog)

	// Register routes
	router.POST("/webhook/wix-form", handlers.HandleWixSubmission)
	router.POST("/agent/lookup", handlers.HandleAgentLookup)
	router.POST("/agent/call", handlers.HandleAgentCall)
	router.GET("/agent/numbers", handlers.HandleListNumbers)
	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", metrics.Handler())

	// Start the server
	zlog.Infow("server starting", "port", cfg.Port, "backend", backend.Name())
	if err := router.Run(":" + cfg.Port); err != nil {
		zlog.Fatalw("error starting server", "error", err)
	}
}
