package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Kunalgarg108/ShareSpace/internal/config"
	"github.com/Kunalgarg108/ShareSpace/internal/database"
	"github.com/Kunalgarg108/ShareSpace/internal/handlers"
	"github.com/Kunalgarg108/ShareSpace/internal/middleware"
	"github.com/Kunalgarg108/ShareSpace/internal/migrations"
	"github.com/Kunalgarg108/ShareSpace/internal/models"
	"github.com/Kunalgarg108/ShareSpace/internal/moderation"
	"github.com/Kunalgarg108/ShareSpace/internal/notify"
	"github.com/Kunalgarg108/ShareSpace/internal/realtime"
	"github.com/Kunalgarg108/ShareSpace/internal/routes"
	"github.com/Kunalgarg108/ShareSpace/internal/store"
	"github.com/Kunalgarg108/ShareSpace/pkg/logger"
)

func main() {
	config.LoadConfig()

	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env)

	logger.Info().Str("environment", env).Msg("Starting ShareSpace Backend...")

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	database.Connect()
	database.InitRedis()

	logger.Info().Msg("Running database migrations...")
	if err := database.DB.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.PostLike{},
		&models.Bookmark{},
		&models.UserFollow{},
		&models.Conversation{},
		&models.Message{},
		&models.Notification{},
	); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run database migrations")
	}
	if err := migrations.NewMigrator(database.DB).Run(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run index migrations")
	}
	logger.Info().Msg("Database migrations complete")

	// Wiring: one hub instance owns presence, everything that pushes gets it
	// injected.
	hub := realtime.NewHub()
	conversations := store.NewConversationStore(database.DB)
	social := store.NewSocialStore(database.DB)
	notifier := notify.NewService(database.DB, hub)
	classifier := moderation.NewClassifier(config.AppConfig.ModerationURL, config.AppConfig.ModerationTimeout())

	chatHandler := handlers.NewChatHandler(conversations, notifier, hub, classifier)
	postsHandler := handlers.NewPostsHandler(social, notifier, classifier)
	socialHandler := handlers.NewSocialHandler(social, notifier)
	notificationsHandler := handlers.NewNotificationsHandler(notifier)

	r := gin.New()

	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.ErrorHandlerMiddleware())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	// Exempt /socket.io from rate limiting
	r.Use(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/socket.io/") {
			c.Next()
			return
		}
		middleware.GeneralRateLimit()(c)
	})

	api := r.Group("/api")
	{
		routes.RegisterChatRoutes(api, chatHandler)
		routes.RegisterSocialRoutes(api, postsHandler, socialHandler)
		routes.RegisterNotificationRoutes(api, notificationsHandler)
	}

	r.GET("/health", func(c *gin.Context) {
		dbStatus := "ok"
		redisStatus := "ok"

		sqlDB, err := database.DB.DB()
		if err != nil || sqlDB.Ping() != nil {
			dbStatus = "error"
		}

		if database.Redis != nil {
			if _, err := database.Redis.Ping(context.Background()).Result(); err != nil {
				redisStatus = "error"
			}
		} else {
			redisStatus = "not configured"
		}

		status := "ok"
		if dbStatus != "ok" || (redisStatus != "ok" && redisStatus != "not configured") {
			status = "degraded"
		}

		c.JSON(200, gin.H{
			"status":  status,
			"message": "ShareSpace Backend is running",
			"checks": gin.H{
				"database": dbStatus,
				"redis":    redisStatus,
			},
		})
	})

	if config.AppConfig.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	socketServer := realtime.NewSocketServer(hub)
	defer socketServer.Close()

	r.GET("/socket.io/*any", realtime.SocketHandler(socketServer))
	r.POST("/socket.io/*any", realtime.SocketHandler(socketServer))

	port := config.AppConfig.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", port).Str("env", env).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited gracefully")
}
